package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nasum/internal/config"
	"nasum/internal/deps"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckReadableFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "NASummaries.txt")
	if err := os.WriteFile(f, []byte("Show 1\n1/1/2020\nTitle\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckReadableFile("log", f); !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if result := CheckReadableFile("log", dir); result.Passed {
		t.Fatal("expected failure for directory")
	}
	result := CheckReadableFile("log", filepath.Join(dir, "missing.txt"))
	if result.Passed || !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected result for missing file: %+v", result)
	}
}

func TestCheckArtworkSource_Reachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	result := CheckArtworkSource(context.Background(), srv.URL+"/art/{n}.jpg")
	if !result.Passed {
		t.Fatalf("expected pass for any response, got: %s", result.Detail)
	}
}

func TestCheckArtworkSource_Invalid(t *testing.T) {
	result := CheckArtworkSource(context.Background(), "not a url")
	if result.Passed {
		t.Fatal("expected failure for invalid url")
	}
}

func TestCheckArtworkSource_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	srv.Close()

	result := CheckArtworkSource(context.Background(), addr+"/{n}.jpg")
	if result.Passed {
		t.Fatal("expected failure for closed server")
	}
}

func TestCheckGitRepository_MissingBinary(t *testing.T) {
	result := CheckGitRepository(context.Background(), "clearly-not-present-git", t.TempDir())
	if result.Passed {
		t.Fatal("expected failure without a git binary")
	}
}

func TestRunAll_SkipsDisabledFeatures(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "log.txt")
	if err := os.WriteFile(input, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Paths.InputFile = input
	cfg.Paths.OutputDir = dir

	results := RunAll(context.Background(), &cfg)
	if len(results) != 2 {
		t.Fatalf("expected input and output checks only, got %+v", results)
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failures: %+v", failed)
	}

	cfg.Artwork.Enabled = true
	cfg.Artwork.Dir = filepath.Join(dir, "missing-art")
	results = RunAll(context.Background(), &cfg)
	failed := Failed(results)
	if len(failed) != 1 || failed[0].Name != "Artwork directory" {
		t.Fatalf("expected artwork directory failure, got %+v", failed)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatalf("expected nil results, got %+v", results)
	}
}

func TestCheckSystemDeps(t *testing.T) {
	cfg := config.Default()
	cfg.Render.XeLaTeX = "clearly-not-present-xelatex"
	statuses := CheckSystemDeps(&cfg, deps.Features{LaTeX: true})
	missing := deps.Missing(statuses)
	if len(missing) != 1 || missing[0].Name != "XeLaTeX" {
		t.Fatalf("expected only xelatex missing, got %+v", missing)
	}
}
