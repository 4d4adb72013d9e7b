package deps

import (
	"os"
	"path/filepath"
	"testing"

	"nasum/internal/config"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Detail != "" {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("expected missing binary to be unavailable with detail, got %#v", results[1])
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("expected unconfigured command, got %#v", results[2])
	}
}

func TestRequirementsFollowFeatures(t *testing.T) {
	cfg := config.Default()
	reqs := Requirements(&cfg, Features{LaTeX: true})
	optional := map[string]bool{}
	for _, req := range reqs {
		optional[req.Name] = req.Optional
	}
	if optional["XeLaTeX"] {
		t.Fatal("xelatex must be required for LaTeX builds")
	}
	for _, name := range []string{"PDF merge", "rsync", "git"} {
		if !optional[name] {
			t.Fatalf("%s should be optional when its step is off", name)
		}
	}

	reqs = Requirements(&cfg, Features{LaTeX: true, TitlePage: true, Upload: true, Commit: true})
	for _, req := range reqs {
		if req.Optional {
			t.Fatalf("%s should be required when every step runs", req.Name)
		}
	}
}

func TestMissing(t *testing.T) {
	statuses := []Status{
		{Name: "a", Available: true},
		{Name: "b", Available: false, Optional: true},
		{Name: "c", Available: false},
	}
	missing := Missing(statuses)
	if len(missing) != 1 || missing[0].Name != "c" {
		t.Fatalf("Missing = %+v", missing)
	}
}
