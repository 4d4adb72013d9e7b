package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"nasum/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in a unique temp directory per test.
// The summary log is seeded with SampleLog and the output directories exist.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InputFile = filepath.Join(base, "NASummaries.txt")
	cfgVal.Paths.OutputDir = filepath.Join(base, "na")
	cfgVal.Paths.LaTeXFile = filepath.Join(base, "NASummaries.tex")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Artwork.Dir = filepath.Join(base, "art")
	cfgVal.Git.RepoDir = base

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	WriteFile(t, cfgVal.Paths.InputFile, SampleLog)

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithLog replaces the seeded summary log contents.
func WithLog(content string) ConfigOption {
	return func(b *configBuilder) {
		WriteFile(b.t, b.cfg.Paths.InputFile, content)
	}
}

// WithArtwork enables artwork handling and writes a placeholder image for
// each of the given episode numbers.
func WithArtwork(numbers ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Artwork.Enabled = true
		for _, n := range numbers {
			WriteFile(b.t, filepath.Join(b.cfg.Artwork.Dir, n+b.cfg.Artwork.Extension), "jpeg")
		}
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, the default external tools are
// stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"xelatex", "pdfunite", "rsync", "git"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.InputFile)
}
