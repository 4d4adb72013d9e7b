package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"nasum/internal/config"
	"nasum/internal/services"
)

// intermediateExtensions are the xelatex byproducts removed after a run.
var intermediateExtensions = []string{".aux", ".log", ".out"}

// TeX compiles LaTeX sources with xelatex.
type TeX struct {
	binary  string
	timeout time.Duration
	runner  runner
}

// NewTeX builds a compiler from the render settings.
func NewTeX(cfg config.Render, exec Executor, logger *slog.Logger) *TeX {
	return &TeX{
		binary:  cfg.XeLaTeX,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		runner:  newRunner(exec, logger, "latex"),
	}
}

// Compile typesets texPath into outDir and returns the PDF path. A failed
// run leaves no partial PDF behind.
func (t *TeX) Compile(ctx context.Context, texPath, outDir string) (string, error) {
	if strings.TrimSpace(texPath) == "" {
		return "", services.Wrap(services.ErrConfiguration, "latex", "compile", "no source file", nil)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrConfiguration, "latex", "compile", "create output directory", err)
	}
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	base := strings.TrimSuffix(filepath.Base(texPath), filepath.Ext(texPath))
	pdfPath := filepath.Join(outDir, base+".pdf")
	cmd := Command{
		Dir:    filepath.Dir(texPath),
		Binary: t.binary,
		Args: []string{
			"-interaction=nonstopmode",
			"-halt-on-error",
			"-output-directory=" + outDir,
			filepath.Base(texPath),
		},
	}
	err := t.runner.run(ctx, "compile "+filepath.Base(texPath), cmd)
	removeIntermediates(outDir, base)
	if err != nil {
		if rmErr := os.Remove(pdfPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			t.runner.logger.Warn("remove partial pdf failed", "path", pdfPath, "error", rmErr)
		}
		return "", err
	}
	return pdfPath, nil
}

func removeIntermediates(dir, base string) {
	for _, ext := range intermediateExtensions {
		_ = os.Remove(filepath.Join(dir, base+ext))
	}
}

// Merger concatenates PDF files.
type Merger struct {
	binary string
	runner runner
}

// NewMerger builds a merger from the render settings.
func NewMerger(cfg config.Render, exec Executor, logger *slog.Logger) *Merger {
	return &Merger{binary: cfg.PDFMerge, runner: newRunner(exec, logger, "latex")}
}

// Merge writes the concatenation of inputs to out. out may also be one of
// the inputs; the result is written to a sibling file and renamed into place.
func (m *Merger) Merge(ctx context.Context, out string, inputs ...string) error {
	if len(inputs) == 0 {
		return services.Wrap(services.ErrConfiguration, "latex", "merge", "no input documents", nil)
	}
	tmp := filepath.Join(filepath.Dir(out), fmt.Sprintf(".%s.merge%s", strings.TrimSuffix(filepath.Base(out), filepath.Ext(out)), filepath.Ext(out)))
	args := append(append([]string(nil), inputs...), tmp)
	if err := m.runner.run(ctx, "merge", Command{Binary: m.binary, Args: args}); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if _, err := os.Stat(tmp); errors.Is(err, os.ErrNotExist) {
		// Dry runs produce nothing to move.
		return nil
	}
	if err := os.Rename(tmp, out); err != nil {
		_ = os.Remove(tmp)
		return services.Wrap(services.ErrExternalTool, "latex", "merge", "replace merged document", err)
	}
	return nil
}
