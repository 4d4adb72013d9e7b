package render

import (
	"context"
	"log/slog"
	"strings"

	"nasum/internal/config"
	"nasum/internal/services"
)

// Uploader mirrors the output directory to a remote destination with rsync.
type Uploader struct {
	binary      string
	destination string
	excludes    []string
	runner      runner
}

// NewUploader builds an uploader from the upload settings.
func NewUploader(cfg config.Upload, exec Executor, logger *slog.Logger) *Uploader {
	return &Uploader{
		binary:      cfg.Rsync,
		destination: strings.TrimSpace(cfg.Destination),
		excludes:    append([]string(nil), cfg.Excludes...),
		runner:      newRunner(exec, logger, "upload"),
	}
}

// Upload copies the contents of srcDir to the configured destination.
func (u *Uploader) Upload(ctx context.Context, srcDir string) error {
	if u.destination == "" {
		return services.Wrap(services.ErrConfiguration, "upload", "rsync", "upload.destination is not set", nil)
	}
	args := []string{"-azrlv"}
	for _, pattern := range u.excludes {
		if pattern = strings.TrimSpace(pattern); pattern != "" {
			args = append(args, "--exclude="+pattern)
		}
	}
	args = append(args, "-e", "ssh", strings.TrimRight(srcDir, "/")+"/", u.destination)
	return u.runner.run(ctx, "rsync", Command{Binary: u.binary, Args: args})
}

// Committer records build inputs and outputs in a git repository.
type Committer struct {
	binary string
	repo   string
	push   bool
	runner runner
}

// NewCommitter builds a committer from the git settings.
func NewCommitter(cfg config.Git, exec Executor, logger *slog.Logger) *Committer {
	return &Committer{
		binary: cfg.Binary,
		repo:   cfg.RepoDir,
		push:   cfg.Push,
		runner: newRunner(exec, logger, "git"),
	}
}

// Commit stages paths and commits them with message. A tree with nothing to
// commit is not an error; the push step is still attempted when enabled.
func (c *Committer) Commit(ctx context.Context, paths []string, message string) error {
	if len(paths) == 0 {
		return nil
	}
	add := append([]string{"-C", c.repo, "add", "--"}, paths...)
	if err := c.runner.run(ctx, "add", Command{Binary: c.binary, Args: add}); err != nil {
		return err
	}

	var nothing bool
	commit := Command{Binary: c.binary, Args: []string{"-C", c.repo, "commit", "-m", message}}
	err := c.runner.exec.Run(ctx, commit, func(line string) {
		if strings.Contains(line, "nothing to commit") || strings.Contains(line, "no changes added to commit") {
			nothing = true
		}
		c.runner.logger.Debug(line, "tool", c.binary)
	})
	switch {
	case err != nil && nothing:
		c.runner.logger.Info("git tree already up to date")
	case err != nil:
		return services.Wrap(services.ErrExternalTool, "git", "commit", commit.String(), err)
	}

	if !c.push {
		return nil
	}
	return c.runner.run(ctx, "push", Command{Binary: c.binary, Args: []string{"-C", c.repo, "push"}})
}
