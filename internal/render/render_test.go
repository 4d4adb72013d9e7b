package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"nasum/internal/config"
	"nasum/internal/logging"
	"nasum/internal/services"
)

type stubExecutor struct {
	commands []Command
	lines    []string
	err      error
	// onRun lets a test create the files a real tool would produce.
	onRun func(Command)
}

func (s *stubExecutor) Run(ctx context.Context, cmd Command, onOutput func(string)) error {
	s.commands = append(s.commands, cmd)
	if s.onRun != nil {
		s.onRun(cmd)
	}
	for _, line := range s.lines {
		if onOutput != nil {
			onOutput(line)
		}
	}
	return s.err
}

func TestCompileBuildsArgumentsAndCleansUp(t *testing.T) {
	srcDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "na")
	texPath := filepath.Join(srcDir, "NASummaries.tex")

	exec := &stubExecutor{onRun: func(cmd Command) {
		for _, ext := range []string{".pdf", ".aux", ".log", ".out"} {
			_ = os.WriteFile(filepath.Join(outDir, "NASummaries"+ext), []byte("x"), 0o644)
		}
	}}
	tex := NewTeX(config.Render{XeLaTeX: "xelatex"}, exec, logging.NewNop())

	pdf, err := tex.Compile(context.Background(), texPath, outDir)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if pdf != filepath.Join(outDir, "NASummaries.pdf") {
		t.Fatalf("pdf path = %q", pdf)
	}
	if len(exec.commands) != 1 {
		t.Fatalf("expected one command, got %d", len(exec.commands))
	}
	cmd := exec.commands[0]
	if cmd.Binary != "xelatex" || cmd.Dir != srcDir {
		t.Fatalf("unexpected command %+v", cmd)
	}
	want := []string{"-interaction=nonstopmode", "-halt-on-error", "-output-directory=" + outDir, "NASummaries.tex"}
	if strings.Join(cmd.Args, " ") != strings.Join(want, " ") {
		t.Fatalf("args = %v, want %v", cmd.Args, want)
	}
	for _, ext := range []string{".aux", ".log", ".out"} {
		if _, err := os.Stat(filepath.Join(outDir, "NASummaries"+ext)); !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("expected %s to be removed", ext)
		}
	}
	if _, err := os.Stat(pdf); err != nil {
		t.Fatalf("expected pdf to remain: %v", err)
	}
}

func TestCompileFailureRemovesPartialPDF(t *testing.T) {
	outDir := t.TempDir()
	exec := &stubExecutor{
		err: errors.New("exit status 1"),
		onRun: func(Command) {
			_ = os.WriteFile(filepath.Join(outDir, "doc.pdf"), []byte("partial"), 0o644)
		},
	}
	tex := NewTeX(config.Render{XeLaTeX: "xelatex"}, exec, logging.NewNop())

	_, err := tex.Compile(context.Background(), filepath.Join(t.TempDir(), "doc.tex"), outDir)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if services.ExitCode(err) != services.ExitExternalTool {
		t.Fatalf("exit code = %d", services.ExitCode(err))
	}
	if _, statErr := os.Stat(filepath.Join(outDir, "doc.pdf")); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatal("expected partial pdf to be removed")
	}
}

func TestCompileTimeout(t *testing.T) {
	exec := &blockingExecutor{}
	tex := NewTeX(config.Render{XeLaTeX: "xelatex"}, exec, logging.NewNop())
	tex.timeout = 10 * time.Millisecond

	_, err := tex.Compile(context.Background(), filepath.Join(t.TempDir(), "doc.tex"), t.TempDir())
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
}

type blockingExecutor struct{}

func (blockingExecutor) Run(ctx context.Context, _ Command, _ func(string)) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestMergeReplacesOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "NASummaries.pdf")
	title := filepath.Join(dir, "NASummaries-title.pdf")
	if err := os.WriteFile(out, []byte("body"), 0o644); err != nil {
		t.Fatal(err)
	}

	exec := &stubExecutor{onRun: func(cmd Command) {
		target := cmd.Args[len(cmd.Args)-1]
		_ = os.WriteFile(target, []byte("merged"), 0o644)
	}}
	merger := NewMerger(config.Render{PDFMerge: "pdfunite"}, exec, logging.NewNop())
	if err := merger.Merge(context.Background(), out, title, out); err != nil {
		t.Fatalf("Merge: %v", err)
	}

	args := exec.commands[0].Args
	if args[0] != title || args[1] != out || args[2] == out {
		t.Fatalf("unexpected merge args %v", args)
	}
	data, err := os.ReadFile(out)
	if err != nil || string(data) != "merged" {
		t.Fatalf("merged output = %q, %v", data, err)
	}
	if _, err := os.Stat(args[2]); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("expected temporary merge file to be renamed away")
	}
}

func TestMergeRequiresInputs(t *testing.T) {
	merger := NewMerger(config.Render{PDFMerge: "pdfunite"}, &stubExecutor{}, nil)
	err := merger.Merge(context.Background(), filepath.Join(t.TempDir(), "x.pdf"))
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestUploadArguments(t *testing.T) {
	exec := &stubExecutor{}
	up := NewUploader(config.Upload{
		Rsync:       "rsync",
		Destination: "user@example.com:site/na",
		Excludes:    []string{".DS_Store", " ", ".nasum.lock"},
	}, exec, logging.NewNop())

	if err := up.Upload(context.Background(), "/srv/na/"); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	got := strings.Join(exec.commands[0].Args, " ")
	want := "-azrlv --exclude=.DS_Store --exclude=.nasum.lock -e ssh /srv/na/ user@example.com:site/na"
	if got != want {
		t.Fatalf("args = %q\nwant  %q", got, want)
	}
}

func TestUploadRequiresDestination(t *testing.T) {
	up := NewUploader(config.Upload{Rsync: "rsync"}, &stubExecutor{}, nil)
	if err := up.Upload(context.Background(), "na"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestCommitSequence(t *testing.T) {
	exec := &stubExecutor{}
	committer := NewCommitter(config.Git{Binary: "git", RepoDir: "/repo", Push: true}, exec, logging.NewNop())

	if err := committer.Commit(context.Background(), []string{"NASummaries.txt", "na"}, "Update summaries"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if len(exec.commands) != 3 {
		t.Fatalf("expected add, commit, push; got %d commands", len(exec.commands))
	}
	wants := []string{
		"git -C /repo add -- NASummaries.txt na",
		"git -C /repo commit -m Update summaries",
		"git -C /repo push",
	}
	for i, want := range wants {
		if got := exec.commands[i].String(); got != want {
			t.Fatalf("command %d = %q, want %q", i, got, want)
		}
	}
}

func TestCommitNothingToCommit(t *testing.T) {
	exec := &commitOnlyFailure{stubExecutor: &stubExecutor{}}
	committer := NewCommitter(config.Git{Binary: "git", RepoDir: "."}, exec, logging.NewNop())
	if err := committer.Commit(context.Background(), []string{"a"}, "msg"); err != nil {
		t.Fatalf("expected clean tree to succeed, got %v", err)
	}
	if len(exec.commands) != 2 {
		t.Fatalf("expected add and commit, got %d commands", len(exec.commands))
	}
}

func TestCommitFailureSurfaces(t *testing.T) {
	exec := &stubExecutor{err: errors.New("exit status 128")}
	committer := NewCommitter(config.Git{Binary: "git", RepoDir: "."}, exec, logging.NewNop())
	err := committer.Commit(context.Background(), []string{"a"}, "msg")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

type commitOnlyFailure struct {
	*stubExecutor
}

func (c *commitOnlyFailure) Run(ctx context.Context, cmd Command, onOutput func(string)) error {
	_ = c.stubExecutor.Run(ctx, cmd, onOutput)
	if len(cmd.Args) > 2 && cmd.Args[2] == "commit" {
		onOutput("nothing to commit, working tree clean")
		return errors.New("exit status 1")
	}
	return nil
}

func TestCommitSkipsEmptyPaths(t *testing.T) {
	exec := &stubExecutor{}
	committer := NewCommitter(config.Git{Binary: "git", RepoDir: "."}, exec, nil)
	if err := committer.Commit(context.Background(), nil, "msg"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if len(exec.commands) != 0 {
		t.Fatalf("expected no commands, got %v", exec.commands)
	}
}

func TestDryRunExecutorRecords(t *testing.T) {
	dry := &DryRunExecutor{Logger: logging.NewNop()}
	up := NewUploader(config.Upload{Rsync: "rsync", Destination: "host:dir"}, dry, nil)
	if err := up.Upload(context.Background(), "na"); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	cmds := dry.Commands()
	if len(cmds) != 1 || cmds[0].Binary != "rsync" {
		t.Fatalf("recorded = %+v", cmds)
	}
}

func TestCommandExecutorStreamsOutput(t *testing.T) {
	var lines []string
	err := CommandExecutor{}.Run(context.Background(), Command{
		Binary: "/bin/sh",
		Args:   []string{"-c", "echo out; echo err 1>&2"},
	}, func(line string) {
		lines = append(lines, line)
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	joined := strings.Join(lines, ",")
	if !strings.Contains(joined, "out") || !strings.Contains(joined, "err") {
		t.Fatalf("lines = %v", lines)
	}
}

func TestCommandExecutorIncludesOutputTail(t *testing.T) {
	err := CommandExecutor{}.Run(context.Background(), Command{
		Binary: "/bin/sh",
		Args:   []string{"-c", "echo '! Undefined control sequence.'; exit 1"},
	}, nil)
	if err == nil {
		t.Fatal("expected failure")
	}
	if !strings.Contains(err.Error(), "Undefined control sequence") {
		t.Fatalf("expected output tail in error, got %v", err)
	}
}

func TestCommandExecutorRunsInDir(t *testing.T) {
	dir := t.TempDir()
	err := CommandExecutor{}.Run(context.Background(), Command{
		Dir:    dir,
		Binary: "/bin/sh",
		Args:   []string{"-c", "touch marker"},
	}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "marker")); err != nil {
		t.Fatalf("expected marker in working dir: %v", err)
	}
}
