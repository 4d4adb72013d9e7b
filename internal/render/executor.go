package render

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"

	"nasum/internal/logging"
	"nasum/internal/services"
)

// outputTailLines bounds how much tool output is kept for error messages.
const outputTailLines = 20

// Command describes one external program invocation.
type Command struct {
	Dir    string
	Binary string
	Args   []string
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Binary
	}
	return c.Binary + " " + strings.Join(c.Args, " ")
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, cmd Command, onOutput func(string)) error
}

// CommandExecutor runs commands as child processes.
type CommandExecutor struct{}

// Run starts the command and streams stdout and stderr lines to onOutput.
// On failure the returned error carries the last lines of output.
func (CommandExecutor) Run(ctx context.Context, command Command, onOutput func(string)) error {
	cmd := exec.CommandContext(ctx, command.Binary, command.Args...) //nolint:gosec
	cmd.Dir = command.Dir
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		tail    []string
		scanErr error
		once    sync.Once
	)

	forward := func(line string) {
		mu.Lock()
		defer mu.Unlock()
		tail = append(tail, line)
		if len(tail) > outputTailLines {
			tail = tail[len(tail)-outputTailLines:]
		}
		if onOutput != nil {
			onOutput(line)
		}
	}

	scan := func(r io.Reader) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			forward(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() {
				scanErr = err
			})
		}
	}

	wg.Add(2)
	go scan(stdout)
	go scan(stderr)

	wg.Wait()
	if scanErr != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return fmt.Errorf("scan output: %w", scanErr)
	}

	if err := cmd.Wait(); err != nil {
		if len(tail) > 0 {
			return fmt.Errorf("wait command: %w\n%s", err, strings.Join(tail, "\n"))
		}
		return fmt.Errorf("wait command: %w", err)
	}
	return nil
}

// DryRunExecutor logs and records commands instead of running them.
type DryRunExecutor struct {
	Logger *slog.Logger

	mu       sync.Mutex
	commands []Command
}

// Run records the command and reports success.
func (d *DryRunExecutor) Run(ctx context.Context, cmd Command, _ func(string)) error {
	d.mu.Lock()
	d.commands = append(d.commands, Command{Dir: cmd.Dir, Binary: cmd.Binary, Args: append([]string(nil), cmd.Args...)})
	d.mu.Unlock()
	if d.Logger != nil {
		logging.WithContext(ctx, d.Logger).Info("dry run: skipping command",
			logging.String("command", cmd.String()),
			logging.String("dir", cmd.Dir),
		)
	}
	return nil
}

// Commands returns the commands recorded so far.
func (d *DryRunExecutor) Commands() []Command {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Command(nil), d.commands...)
}

// runner bundles the pieces each collaborator needs to invoke its tool.
type runner struct {
	exec   Executor
	logger *slog.Logger
	stage  string
}

func newRunner(exec Executor, logger *slog.Logger, stage string) runner {
	if exec == nil {
		exec = CommandExecutor{}
	}
	return runner{
		exec:   exec,
		logger: logging.NewComponentLogger(logger, stage),
		stage:  stage,
	}
}

func (r runner) run(ctx context.Context, operation string, cmd Command) error {
	logger := logging.WithContext(ctx, r.logger)
	logger.Debug("running command", logging.String("command", cmd.String()))
	err := r.exec.Run(ctx, cmd, func(line string) {
		logger.Debug(line, logging.String("tool", cmd.Binary))
	})
	if err == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return services.Wrap(services.ErrTimeout, r.stage, operation, cmd.Binary+" exceeded its deadline", err)
	}
	return services.Wrap(services.ErrExternalTool, r.stage, operation, cmd.String(), err)
}
