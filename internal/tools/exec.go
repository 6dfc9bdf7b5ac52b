package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"time"
)

var (
	ErrTimeout  = errors.New("command timed out")
	ErrNotFound = errors.New("tool not found")
	ErrEmptyCmd = errors.New("empty command")
)

// Outcome is what a finished subprocess left behind.
type Outcome struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Executor runs one command to completion.
type Executor interface {
	Exec(ctx context.Context, argv []string) (Outcome, error)
}

// ExecFunc adapts a function to Executor.
type ExecFunc func(ctx context.Context, argv []string) (Outcome, error)

func (f ExecFunc) Exec(ctx context.Context, argv []string) (Outcome, error) { return f(ctx, argv) }

// SystemExecutor runs commands as real child processes.
type SystemExecutor struct {
	Dir string   // working directory; empty means current
	Env []string // extra KEY=VALUE pairs appended to os.Environ()
}

// Exec starts argv and waits for it. A non-zero exit is not an error; the
// returned error is ErrNotFound, ErrTimeout, the context error, or a start
// failure.
func (e SystemExecutor) Exec(ctx context.Context, argv []string) (Outcome, error) {
	if len(argv) == 0 {
		return Outcome{}, ErrEmptyCmd
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %s", ErrNotFound, argv[0])
	}
	cmd := exec.CommandContext(ctx, path, argv[1:]...)
	cmd.Dir = e.Dir
	// Avoid pagers and colour codes in captured output
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	cmd.Env = append(cmd.Env, e.Env...)
	// grandchildren holding the pipes open must not block us past the kill
	cmd.WaitDelay = 5 * time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return Outcome{}, ErrTimeout
	}
	if ctx.Err() != nil {
		return Outcome{}, ctx.Err()
	}
	out := Outcome{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return out, nil
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		out.ExitCode = ee.ExitCode()
		if out.ExitCode < 0 {
			// terminated by a signal
			out.ExitCode = 1
		}
		return out, nil
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return Outcome{}, fmt.Errorf("%w: %s", ErrNotFound, argv[0])
	}
	return Outcome{}, err
}
