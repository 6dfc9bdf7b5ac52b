package tools

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"
)

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestSystemExecutor_ExitCodeAndStreams(t *testing.T) {
	requireSh(t)
	out, err := SystemExecutor{}.Exec(context.Background(), []string{"sh", "-c", "echo out; echo err >&2; exit 3"})
	if err != nil {
		t.Fatalf("Exec error: %v", err)
	}
	if out.ExitCode != 3 {
		t.Fatalf("exit code = %d, want 3", out.ExitCode)
	}
	if out.Stdout != "out\n" || out.Stderr != "err\n" {
		t.Fatalf("unexpected streams: %q / %q", out.Stdout, out.Stderr)
	}
}

func TestSystemExecutor_Timeout(t *testing.T) {
	requireSh(t)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := SystemExecutor{}.Exec(ctx, []string{"sh", "-c", "exec sleep 10"})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatalf("timeout not enforced promptly: %v", time.Since(start))
	}
}

func TestSystemExecutor_NotFound(t *testing.T) {
	_, err := SystemExecutor{}.Exec(context.Background(), []string{"cigate-definitely-missing-binary"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := (SystemExecutor{}).Exec(context.Background(), nil); !errors.Is(err, ErrEmptyCmd) {
		t.Fatalf("expected ErrEmptyCmd, got %v", err)
	}
}

func TestSystemExecutor_Dir(t *testing.T) {
	requireSh(t)
	dir := t.TempDir()
	out, err := SystemExecutor{Dir: dir, Env: []string{"CIGATE_PROBE=1"}}.Exec(context.Background(),
		[]string{"sh", "-c", "echo $CIGATE_PROBE; echo $NO_COLOR"})
	if err != nil {
		t.Fatalf("Exec error: %v", err)
	}
	if out.Stdout != "1\n1\n" {
		t.Fatalf("unexpected env output: %q", out.Stdout)
	}
}

// End to end through the real executor: python tools launched through a
// stand-in interpreter.
func TestRunner_RealProcesses(t *testing.T) {
	requireSh(t)
	r := &Runner{Python: "sh", Timeout: 2 * time.Second}
	// `sh -m mypy` fails: sh treats mypy as a script path that does not exist
	res := r.RunTool(context.Background(), "mypy", nil, false)
	if !res.Available || res.ExitCode == 0 {
		t.Fatalf("expected an available, failing run, got %+v", res)
	}

	r = &Runner{Python: "cigate-definitely-missing-python"}
	res = r.RunTool(context.Background(), "mypy", nil, false)
	if res.Available || res.ExitCode != ExitNotFound {
		t.Fatalf("expected unavailable 127, got %+v", res)
	}
}
