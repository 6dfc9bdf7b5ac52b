package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tu "cigate/internal/testutil"
)

func TestIgnored(t *testing.T) {
	for _, p := range []string{".git/index", "pkg/__pycache__/a.pyc", "target/debug/x", ".mypy_cache"} {
		assert.True(t, Ignored(p), p)
	}
	for _, p := range []string{"src/a.py", "tests/test_target.py", "src/gitlike/x"} {
		assert.False(t, Ignored(p), p)
	}

	w := &Watcher{Paths: []string{"/work/target/app"}}
	assert.False(t, w.ignored("/work/target/app/src/lib.rs"), "root below an ignored name")
	assert.True(t, w.ignored("/work/target/app/target/debug/x"))
}

func TestLoop_RerunsOnChange(t *testing.T) {
	root := tu.Project(t, map[string]string{
		"src/a.py":         "x = 1\n",
		"src/__pycache__/": "",
		"tests/test_a.py":  "",
	})
	var runs atomic.Int32
	w := &Watcher{
		Paths:    []string{filepath.Join(root, "src"), filepath.Join(root, "tests")},
		Debounce: 20 * time.Millisecond,
		Run:      func(context.Context) { runs.Add(1) },
		Ready:    make(chan struct{}),
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Loop(ctx) }()

	select {
	case <-w.Ready:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never became ready")
	}
	require.Equal(t, int32(1), runs.Load())

	// cache writes do not trigger
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "__pycache__", "a.pyc"), []byte("x"), 0o644))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())

	// a burst of writes coalesces into one run
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, "src", "a.py"), []byte("x = 2\n"), 0o644))
	}
	require.Eventually(t, func() bool { return runs.Load() == 2 }, 5*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(2), runs.Load())

	// new directories are picked up
	sub := filepath.Join(root, "tests", "unit")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.Eventually(t, func() bool { return runs.Load() == 3 }, 5*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "test_b.py"), []byte(""), 0o644))
	require.Eventually(t, func() bool { return runs.Load() == 4 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Loop did not stop")
	}
}
