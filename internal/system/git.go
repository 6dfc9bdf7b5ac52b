package system

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

type GitInfo struct {
	InRepo   bool
	Branch   string
	ShortSHA string
	Dirty    bool
}

// gitTimeout keeps repository probes from stalling a CI run.
const gitTimeout = 800 * time.Millisecond

func git(ctx context.Context, dir string, args ...string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, gitTimeout)
	defer cancel()
	out, err := exec.CommandContext(cctx, "git", append([]string{"-C", dir}, args...)...).CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

// GetGitInfo inspects the Git repository at dir. Missing git or a directory
// outside a work tree yields a zero GitInfo and no error.
func GetGitInfo(ctx context.Context, dir string) (GitInfo, error) {
	gi := GitInfo{}
	if _, err := exec.LookPath("git"); err != nil {
		return gi, nil
	}
	if out, err := git(ctx, dir, "rev-parse", "--is-inside-work-tree"); err != nil || out != "true" {
		return gi, nil
	}
	gi.InRepo = true

	if out, err := git(ctx, dir, "symbolic-ref", "--quiet", "--short", "HEAD"); err == nil {
		gi.Branch = out
	} else if out, err := git(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD"); err == nil {
		// detached head
		gi.Branch = out
	}
	if out, err := git(ctx, dir, "rev-parse", "--short", "HEAD"); err == nil {
		gi.ShortSHA = out
	}
	if out, err := git(ctx, dir, "status", "--porcelain"); err == nil {
		gi.Dirty = out != ""
	}
	return gi, nil
}

// GitRoot returns the repository top-level directory for dir, if in a Git repo.
func GitRoot(ctx context.Context, dir string) (string, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return "", err
	}
	return git(ctx, dir, "rev-parse", "--show-toplevel")
}
