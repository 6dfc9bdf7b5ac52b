package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"cigate/internal/system"
)

// FileNames are the project-level config files, checked in order.
var FileNames = []string{".cigate.yaml", ".cigate.yml"}

// Dir returns the cigate config directory under the user config base.
// On Linux, this typically resolves to $XDG_CONFIG_HOME/cigate; on macOS
// to ~/Library/Application Support/cigate; and on Windows to %AppData%/cigate.
// Falls back to HOME when UserConfigDir is unavailable.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		if home, herr := os.UserHomeDir(); herr == nil {
			base = home
		} else {
			return "", errors.New("cannot determine config directory")
		}
	}
	return filepath.Join(base, "cigate"), nil
}

// UserFile returns the user-level fallback config path.
func UserFile() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ProjectRoot returns the git top-level of the working directory, or the
// working directory itself outside a repository.
func ProjectRoot(ctx context.Context) string {
	cwd, _ := os.Getwd()
	if root, err := system.GitRoot(ctx, cwd); err == nil && strings.TrimSpace(root) != "" {
		return root
	}
	return cwd
}

// Find returns the first existing config file: the project file under root,
// then the user file. Empty string means none exists.
func Find(root string) string {
	for _, name := range FileNames {
		p := filepath.Join(root, name)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	if p, err := UserFile(); err == nil {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}
