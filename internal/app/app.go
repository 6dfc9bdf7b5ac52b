// Package app resolves settings from config file, environment and flags into
// a ready-to-use runner.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cigate/internal/config"
	"cigate/internal/system"
	"cigate/internal/targets"
	"cigate/internal/tools"
)

// Overrides carries flag values; zero values leave the config untouched.
type Overrides struct {
	ConfigPath string
	Profile    string
	Timeout    time.Duration
	Python     string
}

// Session is the resolved environment of one invocation.
type Session struct {
	Root       string
	ConfigPath string // empty when running on defaults
	Config     config.Config
	Profile    tools.Profile
	Timeout    time.Duration
}

// Load resolves settings with precedence flags > CIGATE_* env > config file > defaults.
func Load(ctx context.Context, o Overrides) (Session, error) {
	s := Session{Root: config.ProjectRoot(ctx)}
	s.ConfigPath = strings.TrimSpace(o.ConfigPath)
	if s.ConfigPath == "" {
		s.ConfigPath = config.Find(s.Root)
	}
	cfg, err := config.Load(s.ConfigPath)
	if err != nil {
		return s, err
	}
	cfg.ApplyEnv()
	if strings.TrimSpace(o.Profile) != "" {
		cfg.Profile = o.Profile
	}
	if strings.TrimSpace(o.Python) != "" {
		cfg.Python = o.Python
	}
	if o.Timeout > 0 {
		cfg.Timeout = o.Timeout.String()
	}
	if err := cfg.Validate(); err != nil {
		return s, fmt.Errorf("invalid settings: %w", err)
	}
	s.Config = cfg
	s.Profile = cfg.ResolveProfile(s.Root)
	s.Timeout = cfg.TimeoutDuration()
	if s.ConfigPath != "" {
		system.Logger.Debug("loaded config", "path", s.ConfigPath)
	}
	system.Logger.Debug("settings", "root", s.Root, "profile", s.Profile, "timeout", s.Timeout)
	return s, nil
}

// Runner builds a runner for the session.
func (s Session) Runner(verbose bool) *tools.Runner {
	return &tools.Runner{
		Timeout: s.Timeout,
		Python:  s.Config.Python,
		Profile: s.Profile,
		Verbose: verbose,
		Logger:  system.Logger,
	}
}

// TargetPaths resolves requested paths against the configured defaults,
// warning about each path that does not exist.
func (s Session) TargetPaths(requested []string) []string {
	return targets.Resolve(requested, s.Config.Paths, func(p string) {
		system.Logger.Warn("Path not found", "path", p)
	})
}
