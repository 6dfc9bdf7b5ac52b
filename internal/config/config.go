package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"cigate/internal/tools"
)

// Config is the optional .cigate.yaml file. Every field may be omitted.
type Config struct {
	Profile string   `yaml:"profile,omitempty" json:"profile,omitempty" jsonschema:"enum=python,enum=rust,enum=auto,description=tool family to run; auto detects from pyproject.toml or Cargo.toml"`
	Paths   []string `yaml:"paths,omitempty" json:"paths,omitempty" jsonschema:"description=default target paths passed to path-aware tools"`
	Timeout string   `yaml:"timeout,omitempty" json:"timeout,omitempty" jsonschema:"description=per-tool timeout as a Go duration (5m) or seconds (300)"`
	Python  string   `yaml:"python,omitempty" json:"python,omitempty" jsonschema:"description=interpreter used to launch python-module tools"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Profile: string(tools.ProfileAuto),
		Paths:   append([]string(nil), tools.DefaultTargetDirs...),
		Timeout: tools.DefaultTimeout.String(),
		Python:  tools.DefaultPython,
	}
}

// Load reads path over the defaults. A missing file yields the defaults and
// no error.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	var file Config
	if err := yaml.Unmarshal(b, &file); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.merge(file)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) merge(o Config) {
	if s := strings.TrimSpace(o.Profile); s != "" {
		c.Profile = s
	}
	if len(o.Paths) > 0 {
		c.Paths = o.Paths
	}
	if s := strings.TrimSpace(o.Timeout); s != "" {
		c.Timeout = s
	}
	if s := strings.TrimSpace(o.Python); s != "" {
		c.Python = s
	}
}

// ApplyEnv overrides fields from CIGATE_PROFILE, CIGATE_TIMEOUT and CIGATE_PYTHON.
func (c *Config) ApplyEnv() {
	c.merge(Config{
		Profile: os.Getenv("CIGATE_PROFILE"),
		Timeout: os.Getenv("CIGATE_TIMEOUT"),
		Python:  os.Getenv("CIGATE_PYTHON"),
	})
}

// Validate checks profile and timeout syntax.
func (c Config) Validate() error {
	if _, ok := tools.ParseProfile(c.Profile); !ok {
		return fmt.Errorf("unknown profile %q (want python, rust or auto)", c.Profile)
	}
	if _, err := ParseTimeout(c.Timeout); err != nil {
		return err
	}
	return nil
}

// TimeoutDuration returns the parsed timeout, or the default when unset or
// invalid.
func (c Config) TimeoutDuration() time.Duration {
	d, err := ParseTimeout(c.Timeout)
	if err != nil || d <= 0 {
		return tools.DefaultTimeout
	}
	return d
}

// ParseTimeout accepts a Go duration ("90s", "5m") or whole seconds ("300").
func ParseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("invalid timeout %q", s)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid timeout %q", s)
	}
	return d, nil
}

// ResolveProfile turns "auto" into a concrete profile by looking at the
// project root: Cargo.toml alone selects rust, anything else python.
func (c Config) ResolveProfile(root string) tools.Profile {
	p, ok := tools.ParseProfile(c.Profile)
	if ok && p != tools.ProfileAuto {
		return p
	}
	return DetectProfile(root)
}

// DetectProfile guesses the tool family from marker files in root.
func DetectProfile(root string) tools.Profile {
	has := func(name string) bool {
		_, err := os.Stat(filepath.Join(root, name))
		return err == nil
	}
	python := has("pyproject.toml") || has("setup.py") || has("setup.cfg")
	if has("Cargo.toml") && !python {
		return tools.ProfileRust
	}
	return tools.ProfilePython
}

// Save writes cfg as YAML, creating parent directories.
func Save(path string, cfg Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
