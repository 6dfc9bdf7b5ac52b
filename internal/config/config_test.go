package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tu "cigate/internal/testutil"
	"cigate/internal/tools"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Profile != "auto" || cfg.Python != "python3" || cfg.TimeoutDuration() != 300*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if strings.Join(cfg.Paths, ",") != "src,tests" {
		t.Fatalf("unexpected default paths: %v", cfg.Paths)
	}

	cfg, err = Load("")
	if err != nil || cfg.Profile != "auto" {
		t.Fatalf("empty path: %+v %v", cfg, err)
	}
}

func TestLoad_FileOverDefaults(t *testing.T) {
	root := tu.Project(t, map[string]string{
		".cigate.yaml": "profile: rust\npaths: [crates]\ntimeout: \"90\"\n",
	})
	cfg, err := Load(filepath.Join(root, ".cigate.yaml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Profile != "rust" || cfg.TimeoutDuration() != 90*time.Second {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.Paths) != 1 || cfg.Paths[0] != "crates" {
		t.Fatalf("unexpected paths: %v", cfg.Paths)
	}
	// unset keys keep defaults
	if cfg.Python != "python3" {
		t.Fatalf("python default lost: %q", cfg.Python)
	}
}

func TestLoad_Invalid(t *testing.T) {
	root := tu.Project(t, map[string]string{
		"bad.yaml":     "profile: [",
		"profile.yaml": "profile: go\n",
		"timeout.yaml": "timeout: soon\n",
	})
	for _, name := range []string{"bad.yaml", "profile.yaml", "timeout.yaml"} {
		if _, err := Load(filepath.Join(root, name)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	defer tu.WithEnv(t, "CIGATE_PROFILE", "rust")()
	defer tu.WithEnv(t, "CIGATE_TIMEOUT", "2m")()
	defer tu.WithEnv(t, "CIGATE_PYTHON", "")()

	cfg := Default()
	cfg.Python = "/opt/py"
	cfg.ApplyEnv()
	if cfg.Profile != "rust" || cfg.Timeout != "2m" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.Python != "/opt/py" {
		t.Fatalf("unset env var must not clear value, got %q", cfg.Python)
	}
}

func TestParseTimeout(t *testing.T) {
	ok := map[string]time.Duration{
		"":     0,
		"300":  300 * time.Second,
		" 5m ": 5 * time.Minute,
		"1.5s": 1500 * time.Millisecond,
		"0":    0,
	}
	for in, want := range ok {
		got, err := ParseTimeout(in)
		if err != nil || got != want {
			t.Fatalf("ParseTimeout(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	for _, in := range []string{"-1", "-5s", "abc", "5 minutes"} {
		if _, err := ParseTimeout(in); err == nil {
			t.Fatalf("ParseTimeout(%q): expected error", in)
		}
	}
	if d := (Config{Timeout: "0"}).TimeoutDuration(); d != tools.DefaultTimeout {
		t.Fatalf("zero timeout should fall back to default, got %v", d)
	}
}

func TestDetectProfile(t *testing.T) {
	cases := []struct {
		files map[string]string
		want  tools.Profile
	}{
		{map[string]string{"Cargo.toml": ""}, tools.ProfileRust},
		{map[string]string{"pyproject.toml": ""}, tools.ProfilePython},
		{map[string]string{"setup.cfg": "", "Cargo.toml": ""}, tools.ProfilePython},
		{map[string]string{"README": ""}, tools.ProfilePython},
	}
	for _, tc := range cases {
		root := tu.Project(t, tc.files)
		if got := DetectProfile(root); got != tc.want {
			t.Fatalf("DetectProfile(%v) = %s, want %s", tc.files, got, tc.want)
		}
	}

	root := tu.Project(t, map[string]string{"Cargo.toml": ""})
	if got := (Config{Profile: "python"}).ResolveProfile(root); got != tools.ProfilePython {
		t.Fatalf("explicit profile should win, got %s", got)
	}
	if got := (Config{Profile: "auto"}).ResolveProfile(root); got != tools.ProfileRust {
		t.Fatalf("auto should detect rust, got %s", got)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".cigate.yaml")
	want := Config{Profile: "rust", Paths: []string{"a", "b"}, Timeout: "45s", Python: "python3.12"}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got.Profile != want.Profile || got.Timeout != want.Timeout || got.Python != want.Python ||
		strings.Join(got.Paths, ",") != "a,b" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if err := Save(" ", want); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestFind(t *testing.T) {
	home := t.TempDir()
	defer tu.WithEnv(t, "XDG_CONFIG_HOME", home)()
	defer tu.WithEnv(t, "HOME", home)()

	root := tu.Project(t, map[string]string{"pyproject.toml": ""})
	if got := Find(root); got != "" {
		t.Fatalf("expected no config, got %q", got)
	}

	user, err := UserFile()
	if err != nil {
		t.Fatalf("UserFile error: %v", err)
	}
	if err := Save(user, Default()); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if got := Find(root); got != user {
		t.Fatalf("expected user file %q, got %q", user, got)
	}

	yml := filepath.Join(root, ".cigate.yml")
	if err := os.WriteFile(yml, []byte("profile: python\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := Find(root); got != yml {
		t.Fatalf("project file should win, got %q", got)
	}
}

func TestSchemas(t *testing.T) {
	b, err := MarshalSchema(ConfigSchema())
	if err != nil {
		t.Fatalf("marshal config schema: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("config schema is not JSON: %v", err)
	}
	props, _ := doc["properties"].(map[string]any)
	for _, k := range []string{"profile", "paths", "timeout", "python"} {
		if _, ok := props[k]; !ok {
			t.Fatalf("config schema lacks %q: %s", k, b)
		}
	}

	b, err = MarshalSchema(ReportSchema())
	if err != nil {
		t.Fatalf("marshal report schema: %v", err)
	}
	s := string(b)
	for _, k := range []string{`"summary"`, `"overall_status"`, `"additionalProperties"`, `"exit_code"`} {
		if !strings.Contains(s, k) {
			t.Fatalf("report schema lacks %s: %s", k, s)
		}
	}
}
