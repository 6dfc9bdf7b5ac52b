package settings

import (
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"cigate/internal/config"
	"cigate/internal/tools"
)

// skipDirs never make sense as lint targets.
var skipDirs = map[string]bool{
	".git": true, ".venv": true, "venv": true, "node_modules": true, "target": true,
	"__pycache__": true, ".mypy_cache": true, ".ruff_cache": true, ".pytest_cache": true,
	"build": true, "dist": true,
}

// Candidates lists top-level directories of root usable as target paths,
// plus any currently configured path, sorted.
func Candidates(root string, current []string) []string {
	set := map[string]bool{}
	for _, p := range current {
		if s := strings.TrimSpace(p); s != "" {
			set[s] = true
		}
	}
	entries, _ := os.ReadDir(root)
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || skipDirs[name] || strings.HasPrefix(name, ".") {
			continue
		}
		set[name] = true
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Run launches an interactive form prefilled from cur and returns the edited
// settings. The caller decides where to save them.
func Run(root string, cur config.Config) (config.Config, error) {
	next := cur
	profile := cur.Profile
	if profile == "" {
		profile = string(tools.ProfileAuto)
	}
	selected := slices.Clone(cur.Paths)
	timeout := cur.Timeout
	python := cur.Python

	green := lipgloss.Color("#03BF87")
	theme := huh.ThemeCharm()
	theme.FieldSeparator = lipgloss.NewStyle()
	theme.Blurred.Title = theme.Blurred.Title.Width(18).Foreground(lipgloss.Color("7"))
	theme.Focused.Title = theme.Focused.Title.Width(18).Foreground(green).Bold(true)
	theme.Blurred.SelectedOption = theme.Blurred.SelectedOption.Foreground(lipgloss.Color("243"))
	theme.Focused.SelectedOption = lipgloss.NewStyle().Foreground(green)
	theme.Focused.Base.BorderForeground(green)

	candidates := Candidates(root, cur.Paths)
	opts := make([]huh.Option[string], 0, len(candidates))
	for _, c := range candidates {
		opts = append(opts, huh.NewOption(c, c).Selected(slices.Contains(selected, c)))
	}
	height := min(max(len(opts), 3), 12)

	detected := config.DetectProfile(root)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("cigate").Description("Settings are written to .cigate.yaml in "+root),
			huh.NewSelect[string]().
				Title("Profile").
				Description("auto detects "+string(detected)+" here").
				Options(huh.NewOptions(string(tools.ProfileAuto), string(tools.ProfilePython), string(tools.ProfileRust))...).
				Value(&profile),
			huh.NewMultiSelect[string]().
				Title("Target paths").
				Options(opts...).
				Height(height).
				Value(&selected),
			huh.NewInput().
				Title("Timeout").
				Placeholder(tools.DefaultTimeout.String()).
				Validate(func(s string) error {
					_, err := config.ParseTimeout(s)
					return err
				}).
				Value(&timeout),
			huh.NewInput().
				Title("Python").
				Placeholder(tools.DefaultPython).
				Value(&python),
		),
	).WithTheme(theme).WithWidth(64)

	if err := form.Run(); err != nil {
		return cur, err // form canceled or failed
	}
	next.Profile = profile
	next.Paths = selected
	next.Timeout = strings.TrimSpace(timeout)
	next.Python = strings.TrimSpace(python)
	return next, nil
}

// DefaultFile returns the project config path written by `cigate init`.
func DefaultFile(root string) string {
	return filepath.Join(root, config.FileNames[0])
}
