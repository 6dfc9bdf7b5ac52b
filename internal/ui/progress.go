package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"cigate/internal/tools"
)

// ErrInterrupted is returned when the user quits the progress view early.
var ErrInterrupted = errors.New("run interrupted")

type toolDoneMsg struct{ res tools.ToolResult }

// progressModel drives a sequential run: the next tool is started only when
// the previous toolDoneMsg arrives.
type progressModel struct {
	ctx    context.Context
	runner *tools.Runner
	names  []string
	paths  []string
	fix    bool

	idx         int
	results     []tools.ToolResult
	spin        spinner.Model
	toolStart   time.Time
	interrupted bool
}

func newProgressModel(ctx context.Context, r *tools.Runner, names, paths []string, fix bool) progressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = AccentBold()
	return progressModel{
		ctx:       ctx,
		runner:    r,
		names:     names,
		paths:     paths,
		fix:       fix,
		spin:      sp,
		toolStart: time.Now(),
	}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.runCurrent())
}

func (m progressModel) runCurrent() tea.Cmd {
	if m.idx >= len(m.names) {
		return tea.Quit
	}
	ctx, r, name, paths, fix := m.ctx, m.runner, m.names[m.idx], m.paths, m.fix
	return func() tea.Msg {
		return toolDoneMsg{res: r.RunTool(ctx, name, paths, fix)}
	}
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.interrupted = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case toolDoneMsg:
		m.results = append(m.results, msg.res)
		m.idx++
		m.toolStart = time.Now()
		if m.idx >= len(m.names) {
			return m, tea.Quit
		}
		return m, m.runCurrent()
	}
	return m, nil
}

func (m progressModel) View() string {
	var b strings.Builder
	b.WriteString(AccentBold().Render("cigate") + MutedStyle().Render(fmt.Sprintf("  %d tool(s)", len(m.names))) + "\n\n")
	for i, name := range m.names {
		switch {
		case i < len(m.results):
			b.WriteString(ProgressLine(m.results[i]))
		case i == m.idx && !m.interrupted:
			elapsed := time.Since(m.toolStart).Truncate(time.Second)
			b.WriteString(fmt.Sprintf("  %s %s %s", m.spin.View(), name, MutedStyle().Render(elapsed.String())))
		default:
			b.WriteString(MutedStyle().Render("  · " + name))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RunProgress runs the selected tools under a live terminal view written to
// out. The returned report covers the tools that completed; quitting early
// cancels the running tool and yields ErrInterrupted.
func RunProgress(ctx context.Context, r *tools.Runner, out io.Writer, paths []string, fix bool, only ...string) (tools.Report, error) {
	known, unknown := r.Select(only...)
	names := make([]string, 0, len(known)+len(unknown))
	for _, c := range known {
		names = append(names, string(c.ID))
	}
	names = append(names, unknown...)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	final, err := tea.NewProgram(newProgressModel(ctx, r, names, paths, fix), tea.WithOutput(out)).Run()
	if err != nil {
		return tools.Report{}, err
	}
	m := final.(progressModel)
	rep := tools.Report{Results: m.results, Summary: tools.Summarize(m.results, time.Since(start))}
	if m.interrupted {
		return rep, ErrInterrupted
	}
	return rep, nil
}
