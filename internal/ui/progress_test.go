package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cigate/internal/tools"
)

func TestProgressModel_Sequential(t *testing.T) {
	var calls []string
	r := &tools.Runner{Exec: tools.ExecFunc(func(ctx context.Context, argv []string) (tools.Outcome, error) {
		calls = append(calls, strings.Join(argv, " "))
		return tools.Outcome{}, nil
	})}
	m := newProgressModel(context.Background(), r, []string{"ruff-lint", "mypy"}, []string{"src"}, false)
	assert.Contains(t, m.View(), "ruff-lint")

	// execute the pending command by hand, as the program would
	msg := m.runCurrent()()
	next, cmd := m.Update(msg)
	m = next.(progressModel)
	require.NotNil(t, cmd)
	assert.Equal(t, []string{"python3 -m ruff check src"}, calls)
	assert.Contains(t, m.View(), "ruff-lint: OK")
	assert.Contains(t, m.View(), "mypy")

	next, cmd = m.Update(cmd())
	m = next.(progressModel)
	assert.Len(t, m.results, 2)
	assert.Len(t, calls, 2)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestProgressModel_Interrupt(t *testing.T) {
	m := newProgressModel(context.Background(), &tools.Runner{}, []string{"pytest"}, nil, false)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(progressModel)
	assert.True(t, m.interrupted)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, m.View(), "· pytest")
}
