package cli

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressModel_WorkDoneQuits(t *testing.T) {
	m := newProgressModel[string]("Working", nil)

	updated, cmd := m.Update(workDoneMsg[string]{result: "plan"})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	pm := updated.(progressModel[string])
	assert.True(t, pm.done)
	assert.Equal(t, "plan", pm.result)
	assert.NoError(t, pm.err)
	assert.Empty(t, pm.View())
}

func TestProgressModel_WorkErrorIsKept(t *testing.T) {
	m := newProgressModel[int]("Working", nil)
	boom := errors.New("boom")

	updated, _ := m.Update(workDoneMsg[int]{err: boom})
	assert.ErrorIs(t, updated.(progressModel[int]).err, boom)
}

func TestProgressModel_EscCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := newProgressModel[string]("Working", cancel)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	pm := updated.(progressModel[string])
	assert.True(t, pm.canceled)
	assert.ErrorIs(t, pm.err, context.Canceled)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestProgressModel_OtherKeysIgnored(t *testing.T) {
	m := newProgressModel[string]("Working", nil)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Nil(t, cmd)
	pm := updated.(progressModel[string])
	assert.False(t, pm.canceled)
	assert.Contains(t, pm.View(), "Working")
}
