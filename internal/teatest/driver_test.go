package teatest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type echoMsg string

// recorder keeps every message it sees; "x" replies with an echo command.
type recorder struct {
	seen []string
}

func (r *recorder) Init() tea.Cmd { return nil }

func (r *recorder) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		r.seen = append(r.seen, "key:"+msg.String())
		switch msg.String() {
		case "x":
			return r, func() tea.Msg { return echoMsg("echo") }
		case "q":
			return r, tea.Quit
		}
	case tea.MouseMsg:
		r.seen = append(r.seen, "mouse:"+tea.MouseEvent(msg).String())
	case echoMsg:
		r.seen = append(r.seen, string(msg))
	}
	return r, nil
}

func (r *recorder) View() string { return "" }

func TestSendDrainsCommands(t *testing.T) {
	rec := &recorder{}
	d := New(t, rec)
	d.PressKey('x')
	assert.Equal(t, []string{"key:x", "echo"}, rec.seen)
}

func TestDispatchDefersDrain(t *testing.T) {
	rec := &recorder{}
	d := New(t, rec)
	cmd := d.Dispatch(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	d.PressKey('a')
	d.Drain(cmd)
	assert.Equal(t, []string{"key:x", "key:a", "echo"}, rec.seen)
}

func TestQuitStopsSending(t *testing.T) {
	rec := &recorder{}
	d := New(t, rec)
	d.PressKey('q')
	assert.True(t, d.Quitting)
	d.PressKey('a')
	assert.Equal(t, []string{"key:q"}, rec.seen)
}

func TestDragTo(t *testing.T) {
	rec := &recorder{}
	d := New(t, rec)
	d.DragTo(3, 5, 1)
	assert.Len(t, rec.seen, 4)
	assert.Contains(t, rec.seen[0], "press")
	assert.Contains(t, rec.seen[1], "motion")
	assert.Contains(t, rec.seen[3], "release")
}
