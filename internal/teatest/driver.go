// Package teatest drives a tea.Model synchronously in tests: no
// tea.Program, no goroutines feeding a channel, just Update calls and
// an explicit queue of pending messages. Cmds returned by Update are
// executed inline, so request/response flows (including loopback HTTP
// against a test server) settle before the next assertion runs.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// pumpBudget bounds how many messages one Send is allowed to produce.
// A model that keeps emitting Cmds past this is looping.
const pumpBudget = 100

// cmdWait is how long a single Cmd may run before the driver gives up
// on it. Loopback HTTP and message factories finish well inside this;
// cursor blink timers park for ~530ms and are deliberately abandoned.
const cmdWait = 100 * time.Millisecond

// Driver steps a tea.Model through messages synchronously.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting flips when a tea.QuitMsg surfaces. The real runtime
	// swallows QuitMsg before the model sees it, so the driver tracks
	// it here instead of expecting the model to.
	Quitting bool
}

// Option configures a Driver at construction.
type Option func(*Driver)

// WithSize delivers an initial window size before anything else runs.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs the model's Init command chain to completion.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.pump([]tea.Cmd{d.Model.Init()})
}

// Send delivers one message and settles everything it triggers.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	model, cmd := d.Model.Update(msg)
	d.Model = model
	d.pump([]tea.Cmd{cmd})
}

// PressKey sends a single character key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressEnter() { d.Send(tea.KeyMsg{Type: tea.KeyEnter}) }
func (d *Driver) PressEsc()   { d.Send(tea.KeyMsg{Type: tea.KeyEsc}) }
func (d *Driver) PressCtrlC() { d.Send(tea.KeyMsg{Type: tea.KeyCtrlC}) }
func (d *Driver) PressUp()    { d.Send(tea.KeyMsg{Type: tea.KeyUp}) }
func (d *Driver) PressDown()  { d.Send(tea.KeyMsg{Type: tea.KeyDown}) }

// Type sends a string one key at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

// View renders the model as it stands.
func (d *Driver) View() string {
	return d.Model.View()
}

// pump works through a queue of pending Cmds until it is empty or the
// budget runs out. Batches are flattened onto the queue in order, so
// independently-loading panes resolve in their declared order rather
// than racing.
func (d *Driver) pump(queue []tea.Cmd) {
	d.T.Helper()
	for steps := 0; len(queue) > 0; steps++ {
		if steps >= pumpBudget {
			d.T.Logf("teatest: message budget (%d) exhausted, model may be looping", pumpBudget)
			return
		}

		cmd := queue[0]
		queue = queue[1:]
		if cmd == nil {
			continue
		}

		msg := runCmd(cmd)
		switch msg := msg.(type) {
		case nil:
			// Timed out or produced nothing.
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			d.Quitting = true
			d.Model, _ = d.Model.Update(msg)
			return
		default:
			if blinkMsg(msg) {
				continue
			}
			model, next := d.Model.Update(msg)
			d.Model = model
			queue = append(queue, next)
		}
	}
}

// runCmd executes a Cmd, abandoning it if it does not return promptly.
func runCmd(cmd tea.Cmd) tea.Msg {
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(cmdWait):
		return nil
	}
}

// blinkMsg matches the unexported cursor blink messages from
// bubbles/cursor, which chain into parked timer Cmds if dispatched.
func blinkMsg(msg tea.Msg) bool {
	return strings.Contains(fmt.Sprintf("%T", msg), "link")
}
