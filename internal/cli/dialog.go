package cli

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rohanvaze/brokerdesk/internal/api"
	"github.com/rohanvaze/brokerdesk/internal/cli/formatter"
)

// dialogPhase tracks the lifecycle of an open form dialog. The dialog
// exists only while on the view stack, so "closed" is represented by
// the view being popped.
type dialogPhase int

const (
	dialogOpen dialogPhase = iota
	dialogSubmitting
	dialogError
)

// submitResultMsg carries the outcome of a dialog submit.
type submitResultMsg struct {
	notice string
	err    error
}

// dialogView wraps a huh.Form as a modal on the navigation stack.
// Submit failures keep the dialog open with the entered values intact;
// Esc cancels and discards them.
type dialogView struct {
	state    *SharedState
	titleStr string

	// buildForm rebuilds the form over the same bound values, so a
	// failed submit can be retried without losing input.
	buildForm func() *huh.Form
	submit    func() (string, error)

	form   *huh.Form
	phase  dialogPhase
	errMsg string
}

func newDialogView(state *SharedState, title string, buildForm func() *huh.Form, submit func() (string, error)) *dialogView {
	return &dialogView{
		state:     state,
		titleStr:  title,
		buildForm: buildForm,
		submit:    submit,
		form:      buildForm(),
	}
}

func (v *dialogView) ID() ViewID    { return ViewForm }
func (v *dialogView) Title() string { return v.titleStr }

func (v *dialogView) ShortHelp() []key.Binding {
	switch v.phase {
	case dialogError:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit and retry")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "discard")),
		}
	case dialogSubmitting:
		return nil
	default:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
}

func (v *dialogView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *dialogView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				return v, func() tea.Msg { return signedOutMsg{} }
			}
			// Failed submit: back to an editable form with the same
			// values and the error pinned above it.
			v.phase = dialogError
			v.errMsg = msg.err.Error()
			v.form = v.buildForm()
			return v, nil
		}
		notice := msg.notice
		return v, func() tea.Msg {
			return dialogDoneMsg{nextCmd: notify(notice)}
		}

	case tea.KeyMsg:
		switch v.phase {
		case dialogSubmitting:
			// Submit already in flight; swallow input.
			return v, nil
		case dialogError:
			if msg.Type == tea.KeyEsc {
				return v, func() tea.Msg { return dialogDoneMsg{} }
			}
			v.phase = dialogOpen
			v.errMsg = ""
			return v, v.form.Init()
		default:
			if msg.Type == tea.KeyEsc {
				return v, func() tea.Msg { return dialogDoneMsg{} }
			}
		}
	}

	if v.phase != dialogOpen {
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		v.phase = dialogSubmitting
		submit := v.submit
		return v, tea.Batch(cmd, func() tea.Msg {
			notice, err := submit()
			return submitResultMsg{notice: notice, err: err}
		})
	}
	return v, cmd
}

func (v *dialogView) View() string {
	switch v.phase {
	case dialogSubmitting:
		return "\n  " + formatter.Dim("Saving...")
	case dialogError:
		return "\n  " + formatter.StyleRed.Render("✗ "+v.errMsg) + "\n\n  " +
			formatter.Dim("press any key to edit, esc to discard")
	default:
		header := ""
		if v.errMsg != "" {
			header = "  " + formatter.StyleRed.Render("✗ "+v.errMsg) + "\n"
		}
		return header + v.form.View()
	}
}

// brokerdeskHuhTheme returns a custom huh theme using the Gruvbox palette.
func brokerdeskHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}
