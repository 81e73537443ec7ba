package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack. Popping
// happens through keys the appModel owns (esc) or dialogDoneMsg, so
// there is no pop counterpart.
type pushViewMsg struct {
	view View
}

// refreshViewMsg asks every view on the stack to reload its data after
// a mutation made above it (e.g. a form submit).
type refreshViewMsg struct{}

// noticeMsg carries a transient one-line notice shown above the active
// view (success confirmations, non-fatal errors).
type noticeMsg struct {
	text  string
	isErr bool
}

// signedOutMsg is sent when a request came back 401 and the session has
// been invalidated. The appModel tears the TUI down to the login hint.
type signedOutMsg struct{}

// dialogDoneMsg is sent when a form dialog finishes. The appModel pops
// the dialog view and then runs nextCmd (typically a refresh).
type dialogDoneMsg struct {
	nextCmd tea.Cmd
}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// notify returns a tea.Cmd that shows a transient notice.
func notify(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text} }
}

// notifyErr returns a tea.Cmd that shows a transient error notice.
func notifyErr(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text, isErr: true} }
}

// refreshAll returns a tea.Cmd that broadcasts a reload to the stack.
func refreshAll() tea.Cmd {
	return func() tea.Msg { return refreshViewMsg{} }
}
