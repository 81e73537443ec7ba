package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rohanvaze/brokerdesk/internal/cli/formatter"
	"github.com/rohanvaze/brokerdesk/internal/domain"
)

// appModel is the root bubbletea Model for the TUI.
// It manages a view stack, a transient notice line, and global keys.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool
	signedOut bool

	// Transient one-line notice shown above the active view.
	notice    string
	noticeErr bool
}

func newAppModel(app *App) appModel {
	state := &SharedState{App: app}
	m := appModel{state: state}

	// Start with the dashboard as the home view.
	m.viewStack = []View{newDashboardView(state)}
	return m
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		if v := m.activeView(); v != nil {
			updated, cmd := v.Update(msg)
			m.setActiveView(updated.(View))
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.notice = ""
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case refreshViewMsg:
		// Broadcast so views below a dismissed dialog reload their data.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case noticeMsg:
		m.notice = msg.text
		m.noticeErr = msg.isErr
		return m, nil

	case dialogDoneMsg:
		if len(m.viewStack) > 1 {
			closeView(m.viewStack[len(m.viewStack)-1])
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, tea.Batch(msg.nextCmd, refreshAll())

	case signedOutMsg:
		m.signedOut = true
		m.quitting = true
		return m, tea.Quit
	}

	// Forward everything else to the active view.
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// Views with their own text input receive all keys, including 'q'.
	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		if len(m.viewStack) > 1 {
			closeView(m.viewStack[len(m.viewStack)-1])
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
			m.notice = ""
			return m, nil
		}
		return m, nil

	case "g":
		return m.jumpTo(ViewDashboard, func() View { return newDashboardView(m.state) })
	case "p":
		if m.state.Role() == domain.RoleBroker {
			return m.jumpTo(ViewPropertyList, func() View { return newPropertyListView(m.state) })
		}
		return m.jumpTo(ViewProjectList, func() View { return newProjectListView(m.state) })
	case "c":
		if m.state.Role() == domain.RoleBroker {
			return m.jumpTo(ViewCustomerList, func() View { return newCustomerListView(m.state) })
		}
	case "d":
		if m.state.Role() == domain.RoleBroker {
			return m.jumpTo(ViewDealList, func() View { return newDealListView(m.state) })
		}
	case "v":
		return m.jumpTo(ViewEventList, func() View { return newEventListView(m.state) })
	case "N":
		return m.jumpTo(ViewNotificationList, func() View { return newNotificationListView(m.state) })
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

// jumpTo resets the stack to the dashboard plus the requested screen.
// Jumping to the screen already on top is a no-op.
func (m appModel) jumpTo(id ViewID, build func() View) (tea.Model, tea.Cmd) {
	if v := m.activeView(); v != nil && v.ID() == id {
		return m, nil
	}
	m.notice = ""
	for _, v := range m.viewStack {
		closeView(v)
	}
	if id == ViewDashboard {
		m.viewStack = []View{build()}
	} else {
		m.viewStack = []View{newDashboardView(m.state), build()}
	}
	return m, m.activeView().Init()
}

func (m appModel) View() string {
	if m.quitting {
		if m.signedOut {
			return "Session expired. Run: brokerdesk login\n"
		}
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if m.notice != "" {
		style := formatter.StyleGreen
		if m.noticeErr {
			style = formatter.StyleRed
		}
		sections = append(sections, "  "+style.Render(m.notice))
	}

	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}

	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}
	return result
}

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("brokerdesk")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	breadcrumb := ""
	if len(crumbs) > 0 {
		breadcrumb = " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	header := title + breadcrumb

	if name := m.state.UserName(); name != "" {
		who := formatter.StyleGreen.Render(name) + " " + formatter.Dim(string(m.state.Role()))
		header += "  " + formatter.Dim("[") + who + formatter.Dim("]")
	}
	if m.state.UnreadCount > 0 {
		header += "  " + formatter.StyleYellow.Render(fmt.Sprintf("🔔%d", m.state.UnreadCount))
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}
	if len(m.viewStack) > 1 {
		hints = append(hints, formatter.Dim("esc: back"))
	}
	hints = append(hints, formatter.Dim("q: quit"))

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + strings.Join(hints, "  ")
}

// closeView releases resources owned by a view leaving the stack, so a
// request still in flight cannot write into a no-longer-displayed store.
func closeView(v View) {
	if c, ok := v.(interface{ Close() }); ok {
		c.Close()
	}
}

// viewCapturesInput reports whether the active view owns a text input
// and should receive all key events, bypassing global shortcuts.
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	if v.ID() == ViewForm {
		return true
	}
	if lf, ok := v.(interface{ Filtering() bool }); ok {
		return lf.Filtering()
	}
	return false
}
