package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rohanvaze/brokerdesk/internal/api"
	"github.com/rohanvaze/brokerdesk/internal/cli/formatter"
	"github.com/rohanvaze/brokerdesk/internal/domain"
)

// Each dashboard pane loads independently: stats, today's schedule and
// the unread badge each have their own message, so one failing request
// does not blank the rest of the screen.
type statsLoadedMsg struct {
	stats *api.Stats
	err   error
}

type todayLoadedMsg struct {
	events []domain.Event
	err    error
}

type unreadLoadedMsg struct {
	count int
	err   error
}

type recentPropertiesMsg struct {
	properties []domain.Property
	err        error
}

type recentCustomersMsg struct {
	customers []domain.Customer
	err       error
}

// dashboardView is the TUI home screen.
type dashboardView struct {
	state *SharedState

	stats        *api.Stats
	statsLoading bool
	statsErr     error

	today        []domain.Event
	todayLoading bool
	todayErr     error

	recentProps     []domain.Property
	recentCustomers []domain.Customer
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{
		state:        state,
		statsLoading: true,
		todayLoading: true,
	}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "" }

func (v *dashboardView) ShortHelp() []key.Binding {
	bindings := []key.Binding{}
	if v.state.Role() == domain.RoleBroker {
		bindings = append(bindings,
			key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "properties")),
			key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "customers")),
			key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "deals")),
		)
	} else {
		bindings = append(bindings,
			key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "projects")),
		)
	}
	bindings = append(bindings,
		key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "calendar")),
		key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "notifications")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	)
	return bindings
}

func (v *dashboardView) Init() tea.Cmd {
	cmds := []tea.Cmd{v.loadStats(), v.loadToday(), v.loadUnread()}
	if v.state.Role() == domain.RoleBroker {
		cmds = append(cmds, v.loadRecentProperties(), v.loadRecentCustomers())
	}
	return tea.Batch(cmds...)
}

func (v *dashboardView) loadStats() tea.Cmd {
	app := v.state.App
	role := v.state.Role()
	return func() tea.Msg {
		stats, err := app.Client.Dashboard().Stats(context.Background(), role)
		return statsLoadedMsg{stats: stats, err: err}
	}
}

func (v *dashboardView) loadToday() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		events, err := app.Client.Events().Today(context.Background())
		return todayLoadedMsg{events: events, err: err}
	}
}

func (v *dashboardView) loadUnread() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		count, err := app.Client.Notifications().UnreadCount(context.Background())
		return unreadLoadedMsg{count: count, err: err}
	}
}

func (v *dashboardView) loadRecentProperties() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		properties, err := app.Client.Properties().List(context.Background(), api.PropertyFilters{})
		return recentPropertiesMsg{properties: properties, err: err}
	}
}

func (v *dashboardView) loadRecentCustomers() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		customers, err := app.Client.Customers().List(context.Background(), api.CustomerFilters{})
		return recentCustomersMsg{customers: customers, err: err}
	}
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		v.statsLoading = false
		v.statsErr = msg.err
		v.stats = msg.stats
		if errors.Is(msg.err, api.ErrUnauthorized) {
			return v, func() tea.Msg { return signedOutMsg{} }
		}
		return v, nil

	case todayLoadedMsg:
		v.todayLoading = false
		v.todayErr = msg.err
		v.today = msg.events
		return v, nil

	case unreadLoadedMsg:
		if msg.err == nil {
			v.state.UnreadCount = msg.count
		}
		return v, nil

	// Recent panes are best-effort: on error they simply stay empty,
	// the stats and schedule panes carry the screen.
	case recentPropertiesMsg:
		if msg.err == nil {
			v.recentProps = msg.properties
		}
		return v, nil

	case recentCustomersMsg:
		if msg.err == nil {
			v.recentCustomers = msg.customers
		}
		return v, nil

	case refreshViewMsg:
		v.statsLoading = true
		v.todayLoading = true
		return v, v.Init()

	case tea.KeyMsg:
		if msg.String() == "r" {
			v.statsLoading = true
			v.todayLoading = true
			v.statsErr = nil
			v.todayErr = nil
			return v, v.Init()
		}
	}
	return v, nil
}

func (v *dashboardView) View() string {
	var b strings.Builder
	b.WriteString("\n")

	switch {
	case v.statsLoading:
		b.WriteString("  " + formatter.Dim("Loading stats...") + "\n")
	case v.statsErr != nil:
		b.WriteString("  " + formatter.StyleRed.Render("Stats unavailable: "+v.statsErr.Error()) + "\n")
	case v.stats != nil && v.stats.Broker != nil:
		b.WriteString(indent(formatter.FormatBrokerStats(v.stats.Broker)))
	case v.stats != nil && v.stats.Builder != nil:
		b.WriteString(indent(formatter.FormatBuilderStats(v.stats.Builder)))
	}

	b.WriteString("\n")
	b.WriteString(indent(formatter.Header("Today")) + "\n")
	switch {
	case v.todayLoading:
		b.WriteString("  " + formatter.Dim("Loading schedule...") + "\n")
	case v.todayErr != nil:
		b.WriteString("  " + formatter.StyleRed.Render("Schedule unavailable: "+v.todayErr.Error()) + "\n")
	case len(v.today) == 0:
		b.WriteString("  " + formatter.Dim("Nothing scheduled for today.") + "\n")
	default:
		for _, e := range v.today {
			fmt.Fprintf(&b, "  %s %s %s\n",
				formatter.StyleYellow.Render(e.Time),
				formatter.Bold(e.Title),
				formatter.Dim(e.Location),
			)
		}
	}

	if len(v.recentProps) > 0 {
		b.WriteString("\n")
		b.WriteString(indent(formatter.Header("Recent listings")) + "\n")
		for _, p := range firstN(v.recentProps, 5) {
			fmt.Fprintf(&b, "  %s %s %s\n",
				formatter.Bold(p.Title),
				formatter.Dim(p.Area),
				formatter.StyleGreen.Render(p.Price),
			)
		}
	}

	if len(v.recentCustomers) > 0 {
		b.WriteString("\n")
		b.WriteString(indent(formatter.Header("Recent customers")) + "\n")
		for _, c := range firstN(v.recentCustomers, 5) {
			fmt.Fprintf(&b, "  %s %s %s\n",
				formatter.Bold(c.Name),
				formatter.Dim(c.Phone),
				formatter.CustomerStatusPill(c.Status),
			)
		}
	}

	return b.String()
}

func firstN[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// indent prefixes every non-empty line with two spaces.
func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}
