package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rohanvaze/brokerdesk/internal/api"
	"github.com/rohanvaze/brokerdesk/internal/cli/formatter"
	"github.com/rohanvaze/brokerdesk/internal/domain"
	"github.com/rohanvaze/brokerdesk/internal/metrics"
)

type analyticsLoadedMsg struct {
	series []domain.BrokerageMonth
	deals  []domain.Deal
	err    error
}

// analyticsView shows the monthly brokerage series and derived totals.
type analyticsView struct {
	state *SharedState

	loading bool
	err     error
	series  []domain.BrokerageMonth
	deals   []domain.Deal
}

func newAnalyticsView(state *SharedState) *analyticsView {
	return &analyticsView{state: state, loading: true}
}

func (v *analyticsView) ID() ViewID    { return ViewAnalytics }
func (v *analyticsView) Title() string { return "Brokerage" }

func (v *analyticsView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *analyticsView) Init() tea.Cmd {
	return v.load()
}

func (v *analyticsView) load() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		ctx := context.Background()
		series, err := app.Client.Deals().BrokerageAnalytics(ctx)
		if err != nil {
			return analyticsLoadedMsg{err: err}
		}
		deals, err := app.Client.Deals().List(ctx, api.DealFilters{})
		if err != nil {
			return analyticsLoadedMsg{err: err}
		}
		return analyticsLoadedMsg{series: series, deals: deals}
	}
}

func (v *analyticsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case analyticsLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.series = msg.series
		v.deals = msg.deals
		if errors.Is(msg.err, api.ErrUnauthorized) {
			return v, func() tea.Msg { return signedOutMsg{} }
		}
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case tea.KeyMsg:
		if msg.String() == "r" {
			v.loading = true
			return v, v.load()
		}
	}
	return v, nil
}

func (v *analyticsView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading brokerage analytics...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	summary := metrics.SummarizeBrokerage(v.series, v.deals)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(indent(formatter.FormatBrokerageSummary(summary, v.series)))
	return b.String()
}
