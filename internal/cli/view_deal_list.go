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
	"github.com/rohanvaze/brokerdesk/internal/export"
	"github.com/rohanvaze/brokerdesk/internal/metrics"
	"github.com/rohanvaze/brokerdesk/internal/query"
	"github.com/rohanvaze/brokerdesk/internal/store"
)

type dealsLoadedMsg struct {
	err error
}

type dealMutatedMsg struct {
	notice string
	err    error
}

// dealListView shows the broker's deal pipeline with a summary strip.
type dealListView struct {
	state *SharedState
	store *store.Store[domain.Deal]

	cursor  int
	loading bool
	err     error

	filtering bool
	search    string

	statusFacet int
}

var dealStatusCycle = []string{
	query.All,
	string(domain.DealInterested),
	string(domain.DealCall),
	string(domain.DealVisitDone),
	string(domain.DealFollowUp),
	string(domain.DealAgreement),
	string(domain.DealRegistry),
	string(domain.DealBrokerageReceived),
	string(domain.DealClosed),
	string(domain.DealCancelled),
}

func newDealListView(state *SharedState) *dealListView {
	return &dealListView{
		state:   state,
		store:   store.New(func(d domain.Deal) string { return d.ID }),
		loading: true,
	}
}

func (v *dealListView) ID() ViewID      { return ViewDealList }
func (v *dealListView) Title() string   { return "Deals" }
func (v *dealListView) Close()          { v.store.Close() }
func (v *dealListView) Filtering() bool { return v.filtering }

func (v *dealListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status filter")),
		key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "brokerage")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
	}
}

func (v *dealListView) Init() tea.Cmd {
	return v.load()
}

func (v *dealListView) load() tea.Cmd {
	app := v.state.App
	st := v.store
	return func() tea.Msg {
		err := st.Load(context.Background(), func(ctx context.Context) ([]domain.Deal, error) {
			return app.Client.Deals().List(ctx, api.DealFilters{})
		})
		return dealsLoadedMsg{err: err}
	}
}

func (v *dealListView) visible() []domain.Deal {
	facets := query.Facets{query.FacetStatus: dealStatusCycle[v.statusFacet]}
	return query.Filter(v.store.Items(), v.search, facets, query.Deals())
}

func (v *dealListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dealsLoadedMsg:
		v.loading = false
		v.err = msg.err
		if errors.Is(msg.err, api.ErrUnauthorized) {
			return v, func() tea.Msg { return signedOutMsg{} }
		}
		return v, nil

	case dealMutatedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				return v, func() tea.Msg { return signedOutMsg{} }
			}
			return v, notifyErr(msg.err.Error())
		}
		return v, notify(msg.notice)

	case refreshViewMsg:
		return v, v.load()

	case tea.KeyMsg:
		if v.filtering {
			return v.updateFilter(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *dealListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := v.visible()

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(visible)-1 {
			v.cursor++
		}
	case "/":
		v.filtering = true
		v.search = ""
		v.cursor = 0
	case "s":
		v.statusFacet = (v.statusFacet + 1) % len(dealStatusCycle)
		v.cursor = 0
	case "b":
		return v, pushView(newAnalyticsView(v.state))
	case "x":
		if v.cursor < len(visible) {
			return v, v.remove(visible[v.cursor])
		}
	case "n":
		return v, pushView(newDealFormView(v.state, nil))
	case "enter":
		if v.cursor < len(visible) {
			d := visible[v.cursor]
			return v, pushView(newDealFormView(v.state, &d))
		}
	case "e":
		return v, v.exportCSV()
	case "r":
		v.loading = true
		return v, v.load()
	}
	return v, nil
}

func (v *dealListView) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.filtering = false
		v.search = ""
		v.cursor = 0
	case tea.KeyEnter:
		v.filtering = false
	case tea.KeyBackspace:
		if len(v.search) > 0 {
			v.search = v.search[:len(v.search)-1]
			v.cursor = 0
		}
	default:
		if len(msg.String()) == 1 {
			v.search += msg.String()
			v.cursor = 0
		}
	}
	return v, nil
}

func (v *dealListView) remove(d domain.Deal) tea.Cmd {
	app := v.state.App
	st := v.store
	return func() tea.Msg {
		err := st.Remove(context.Background(), d.ID, func(ctx context.Context) error {
			return app.Client.Deals().Remove(ctx, d.ID)
		})
		if err != nil {
			return dealMutatedMsg{err: err}
		}
		return dealMutatedMsg{notice: "Deleted deal: " + d.PropertyTitle}
	}
}

func (v *dealListView) exportCSV() tea.Cmd {
	app := v.state.App
	items := v.store.Items()
	return func() tea.Msg {
		f, err := export.Deals(items)
		if err != nil {
			return dealMutatedMsg{err: err}
		}
		path, err := f.Write(app.Config.ExportDir)
		if err != nil {
			return dealMutatedMsg{err: err}
		}
		return dealMutatedMsg{notice: "Exported " + path}
	}
}

func (v *dealListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading deals...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	visible := v.visible()

	var b strings.Builder
	b.WriteString("\n  " + formatter.FormatDealSummary(metrics.SummarizeDeals(v.store.Items())) + "\n")

	status := dealStatusCycle[v.statusFacet]
	fmt.Fprintf(&b, "  %s %s\n\n", formatter.Dim("status:"), formatter.StyleBlue.Render(status))

	if v.filtering {
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.search + "█\n\n")
	} else if v.search != "" {
		b.WriteString("  " + formatter.Dim("search: "+v.search) + "\n\n")
	}

	if len(visible) == 0 {
		b.WriteString("  " + formatter.Dim("No deals match.") + "\n")
		return b.String()
	}

	for i, d := range visible {
		cursor := "  "
		titleStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			titleStyle = formatter.StyleBold
		}
		fmt.Fprintf(&b, "%s%s %s  %s  %s\n",
			cursor,
			titleStyle.Render(formatter.PadRight(d.PropertyTitle, 24)),
			formatter.PadRight(d.CustomerName, 18),
			formatter.PadRight(d.DealValue, 12),
			formatter.DealStatusPill(d.Status),
		)
	}
	return b.String()
}
