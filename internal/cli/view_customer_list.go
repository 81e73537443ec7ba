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

type customersLoadedMsg struct {
	err error
}

type customerMutatedMsg struct {
	notice string
	err    error
}

// customerListView shows the broker's customer pipeline.
type customerListView struct {
	state *SharedState
	store *store.Store[domain.Customer]

	cursor  int
	loading bool
	err     error

	filtering bool
	search    string

	statusFacet int
}

var customerStatusCycle = []string{
	query.All,
	string(domain.CustomerInterested),
	string(domain.CustomerCall),
	string(domain.CustomerVisit),
	string(domain.CustomerVisitDone),
	string(domain.CustomerFollowUp),
	string(domain.CustomerClosed),
	string(domain.CustomerDealLost),
}

func newCustomerListView(state *SharedState) *customerListView {
	return &customerListView{
		state:   state,
		store:   store.New(func(c domain.Customer) string { return c.ID }),
		loading: true,
	}
}

func (v *customerListView) ID() ViewID      { return ViewCustomerList }
func (v *customerListView) Title() string   { return "Customers" }
func (v *customerListView) Close()          { v.store.Close() }
func (v *customerListView) Filtering() bool { return v.filtering }

func (v *customerListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status filter")),
		key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "star")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
	}
}

func (v *customerListView) Init() tea.Cmd {
	return v.load()
}

func (v *customerListView) load() tea.Cmd {
	app := v.state.App
	st := v.store
	return func() tea.Msg {
		err := st.Load(context.Background(), func(ctx context.Context) ([]domain.Customer, error) {
			return app.Client.Customers().List(ctx, api.CustomerFilters{})
		})
		return customersLoadedMsg{err: err}
	}
}

func (v *customerListView) visible() []domain.Customer {
	facets := query.Facets{query.FacetStatus: customerStatusCycle[v.statusFacet]}
	return query.Filter(v.store.Items(), v.search, facets, query.Customers())
}

func (v *customerListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case customersLoadedMsg:
		v.loading = false
		v.err = msg.err
		if errors.Is(msg.err, api.ErrUnauthorized) {
			return v, func() tea.Msg { return signedOutMsg{} }
		}
		return v, nil

	case customerMutatedMsg:
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

func (v *customerListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
		v.statusFacet = (v.statusFacet + 1) % len(customerStatusCycle)
		v.cursor = 0
	case "i":
		if v.cursor < len(visible) {
			return v, v.toggleImportant(visible[v.cursor].ID)
		}
	case "x":
		if v.cursor < len(visible) {
			return v, v.remove(visible[v.cursor])
		}
	case "n":
		return v, pushView(newCustomerFormView(v.state, nil))
	case "enter":
		if v.cursor < len(visible) {
			c := visible[v.cursor]
			return v, pushView(newCustomerFormView(v.state, &c))
		}
	case "e":
		return v, v.exportCSV()
	case "r":
		v.loading = true
		return v, v.load()
	}
	return v, nil
}

func (v *customerListView) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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

func (v *customerListView) toggleImportant(id string) tea.Cmd {
	app := v.state.App
	st := v.store
	return func() tea.Msg {
		updated, err := st.Toggle(context.Background(), id, func(ctx context.Context) (domain.Customer, error) {
			c, err := app.Client.Customers().ToggleImportant(ctx, id)
			if err != nil {
				return domain.Customer{}, err
			}
			return *c, nil
		})
		if err != nil {
			return customerMutatedMsg{err: err}
		}
		notice := "Starred: " + updated.Name
		if !updated.IsImportant {
			notice = "Unstarred: " + updated.Name
		}
		return customerMutatedMsg{notice: notice}
	}
}

func (v *customerListView) remove(c domain.Customer) tea.Cmd {
	app := v.state.App
	st := v.store
	return func() tea.Msg {
		err := st.Remove(context.Background(), c.ID, func(ctx context.Context) error {
			return app.Client.Customers().Remove(ctx, c.ID)
		})
		if err != nil {
			return customerMutatedMsg{err: err}
		}
		return customerMutatedMsg{notice: "Deleted: " + c.Name}
	}
}

func (v *customerListView) exportCSV() tea.Cmd {
	app := v.state.App
	items := v.store.Items()
	return func() tea.Msg {
		f, err := export.Customers(items)
		if err != nil {
			return customerMutatedMsg{err: err}
		}
		path, err := f.Write(app.Config.ExportDir)
		if err != nil {
			return customerMutatedMsg{err: err}
		}
		return customerMutatedMsg{notice: "Exported " + path}
	}
}

func (v *customerListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading customers...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	visible := v.visible()

	var b strings.Builder
	b.WriteString("\n  " + formatter.FormatCustomerSummary(metrics.SummarizeCustomers(v.store.Items())) + "\n")

	status := customerStatusCycle[v.statusFacet]
	fmt.Fprintf(&b, "  %s %s\n\n", formatter.Dim("status:"), formatter.StyleBlue.Render(status))

	if v.filtering {
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.search + "█\n\n")
	} else if v.search != "" {
		b.WriteString("  " + formatter.Dim("search: "+v.search) + "\n\n")
	}

	if len(visible) == 0 {
		b.WriteString("  " + formatter.Dim("No customers match.") + "\n")
		return b.String()
	}

	for i, c := range visible {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}
		fmt.Fprintf(&b, "%s%s %s %s  %s  %s\n",
			cursor,
			formatter.ImportantBadge(c.IsImportant),
			nameStyle.Render(formatter.PadRight(c.Name, 22)),
			formatter.PadRight(c.Phone, 12),
			formatter.PadRight(c.Budget, 14),
			formatter.CustomerStatusPill(c.Status),
		)
	}
	return b.String()
}
