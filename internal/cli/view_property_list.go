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
	"github.com/rohanvaze/brokerdesk/internal/query"
	"github.com/rohanvaze/brokerdesk/internal/store"
)

type propertiesLoadedMsg struct {
	err error
}

// facetOptionsMsg carries the distinct area and type lists used by the
// facet cycles. Fetched once per TUI session into SharedState.
type facetOptionsMsg struct {
	areas []string
	types []string
	err   error
}

type propertyMutatedMsg struct {
	notice string
	err    error
}

// statusFacetCycle is the order the status filter steps through.
var propertyStatusCycle = []string{query.All, string(domain.ForSale), string(domain.ForRent)}

// propertyListView shows the broker's listing inventory backed by a
// collection store, with text search and facet filters applied on top.
type propertyListView struct {
	state *SharedState
	store *store.Store[domain.Property]

	cursor  int
	loading bool
	err     error

	filtering   bool
	search      string
	statusFacet int
	areaFacet   int
	typeFacet   int
}

func newPropertyListView(state *SharedState) *propertyListView {
	return &propertyListView{
		state:   state,
		store:   store.New(func(p domain.Property) string { return p.ID }),
		loading: true,
	}
}

func (v *propertyListView) ID() ViewID    { return ViewPropertyList }
func (v *propertyListView) Title() string { return "Properties" }
func (v *propertyListView) Close()        { v.store.Close() }

// Filtering reports whether the search input owns the keyboard.
func (v *propertyListView) Filtering() bool { return v.filtering }

func (v *propertyListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status filter")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "area filter")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "type filter")),
		key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "toggle hot")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	}
}

func (v *propertyListView) Init() tea.Cmd {
	return tea.Batch(v.load(), v.loadFacetOptions())
}

func (v *propertyListView) load() tea.Cmd {
	app := v.state.App
	st := v.store
	return func() tea.Msg {
		err := st.Load(context.Background(), func(ctx context.Context) ([]domain.Property, error) {
			return app.Client.Properties().List(ctx, api.PropertyFilters{})
		})
		return propertiesLoadedMsg{err: err}
	}
}

// loadFacetOptions fetches the distinct-value lists backing the area
// and type cycles. Skipped once SharedState already holds them.
func (v *propertyListView) loadFacetOptions() tea.Cmd {
	if len(v.state.Areas) > 0 || len(v.state.Types) > 0 {
		return nil
	}
	app := v.state.App
	return func() tea.Msg {
		areas, err := app.Client.Properties().Areas(context.Background())
		if err != nil {
			return facetOptionsMsg{err: err}
		}
		types, err := app.Client.Properties().Types(context.Background())
		if err != nil {
			return facetOptionsMsg{err: err}
		}
		return facetOptionsMsg{areas: areas, types: types}
	}
}

// areaCycle and typeCycle prepend the unconstrained option so index 0
// always means "no filter", even before the option lists arrive.
func (v *propertyListView) areaCycle() []string {
	return append([]string{query.All}, v.state.Areas...)
}

func (v *propertyListView) typeCycle() []string {
	return append([]string{query.All}, v.state.Types...)
}

func (v *propertyListView) visible() []domain.Property {
	facets := query.Facets{
		query.FacetStatus: propertyStatusCycle[v.statusFacet],
		query.FacetArea:   v.areaCycle()[v.areaFacet],
		query.FacetType:   v.typeCycle()[v.typeFacet],
	}
	return query.Filter(v.store.Items(), v.search, facets, query.Properties())
}

func (v *propertyListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case propertiesLoadedMsg:
		v.loading = false
		v.err = msg.err
		if errors.Is(msg.err, api.ErrUnauthorized) {
			return v, func() tea.Msg { return signedOutMsg{} }
		}
		return v, nil

	case facetOptionsMsg:
		// Best-effort: on error the cycles just stay at "all".
		if msg.err == nil {
			v.state.Areas = msg.areas
			v.state.Types = msg.types
		}
		return v, nil

	case propertyMutatedMsg:
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

func (v *propertyListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
		v.statusFacet = (v.statusFacet + 1) % len(propertyStatusCycle)
		v.cursor = 0
	case "a":
		v.areaFacet = (v.areaFacet + 1) % len(v.areaCycle())
		v.cursor = 0
	case "t":
		v.typeFacet = (v.typeFacet + 1) % len(v.typeCycle())
		v.cursor = 0
	case "h":
		if v.cursor < len(visible) {
			return v, v.toggleHot(visible[v.cursor].ID)
		}
	case "x":
		if v.cursor < len(visible) {
			return v, v.remove(visible[v.cursor])
		}
	case "n":
		return v, pushView(newPropertyFormView(v.state, nil))
	case "enter":
		if v.cursor < len(visible) {
			p := visible[v.cursor]
			return v, pushView(newPropertyFormView(v.state, &p))
		}
	case "r":
		v.loading = true
		return v, v.load()
	}
	return v, nil
}

func (v *propertyListView) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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

// toggleHot flips the flag server-side; the stored entity takes on
// whatever the server returns.
func (v *propertyListView) toggleHot(id string) tea.Cmd {
	app := v.state.App
	st := v.store
	return func() tea.Msg {
		updated, err := st.Toggle(context.Background(), id, func(ctx context.Context) (domain.Property, error) {
			p, err := app.Client.Properties().ToggleHot(ctx, id)
			if err != nil {
				return domain.Property{}, err
			}
			return *p, nil
		})
		if err != nil {
			return propertyMutatedMsg{err: err}
		}
		notice := "Marked hot: " + updated.Title
		if !updated.IsHot {
			notice = "Unmarked hot: " + updated.Title
		}
		return propertyMutatedMsg{notice: notice}
	}
}

func (v *propertyListView) remove(p domain.Property) tea.Cmd {
	app := v.state.App
	st := v.store
	return func() tea.Msg {
		err := st.Remove(context.Background(), p.ID, func(ctx context.Context) error {
			return app.Client.Properties().Remove(ctx, p.ID)
		})
		if err != nil {
			return propertyMutatedMsg{err: err}
		}
		return propertyMutatedMsg{notice: "Deleted: " + p.Title}
	}
}

func (v *propertyListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading properties...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	visible := v.visible()

	var b strings.Builder
	b.WriteString("\n")

	fmt.Fprintf(&b, "  %s %s  %s %s  %s %s   %s %s\n\n",
		formatter.Dim("status:"), formatter.StyleBlue.Render(propertyStatusCycle[v.statusFacet]),
		formatter.Dim("area:"), formatter.StyleBlue.Render(v.areaCycle()[v.areaFacet]),
		formatter.Dim("type:"), formatter.StyleBlue.Render(v.typeCycle()[v.typeFacet]),
		formatter.Dim(fmt.Sprintf("%d of %d", len(visible), v.store.Len())),
		formatter.Dim("shown"),
	)

	if v.filtering {
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.search + "█\n\n")
	} else if v.search != "" {
		b.WriteString("  " + formatter.Dim("search: "+v.search) + "\n\n")
	}

	if len(visible) == 0 {
		b.WriteString("  " + formatter.Dim("No properties match.") + "\n")
		return b.String()
	}

	for i, p := range visible {
		cursor := "  "
		titleStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			titleStyle = formatter.StyleBold
		}
		fmt.Fprintf(&b, "%s%s %s  %s  %s  %s\n",
			cursor,
			formatter.HotBadge(p.IsHot),
			titleStyle.Render(formatter.PadRight(p.Title, 26)),
			formatter.PadRight(p.Area, 12),
			formatter.Money(p.Price),
			formatter.PropertyStatusPill(p.Status),
		)
	}
	return b.String()
}
