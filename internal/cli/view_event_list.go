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

type eventsLoadedMsg struct {
	err error
}

type eventMutatedMsg struct {
	notice string
	err    error
}

// eventListView is the calendar screen: scheduled visits, calls and
// meetings ordered by the server.
type eventListView struct {
	state *SharedState
	store *store.Store[domain.Event]

	cursor  int
	loading bool
	err     error

	filtering bool
	search    string

	typeFacet int
}

var eventTypeCycle = []string{
	query.All,
	string(domain.EventVisit),
	string(domain.EventCall),
	string(domain.EventMeeting),
	string(domain.EventDocumentation),
	string(domain.EventRegistry),
}

func newEventListView(state *SharedState) *eventListView {
	return &eventListView{
		state:   state,
		store:   store.New(func(e domain.Event) string { return e.ID }),
		loading: true,
	}
}

func (v *eventListView) ID() ViewID      { return ViewEventList }
func (v *eventListView) Title() string   { return "Calendar" }
func (v *eventListView) Close()          { v.store.Close() }
func (v *eventListView) Filtering() bool { return v.filtering }

func (v *eventListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "type filter")),
		key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mark done")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	}
}

func (v *eventListView) Init() tea.Cmd {
	return v.load()
}

func (v *eventListView) load() tea.Cmd {
	app := v.state.App
	st := v.store
	return func() tea.Msg {
		err := st.Load(context.Background(), func(ctx context.Context) ([]domain.Event, error) {
			return app.Client.Events().List(ctx, api.EventFilters{})
		})
		return eventsLoadedMsg{err: err}
	}
}

func (v *eventListView) visible() []domain.Event {
	facets := query.Facets{query.FacetType: eventTypeCycle[v.typeFacet]}
	return query.Filter(v.store.Items(), v.search, facets, query.Events())
}

func (v *eventListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventsLoadedMsg:
		v.loading = false
		v.err = msg.err
		if errors.Is(msg.err, api.ErrUnauthorized) {
			return v, func() tea.Msg { return signedOutMsg{} }
		}
		return v, nil

	case eventMutatedMsg:
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

func (v *eventListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
	case "t":
		v.typeFacet = (v.typeFacet + 1) % len(eventTypeCycle)
		v.cursor = 0
	case "m":
		if v.cursor < len(visible) {
			return v, v.markCompleted(visible[v.cursor].ID)
		}
	case "x":
		if v.cursor < len(visible) {
			return v, v.remove(visible[v.cursor])
		}
	case "n":
		return v, pushView(newEventFormView(v.state, nil))
	case "enter":
		if v.cursor < len(visible) {
			e := visible[v.cursor]
			return v, pushView(newEventFormView(v.state, &e))
		}
	case "r":
		v.loading = true
		return v, v.load()
	}
	return v, nil
}

func (v *eventListView) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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

func (v *eventListView) markCompleted(id string) tea.Cmd {
	app := v.state.App
	st := v.store
	return func() tea.Msg {
		updated, err := st.ApplyUpdate(context.Background(), id, func(ctx context.Context) (domain.Event, error) {
			e, err := app.Client.Events().MarkCompleted(ctx, id)
			if err != nil {
				return domain.Event{}, err
			}
			return *e, nil
		})
		if err != nil {
			return eventMutatedMsg{err: err}
		}
		return eventMutatedMsg{notice: "Completed: " + updated.Title}
	}
}

func (v *eventListView) remove(e domain.Event) tea.Cmd {
	app := v.state.App
	st := v.store
	return func() tea.Msg {
		err := st.Remove(context.Background(), e.ID, func(ctx context.Context) error {
			return app.Client.Events().Remove(ctx, e.ID)
		})
		if err != nil {
			return eventMutatedMsg{err: err}
		}
		return eventMutatedMsg{notice: "Deleted: " + e.Title}
	}
}

func (v *eventListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading calendar...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	visible := v.visible()

	var b strings.Builder
	b.WriteString("\n")

	etype := eventTypeCycle[v.typeFacet]
	fmt.Fprintf(&b, "  %s %s\n\n", formatter.Dim("type:"), formatter.StyleBlue.Render(etype))

	if v.filtering {
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.search + "█\n\n")
	} else if v.search != "" {
		b.WriteString("  " + formatter.Dim("search: "+v.search) + "\n\n")
	}

	if len(visible) == 0 {
		b.WriteString("  " + formatter.Dim("No events match.") + "\n")
		return b.String()
	}

	for i, e := range visible {
		cursor := "  "
		titleStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			titleStyle = formatter.StyleBold
		}
		done := " "
		if e.Status == domain.EventCompleted {
			done = formatter.StyleGreen.Render("✓")
		} else if e.Status == domain.EventCancelled {
			done = formatter.StyleRed.Render("✗")
		}
		fmt.Fprintf(&b, "%s%s %s %s %s  %s\n",
			cursor,
			done,
			formatter.Dim(e.Date.Format("Mon 02 Jan")),
			formatter.PadRight(e.Time, 9),
			titleStyle.Render(formatter.PadRight(e.Title, 26)),
			formatter.Dim(string(e.Type)),
		)
	}
	return b.String()
}
