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
	"github.com/rohanvaze/brokerdesk/internal/metrics"
	"github.com/rohanvaze/brokerdesk/internal/query"
	"github.com/rohanvaze/brokerdesk/internal/store"
)

type projectsLoadedMsg struct {
	err error
}

type projectMutatedMsg struct {
	notice string
	err    error
}

// projectListView is the builder's project roster. Enter expands a
// project in place to show its plots.
type projectListView struct {
	state *SharedState
	store *store.Store[domain.Project]

	cursor  int
	loading bool
	err     error

	filtering bool
	search    string

	// expandedID is the project whose plots are shown inline, empty
	// when collapsed.
	expandedID string
}

func newProjectListView(state *SharedState) *projectListView {
	return &projectListView{
		state:   state,
		store:   store.New(func(p domain.Project) string { return p.ID }),
		loading: true,
	}
}

func (v *projectListView) ID() ViewID      { return ViewProjectList }
func (v *projectListView) Title() string   { return "Projects" }
func (v *projectListView) Close()          { v.store.Close() }
func (v *projectListView) Filtering() bool { return v.filtering }

func (v *projectListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "plots")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "edit")),
	}
}

func (v *projectListView) Init() tea.Cmd {
	return v.load()
}

func (v *projectListView) load() tea.Cmd {
	app := v.state.App
	st := v.store
	return func() tea.Msg {
		err := st.Load(context.Background(), func(ctx context.Context) ([]domain.Project, error) {
			return app.Client.Projects().List(ctx, api.ProjectFilters{})
		})
		return projectsLoadedMsg{err: err}
	}
}

func (v *projectListView) visible() []domain.Project {
	return query.Filter(v.store.Items(), v.search, query.Facets{}, query.Projects())
}

func (v *projectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		v.loading = false
		v.err = msg.err
		if errors.Is(msg.err, api.ErrUnauthorized) {
			return v, func() tea.Msg { return signedOutMsg{} }
		}
		return v, nil

	case projectMutatedMsg:
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

func (v *projectListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
	case "enter":
		if v.cursor < len(visible) {
			id := visible[v.cursor].ID
			if v.expandedID == id {
				v.expandedID = ""
			} else {
				v.expandedID = id
			}
		}
	case "n":
		return v, pushView(newProjectFormView(v.state, nil))
	case "u":
		if v.cursor < len(visible) {
			p := visible[v.cursor]
			return v, pushView(newProjectFormView(v.state, &p))
		}
	case "a":
		if v.cursor < len(visible) {
			return v, pushView(newPlotFormView(v.state, visible[v.cursor]))
		}
	case "x":
		if v.cursor < len(visible) {
			return v, v.remove(visible[v.cursor])
		}
	case "r":
		v.loading = true
		return v, v.load()
	}
	return v, nil
}

func (v *projectListView) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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

func (v *projectListView) remove(p domain.Project) tea.Cmd {
	app := v.state.App
	st := v.store
	return func() tea.Msg {
		err := st.Remove(context.Background(), p.ID, func(ctx context.Context) error {
			return app.Client.Projects().Remove(ctx, p.ID)
		})
		if err != nil {
			return projectMutatedMsg{err: err}
		}
		return projectMutatedMsg{notice: "Deleted project: " + p.Name}
	}
}

func (v *projectListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading projects...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	visible := v.visible()

	var b strings.Builder
	b.WriteString("\n")

	if v.filtering {
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.search + "█\n\n")
	} else if v.search != "" {
		b.WriteString("  " + formatter.Dim("search: "+v.search) + "\n\n")
	}

	if len(visible) == 0 {
		b.WriteString("  " + formatter.Dim("No projects match.") + "\n")
		return b.String()
	}

	for i, p := range visible {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}
		sold := metrics.PercentageOfTotal(p.SoldPlots, p.TotalPlots)
		fmt.Fprintf(&b, "%s%s %s  %s\n",
			cursor,
			nameStyle.Render(formatter.PadRight(p.Name, 24)),
			formatter.PadRight(p.Area, 16),
			formatter.Dim(fmt.Sprintf("%d/%d plots sold (%.0f%%)", p.SoldPlots, p.TotalPlots, sold)),
		)
		if p.ID == v.expandedID {
			if len(p.Plots) == 0 {
				b.WriteString("      " + formatter.Dim("No plots recorded.") + "\n")
			} else {
				for _, line := range strings.Split(formatter.FormatPlots(p.Plots), "\n") {
					b.WriteString("      " + line + "\n")
				}
			}
		}
	}
	return b.String()
}
