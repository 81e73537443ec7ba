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
	"github.com/rohanvaze/brokerdesk/internal/store"
)

type notificationsLoadedMsg struct {
	err error
}

type notificationMutatedMsg struct {
	notice string
	err    error
}

type notificationListView struct {
	state *SharedState
	store *store.Store[domain.Notification]

	cursor  int
	loading bool
	err     error
}

func newNotificationListView(state *SharedState) *notificationListView {
	return &notificationListView{
		state:   state,
		store:   store.New(func(n domain.Notification) string { return n.ID }),
		loading: true,
	}
}

func (v *notificationListView) ID() ViewID    { return ViewNotificationList }
func (v *notificationListView) Title() string { return "Notifications" }
func (v *notificationListView) Close()        { v.store.Close() }

func (v *notificationListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "mark read")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "mark all read")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	}
}

func (v *notificationListView) Init() tea.Cmd {
	return v.load()
}

func (v *notificationListView) load() tea.Cmd {
	app := v.state.App
	st := v.store
	return func() tea.Msg {
		err := st.Load(context.Background(), func(ctx context.Context) ([]domain.Notification, error) {
			return app.Client.Notifications().List(ctx)
		})
		return notificationsLoadedMsg{err: err}
	}
}

func (v *notificationListView) unread() int {
	n := 0
	for _, item := range v.store.Items() {
		if !item.IsRead {
			n++
		}
	}
	return n
}

func (v *notificationListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case notificationsLoadedMsg:
		v.loading = false
		v.err = msg.err
		if errors.Is(msg.err, api.ErrUnauthorized) {
			return v, func() tea.Msg { return signedOutMsg{} }
		}
		v.state.UnreadCount = v.unread()
		return v, nil

	case notificationMutatedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				return v, func() tea.Msg { return signedOutMsg{} }
			}
			return v, notifyErr(msg.err.Error())
		}
		v.state.UnreadCount = v.unread()
		if msg.notice == "" {
			return v, nil
		}
		return v, notify(msg.notice)

	case refreshViewMsg:
		return v, v.load()

	case tea.KeyMsg:
		items := v.store.Items()
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(items)-1 {
				v.cursor++
			}
		case "enter":
			if v.cursor < len(items) && !items[v.cursor].IsRead {
				return v, v.markRead(items[v.cursor].ID)
			}
		case "a":
			return v, v.markAllRead()
		case "x":
			if v.cursor < len(items) {
				return v, v.remove(items[v.cursor])
			}
		case "r":
			v.loading = true
			return v, v.load()
		}
	}
	return v, nil
}

func (v *notificationListView) markRead(id string) tea.Cmd {
	app := v.state.App
	st := v.store
	return func() tea.Msg {
		_, err := st.ApplyUpdate(context.Background(), id, func(ctx context.Context) (domain.Notification, error) {
			n, err := app.Client.Notifications().MarkRead(ctx, id)
			if err != nil {
				return domain.Notification{}, err
			}
			return *n, nil
		})
		return notificationMutatedMsg{err: err}
	}
}

func (v *notificationListView) markAllRead() tea.Cmd {
	app := v.state.App
	st := v.store
	return func() tea.Msg {
		if err := app.Client.Notifications().MarkAllRead(context.Background()); err != nil {
			return notificationMutatedMsg{err: err}
		}
		err := st.Load(context.Background(), func(ctx context.Context) ([]domain.Notification, error) {
			return app.Client.Notifications().List(ctx)
		})
		if err != nil {
			return notificationMutatedMsg{err: err}
		}
		return notificationMutatedMsg{notice: "All notifications marked read"}
	}
}

func (v *notificationListView) remove(n domain.Notification) tea.Cmd {
	app := v.state.App
	st := v.store
	return func() tea.Msg {
		err := st.Remove(context.Background(), n.ID, func(ctx context.Context) error {
			return app.Client.Notifications().Remove(ctx, n.ID)
		})
		if err != nil {
			return notificationMutatedMsg{err: err}
		}
		return notificationMutatedMsg{notice: "Deleted: " + n.Title}
	}
}

func (v *notificationListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading notifications...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	items := v.store.Items()

	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s\n\n", formatter.Dim(fmt.Sprintf("%d unread", v.unread())))

	if len(items) == 0 {
		b.WriteString("  " + formatter.Dim("No notifications.") + "\n")
		return b.String()
	}

	for i, n := range items {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		dot := "  "
		titleStyle := formatter.Dim
		if !n.IsRead {
			dot = formatter.StyleBlue.Render("● ")
			titleStyle = formatter.Bold
		}
		fmt.Fprintf(&b, "%s%s%s  %s\n", cursor, dot,
			titleStyle(formatter.PadRight(n.Title, 34)),
			formatter.Dim(formatter.RelativeTime(n.CreatedAt)),
		)
		fmt.Fprintf(&b, "      %s\n", formatter.Dim(n.Message))
	}
	return b.String()
}
