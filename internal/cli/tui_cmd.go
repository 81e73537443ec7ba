package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive terminal UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}
}

// runTUI starts the full-screen bubbletea program. It requires an
// active session; signing in stays a plain CLI concern.
func runTUI(app *App) error {
	if err := app.requireAuth(); err != nil {
		return err
	}

	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	// A mid-session 401 invalidates the stored token; leave a hint on
	// the plain terminal after teardown.
	if m, ok := final.(appModel); ok && m.signedOut {
		app.Session.Invalidate()
		fmt.Println("Session expired. Run: brokerdesk login")
	}
	return nil
}
