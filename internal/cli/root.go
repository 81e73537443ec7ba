package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/rohanvaze/brokerdesk/internal/api"
	"github.com/rohanvaze/brokerdesk/internal/config"
	"github.com/rohanvaze/brokerdesk/internal/domain"
	"github.com/rohanvaze/brokerdesk/internal/session"
)

// App holds everything CLI commands and TUI views need: the REST client,
// the persisted session, and runtime config.
type App struct {
	Client  *api.Client
	Session *session.Session
	Config  config.Config
	Logger  *slog.Logger

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time

	// IsInteractive reports whether stdin is a terminal. The bare
	// "brokerdesk" invocation opens the TUI only when it is.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// requireAuth fails fast when no session is active.
func (a *App) requireAuth() error {
	if !a.Session.Authenticated() {
		return fmt.Errorf("not signed in (run: brokerdesk login)")
	}
	return nil
}

// requireRole fails when the signed-in account has a different role.
func (a *App) requireRole(role domain.Role) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	if a.Session.Role() != role {
		return fmt.Errorf("this command is available to %s accounts only", role)
	}
	return nil
}

// NewRootCmd creates the top-level "brokerdesk" command and registers
// all subcommands against the provided App. Running it bare opens the
// TUI on an interactive terminal.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "brokerdesk",
		Short: "Real-estate CRM for brokers and builders",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newLoginCmd(app),
		newSignupCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newDashboardCmd(app),
		newPropertyCmd(app),
		newCustomerCmd(app),
		newDealCmd(app),
		newProjectCmd(app),
		newEventCmd(app),
		newNotificationCmd(app),
		newCalcCmd(app),
		newTUICmd(app),
	)

	return root
}
