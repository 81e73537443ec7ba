package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rohanvaze/brokerdesk/internal/api"
	"github.com/rohanvaze/brokerdesk/internal/domain"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := app.Client.Auth().Login(context.Background(), email, password)
			if err != nil {
				return err
			}
			if err := app.Session.Establish(tok.AccessToken, tok.User); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", tok.User.FullName, tok.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newSignupCmd(app *App) *cobra.Command {
	var email, password, confirm, fullName, phone, role string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != string(domain.RoleBroker) && role != string(domain.RoleBuilder) {
				return fmt.Errorf("role must be %q or %q", domain.RoleBroker, domain.RoleBuilder)
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}
			tok, err := app.Client.Auth().Signup(context.Background(), api.SignupRequest{
				Email:           email,
				Password:        password,
				ConfirmPassword: confirm,
				FullName:        fullName,
				Phone:           phone,
				Role:            domain.Role(role),
			})
			if err != nil {
				return err
			}
			if err := app.Session.Establish(tok.AccessToken, tok.User); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account created. Signed in as %s (%s)\n", tok.User.FullName, tok.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().StringVar(&confirm, "confirm-password", "", "Password confirmation")
	cmd.Flags().StringVar(&fullName, "name", "", "Full name")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleBroker), "Account role (broker or builder)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("confirm-password")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Session.Invalidate() {
				fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "No active session.")
			}
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(); err != nil {
				return err
			}
			// Refresh from the server so a revoked token is caught here.
			user, err := app.Client.Auth().Me(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> [%s]\n", user.FullName, user.Email, user.Role)
			return nil
		},
	}
}
