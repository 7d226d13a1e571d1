package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"trade-journal/internal/analytics"
	"trade-journal/internal/journal"
	"trade-journal/internal/models"
)

// addAuthCommands adds account commands.
func addAuthCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newLoginCmd(app, false))
	rootCmd.AddCommand(newLoginCmd(app, true))
	rootCmd.AddCommand(newLogoutCmd(app))
	rootCmd.AddCommand(newWhoamiCmd(app))
	rootCmd.AddCommand(newProfileCmd(app))
	rootCmd.AddCommand(newAccountCmd(app))
}

func newLoginCmd(app *App, signup bool) *cobra.Command {
	use, short := "login", "Sign in to the journal"
	if signup {
		use, short = "signup", "Create a journal profile"
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long: `Sign in with an email and password. There is no account server: any
valid email with a password of at least 6 characters is accepted.

With --remember the profile is kept for later invocations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			name, _ := cmd.Flags().GetString("name")
			remember, _ := cmd.Flags().GetBool("remember")

			if email == "" {
				email = readLine(cmd, "Email: ")
			}
			if password == "" {
				password = readLine(cmd, "Password: ")
			}
			if signup && name == "" {
				name = readLine(cmd, "Name: ")
			}

			u, err := app.Session.Login(context.Background(), journal.Credentials{
				Email:      email,
				Password:   password,
				Name:       name,
				Signup:     signup,
				RememberMe: remember,
			})
			if err != nil {
				output.Error("Sign in failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(u)
			}
			output.Success("✓ Welcome, %s", u.Name)
			output.Dim("%s", u.WelcomeMessage)
			if !remember {
				output.Dim("Use --remember to stay signed in.")
			}
			return nil
		},
	}

	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("password", "", "Password (prompted when omitted)")
	cmd.Flags().String("name", "", "Display name")
	cmd.Flags().Bool("remember", false, "Remember the profile")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the trade log",
		Long:  "Sign out, forget the remembered profile and clear the session's trades. Strategies and form options are kept.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			app.Session.Logout(context.Background())
			if output.IsJSON() {
				return output.JSON(map[string]bool{"signed_out": true})
			}
			output.Success("✓ Signed out")
			return nil
		},
	}
}

type whoami struct {
	User  models.User     `json:"user"`
	Stats analytics.Stats `json:"stats"`
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in profile and lifetime stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			u, err := app.Session.RequireUser()
			if err != nil {
				output.Warning("Not signed in. Use 'journal login'.")
				return err
			}
			stats := analytics.ComputeStats(app.Session.Trades())
			if output.IsJSON() {
				return output.JSON(whoami{User: u, Stats: stats})
			}

			output.Box(u.Name, []string{
				"Email:        " + u.Email,
				"Trades:       " + fmt.Sprintf("%d", stats.TotalTrades),
				"Win Rate:     " + fmt.Sprintf("%.0f%%", stats.WinRate),
				"Total P&L:    " + output.FormatPnL(stats.TotalPnL),
			})
			return nil
		},
	}
}

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update the signed-in profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			u, err := app.Session.RequireUser()
			if err != nil {
				output.Warning("Not signed in. Use 'journal login'.")
				return err
			}
			if cmd.Flags().Changed("name") {
				u.Name, _ = cmd.Flags().GetString("name")
			}
			if cmd.Flags().Changed("email") {
				u.Email, _ = cmd.Flags().GetString("email")
			}
			if cmd.Flags().Changed("welcome") {
				u.WelcomeMessage, _ = cmd.Flags().GetString("welcome")
			}

			u, err = app.Session.UpdateUser(context.Background(), u)
			if err != nil {
				output.Error("Profile update failed: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(u)
			}
			output.Success("✓ Profile updated")
			output.Printf("  Name:    %s\n", u.Name)
			output.Printf("  Email:   %s\n", u.Email)
			output.Printf("  Welcome: %s\n", u.WelcomeMessage)
			return nil
		},
	}

	cmd.Flags().String("name", "", "Display name")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("welcome", "", "Welcome message")

	return cmd
}

func newAccountCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account management",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Delete the profile, its trades and custom form options",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Session.DeleteAccount(context.Background(), confirmerFor(cmd)); err != nil {
				output.Error("Account not deleted: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]bool{"deleted": true})
			}
			output.Success("✓ Account deleted")
			return nil
		},
	})

	return cmd
}
