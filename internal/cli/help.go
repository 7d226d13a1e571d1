package cli

import (
	"github.com/spf13/cobra"
)

// addHelpCommands adds help and documentation commands.
func addHelpCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newCommandsCmd())
	rootCmd.AddCommand(newExamplesCmd())
	rootCmd.AddCommand(newQuickstartCmd(app))
}

type commandHelp struct {
	cmd  string
	desc string
}

type commandCategory struct {
	name     string
	commands []commandHelp
}

var commandCategories = []commandCategory{
	{
		name: "Account",
		commands: []commandHelp{
			{"login / signup", "Sign in (use --remember to stay signed in)"},
			{"logout", "Sign out and clear the trade log"},
			{"whoami", "Profile and lifetime stats"},
			{"profile", "Update name, email or welcome message"},
			{"account delete", "Delete the profile and its data"},
		},
	},
	{
		name: "Trades",
		commands: []commandHelp{
			{"trade add", "Log a trade (--dry-run to preview)"},
			{"trade edit <id>", "Change a logged trade"},
			{"trade delete <id>", "Delete a trade"},
			{"trade list", "Newest first, with filters"},
			{"trade show <id>", "Full trade detail"},
			{"trade export [--csv]", "Export as JSON or CSV"},
			{"trade import <file>", "Import a CSV export"},
		},
	},
	{
		name: "Review",
		commands: []commandHelp{
			{"dashboard [--platform]", "Headline stats and breakdowns"},
			{"equity [--platform]", "Cumulative P&L curve"},
			{"calendar [--month] [--day]", "Monthly P&L calendar"},
		},
	},
	{
		name: "Playbook",
		commands: []commandHelp{
			{"playbook list/show", "Strategies, active first"},
			{"playbook add/edit/delete", "Manage strategies"},
			{"playbook activate <id>", "Switch the active strategy"},
			{"playbook rule add/remove", "Edit single rules"},
			{"playbook stats/curve", "Performance per strategy"},
			{"playbook import/export", "YAML playbooks"},
		},
	},
	{
		name: "Checklist & Options",
		commands: []commandHelp{
			{"checklist show/toggle/reset", "Pre-trade checklist"},
			{"checklist score", "Completion per category"},
			{"options list/add/remove", "Form choice lists"},
		},
	},
	{
		name: "Utilities",
		commands: []commandHelp{
			{"serve", "Local HTTP/JSON API"},
			{"config show/path/validate", "Configuration"},
			{"version", "Version information"},
		},
	},
}

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List all commands by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			output.Bold("Trade Journal Commands")
			output.Println()

			for _, cat := range commandCategories {
				output.Bold("%s", cat.name)
				for _, c := range cat.commands {
					output.Printf("  %s %s\n", PadRight(output.Cyan(c.cmd), 32), c.desc)
				}
				output.Println()
			}

			output.Dim("Use 'journal help <command>' for detailed help on any command")
			return nil
		},
	}
}

func newExamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show common workflow examples",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			output.Bold("Common Workflow Examples")
			output.Println()

			examples := []struct {
				title    string
				commands []string
			}{
				{
					title: "Before the Trade",
					commands: []string{
						"journal playbook activate \"Break & Retest\"",
						"journal checklist show",
						"journal checklist toggle 1 2 3 5",
					},
				},
				{
					title: "Log the Trade",
					commands: []string{
						"journal trade add -s XAUUSD -d Long --entry 2000 --tp 2020 --sl 1990 -o Win \\",
						"    --platform \"FTMO Account\" --session London --timeframe M15",
						"journal trade add -s EURUSD -d Short --entry 1.085 --sl 1.087 --pnl -40",
					},
				},
				{
					title: "Weekly Review",
					commands: []string{
						"journal dashboard",
						"journal calendar --offset -1",
						"journal playbook stats",
						"journal trade list --status loss --limit 10",
					},
				},
				{
					title: "Back Up",
					commands: []string{
						"journal trade export --csv --out trades.csv",
						"journal playbook export --out playbook.yaml",
					},
				},
			}

			for _, ex := range examples {
				output.Printf("%s\n", output.Cyan(ex.title))
				for _, c := range ex.commands {
					output.Printf("  %s\n", c)
				}
				output.Println()
			}
			return nil
		},
	}
}

func newQuickstartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "quickstart",
		Short: "Guide for new users",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			output.Bold("Trade Journal Quickstart")
			output.Println()

			steps := []struct {
				title string
				desc  string
				cmd   string
			}{
				{"Sign In", "Create a profile that is remembered between runs.", "journal signup --email you@example.com --name You --remember"},
				{"Review Your Playbook", "Two example strategies are installed; the active one drives the checklist.", "journal playbook list"},
				{"Tick the Checklist", "Confirm your rules before entering.", "journal checklist toggle 1 2 3"},
				{"Log a Trade", "P&L, R:R and points are derived from your prices.", "journal trade add -s XAUUSD -d Long --entry 2000 --tp 2020 --sl 1990 -o Win"},
				{"Review", "See totals, outcomes and the equity curve.", "journal dashboard"},
			}

			for i, s := range steps {
				output.Printf("%s Step %d: %s\n", output.Cyan("→"), i+1, s.title)
				output.Printf("  %s\n", s.desc)
				output.Printf("  %s\n\n", output.DimText(s.cmd))
			}

			output.Bold("Files")
			output.Printf("  %s - settings\n", output.Cyan(app.Config.Path()))
			output.Printf("  %s - journal data\n", output.Cyan(app.Config.Journal.DBPath))
			return nil
		},
	}
}
