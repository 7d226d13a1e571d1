package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"trade-journal/internal/analytics"
	"trade-journal/internal/models"
	"trade-journal/internal/store"
)

// addPlaybookCommands adds strategy catalog commands.
func addPlaybookCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:     "playbook",
		Aliases: []string{"strategy", "strategies"},
		Short:   "Manage your strategy playbook",
		Long: `Manage the strategies of your playbook. The active strategy pre-fills
the setup of new trades and drives the pre-trade checklist.

Trades link to a strategy by its title, so renaming a strategy detaches the
trades logged under the old title.`,
	}

	cmd.AddCommand(newPlaybookListCmd(app))
	cmd.AddCommand(newPlaybookShowCmd(app))
	cmd.AddCommand(newPlaybookAddCmd(app))
	cmd.AddCommand(newPlaybookEditCmd(app))
	cmd.AddCommand(newPlaybookDeleteCmd(app))
	cmd.AddCommand(newPlaybookActivateCmd(app))
	cmd.AddCommand(newPlaybookStatsCmd(app))
	cmd.AddCommand(newPlaybookCurveCmd(app))
	cmd.AddCommand(newPlaybookImportCmd(app))
	cmd.AddCommand(newPlaybookExportCmd(app))
	cmd.AddCommand(newPlaybookRuleCmd(app))

	rootCmd.AddCommand(cmd)
}

func addRuleFlags(cmd *cobra.Command) {
	cmd.Flags().String("type", "", "Strategy type, e.g. Trend Following")
	cmd.Flags().StringArray("analysis", nil, "Analysis rule (repeatable)")
	cmd.Flags().StringArray("setup", nil, "Setup rule (repeatable)")
	cmd.Flags().StringArray("entry", nil, "Entry rule (repeatable)")
	cmd.Flags().StringArray("risk", nil, "Risk management rule (repeatable)")
}

// applyRuleFlags replaces each rule list whose flag was given.
func applyRuleFlags(cmd *cobra.Command, st *models.Strategy) {
	if cmd.Flags().Changed("type") {
		st.Type, _ = cmd.Flags().GetString("type")
	}
	for _, c := range models.RuleCategories {
		name := strings.ToLower(string(c))
		if cmd.Flags().Changed(name) {
			rules, _ := cmd.Flags().GetStringArray(name)
			st.Rules = st.Rules.WithList(c, rules)
		}
	}
}

func newPlaybookListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List strategies, active first",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			strategies := app.Session.Strategies()
			if output.IsJSON() {
				return output.JSON(strategies)
			}
			if len(strategies) == 0 {
				output.Info("Your playbook is empty.")
				output.Dim("Tip: add a strategy with 'journal playbook add <title>'.")
				return nil
			}

			table := NewTable(output, "", "ID", "Title", "Type", "Rules", "Win Rate")
			for _, st := range strategies {
				marker := ""
				if st.IsActive {
					marker = output.Green("●")
				}
				table.AddRow(marker, TruncateString(st.ID, 10), st.Title, st.Type, strconv.Itoa(st.Rules.Count()), st.WinRate)
			}
			table.Render()
			return nil
		},
	}
}

func newPlaybookShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|title>",
		Short: "Show a strategy's rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			st, err := app.Session.FindStrategy(args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}
			st.WinRate = analytics.WinRateLabel(st, app.Session.Trades())
			if output.IsJSON() {
				return output.JSON(st)
			}
			showStrategy(output, st)
			return nil
		},
	}
}

func newPlaybookAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a strategy",
		Example: `  journal playbook add "London Breakout" --type Breakout \
      --analysis "Mark Asian range" --entry "Break and close outside range" \
      --risk "Stop at opposite side of range"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			st := models.Strategy{Title: args[0]}
			applyRuleFlags(cmd, &st)

			saved, err := app.Session.SaveStrategy(context.Background(), st)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if activate, _ := cmd.Flags().GetBool("activate"); activate {
				if err := app.Session.SetActiveStrategy(context.Background(), saved.ID); err != nil {
					return err
				}
				saved.IsActive = true
			}
			if output.IsJSON() {
				return output.JSON(saved)
			}
			output.Success("✓ Strategy %q added (%s)", saved.Title, saved.ID)
			return nil
		},
	}
	addRuleFlags(cmd)
	cmd.Flags().Bool("activate", false, "Make the new strategy active")
	return cmd
}

func newPlaybookEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id|title>",
		Short: "Edit a strategy",
		Long:  "Edit a strategy. Rule flags replace the whole list of their category.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			st, err := app.Session.FindStrategy(args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if cmd.Flags().Changed("title") {
				st.Title, _ = cmd.Flags().GetString("title")
			}
			applyRuleFlags(cmd, &st)

			saved, err := app.Session.SaveStrategy(context.Background(), st)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(saved)
			}
			output.Success("✓ Strategy %q updated", saved.Title)
			return nil
		},
	}
	addRuleFlags(cmd)
	cmd.Flags().String("title", "", "New title (detaches trades logged under the old one)")
	return cmd
}

func newPlaybookDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id|title>",
		Aliases: []string{"rm"},
		Short:   "Delete a strategy",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			st, err := app.Session.FindStrategy(args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if err := app.Session.DeleteStrategy(context.Background(), st.ID, confirmerFor(cmd)); err != nil {
				output.Error("Strategy not deleted: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]string{"deleted": st.ID})
			}
			output.Success("✓ Strategy %q deleted", st.Title)
			return nil
		},
	}
}

func newPlaybookActivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "activate <id|title>",
		Short: "Make a strategy the active one",
		Long:  "Make a strategy the active one. The checklist is rebuilt from its rules.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			st, err := app.Session.FindStrategy(args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if err := app.Session.SetActiveStrategy(context.Background(), st.ID); err != nil {
				output.Error("%v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]string{"active": st.ID})
			}
			output.Success("✓ %q is now active (%d checklist items)", st.Title, len(app.Session.Checklist()))
			return nil
		},
	}
}

func newPlaybookStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Performance per strategy",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			stats := analytics.StrategyPerformance(app.Session.RawStrategies(), app.Session.Trades())
			if output.IsJSON() {
				return output.JSON(stats)
			}
			if len(stats) == 0 {
				output.Info("No trades are linked to a strategy yet.")
				return nil
			}
			table := NewTable(output, "Strategy", "Trades", "Wins", "Win Rate", "Avg P&L", "Total P&L")
			for _, s := range stats {
				table.AddRow(
					s.Title,
					strconv.Itoa(s.Count),
					strconv.Itoa(s.Wins),
					fmt.Sprintf("%.0f%%", s.WinRate),
					output.FormatPnL(s.AvgPnL),
					output.FormatPnL(s.TotalPnL),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newPlaybookCurveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "curve",
		Short: "Cumulative P&L per strategy",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			curve := analytics.StrategyCurve(app.Session.RawStrategies(), app.Session.Trades())
			if output.IsJSON() {
				return output.JSON(curve)
			}
			if len(curve) == 0 {
				output.Info("No trades are linked to a strategy yet.")
				return nil
			}

			titles := make([]string, 0, len(curve[0].Values))
			for t := range curve[0].Values {
				titles = append(titles, t)
			}
			sort.Strings(titles)

			table := NewTable(output, append([]string{"Date"}, titles...)...)
			for _, p := range curve {
				row := []string{p.Date}
				if p.Date != analytics.StartLabel {
					row[0] = FormatDate(p.Date)
				}
				for _, t := range titles {
					row = append(row, output.FormatPnL(p.Values[t]))
				}
				table.AddRow(row...)
			}
			table.Render()
			return nil
		},
	}
}

func newPlaybookImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import strategies from a YAML playbook",
		Long:  "Import strategies from a YAML playbook. Strategies with a known id replace the stored one; others are added inactive.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			f, err := os.Open(args[0])
			if err != nil {
				output.Error("Failed to open %s: %v", args[0], err)
				return err
			}
			defer f.Close()

			strategies, err := store.ReadPlaybook(f)
			if err != nil {
				output.Error("Invalid playbook: %v", err)
				return err
			}
			n, err := app.Session.ImportStrategies(context.Background(), strategies)
			if err != nil {
				output.Error("Import stopped after %d strategies: %v", n, err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]int{"imported": n})
			}
			output.Success("✓ Imported %d strategies", n)
			return nil
		},
	}
}

func newPlaybookExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the playbook as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			path, _ := cmd.Flags().GetString("out")
			w := cmd.OutOrStdout()
			if path != "" {
				f, err := os.Create(path)
				if err != nil {
					output.Error("Failed to create %s: %v", path, err)
					return err
				}
				defer f.Close()
				w = f
			}
			strategies := app.Session.RawStrategies()
			if err := store.WritePlaybook(w, strategies); err != nil {
				return err
			}
			if path != "" {
				output.Success("✓ Exported %d strategies to %s", len(strategies), path)
			}
			return nil
		},
	}
	cmd.Flags().String("out", "", "Output file (default stdout)")
	return cmd
}

func newPlaybookRuleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rule",
		Short: "Add or remove single rules",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <id|title> <category> <rule>",
		Short: "Append a rule (category: analysis, setup, entry, risk)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			st, cat, err := resolveRuleTarget(app, args[0], args[1])
			if err != nil {
				output.Error("%v", err)
				return err
			}
			saved, err := app.Session.AddRule(context.Background(), st.ID, cat, args[2])
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(saved)
			}
			output.Success("✓ Added %s rule to %q", cat, saved.Title)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <id|title> <category> <number>",
		Short: "Remove a rule by its 1-based number",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			st, cat, err := resolveRuleTarget(app, args[0], args[1])
			if err != nil {
				output.Error("%v", err)
				return err
			}
			n, err := strconv.Atoi(args[2])
			if err != nil {
				output.Error("Invalid rule number: %s", args[2])
				return err
			}
			saved, err := app.Session.RemoveRule(context.Background(), st.ID, cat, n-1, confirmerFor(cmd))
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(saved)
			}
			output.Success("✓ Removed %s rule %d from %q", cat, n, saved.Title)
			return nil
		},
	})

	return cmd
}

func resolveRuleTarget(app *App, ref, category string) (models.Strategy, models.RuleCategory, error) {
	st, err := app.Session.FindStrategy(ref)
	if err != nil {
		return st, "", err
	}
	cat := models.ParseRuleCategory(category)
	if cat == "" {
		return st, "", fmt.Errorf("unknown rule category %q (analysis, setup, entry, risk)", category)
	}
	return st, cat, nil
}

func showStrategy(output *Output, st models.Strategy) {
	title := st.Title
	if st.IsActive {
		title += " " + output.Green("(active)")
	}
	output.Bold("%s", title)
	output.Dim("%s  ·  %s  ·  win rate %s", st.ID, st.Type, st.WinRate)
	for _, c := range models.RuleCategories {
		rules := st.Rules.List(c)
		output.Println()
		output.Printf("  %s\n", output.Cyan(c.Group()))
		if len(rules) == 0 {
			output.Printf("    %s\n", output.DimText("(none)"))
		}
		for i, r := range rules {
			output.Printf("    %d. %s\n", i+1, r)
		}
	}
}
