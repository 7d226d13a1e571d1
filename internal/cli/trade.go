package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"trade-journal/internal/analytics"
	"trade-journal/internal/derive"
	"trade-journal/internal/models"
	"trade-journal/internal/store"
)

// addTradeCommands adds trade log commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:     "trade",
		Aliases: []string{"trades"},
		Short:   "Log and review trades",
		Long:    "Add, edit, delete, list, export and import journaled trades.",
	}

	cmd.AddCommand(newTradeAddCmd(app))
	cmd.AddCommand(newTradeEditCmd(app))
	cmd.AddCommand(newTradeDeleteCmd(app))
	cmd.AddCommand(newTradeListCmd(app))
	cmd.AddCommand(newTradeShowCmd(app))
	cmd.AddCommand(newTradeExportCmd(app))
	cmd.AddCommand(newTradeImportCmd(app))

	rootCmd.AddCommand(cmd)
}

func addTradeFormFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("date", "", "Trade date (YYYY-MM-DD, default today)")
	f.StringP("instrument", "s", "", "Instrument, e.g. XAUUSD")
	f.StringP("direction", "d", "", "Long or Short")
	f.String("session", "", "Market session")
	f.String("timeframe", "", "Chart timeframe")
	f.StringSlice("platform", nil, "Platform/account tag (repeatable)")
	f.String("setup", "", "Strategy title (default: active strategy)")
	f.StringSlice("confluence", nil, "Confluence tag (repeatable)")
	f.String("mindset", "", "Mindset before the trade")
	f.String("notes", "", "Free-form notes")
	f.String("screenshot", "", "Image file to attach")
	f.String("entry", "", "Entry price")
	f.String("tp", "", "Take-profit price")
	f.String("sl", "", "Stop-loss price")
	f.String("qty", "", "Quantity (default 1)")
	f.StringP("outcome", "o", "", "Win, Loss or Breakeven")
	f.String("pnl", "", "Realized P&L (overrides the price-derived value)")
	f.String("points", "", "Points captured")
	f.Bool("dry-run", false, "Show the derived values without saving")
}

// tradeInputFromFlags collects the flags the user actually set.
func tradeInputFromFlags(cmd *cobra.Command) (derive.TradeInput, error) {
	var in derive.TradeInput
	str := func(name string) *string {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		v, _ := cmd.Flags().GetString(name)
		return &v
	}
	list := func(name string) *[]string {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		v, _ := cmd.Flags().GetStringSlice(name)
		return &v
	}

	in.Date = str("date")
	in.Instrument = str("instrument")
	in.Direction = str("direction")
	in.Session = str("session")
	in.Timeframe = str("timeframe")
	in.Platforms = list("platform")
	in.Setup = str("setup")
	in.Confluences = list("confluence")
	in.Mindset = str("mindset")
	in.Notes = str("notes")
	in.EntryPrice = str("entry")
	in.TakeProfit = str("tp")
	in.StopLoss = str("sl")
	in.Quantity = str("qty")
	in.Outcome = str("outcome")
	in.RealizedPnL = str("pnl")
	in.Points = str("points")

	if path := str("screenshot"); path != nil {
		blob, err := screenshotBlob(*path)
		if err != nil {
			return in, err
		}
		in.Screenshot = &blob
	}
	return in, nil
}

// screenshotBlob reads an image into a data URL. An empty path detaches.
func screenshotBlob(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading screenshot: %w", err)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("screenshot %s is not an image (%s)", path, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func newTradeAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a new trade",
		Long: `Log a new trade. Risk/reward, exit price, P&L and points are derived
from the prices, direction, quantity and outcome. A typed --pnl drives the
outcome instead.

The current checklist score is stored with the trade and the checklist is
reset afterwards.`,
		Example: `  journal trade add -s XAUUSD -d Long --entry 2000 --tp 2020 --sl 1990 -o Win
  journal trade add -s EURUSD -d Short --entry 1.0850 --sl 1.0870 --pnl -40
  journal trade add -s NASDAQ --platform "FTMO Account" --dry-run --entry 18000 --tp 18100 --sl 17950`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			in, err := tradeInputFromFlags(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			form := app.Session.NewTradeForm()
			in.Apply(form)

			if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
				return showForm(output, form)
			}

			t := app.Session.SaveTrade(context.Background(), form)
			if output.IsJSON() {
				return output.JSON(t)
			}
			output.Success("✓ Trade %s saved", t.ID)
			showTrade(output, t)
			return nil
		},
	}
	addTradeFormFlags(cmd)
	return cmd
}

func newTradeEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a logged trade",
		Long: `Edit a logged trade. Only the flags you pass are changed. The stored
P&L is kept unless a price, quantity, direction or outcome changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			form, err := app.Session.EditTradeForm(args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}
			in, err := tradeInputFromFlags(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			in.Apply(form)

			if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
				return showForm(output, form)
			}

			t := app.Session.SaveTrade(context.Background(), form)
			if output.IsJSON() {
				return output.JSON(t)
			}
			output.Success("✓ Trade %s updated", t.ID)
			showTrade(output, t)
			return nil
		},
	}
	addTradeFormFlags(cmd)
	return cmd
}

func newTradeDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a trade",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Session.DeleteTrade(context.Background(), args[0], confirmerFor(cmd)); err != nil {
				output.Error("Trade not deleted: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]string{"deleted": args[0]})
			}
			output.Success("✓ Trade %s deleted", args[0])
			return nil
		},
	}
}

func newTradeListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List trades, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			symbol, _ := cmd.Flags().GetString("symbol")
			status, _ := cmd.Flags().GetString("status")
			strategy, _ := cmd.Flags().GetString("strategy")
			platform, _ := cmd.Flags().GetString("platform")
			limit, _ := cmd.Flags().GetInt("limit")

			trades := analytics.FilterTrades(app.Session.Trades(), models.TradeFilter{
				Symbol:   symbol,
				Status:   models.ParseStatus(status),
				Strategy: strategy,
				Platform: platform,
			})
			if limit > 0 && len(trades) > limit {
				trades = trades[:limit]
			}

			if output.IsJSON() {
				return output.JSON(trades)
			}
			if len(trades) == 0 {
				output.Info("No trades found.")
				output.Dim("Tip: log one with 'journal trade add'.")
				return nil
			}

			table := NewTable(output, "ID", "Date", "Symbol", "Side", "Entry", "Exit", "R:R", "P&L", "Status", "Setup")
			for _, t := range trades {
				table.AddRow(
					TruncateString(t.ID, 10),
					FormatDate(t.Date),
					t.Symbol,
					string(t.Direction),
					FormatPrice(t.EntryPrice),
					FormatPrice(t.ExitPrice),
					FormatRiskReward(t.RiskReward),
					output.FormatPnL(t.PnL),
					output.Status(string(t.Status)),
					TruncateString(t.Setup, 20),
				)
			}
			table.Render()

			stats := analytics.ComputeStats(trades)
			output.Println()
			output.Printf("  %d trades  ·  win rate %.0f%%  ·  total %s\n", stats.TotalTrades, stats.WinRate, output.FormatPnL(stats.TotalPnL))
			return nil
		},
	}

	cmd.Flags().String("symbol", "", "Filter by instrument")
	cmd.Flags().String("status", "", "Filter by status (win, loss, breakeven, open)")
	cmd.Flags().String("strategy", "", "Filter by strategy title")
	cmd.Flags().String("platform", "", "Filter by platform")
	cmd.Flags().Int("limit", 0, "Show at most N trades")

	return cmd
}

func newTradeShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			t, err := app.Session.Trade(args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(t)
			}
			showTrade(output, t)
			return nil
		},
	}
}

func newTradeExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export trades as CSV or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			path, _ := cmd.Flags().GetString("out")
			trades := app.Session.Trades()
			analytics.SortByDateAsc(trades)

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

			if asCSV, _ := cmd.Flags().GetBool("csv"); asCSV {
				if err := store.WriteTradesCSV(w, trades); err != nil {
					return err
				}
			} else {
				(&Output{writer: w}).JSON(trades)
			}
			if path != "" && !output.IsJSON() {
				output.Success("✓ Exported %d trades to %s", len(trades), path)
			}
			return nil
		},
	}

	cmd.Flags().Bool("csv", false, "Write CSV instead of JSON")
	cmd.Flags().String("out", "", "Output file (default stdout)")

	return cmd
}

func newTradeImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import trades from a CSV export",
		Long:  "Import trades from a CSV file in the export format. Trades whose id already exists are replaced.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			f, err := os.Open(args[0])
			if err != nil {
				output.Error("Failed to open %s: %v", args[0], err)
				return err
			}
			defer f.Close()

			trades, err := store.ReadTradesCSV(f)
			if err != nil {
				output.Error("Failed to read trades: %v", err)
				return err
			}
			n := app.Session.ImportTrades(context.Background(), trades)
			if output.IsJSON() {
				return output.JSON(map[string]int{"imported": n})
			}
			output.Success("✓ Imported %d trades", n)
			return nil
		},
	}
}

func showTrade(output *Output, t models.Trade) {
	output.Bold("%s %s %s", t.Symbol, t.Direction, FormatDate(t.Date))
	output.Printf("  ID:          %s\n", t.ID)
	output.Printf("  Status:      %s\n", output.Status(string(t.Status)))
	output.Printf("  P&L:         %s\n", output.FormatPnL(t.PnL))
	output.Printf("  Entry:       %s\n", FormatPrice(t.EntryPrice))
	output.Printf("  Take Profit: %s\n", FormatPrice(t.TakeProfit))
	output.Printf("  Stop Loss:   %s\n", FormatPrice(t.StopLoss))
	output.Printf("  Exit:        %s\n", FormatPrice(t.ExitPrice))
	output.Printf("  Quantity:    %s\n", FormatPrice(t.Quantity))
	output.Printf("  R:R:         %s\n", FormatRiskReward(t.RiskReward))
	output.Printf("  Points:      %.2f\n", t.Points)
	output.Printf("  Setup:       %s\n", t.Setup)
	output.Printf("  Platforms:   %s\n", FormatList(t.Platform))
	output.Printf("  Confluences: %s\n", FormatList(t.Confluences))
	output.Printf("  Session:     %s  %s\n", t.Session, t.Timeframe)
	plan := output.Red("no")
	if t.FollowedPlan {
		plan = output.Green("yes")
	}
	output.Printf("  Checklist:   %d%% (followed plan: %s)\n", t.ChecklistScore, plan)
	if t.Mindset != "" {
		output.Printf("  Mindset:     %s\n", t.Mindset)
	}
	if t.Notes != "" {
		output.Printf("  Notes:       %s\n", t.Notes)
	}
	if t.Screenshot != "" {
		output.Dim("  Screenshot attached (%d bytes)", len(t.Screenshot))
	}
}

func showForm(output *Output, f *derive.TradeForm) error {
	if output.IsJSON() {
		return output.JSON(f)
	}
	orDash := func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	}
	output.Bold("Preview (not saved)")
	output.Printf("  Outcome:     %s\n", orDash(string(f.Outcome)))
	output.Printf("  R:R:         %s\n", orDash(f.RiskReward))
	output.Printf("  Exit:        %s\n", orDash(f.ExitPrice))
	output.Printf("  P&L:         %s\n", orDash(f.RealizedPnL))
	output.Printf("  Points:      %s\n", orDash(f.Points))
	output.Printf("  Checklist:   %d%%\n", f.ChecklistScore)
	return nil
}
