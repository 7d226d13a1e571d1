package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"trade-journal/internal/analytics"
	"trade-journal/pkg/utils"
)

// addReviewCommands adds the performance review commands.
func addReviewCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newDashboardCmd(app))
	rootCmd.AddCommand(newEquityCmd(app))
	rootCmd.AddCommand(newCalendarCmd(app))
}

func newDashboardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Headline performance, outcomes and platform breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			platform, _ := cmd.Flags().GetString("platform")
			dash := analytics.BuildDashboard(app.Session.Trades(), platform)
			if output.IsJSON() {
				return output.JSON(dash)
			}

			title := "Dashboard"
			if platform != "" {
				title += " - " + platform
			}
			if u, ok := app.Session.CurrentUser(); ok {
				output.Bold("Welcome back, %s", u.Name)
				output.Dim("%s", u.WelcomeMessage)
				output.Println()
			}

			s := dash.Stats
			output.Box(title, []string{
				"Total P&L:    " + output.FormatPnL(s.TotalPnL),
				"Win Rate:     " + utils.FormatPercent(s.WinRate),
				"Avg Win:      " + utils.FormatCurrency(s.AvgWin),
				"Avg R:R:      " + FormatRiskReward(s.AvgRR),
				"Total Trades: " + fmt.Sprintf("%d", s.TotalTrades),
			})

			if len(dash.Outcomes) > 0 {
				output.Println()
				output.Bold("Outcomes")
				for _, o := range dash.Outcomes {
					output.Printf("  %-10s %s %d\n", o.Name, Bar(float64(o.Value), float64(s.TotalTrades), 20), o.Value)
				}
			}

			if len(dash.PlatformPerformance) > 0 {
				output.Println()
				output.Bold("Platform Performance")
				table := NewTable(output, "Platform", "P&L")
				for _, p := range dash.PlatformPerformance {
					table.AddRow(p.Name, output.FormatPnL(p.PnL))
				}
				table.Render()
			}

			if len(dash.Platforms) > 0 && platform == "" {
				output.Println()
				output.Dim("Filter with --platform: %s", strings.Join(dash.Platforms, ", "))
			}
			return nil
		},
	}
	cmd.Flags().String("platform", "", "Only count trades tagged with this platform")
	return cmd
}

func newEquityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equity",
		Short: "Cumulative P&L curve by trade date",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			platform, _ := cmd.Flags().GetString("platform")
			curve := analytics.EquityCurve(analytics.FilterByPlatform(app.Session.Trades(), platform))
			if output.IsJSON() {
				return output.JSON(curve)
			}
			if len(curve) == 0 {
				output.Info("No trades yet.")
				return nil
			}

			peak := 0.0
			for _, p := range curve {
				peak = math.Max(peak, math.Abs(p.Value))
			}
			table := NewTable(output, "Date", "Day P&L", "Equity", "")
			for _, p := range curve {
				name := p.Name
				if name != analytics.StartLabel {
					name = FormatDate(name)
				}
				table.AddRow(name, output.FormatPnL(p.DailyPnL), output.FormatPnL(p.Value), Bar(math.Abs(p.Value), peak, 24))
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().String("platform", "", "Only count trades tagged with this platform")
	return cmd
}

func newCalendarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Monthly P&L calendar with weekly summary",
		Example: `  journal calendar
  journal calendar --month 2024-03
  journal calendar --offset -1      # previous month
  journal calendar --day 14         # trades on the 14th`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			monthFlag, _ := cmd.Flags().GetString("month")
			offset, _ := cmd.Flags().GetInt("offset")
			day, _ := cmd.Flags().GetInt("day")

			now := app.Session.Now()
			year, month := now.Year(), now.Month()
			if monthFlag != "" {
				var ok bool
				if year, month, ok = utils.ParseMonth(monthFlag); !ok {
					output.Error("Invalid month %q, expected YYYY-MM", monthFlag)
					return fmt.Errorf("invalid month: %s", monthFlag)
				}
			}
			if offset != 0 {
				t := time.Date(year, month+time.Month(offset), 1, 0, 0, 0, 0, time.UTC)
				year, month = t.Year(), t.Month()
			}

			cal := analytics.BuildCalendar(app.Session.Trades(), year, month)

			if day > 0 {
				return showDay(output, cal, day)
			}
			if output.IsJSON() {
				return output.JSON(cal)
			}

			output.Bold("%s  %s  (%d trades)", FormatMonth(year, month), output.FormatPnL(cal.MonthPnL), cal.MonthTrades)
			output.Println()
			renderMonthGrid(output, cal)
			output.Println()

			output.Bold("Weekly Summary")
			table := NewTable(output, "Week", "Days", "Trades", "Win Rate", "P&L")
			for _, w := range cal.Weeks {
				start, end := w.StartDay, w.EndDay
				if start < 1 {
					start = 1
				}
				if end > cal.DaysInMonth {
					end = cal.DaysInMonth
				}
				table.AddRow(
					fmt.Sprintf("%d", w.Week),
					fmt.Sprintf("%d-%d", start, end),
					fmt.Sprintf("%d", w.Trades),
					fmt.Sprintf("%d%%", w.WinRate),
					output.FormatPnL(w.PnL),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().String("month", "", "Month to show (YYYY-MM, default current)")
	cmd.Flags().Int("offset", 0, "Months to move from the selected month (-1 previous, 1 next)")
	cmd.Flags().Int("day", 0, "Show the trades of one day")

	return cmd
}

// renderMonthGrid prints a Sunday-first grid with each day's P&L.
func renderMonthGrid(output *Output, cal analytics.MonthCalendar) {
	const cell = 10
	var header strings.Builder
	for _, d := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		header.WriteString(PadRight(d, cell))
	}
	output.Printf("%s\n", output.DimText(strings.TrimRight(header.String(), " ")))

	var row strings.Builder
	col := 0
	for i := 0; i < cal.Offset; i++ {
		row.WriteString(strings.Repeat(" ", cell))
		col++
	}
	for day := 1; day <= cal.DaysInMonth; day++ {
		text := PadLeft(strconv.Itoa(day), 2)
		if b, ok := cal.Days[day]; ok {
			text += " " + output.ColoredString(output.PnLColor(b.PnL), compactPnL(b.PnL))
		}
		row.WriteString(PadRight(text, cell))
		col++
		if col == 7 {
			output.Println(strings.TrimRight(row.String(), " "))
			row.Reset()
			col = 0
		}
	}
	if row.Len() > 0 {
		output.Println(strings.TrimRight(row.String(), " "))
	}
}

// compactPnL renders a day's P&L in at most seven characters.
func compactPnL(pnl float64) string {
	abs := math.Abs(pnl)
	sign := ""
	if pnl > 0 {
		sign = "+"
	} else if pnl < 0 {
		sign = "-"
	}
	switch {
	case abs >= 1e6:
		return fmt.Sprintf("%s%.1fM", sign, abs/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%s%.1fk", sign, abs/1e3)
	default:
		return fmt.Sprintf("%s%.0f", sign, abs)
	}
}

func showDay(output *Output, cal analytics.MonthCalendar, day int) error {
	if day > cal.DaysInMonth {
		output.Error("%s has only %d days", FormatMonth(cal.Year, cal.Month), cal.DaysInMonth)
		return fmt.Errorf("invalid day: %d", day)
	}
	b := cal.Days[day]
	if output.IsJSON() {
		b.Day = day
		return output.JSON(b)
	}

	date := time.Date(cal.Year, cal.Month, day, 0, 0, 0, 0, time.UTC)
	output.Bold("%s  %s", date.Format("Monday, 02 January 2006"), output.FormatPnL(b.PnL))
	if b.Count == 0 {
		output.Dim("No trades on this day.")
		return nil
	}
	table := NewTable(output, "ID", "Symbol", "Side", "Setup", "Status", "P&L")
	for _, t := range b.Trades {
		table.AddRow(TruncateString(t.ID, 10), t.Symbol, string(t.Direction), TruncateString(t.Setup, 20), output.Status(string(t.Status)), output.FormatPnL(t.PnL))
	}
	table.Render()
	return nil
}
