package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"trade-journal/internal/journal"
	"trade-journal/internal/models"
)

// addChecklistCommands adds the pre-trade checklist commands.
func addChecklistCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Pre-trade checklist",
		Long: `Work through the pre-trade checklist of the active strategy. The score
is stored with the next trade you log; 75% or more counts as following the plan.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the checklist",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			items, score := app.Session.Checklist(), app.Session.ChecklistScore()
			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"items": items, "score": score})
			}
			if st, ok := app.Session.ActiveStrategy(); ok {
				output.Bold("Checklist - %s", st.Title)
			} else {
				output.Bold("Checklist")
			}
			showChecklist(output, items, score)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <id|number>...",
		Short: "Tick or untick items",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			for _, ref := range args {
				id := checklistItemID(app.Session.Checklist(), ref)
				it, err := app.Session.ToggleChecklistItem(context.Background(), id)
				if err != nil {
					output.Error("%v", err)
					return err
				}
				if !output.IsJSON() {
					output.Printf("  %s %s\n", checkbox(output, it.IsChecked), it.Label)
				}
			}
			score := app.Session.ChecklistScore()
			if output.IsJSON() {
				return output.JSON(score)
			}
			output.Println()
			output.Printf("  Score: %s\n", scoreText(output, score))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Untick every item",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			app.Session.ResetChecklist(context.Background())
			if output.IsJSON() {
				return output.JSON(app.Session.ChecklistScore())
			}
			output.Success("✓ Checklist reset")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "score",
		Short: "Show completion per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			score := app.Session.ChecklistScore()
			if output.IsJSON() {
				return output.JSON(score)
			}
			output.Printf("Overall:  %s\n", scoreText(output, score))
			for _, c := range models.RuleCategories {
				pct := score.Categories[c]
				output.Printf("  %-16s %s %3d%%\n", c.Group(), Bar(float64(pct), 100, 20), pct)
			}
			return nil
		},
	})

	rootCmd.AddCommand(cmd)
}

// checklistItemID accepts an item id or its 1-based position.
func checklistItemID(items []models.ChecklistItem, ref string) string {
	for _, it := range items {
		if it.ID == ref {
			return ref
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(items) {
		return items[n-1].ID
	}
	return ref
}

func showChecklist(output *Output, items []models.ChecklistItem, score journal.Score) {
	n := 0
	for _, g := range score.GroupOrder {
		output.Println()
		output.Printf("%s %s\n", output.Cyan(g), output.DimText(fmt.Sprintf("%d%%", score.Groups[g])))
		for _, it := range items {
			if it.Group != g {
				continue
			}
			n++
			output.Printf("  %2d %s %s\n", n, checkbox(output, it.IsChecked), it.Label)
		}
	}
	output.Println()
	output.Printf("Score: %s\n", scoreText(output, score))
}

func checkbox(output *Output, checked bool) string {
	if checked {
		return output.Green("[x]")
	}
	return "[ ]"
}

func scoreText(output *Output, score journal.Score) string {
	text := fmt.Sprintf("%d/%d (%d%%)", score.Checked, score.Total, score.Percent)
	if score.FollowedPlan {
		return output.Green(text + " followed plan")
	}
	return output.Yellow(text)
}
