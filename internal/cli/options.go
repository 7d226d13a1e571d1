package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"trade-journal/internal/errors"
	"trade-journal/internal/models"
)

// addOptionsCommands adds commands for the trade form's choice lists.
func addOptionsCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Customize platforms, sessions, timeframes and instruments",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list [category]",
		Short: "List option values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			opts := app.Session.FormOptions()
			categories := models.OptionCategories
			if len(args) == 1 {
				c, err := parseCategory(args[0])
				if err != nil {
					output.Error("%v", err)
					return err
				}
				categories = []models.OptionCategory{c}
			}
			if output.IsJSON() {
				if len(args) == 1 {
					return output.JSON(opts.List(categories[0]))
				}
				return output.JSON(opts)
			}
			for _, c := range categories {
				output.Bold("%s", c)
				for _, v := range opts.List(c) {
					output.Printf("  • %s\n", v)
				}
				output.Println()
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <category> <value>",
		Short: "Add a value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			c, err := parseCategory(args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}
			opts, err := app.Session.AddOption(context.Background(), c, args[1])
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(opts.List(c))
			}
			output.Success("✓ %s: %d values", c, len(opts.List(c)))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "remove <category> <value>",
		Aliases: []string{"rm"},
		Short:   "Remove a value",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			c, err := parseCategory(args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}
			opts, err := app.Session.RemoveOption(context.Background(), c, args[1], confirmerFor(cmd))
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(opts.List(c))
			}
			output.Success("✓ Removed %q from %s", args[1], c)
			return nil
		},
	})

	rootCmd.AddCommand(cmd)
}

func parseCategory(s string) (models.OptionCategory, error) {
	c := models.ParseOptionCategory(s)
	if c == "" {
		return "", errors.Wrap(errors.ErrInvalidOption, fmt.Sprintf("unknown category %q (platforms, sessions, timeframes, instruments)", s))
	}
	return c, nil
}
