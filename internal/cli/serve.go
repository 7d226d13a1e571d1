package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"trade-journal/internal/api"
)

func addServeCommand(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the journal over a local HTTP/JSON API",
		Long: `Start the HTTP API for a front end. All requests share one session and
are handled one at a time. Stop with Ctrl+C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			cfg := api.Config{
				Addr:      app.Config.API.Addr,
				Mode:      app.Config.API.Mode,
				RateLimit: app.Config.API.RateLimit,
				RateBurst: app.Config.API.RateBurst,
				ReadOnly:  app.Config.API.ReadOnly,
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("read-only") {
				cfg.ReadOnly, _ = cmd.Flags().GetBool("read-only")
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			output.Info("Serving on http://%s", cfg.Addr)
			if cfg.ReadOnly {
				output.Warning("Read-only mode: writes are rejected")
			}
			return api.NewServer(app.Session, app.Logger, cfg).Run(ctx)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default from config api.addr)")
	cmd.Flags().Bool("read-only", false, "Reject requests that change the journal")
	rootCmd.AddCommand(cmd)
}
