package main

import (
	"fmt"
	"os"

	"trade-journal/internal/cli"
	"trade-journal/internal/config"
	"trade-journal/internal/logging"
)

func main() {
	cfg, err := config.Load(cli.ConfigDirFromArgs(os.Args[1:]))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLoggerWithConfig(cfg.LogConfig())

	rootCmd, app := cli.NewRootCmd(cfg, logger)
	err = rootCmd.Execute()
	if cerr := app.Close(); cerr != nil {
		logger.Warn().Err(cerr).Msg("Failed to close store")
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
