package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Trade Journal Configuration

[journal]
# SQLite database holding the key-value store
# db_path = "~/.config/trade-journal/journal.db"
# Keep trades and strategies between CLI invocations
persist_session = true
# Install the built-in playbook strategies into an empty journal
seed_strategies = true

[ui]
# Enable colored output
color_enabled = true
# Date format used in tables
date_format = "02 Jan 2006"
# Prefix for money values
currency_symbol = "$"

[logging]
# debug, info, warn, error, disabled
level = "info"
console = true
file = true
# Rotation limits (megabytes, files, days)
max_size = 20
max_backups = 5
max_age = 30

[api]
# Listen address for 'journal serve'
addr = "127.0.0.1:8080"
# Gin mode: debug, release, test
mode = "release"
# Requests per second per client (0 disables limiting)
rate_limit = 20.0
rate_burst = 40
# Reject requests that change the journal
read_only = false
`

func createTemplateConfig(configDir, name string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, name+".toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}
