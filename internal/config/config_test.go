package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-journal/internal/errors"
)

func TestLoad_CreatesTemplateAndUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "config.toml"))
	assert.Equal(t, filepath.Join(dir, "journal.db"), cfg.Journal.DBPath)
	assert.True(t, cfg.Journal.PersistSession)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "127.0.0.1:8080", cfg.API.Addr)
	assert.Equal(t, filepath.Join(dir, "config.toml"), cfg.Path())
}

func TestLoad_ReadsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	body := "[journal]\npersist_session = false\n\n[logging]\nlevel = \"debug\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0644))
	t.Setenv("JOURNAL_API_ADDR", ":9999")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.False(t, cfg.Journal.PersistSession)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, ":9999", cfg.API.Addr)
	assert.Equal(t, 20, cfg.Logging.MaxSize)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "other.db")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("JOURNAL_DB_PATH="+dbPath+"\n"), 0644))
	t.Setenv("JOURNAL_DB_PATH", "")
	os.Unsetenv("JOURNAL_DB_PATH")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, dbPath, cfg.Journal.DBPath)
	os.Unsetenv("JOURNAL_DB_PATH")
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Journal: JournalConfig{DBPath: "x.db"},
		Logging: LoggingConfig{Level: "info"},
		API:     APIConfig{Mode: "release", RateLimit: 5, RateBurst: 10},
	}
	assert.NoError(t, cfg.Validate())

	bad := *cfg
	bad.Logging.Level = "chatty"
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.API.Mode = "prod"
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.API.RateBurst = 0
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Journal.DBPath = " "
	assert.True(t, errors.Is(bad.Validate(), errors.ErrConfigInvalid))
}
