package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
	assert.Equal(t, zerolog.Disabled, ParseLevel("off"))
}

func TestFromContext(t *testing.T) {
	var buf, fallback bytes.Buffer
	logger := WithRequestID(zerolog.New(&buf), "req-1")
	ctx := WithLogger(context.Background(), logger)

	l := FromContext(ctx, zerolog.New(&fallback))
	l.Info().Msg("hello")
	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
	assert.Empty(t, fallback.String())

	l = FromContext(context.Background(), zerolog.New(&fallback))
	l.Info().Msg("plain")
	assert.Contains(t, fallback.String(), "plain")
	assert.NotContains(t, buf.String(), "plain")
}

func TestLogHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	LogTrade(logger, "saved", "t-1", "XAUUSD", "WIN", 20)
	LogPersistence(logger, "get", "tradeJournalUser", errors.New("bad json"))

	out := buf.String()
	assert.Contains(t, out, `"trade_id":"t-1"`)
	assert.Contains(t, out, `"key":"tradeJournalUser"`)
	assert.Contains(t, out, `"level":"warn"`)
}

func TestNewLoggerWithConfig_FileOnly(t *testing.T) {
	path := t.TempDir() + "/logs/journal.log"
	logger := NewLoggerWithConfig(LogConfig{Level: "debug", File: true, FilePath: path, MaxSize: 1})
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
	logger.Info().Msg("written")
	assert.FileExists(t, path)
}
