// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
)

// Keys used by the journal. User and options match the keys of the browser
// build so that exported stores stay interchangeable.
const (
	KeyUser       = "tradeJournalUser"
	KeyOptions    = "tradeJournalOptions"
	KeyTrades     = "tradeJournalTrades"
	KeyStrategies = "tradeJournalStrategies"
	KeyChecklist  = "tradeJournalChecklist"
)

// KV is the key-value persistence collaborator. Values are opaque strings.
type KV interface {
	// Get returns the value of key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}
