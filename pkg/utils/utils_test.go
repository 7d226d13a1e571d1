package utils

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProperty_SumMatchesCents checks that summing two-decimal amounts is
// exact: the total equals the integer sum of the cents.
func TestProperty_SumMatchesCents(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("sum of cents is exact", prop.ForAll(
		func(cents []int64) bool {
			values := make([]float64, len(cents))
			var total int64
			for i, c := range cents {
				values[i] = float64(c) / 100
				total += c
			}
			return Fixed2(Sum(values...)) == Fixed2(float64(total)/100)
		},
		gen.SliceOf(gen.Int64Range(-1_000_000, 1_000_000)),
	))

	properties.TestingRun(t)
}

// TestProperty_FormatPnLSign checks that formatted P&L carries the sign of
// the rounded amount.
func TestProperty_FormatPnLSign(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("sign follows the amount", prop.ForAll(
		func(amount float64) bool {
			s := FormatPnL(amount)
			switch r := Round2(amount); {
			case r > 0:
				return strings.HasPrefix(s, "+"+CurrencySymbol)
			case r < 0:
				return strings.HasPrefix(s, "-"+CurrencySymbol)
			default:
				return s == CurrencySymbol+"0.00"
			}
		},
		gen.Float64Range(-1e7, 1e7),
	))

	properties.TestingRun(t)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"100", 100, true},
		{" 1,234.5 ", 1234.5, true},
		{"-0.25", -0.25, true},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, 1.0, ParseNumberOr("", 1))
	assert.Equal(t, 1.0, ParseNumberOr("0", 1))
	assert.Equal(t, 3.0, ParseNumberOr("3", 1))
}

func TestRounding(t *testing.T) {
	assert.Equal(t, "2.68", Fixed2(2.675))
	assert.Equal(t, "-1.01", Fixed2(-1.005))
	assert.Equal(t, 0.3, Add(0.1, 0.2))
	assert.Equal(t, "1.2345", FormatNumber(1.2345))
	assert.Equal(t, "100", FormatNumber(100))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1,234,567.89", FormatCurrency(1234567.891))
	assert.Equal(t, "-$40.00", FormatCurrency(-40))
	assert.Equal(t, "$0.00", FormatCurrency(-0.001))
	assert.Equal(t, "+$10.00", FormatPnL(10))
	assert.Equal(t, "67%", FormatPercent(66.6))
}

func TestDates(t *testing.T) {
	d, ok := ParseDate("2024-03-15")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), d)

	d, ok = ParseDate("2024-03-15T22:30:00Z")
	require.True(t, ok)
	assert.Equal(t, "2024-03-15", FormatDate(d))

	_, ok = ParseDate("someday")
	assert.False(t, ok)

	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 5, FirstWeekdayOffset(2024, time.March))

	y, m, ok := ParseMonth("2024-03")
	require.True(t, ok)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.March, m)
	_, _, ok = ParseMonth("March")
	assert.False(t, ok)
}

func TestNewID_SortsInCreationOrder(t *testing.T) {
	prev := NewID()
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.Len(t, id, 26)
		assert.Equal(t, strings.ToLower(id), id)
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestRetry(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, BackoffFactor: 2}
	calls := 0
	err := Retry(context.Background(), cfg, func() error {
		calls++
		if calls < 3 {
			return errors.New("busy")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	fatal := errors.New("fatal")
	cfg.Retryable = func(err error) bool { return err != fatal }
	err = Retry(context.Background(), cfg, func() error {
		calls++
		return fatal
	})
	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls)
}
