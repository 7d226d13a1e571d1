package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-journal/internal/models"
	"trade-journal/pkg/utils"
)

func TestEquityCurve_Empty(t *testing.T) {
	assert.Empty(t, EquityCurve(nil))
}

func TestEquityCurve_StartAnchorAndOrdering(t *testing.T) {
	trades := []models.Trade{
		trade("a", "2024-03-10", 10, models.StatusWin),
		trade("b", "2024-01-05", -4, models.StatusLoss),
		trade("c", "2024-03-10", 5.555, models.StatusWin),
		trade("d", "2024-02-01T09:30:00", 1, models.StatusWin),
	}

	curve := EquityCurve(trades)

	require.Len(t, curve, 4)
	assert.Equal(t, EquityPoint{Name: StartLabel}, curve[0])
	assert.Equal(t, "2024-01-05", curve[1].Name)
	assert.Equal(t, -4.0, curve[1].Value)
	assert.Equal(t, "2024-02-01T09:30:00", curve[2].Name)
	assert.Equal(t, -3.0, curve[2].Value)
	assert.Equal(t, "2024-03-10", curve[3].Name)
	assert.Equal(t, 12.56, curve[3].Value)
	assert.InDelta(t, 15.555, curve[3].DailyPnL, 1e-9)
}

func TestEquityCurve_UnparseableDatesLast(t *testing.T) {
	trades := []models.Trade{
		trade("a", "someday", 1, models.StatusWin),
		trade("b", "2024-01-01", 2, models.StatusWin),
	}
	curve := EquityCurve(trades)
	require.Len(t, curve, 3)
	assert.Equal(t, "2024-01-01", curve[1].Name)
	assert.Equal(t, "someday", curve[2].Name)
}

// TestProperty_EquityRecurrence verifies curve[0] is the zero Start anchor and
// each later value is the previous value plus that date's P&L.
func TestProperty_EquityRecurrence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("cumulative recurrence holds", prop.ForAll(
		func(offsets []int, amounts []int) bool {
			n := len(offsets)
			if len(amounts) < n {
				n = len(amounts)
			}
			if n == 0 {
				return len(EquityCurve(nil)) == 0
			}
			base := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
			trades := make([]models.Trade, 0, n)
			for i := 0; i < n; i++ {
				d := utils.FormatDate(base.AddDate(0, 0, offsets[i]))
				trades = append(trades, trade(fmt.Sprint(i), d, float64(amounts[i])/100, models.StatusWin))
			}

			curve := EquityCurve(trades)
			if curve[0].Name != StartLabel || curve[0].Value != 0 {
				return false
			}
			for i := 1; i < len(curve); i++ {
				want := utils.Round2(utils.Add(curve[i-1].Value, curve[i].DailyPnL))
				if curve[i].Value != want {
					t.Logf("point %d: got %v want %v", i, curve[i].Value, want)
					return false
				}
				if i > 1 && !dateLess(curve[i-1].Name, curve[i].Name) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 60)), gen.SliceOf(gen.IntRange(-50000, 50000)),
	))

	properties.TestingRun(t)
}
