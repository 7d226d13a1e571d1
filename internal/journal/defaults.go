package journal

import "trade-journal/internal/models"

// DefaultStrategies returns the built-in playbook installed into a new journal.
func DefaultStrategies() []models.Strategy {
	return []models.Strategy{
		{
			ID:       "1",
			Title:    "Market Structure Shift",
			Type:     "Trend Following",
			IsActive: true,
			Rules: models.StrategyRules{
				Analysis: []string{
					"Identify market structure (e.g., higher highs/lows or lower highs/lows)",
					"Identify trend direction",
				},
				Setup: []string{
					"Wait for a break of the current market structure (e.g., a significant low in an uptrend or high in a downtrend)",
					"Identify a potential Point of Interest (POI) after the structure break",
				},
				Entry: []string{
					"Entry on pullback to the POI",
					"Look for confirmation signals like candlestick patterns or volume",
				},
				Risk: []string{
					"Place stop loss beyond the POI or structure break point",
					"Target a minimum Risk/Reward ratio of 1:2",
				},
			},
		},
		{
			ID:    "2",
			Title: "Break & Retest",
			Type:  "Trend Following",
			Rules: models.StrategyRules{
				Analysis: []string{"Identify key support/resistance levels on 4H/1H", "Determine overall trend direction"},
				Setup:    []string{"Price breaks key level with momentum", "Wait for pullback to the broken level"},
				Entry:    []string{"Bullish/Bearish engulfing on retest", "Volume confirmation"},
				Risk:     []string{"Stop loss below/above the retest candle", "R:R minimum 1:2"},
			},
		},
	}
}

// DefaultChecklist is the generic checklist used while no strategy is active.
func DefaultChecklist() []models.ChecklistItem {
	item := func(id, label string, c models.RuleCategory) models.ChecklistItem {
		return models.ChecklistItem{ID: id, Label: label, Category: c, Group: c.Group()}
	}
	return []models.ChecklistItem{
		item("1", "4H timeframe analysis", models.CategoryAnalysis),
		item("2", "1H timeframe analysis", models.CategoryAnalysis),
		item("3", "15M timeframe analysis", models.CategoryAnalysis),
		item("4", "Confirm market structure (trend continuation or reversal shift)", models.CategorySetup),
		item("5", "Identify recent swing high/low and mark POI", models.CategorySetup),
		item("6", "Confirm MACD and EMA with the direction", models.CategorySetup),
		item("7", "Price returns to POI", models.CategorySetup),
		item("8", "Market Structure Shift in the desired direction", models.CategoryEntry),
		item("9", "Price returns to micro POI", models.CategoryEntry),
		item("10", "Ensure MACD and EMA align", models.CategoryEntry),
		item("11", "Risk/Reward 1/2 or more", models.CategoryRisk),
		item("12", "TP and SL placed accurately", models.CategoryRisk),
	}
}
