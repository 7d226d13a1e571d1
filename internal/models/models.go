// Package models provides domain models for the trading journal.
package models

import "strings"

// Direction represents the side of a journaled trade.
type Direction string

const (
	DirectionLong  Direction = "Long"
	DirectionShort Direction = "Short"
)

// TradeStatus represents the committed classification of a trade.
type TradeStatus string

const (
	StatusWin       TradeStatus = "WIN"
	StatusLoss      TradeStatus = "LOSS"
	StatusBreakEven TradeStatus = "BREAK_EVEN"
	StatusOpen      TradeStatus = "OPEN"
)

// Outcome is the outcome selector of the trade form.
// The empty outcome means no outcome has been chosen yet.
type Outcome string

const (
	OutcomeUnset     Outcome = ""
	OutcomeWin       Outcome = "Win"
	OutcomeLoss      Outcome = "Loss"
	OutcomeBreakeven Outcome = "Breakeven"
)

// Status maps a form outcome onto the committed status.
// Anything that is not a win or a loss commits as BREAK_EVEN.
func (o Outcome) Status() TradeStatus {
	switch o {
	case OutcomeWin:
		return StatusWin
	case OutcomeLoss:
		return StatusLoss
	default:
		return StatusBreakEven
	}
}

// OutcomeFromStatus maps a committed status back onto the form outcome.
func OutcomeFromStatus(s TradeStatus) Outcome {
	switch s {
	case StatusWin:
		return OutcomeWin
	case StatusLoss:
		return OutcomeLoss
	default:
		return OutcomeBreakeven
	}
}

// ParseOutcome normalises user input such as "win", "LOSS" or "be".
func ParseOutcome(s string) Outcome {
	switch normalize(s) {
	case "win", "w":
		return OutcomeWin
	case "loss", "l":
		return OutcomeLoss
	case "breakeven", "break_even", "be":
		return OutcomeBreakeven
	default:
		return OutcomeUnset
	}
}

// ParseDirection normalises user input such as "long" or "SHORT".
// Unknown input yields the empty direction.
func ParseDirection(s string) Direction {
	switch normalize(s) {
	case "long", "buy":
		return DirectionLong
	case "short", "sell":
		return DirectionShort
	default:
		return ""
	}
}

// ParseStatus normalises a status filter value.
func ParseStatus(s string) TradeStatus {
	switch normalize(s) {
	case "win":
		return StatusWin
	case "loss":
		return StatusLoss
	case "break_even", "breakeven", "be":
		return StatusBreakEven
	case "open":
		return StatusOpen
	default:
		return ""
	}
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
