package models

// RuleCategory is one of the four rule lists of a strategy.
type RuleCategory string

const (
	CategoryAnalysis RuleCategory = "Analysis"
	CategorySetup    RuleCategory = "Setup"
	CategoryEntry    RuleCategory = "Entry"
	CategoryRisk     RuleCategory = "Risk"
)

// RuleCategories lists the categories in checklist order.
var RuleCategories = []RuleCategory{CategoryAnalysis, CategorySetup, CategoryEntry, CategoryRisk}

// Group returns the display group of a category.
func (c RuleCategory) Group() string {
	if c == CategoryRisk {
		return "Risk Management"
	}
	return string(c)
}

// ParseRuleCategory normalises "analysis", "risk", ... Unknown input yields "".
func ParseRuleCategory(s string) RuleCategory {
	switch normalize(s) {
	case "analysis":
		return CategoryAnalysis
	case "setup":
		return CategorySetup
	case "entry":
		return CategoryEntry
	case "risk", "risk_management":
		return CategoryRisk
	default:
		return ""
	}
}

// StrategyRules holds the four ordered rule lists of a strategy.
type StrategyRules struct {
	Analysis []string `json:"analysis" yaml:"analysis"`
	Setup    []string `json:"setup" yaml:"setup"`
	Entry    []string `json:"entry" yaml:"entry"`
	Risk     []string `json:"risk" yaml:"risk"`
}

// List returns the rules of one category.
func (r StrategyRules) List(c RuleCategory) []string {
	switch c {
	case CategoryAnalysis:
		return r.Analysis
	case CategorySetup:
		return r.Setup
	case CategoryEntry:
		return r.Entry
	case CategoryRisk:
		return r.Risk
	}
	return nil
}

// WithList returns a copy of the rules with one category replaced.
func (r StrategyRules) WithList(c RuleCategory, rules []string) StrategyRules {
	switch c {
	case CategoryAnalysis:
		r.Analysis = rules
	case CategorySetup:
		r.Setup = rules
	case CategoryEntry:
		r.Entry = rules
	case CategoryRisk:
		r.Risk = rules
	}
	return r
}

// Count returns the total number of rules across all categories.
func (r StrategyRules) Count() int {
	return len(r.Analysis) + len(r.Setup) + len(r.Entry) + len(r.Risk)
}

// Strategy represents a named trading edge definition.
// Trades link to it by Title, not by ID.
type Strategy struct {
	ID       string        `json:"id" yaml:"id"`
	Title    string        `json:"title" yaml:"title"`
	Type     string        `json:"type" yaml:"type"`
	Rules    StrategyRules `json:"rules" yaml:"rules"`
	IsActive bool          `json:"isActive" yaml:"isActive"`
	WinRate  string        `json:"winRate" yaml:"-"`
}

// ChecklistItem represents one pre-trade verification line.
type ChecklistItem struct {
	ID        string       `json:"id"`
	Label     string       `json:"label"`
	Category  RuleCategory `json:"category"`
	Group     string       `json:"group"`
	IsChecked bool         `json:"isChecked"`
}

// Owns reports whether a trade is attributed to the strategy. Trades link to
// strategies by title, so renaming a strategy detaches its earlier trades.
func (s Strategy) Owns(t Trade) bool {
	return t.Setup == s.Title
}

// FindStrategyByTitle returns the first strategy with the given title.
func FindStrategyByTitle(strategies []Strategy, title string) (Strategy, bool) {
	for _, s := range strategies {
		if s.Title == title {
			return s, true
		}
	}
	return Strategy{}, false
}
