package models

// User represents the signed-in journal owner.
type User struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	WelcomeMessage string `json:"welcomeMessage,omitempty"`
}

// OptionCategory names one of the customizable form option lists.
type OptionCategory string

const (
	OptionPlatforms   OptionCategory = "platforms"
	OptionSessions    OptionCategory = "sessions"
	OptionTimeframes  OptionCategory = "timeframes"
	OptionInstruments OptionCategory = "instruments"
)

// OptionCategories lists the option categories in display order.
var OptionCategories = []OptionCategory{OptionPlatforms, OptionSessions, OptionTimeframes, OptionInstruments}

// FormOptions holds the user-customizable choice lists of the trade form.
type FormOptions struct {
	Platforms   []string `json:"platforms"`
	Sessions    []string `json:"sessions"`
	Timeframes  []string `json:"timeframes"`
	Instruments []string `json:"instruments"`
}

// DefaultFormOptions returns the compiled-in option lists.
func DefaultFormOptions() FormOptions {
	return FormOptions{
		Platforms:   []string{"FTMO Account", "FTMO Challenge", "FTMO Verification", "Topstep Combine", "Topstep XFA", "Topstep Live"},
		Sessions:    []string{"Tokyo", "London", "New York"},
		Timeframes:  []string{"M1", "M5", "M15", "M30", "H1", "H4", "D", "W"},
		Instruments: []string{"XAUUSD", "NASDAQ 100", "S&P 500", "EURUSD", "GBPJPY"},
	}
}

// WithDefaults replaces every missing list with its compiled-in default.
// A list stored empty on purpose is kept.
func (o FormOptions) WithDefaults() FormOptions {
	defaults := DefaultFormOptions()
	for _, c := range OptionCategories {
		if o.List(c) == nil {
			o = o.WithList(c, defaults.List(c))
		}
	}
	return o
}

// List returns the values of one category.
func (o FormOptions) List(c OptionCategory) []string {
	switch c {
	case OptionPlatforms:
		return o.Platforms
	case OptionSessions:
		return o.Sessions
	case OptionTimeframes:
		return o.Timeframes
	case OptionInstruments:
		return o.Instruments
	}
	return nil
}

// WithList returns a copy with one category replaced.
func (o FormOptions) WithList(c OptionCategory, values []string) FormOptions {
	switch c {
	case OptionPlatforms:
		o.Platforms = values
	case OptionSessions:
		o.Sessions = values
	case OptionTimeframes:
		o.Timeframes = values
	case OptionInstruments:
		o.Instruments = values
	}
	return o
}

// ParseOptionCategory normalises a category name. Unknown input yields "".
func ParseOptionCategory(s string) OptionCategory {
	switch normalize(s) {
	case "platforms", "platform":
		return OptionPlatforms
	case "sessions", "session":
		return OptionSessions
	case "timeframes", "timeframe":
		return OptionTimeframes
	case "instruments", "instrument", "symbols":
		return OptionInstruments
	default:
		return ""
	}
}
