package journal

// Confirmer gates destructive actions. Declining leaves all state unchanged.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Confirmed is a Confirmer with a fixed answer, for flags such as --yes.
type Confirmed bool

// Confirm returns the fixed answer.
func (c Confirmed) Confirm(string) bool { return bool(c) }

func confirmed(c Confirmer, prompt string) bool {
	return c != nil && c.Confirm(prompt)
}
