package korekta

import (
	"fmt"
	"strings"
)

// Request carries everything a Client needs for one correction call.
type Request struct {
	Model        string
	APIKey       string
	SystemPrompt string
	Instruction  string
	Text         string
	Stream       bool // ignored by batch-only clients
}

// Validate checks the preconditions every client enforces before touching
// the network.
func (r Request) Validate() error {
	if r.APIKey == "" {
		return fmt.Errorf("API key is empty: %w", ErrValidation)
	}
	if r.Model == "" {
		return fmt.Errorf("model is empty: %w", ErrValidation)
	}
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("text to correct is empty: %w", ErrValidation)
	}
	return nil
}

// UserContent returns the user turn sent to every backend: the instruction
// followed by the text fenced between separator lines.
func (r Request) UserContent() string {
	return fmt.Sprintf("%s\n\n---\n%s\n---", r.Instruction, r.Text)
}
