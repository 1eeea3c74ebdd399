package rewriting

import (
	"errors"
	"fmt"
)

var (
	ErrPhraserTimeout = errors.New("phraser timed out")
	ErrPhraserFailed  = errors.New("phraser failed")
	ErrUnusableOutput = errors.New("phraser output unusable after sanitization")
)

// GenerationFallbackError indica que um issue caiu para os templates determinísticos
type GenerationFallbackError struct {
	Err        error
	SourceRule string
	Details    string
}

func (e *GenerationFallbackError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s (%s): %s", e.Err.Error(), e.SourceRule, e.Details)
	}
	return fmt.Sprintf("%s (%s)", e.Err.Error(), e.SourceRule)
}

func (e *GenerationFallbackError) Unwrap() error {
	return e.Err
}

func NewGenerationFallbackError(err error, sourceRule, details string) *GenerationFallbackError {
	return &GenerationFallbackError{Err: err, SourceRule: sourceRule, Details: details}
}
