package diagnosis

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySymptomSet is returned when normalization leaves no symptom tokens.
	ErrEmptySymptomSet = errors.New("no symptoms entered")
	// ErrNoMatch is returned when no disease shares a symptom with the query.
	ErrNoMatch = errors.New("no matching disease found")

	// ErrInvalidKnowledgeBase marks a disease table that cannot be loaded.
	ErrInvalidKnowledgeBase = errors.New("invalid knowledge base")
	// ErrInvalidConfig marks a setting outside its allowed values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

func invalidConfig(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func invalidKnowledgeBase(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidKnowledgeBase, fmt.Sprintf(format, args...))
}
