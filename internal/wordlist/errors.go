package wordlist

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownLanguage is returned when a language ID is not in the catalog.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrUnknownLevel is returned when a level name is not bronze, silver or gold.
	ErrUnknownLevel = errors.New("unknown level")
)

// UnknownLanguageError names the language that was not found.
type UnknownLanguageError struct {
	ID string
}

func (e *UnknownLanguageError) Error() string {
	return fmt.Sprintf("unknown language %q", e.ID)
}

func (e *UnknownLanguageError) Unwrap() error { return ErrUnknownLanguage }

// UnknownLevelError names the level that could not be parsed.
type UnknownLevelError struct {
	Name string
}

func (e *UnknownLevelError) Error() string {
	return fmt.Sprintf("unknown level %q", e.Name)
}

func (e *UnknownLevelError) Unwrap() error { return ErrUnknownLevel }
