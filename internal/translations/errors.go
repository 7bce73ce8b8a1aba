// Package translations loads and serves the language-keyed translation table.
package translations

import "fmt"

// LoadError describes why the translation source could not be used.
// Store.Load never returns it; it is logged before the default table is installed.
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("translation load error from %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("translation load error from %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// FetchError represents a failure retrieving the raw translation resource.
type FetchError struct {
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}
