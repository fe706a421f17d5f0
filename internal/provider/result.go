package provider

import (
	"errors"
	"fmt"
)

// ErrTooManyRedirects is returned when a request exceeds the configured redirect hop limit.
var ErrTooManyRedirects = errors.New("too many redirects")

// SpeciesMetadata is the structured result from a species metadata provider.
type SpeciesMetadata struct {
	// Image is the artwork URL, nil when the provider has none.
	Image       *string
	Description string
}

// AliasRecord is one entry of the species alias reference dataset.
type AliasRecord struct {
	ID      string
	English string
	French  string
}

// StatusError reports a non-2xx response from an external provider.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}
