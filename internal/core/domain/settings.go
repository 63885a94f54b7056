package domain

import "time"

// LoaderSettings are the defaults a run starts from before flags apply.
type LoaderSettings struct {
	// Server is the FHIR base URL.
	Server string

	// Format restricts directory walks to one suffix ("json", "xml", "ttl").
	Format string

	// Recursive descends into subdirectories.
	Recursive bool

	// Pattern is a regular expression matched against file basenames.
	Pattern string

	// MissingID is "create" or "fail".
	MissingID string

	// RateLimit caps requests per second; 0 means unlimited.
	RateLimit float64

	// Timeout bounds each HTTP request; 0 means none.
	Timeout time.Duration
}

// DefaultLoaderSettings returns the built-in defaults.
func DefaultLoaderSettings() LoaderSettings {
	return LoaderSettings{MissingID: "create"}
}
