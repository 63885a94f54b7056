package driving

import "github.com/custodia-labs/fhir-loader/internal/core/domain"

// SettingsService manages persisted loader defaults.
type SettingsService interface {
	// Get returns defaults overlaid with the config file and environment.
	Get() (*domain.LoaderSettings, error)

	// Set validates and persists one setting by key.
	Set(key, value string) error

	// Keys returns the settable keys in display order.
	Keys() []string
}
