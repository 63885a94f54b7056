package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/fhir-loader/internal/core/domain"
	"github.com/custodia-labs/fhir-loader/internal/core/ports/driven"
	"github.com/custodia-labs/fhir-loader/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyServer    = "server"
	KeyFormat    = "format"
	KeyRecursive = "recursive"
	KeyPattern   = "pattern"
	KeyMissingID = "missing_id"
	KeyRate      = "rate"
	KeyTimeout   = "timeout"
)

// EnvPrefix prefixes the environment variable of every key,
// e.g. FHIR_LOADER_SERVER.
const EnvPrefix = "FHIR_LOADER_"

var settingKeys = []string{KeyServer, KeyFormat, KeyRecursive, KeyPattern, KeyMissingID, KeyRate, KeyTimeout}

// SettingsService layers defaults, the config store and the environment.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
// configStore may be nil, in which case only defaults and environment apply.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Keys returns the settable keys.
func (s *SettingsService) Keys() []string {
	return SettingKeys()
}

// SettingKeys returns the settable keys in display order.
func SettingKeys() []string {
	return append([]string(nil), settingKeys...)
}

// Get retrieves current loader settings.
func (s *SettingsService) Get() (*domain.LoaderSettings, error) {
	settings := domain.DefaultLoaderSettings()

	for _, key := range settingKeys {
		raw, ok := s.lookup(key)
		if !ok {
			continue
		}
		if err := apply(&settings, key, raw); err != nil {
			return nil, err
		}
	}
	return &settings, nil
}

// Set validates and persists one setting.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return fmt.Errorf("%w: no config store", domain.ErrInvalidInput)
	}
	var probe domain.LoaderSettings
	if err := apply(&probe, key, value); err != nil {
		return err
	}

	switch key {
	case KeyRecursive:
		return s.configStore.Set(key, probe.Recursive)
	case KeyRate:
		return s.configStore.Set(key, probe.RateLimit)
	default:
		return s.configStore.Set(key, value)
	}
}

// lookup prefers the environment over the config store.
func (s *SettingsService) lookup(key string) (string, bool) {
	if v := s.getenv(EnvPrefix + strings.ToUpper(key)); v != "" {
		return v, true
	}
	if s.configStore == nil {
		return "", false
	}
	val, ok := s.configStore.Get(key)
	if !ok {
		return "", false
	}
	return fmt.Sprint(val), true
}

func apply(settings *domain.LoaderSettings, key, raw string) error {
	invalid := func(err error) error {
		return fmt.Errorf("%w: %s=%q: %w", domain.ErrInvalidInput, key, raw, err)
	}

	switch key {
	case KeyServer:
		settings.Server = raw
	case KeyFormat:
		if raw != "" {
			if _, ok := domain.ParseFormat(raw); !ok {
				return invalid(errors.New("want json, xml or ttl"))
			}
		}
		settings.Format = raw
	case KeyRecursive:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return invalid(err)
		}
		settings.Recursive = b
	case KeyPattern:
		settings.Pattern = raw
	case KeyMissingID:
		if raw != "create" && raw != "fail" {
			return invalid(errors.New("want create or fail"))
		}
		settings.MissingID = raw
	case KeyRate:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < 0 {
			return invalid(errors.New("want a non-negative number"))
		}
		settings.RateLimit = f
	case KeyTimeout:
		d, err := parseDuration(raw)
		if err != nil {
			return invalid(err)
		}
		settings.Timeout = d
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return nil
}

// parseDuration accepts Go durations ("30s") or bare seconds ("30").
func parseDuration(str string) (time.Duration, error) {
	if secs, err := strconv.Atoi(str); err == nil {
		if secs < 0 {
			return 0, errors.New("negative duration")
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(str)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, errors.New("negative duration")
	}
	return d, nil
}
