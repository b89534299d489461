package briefboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/briefboard/briefboard/internal/kvstore"
)

const (
	// SettingsKeyPrefix prefixes the persisted settings of a scope.
	SettingsKeyPrefix = "briefboard_settings"

	// LastSeenKeyPrefix prefixes the persisted last-seen instant of a scope.
	LastSeenKeyPrefix = "briefboard_last_seen"
)

var (
	// ErrInvalidSettings is returned by SaveSettings when validation fails.
	ErrInvalidSettings = errors.New("invalid briefboard settings")

	// ErrVisitNotPersisted is returned by RecordVisit when the visit could not be stored.
	// The prompt keeps working without it, so callers should treat it as a warning.
	ErrVisitNotPersisted = errors.New("briefboard visit was not persisted")

	validate = validator.New() //nolint:gochecknoglobals
)

// Config holds the Service options.
type Config struct {
	// Defaults are used for scopes without stored settings and for missing fields.
	Defaults Settings
	// Location is the time zone gates are evaluated in. Nil means time.Local.
	Location *time.Location
	// Clock supplies now. Nil means SystemClock.
	Clock Clock
}

// Service binds the visibility policy to a key/value store, one scope per user id.
// The empty user id is the global scope.
type Service struct {
	store    kvstore.Store
	defaults Settings
	location *time.Location
	clock    Clock
}

// New creates a Service. A nil store behaves like a store that never persists anything.
func New(store kvstore.Store, cfg Config) *Service {
	if store == nil {
		store = kvstore.Nop{}
	}

	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	if cfg.Clock == nil {
		cfg.Clock = SystemClock
	}

	return &Service{
		store:    store,
		defaults: cfg.Defaults.Normalize(DefaultSettings()),
		location: cfg.Location,
		clock:    cfg.Clock,
	}
}

// Defaults returns a copy of the default settings.
func (s *Service) Defaults() Settings {
	return s.defaults.Clone()
}

// Now returns the clock's current instant in the evaluation time zone.
func (s *Service) Now() time.Time {
	return s.clock.Now().In(s.location)
}

// LoadSettings returns the settings of a scope. The defaults are stored on the
// first load. Unreadable or malformed values fall back to the defaults.
func (s *Service) LoadSettings(ctx context.Context, userID string) Settings {
	key := kvstore.Key(SettingsKeyPrefix, userID)

	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to read briefboard settings, using defaults")
		return s.Defaults()
	}

	if !ok {
		settings := s.Defaults()
		if err := s.write(ctx, key, settings); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to store default briefboard settings")
		}

		return settings
	}

	settings, err := DecodeSettings([]byte(raw), s.defaults)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("malformed briefboard settings, using defaults")
	}

	return settings
}

// SaveSettings validates and stores the settings of a scope.
func (s *Service) SaveSettings(ctx context.Context, userID string, settings Settings) error {
	if settings.Frequency == "" {
		settings.Frequency = s.defaults.Frequency
	}

	if err := validate.Struct(settings); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	settings = settings.Normalize(s.defaults)

	key := kvstore.Key(SettingsKeyPrefix, userID)
	if err := s.write(ctx, key, settings); err != nil {
		return err
	}

	log.Debug().
		Str("key", key).
		Str("frequency", settings.Frequency.String()).
		Msg("briefboard settings saved")

	return nil
}

// UpdateSettings replaces the settings of a scope with u, fields missing in u
// take the default value. It returns the stored settings.
func (s *Service) UpdateSettings(ctx context.Context, userID string, u SettingsUpdate) (Settings, error) {
	settings := u.Merge(s.defaults)
	if err := s.SaveSettings(ctx, userID, settings); err != nil {
		return Settings{}, err
	}

	return settings.Normalize(s.defaults), nil
}

// LastSeen returns the last recorded visit of a scope, or nil if there is none
// or the stored value can not be parsed.
func (s *Service) LastSeen(ctx context.Context, userID string) *time.Time {
	key := kvstore.Key(LastSeenKeyPrefix, userID)

	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to read briefboard last seen")
		return nil
	}

	if !ok {
		return nil
	}

	var seen time.Time
	// values may be plain strings or JSON encoded strings
	if err := json.Unmarshal([]byte(raw), &seen); err != nil {
		seen, err = time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("malformed briefboard last seen, ignoring it")
			return nil
		}
	}

	return &seen
}

// RecordVisit overwrites the last-seen instant of a scope with now and returns it.
// A storage failure is logged and returned wrapped in ErrVisitNotPersisted.
func (s *Service) RecordVisit(ctx context.Context, userID string) (time.Time, error) {
	now := s.clock.Now()
	key := kvstore.Key(LastSeenKeyPrefix, userID)

	if err := s.store.Set(ctx, key, now.UTC().Format(time.RFC3339Nano)); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to record briefboard visit")
		return now, fmt.Errorf("%w: %w", ErrVisitNotPersisted, err)
	}

	return now, nil
}

// ShouldShow evaluates the visibility policy for a scope at the clock's now.
func (s *Service) ShouldShow(ctx context.Context, userID string) Decision {
	d := Evaluate(s.LoadSettings(ctx, userID), s.LastSeen(ctx, userID), s.Now())
	observeDecision(d)

	log.Trace().
		Str("user", userID).
		Bool("show", d.Show).
		Str("gate", string(d.Gate)).
		Msg("briefboard visibility evaluated")

	return d
}

func (s *Service) write(ctx context.Context, key string, settings Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	return s.store.Set(ctx, key, string(data)) //nolint:wrapcheck
}
