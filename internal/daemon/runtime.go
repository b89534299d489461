package daemon

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/briefboard/briefboard/internal/briefboard"
	"github.com/briefboard/briefboard/internal/calendar"
	"github.com/briefboard/briefboard/internal/config"
	"github.com/briefboard/briefboard/internal/db"
	"github.com/briefboard/briefboard/internal/db/dsn"
	"github.com/briefboard/briefboard/internal/kvstore"
)

// Runtime bundles the storage backed services of a configuration.
type Runtime struct {
	Store      kvstore.Store
	Briefboard *briefboard.Service
	Calendar   *calendar.Book

	close func() error
}

// Open connects the configured store and builds the services on top of it.
func Open(cfg *config.Config) (*Runtime, error) {
	store, closeFn, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Briefboard.Location()
	if err != nil {
		_ = closeFn()
		return nil, err //nolint:wrapcheck
	}

	defaults := Defaults(cfg.Briefboard.Defaults)

	return &Runtime{
		Store: store,
		Briefboard: briefboard.New(store, briefboard.Config{
			Defaults: defaults,
			Location: loc,
		}),
		Calendar: calendar.New(store),
		close:    closeFn,
	}, nil
}

// Close releases the store connection.
func (r *Runtime) Close() error {
	if r == nil || r.close == nil {
		return nil
	}

	return r.close()
}

// OpenStore opens the key/value store selected by cfg.Storage.Driver. The
// returned func closes the connection.
func OpenStore(cfg *config.Config) (kvstore.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Driver {
	case config.StorageDriverGorm, "":
		gdb, err := db.Open(cfg)
		if err != nil {
			return nil, nil, err //nolint:wrapcheck
		}

		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("database pool: %w", err)
		}

		log.Info().Str("engine", cfg.DB.GormEngine).Msg("briefboard storage: settings table")

		return kvstore.NewGorm(gdb), sqlDB.Close, nil
	case config.StorageDriverMySQL:
		return openFiber(kvstore.DriverMySQL, dsn.Create(cfg), cfg.Storage.Table)
	case config.StorageDriverPostgres:
		return openFiber(kvstore.DriverPostgres, dsn.Postgres(cfg), cfg.Storage.Table)
	case config.StorageDriverMemory:
		log.Warn().Msg("briefboard storage: process memory, nothing survives a restart")
		return kvstore.NewMemory(), noop, nil
	case config.StorageDriverNone:
		log.Warn().Msg("briefboard storage: disabled, defaults are used everywhere")
		return kvstore.Nop{}, noop, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownStorageDriver, cfg.Storage.Driver)
	}
}

func openFiber(driver, uri, table string) (kvstore.Store, func() error, error) {
	store, err := kvstore.OpenFiber(driver, uri, table)
	if err != nil {
		return nil, nil, err //nolint:wrapcheck
	}

	log.Info().Str("driver", driver).Str("table", table).Msg("briefboard storage: gofiber storage")

	return store, store.Close, nil
}

// Defaults converts the configured defaults. Unset values fall back to
// briefboard.DefaultSettings.
func Defaults(d config.BriefboardDefaults) briefboard.Settings {
	builtin := briefboard.DefaultSettings()

	s := briefboard.Settings{
		Frequency:             briefboard.Frequency(d.Frequency),
		AllowedDays:           d.AllowedDays,
		AllowedTimes:          d.AllowedTimes,
		SpecificDates:         d.SpecificDates,
		BriefingNotifications: builtin.BriefingNotifications,
	}

	if d.BriefingNotifications != nil {
		s.BriefingNotifications = *d.BriefingNotifications
	}

	if d.Frequency != "" && !s.Frequency.Valid() {
		log.Warn().Str("frequency", d.Frequency).Msg("unknown default briefboard frequency, using daily")
	}

	return s.Normalize(builtin)
}
