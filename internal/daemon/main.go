// Package daemon wires configuration, storage and the web service together.
package daemon

import (
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/briefboard/briefboard/internal/config"
	"github.com/briefboard/briefboard/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	runtime    *Runtime
	webService *web.Service
}

// Start serves the web service until a shutdown signal arrives, then closes the store.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	addr := ":" + strconv.Itoa(d.cfg.Webserver.Port)
	log.Info().Str("addr", addr).Str("url", d.cfg.Webserver.URL).Msg("starting briefboard web service")

	err := d.webService.Start(addr)

	if cerr := d.runtime.Close(); cerr != nil {
		log.Error().Err(cerr).Msg("failed to close briefboard storage")
	}

	return err
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil, nil
	}

	runtime, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		runtime:    runtime,
		webService: web.New(cfg, runtime.Briefboard, runtime.Calendar),
	}, nil
}
