package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownStorageDriver error if config storage.driver is not supported.
	ErrUnknownStorageDriver = errors.New("toml config storage.driver is not supported")

	// ErrUnknownGormEngine error if config db.gormEngine is not supported.
	ErrUnknownGormEngine = errors.New("toml config db.gormEngine is not supported")

	// ErrUnknownTimeZone error if config briefboard.timeZone can not be loaded.
	ErrUnknownTimeZone = errors.New("toml config briefboard.timeZone is unknown")
)
