// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvConfigJSON names the environment variable holding a JSON config override.
	EnvConfigJSON = "BRIEFBOARD_CONFIG_JSON"

	defaultShutDownTime  = 5
	defaultCheckAliveURI = "/checkalive"
	defaultStorageTable  = "briefboard_kv"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	v.SetConfigFile(path + "main.toml")
	v.SetConfigType("toml")

	if err = v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config from "+EnvConfigJSON)
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// Location loads the configured evaluation time zone.
func (b Briefboard) Location() (*time.Location, error) {
	switch strings.ToLower(b.TimeZone) {
	case "", "local":
		return time.Local, nil
	case "utc":
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(b.TimeZone)
	if err != nil {
		return nil, errors.Wrap(ErrUnknownTimeZone, err.Error())
	}

	return loc, nil
}

// validate minimal config settings and fill in defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	// validate webserver listening port
	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.CheckAliveURI == "" {
		c.Webserver.CheckAliveURI = defaultCheckAliveURI
	}

	switch c.Storage.Driver {
	case "":
		c.Storage.Driver = StorageDriverGorm
	case StorageDriverGorm, StorageDriverMySQL, StorageDriverPostgres, StorageDriverMemory, StorageDriverNone:
	default:
		return errors.Wrap(ErrUnknownStorageDriver, c.Storage.Driver)
	}

	if c.Storage.Table == "" {
		c.Storage.Table = defaultStorageTable
	}

	if c.Storage.Driver == StorageDriverGorm {
		switch c.DB.GormEngine {
		case GormEngineMySQL, GormEnginePostgres, GormEngineSQLite:
		default:
			return errors.Wrap(ErrUnknownGormEngine, c.DB.GormEngine)
		}
	}

	if _, err := c.Briefboard.Location(); err != nil {
		return errors.Wrap(err, invalidErrMessage)
	}

	return nil
}
