// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/briefboard/briefboard/internal/config"
)

// Create builds the MySQL Data Source Name from the configuration.
func Create(dbCfg *config.Config) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Host,
		dbCfg.DB.Port,
		dbCfg.DB.Name,
		dbCfg.DB.Extras,
	)

	return out
}

// Postgres builds the PostgreSQL connection URI from the configuration.
// DB.Extras is used as the raw query string, e.g. "sslmode=disable".
func Postgres(dbCfg *config.Config) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(dbCfg.DB.User, dbCfg.DB.Password),
		Host:     dbCfg.DB.Host,
		Path:     "/" + dbCfg.DB.Name,
		RawQuery: dbCfg.DB.Extras,
	}

	if dbCfg.DB.Port != 0 {
		u.Host += ":" + strconv.Itoa(dbCfg.DB.Port)
	}

	return u.String()
}

// SQLite returns the database file of the configuration, in memory when empty.
func SQLite(dbCfg *config.Config) string {
	if dbCfg.DB.Name == "" {
		return ":memory:"
	}

	if dbCfg.DB.Extras == "" {
		return dbCfg.DB.Name
	}

	return dbCfg.DB.Name + "?" + dbCfg.DB.Extras
}
