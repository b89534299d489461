package config

import (
	"github.com/briefboard/briefboard/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode    bool // enable dev mode for development
	DB         DB
	Storage    Storage
	Briefboard Briefboard
	Log        logger.Log
	Title      string
	Webserver  Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool   // disable recover middleware
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
	CheckAliveURI  string // path answering load balancer health checks
}

// Briefboard holds the prompt defaults and the evaluation time zone.
type Briefboard struct {
	// TimeZone is an IANA name ("Europe/Berlin"), "UTC" or "Local".
	TimeZone string
	Defaults BriefboardDefaults
}

// BriefboardDefaults are the settings a scope starts with.
type BriefboardDefaults struct {
	Frequency             string
	AllowedDays           []string
	AllowedTimes          []string
	SpecificDates         []string
	BriefingNotifications *bool // nil means enabled
}
