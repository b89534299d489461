// Package main provides the entry point of briefboard. It serves a JSON API
// deciding when a dashboard shows its daily briefing prompt, storing per user
// settings and last-seen timestamps in a key/value store backed by gorm or a
// gofiber storage driver. The one-shot commands check and visit use the same
// storage from the command line.
package main
