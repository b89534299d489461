// Package models contains database model definitions.
package models

import "time"

// Setting is one key/value row. Value holds the raw bytes of the persisted
// string, usually JSON or an RFC 3339 timestamp.
type Setting struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:191"`
	Value     []byte
	UpdatedAt time.Time
}
