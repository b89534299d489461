package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"gorm.io/gorm"

	"github.com/briefboard/briefboard/internal/db/controller/setting"
)

// Gorm stores values as rows of the settings table.
type Gorm struct {
	db *gorm.DB
}

// NewGorm creates a store on top of db. The settings table must already be migrated.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// Get returns the value stored under key.
func (g *Gorm) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrKeyEmpty
	}

	s, err := setting.Get(g.withContext(ctx), key)
	if errors.Is(err, setting.ErrSettingNotFound) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}

	return string(s.Value), true, nil
}

// Set upserts value under key. SQLite lock errors are retried with backoff.
func (g *Gorm) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrKeyEmpty
	}

	var critical error

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second)) //nolint:mnd

	err := retrier.Do(ctx, func() error {
		_, err := setting.Set(g.withContext(ctx), key, []byte(value))
		if err != nil && isLockError(err) {
			return err // retry
		}

		critical = err

		return nil
	})
	if critical != nil {
		return fmt.Errorf("set %s: %w", key, critical)
	}

	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	return nil
}

func (g *Gorm) withContext(ctx context.Context) *gorm.DB {
	if g.db == nil {
		return nil
	}

	return g.db.WithContext(ctx)
}

// isLockError checks if an error is a SQLite lock/busy error.
func isLockError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()

	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}
