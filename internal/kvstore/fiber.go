package kvstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/storage/mysql/v2"
	"github.com/gofiber/storage/postgres/v3"
)

const (
	// DriverMySQL selects the gofiber mysql storage driver.
	DriverMySQL = "mysql"

	// DriverPostgres selects the gofiber postgres storage driver.
	DriverPostgres = "postgres"
)

// ErrUnknownDriver is returned for an unsupported storage driver name.
var ErrUnknownDriver = errors.New("unknown storage driver")

// FiberStorage is the part of a gofiber storage driver used by Fiber.
type FiberStorage interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
}

// Fiber adapts a gofiber storage driver. Values never expire.
type Fiber struct {
	storage FiberStorage
}

// NewFiber wraps storage.
func NewFiber(storage FiberStorage) *Fiber {
	return &Fiber{storage: storage}
}

// OpenFiber connects the gofiber storage driver named by driver.
// The drivers panic when the database is unreachable, that is returned as error.
func OpenFiber(driver, connectionURI, table string) (f *Fiber, err error) {
	defer func() {
		if r := recover(); r != nil {
			f, err = nil, fmt.Errorf("open %s storage: %v", driver, r)
		}
	}()

	switch driver {
	case DriverMySQL:
		return NewFiber(mysql.New(mysql.Config{
			ConnectionURI: connectionURI,
			Table:         table,
		})), nil
	case DriverPostgres:
		return NewFiber(postgres.New(postgres.Config{
			ConnectionURI: connectionURI,
			Table:         table,
		})), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// Get returns the value stored under key.
func (f *Fiber) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrKeyEmpty
	}

	val, err := f.storage.Get(key)
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}

	if val == nil {
		return "", false, nil
	}

	return string(val), true, nil
}

// Set stores value under key without expiration.
func (f *Fiber) Set(_ context.Context, key, value string) error {
	if key == "" {
		return ErrKeyEmpty
	}

	if err := f.storage.Set(key, []byte(value), 0); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	return nil
}

// Close closes the underlying driver when it supports closing.
func (f *Fiber) Close() error {
	if c, ok := f.storage.(io.Closer); ok {
		return c.Close() //nolint:wrapcheck
	}

	return nil
}
