package logger

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrAppNameIsEmpty is returned if Log.AppName was not defined.
	ErrAppNameIsEmpty = errors.New("config Log.AppName can not be empty")

	// ErrServiceNameIsEmpty is returned if Log.ServiceName was not defined.
	ErrServiceNameIsEmpty = errors.New("config Log.ServiceName can not be empty")

	// ErrUnknownLogLevel is returned if Log.LogLevel is not a zerolog level.
	ErrUnknownLogLevel = errors.New("config Log.LogLevel is not supported")
)

// ErrorHandler reports events zerolog failed to write. Init installs it as
// zerolog.ErrorHandler.
func ErrorHandler(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "briefboard logger: could not write event: %v\n", err)
}
