// Package source defines the Source interface and loaders for raw log text.
package source

import (
	"context"
	"errors"
)

// ErrEmptyCommand is returned when an exec source has no command.
var ErrEmptyCommand = errors.New("command is empty")

// Source loads the complete raw text of a log.
type Source interface {
	// Load returns the raw log text. Implementations honour ctx
	// cancellation where the underlying read can block.
	Load(ctx context.Context) (string, error)

	// Name returns a human-readable identifier for this source.
	Name() string
}
