// Package sink writes log entries to terminals, files and JSON streams.
package sink

import (
	"errors"
	"fmt"

	"github.com/Geun-Oh/logview/internal/entry"
)

// Sink is an output destination for parsed entries.
type Sink interface {
	Write(e *entry.LogEntry) error
	// Flush pushes buffered output to the destination.
	Flush() error
	Close() error
	// Name identifies the sink in errors and logs.
	Name() string
}

// CloseAll flushes then closes every sink, continuing past failures.
// The returned error joins every flush and close error.
func CloseAll(sinks ...Sink) error {
	var errs []error
	for _, s := range sinks {
		if err := s.Flush(); err != nil {
			errs = append(errs, fmt.Errorf("flush %s: %w", s.Name(), err))
		}
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}
