package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// StdinSource reads log text piped to the process (pipe mode).
type StdinSource struct {
	r io.Reader
}

// NewStdinSource creates a source that reads from r, or os.Stdin when r is nil.
func NewStdinSource(r io.Reader) *StdinSource {
	if r == nil {
		r = os.Stdin
	}
	return &StdinSource{r: r}
}

// Name returns the source identifier.
func (s *StdinSource) Name() string {
	return "stdin"
}

// Load reads until EOF or until ctx is cancelled.
func (s *StdinSource) Load(ctx context.Context) (string, error) {
	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var sb strings.Builder
		_, err := io.Copy(&sb, s.r)
		done <- result{sb.String(), err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", fmt.Errorf("read stdin: %w", r.err)
		}
		return r.text, nil
	}
}
