package source

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ExecSource runs a command and uses its combined stdout/stderr as log text,
// e.g. `kubectl logs deploy/api` or `ssh host cat storage/logs/laravel.log`.
type ExecSource struct {
	command string
	args    []string
}

// NewExecSource creates a source that runs the given command with arguments.
func NewExecSource(command string, args []string) *ExecSource {
	return &ExecSource{
		command: command,
		args:    args,
	}
}

// ParseCommandLine splits a command line on whitespace into an ExecSource.
func ParseCommandLine(line string) (*ExecSource, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, ErrEmptyCommand
	}
	return NewExecSource(fields[0], fields[1:]), nil
}

// Name returns the source identifier.
func (s *ExecSource) Name() string {
	return fmt.Sprintf("exec:%s", s.command)
}

// Load runs the command to completion. The command is killed if ctx is
// cancelled.
func (s *ExecSource) Load(ctx context.Context) (string, error) {
	if s.command == "" {
		return "", ErrEmptyCommand
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, s.command, s.args...)
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("run %s: %w", s.command, err)
	}
	return out.String(), nil
}
