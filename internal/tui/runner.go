package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Geun-Oh/logview/internal/collection"
	"github.com/Geun-Oh/logview/internal/parser"
	"github.com/Geun-Oh/logview/internal/source"
)

// RunConfig holds configuration for the TUI browser.
type RunConfig struct {
	Source  source.Source
	Parser  *parser.Parser
	PerPage int
	Watch   bool // reload when the file changes; requires a file source
	Logger  *slog.Logger
}

// Run loads the source and starts the browser. It blocks until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, cfg *RunConfig) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var file *source.FileSource
	if cfg.Watch {
		fs, ok := cfg.Source.(*source.FileSource)
		if !ok {
			return fmt.Errorf("tui: --watch requires a file source, got %s", cfg.Source.Name())
		}
		file = fs
	}

	load := func() (*collection.Collection, error) {
		raw, err := cfg.Source.Load(ctx)
		if err != nil {
			return nil, err
		}
		opts := []collection.Option{}
		if cfg.Parser != nil {
			opts = append(opts, collection.WithParser(cfg.Parser))
		}
		return collection.Load(raw, opts...), nil
	}

	c, err := load()
	if err != nil {
		return fmt.Errorf("tui: load source: %w", err)
	}

	model := NewModel(cfg.Source.Name(), c, cfg.PerPage)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if file != nil {
		w, err := NewWatcher(file.Path(), logger)
		if err != nil {
			return fmt.Errorf("tui: watch %s: %w", file.Path(), err)
		}
		go w.Start(ctx, func() {
			c, err := load()
			if err != nil {
				program.Send(ErrorMsg{Err: err})
				return
			}
			logger.Debug("reloaded", "source", cfg.Source.Name())
			program.Send(ReloadMsg{Collection: c})
		})
	}

	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
