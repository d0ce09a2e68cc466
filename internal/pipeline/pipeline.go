// Package pipeline orchestrates Source → Collection → Filter → Sink processing.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Geun-Oh/logview/internal/collection"
	"github.com/Geun-Oh/logview/internal/entry"
	"github.com/Geun-Oh/logview/internal/filter"
	"github.com/Geun-Oh/logview/internal/monitor"
	"github.com/Geun-Oh/logview/internal/parser"
	"github.com/Geun-Oh/logview/internal/sink"
	"github.com/Geun-Oh/logview/internal/source"
)

// Config holds pipeline configuration.
type Config struct {
	Source  source.Source
	Parser  *parser.Parser // nil selects parser.Default()
	Filters *filter.Chain
	Alerts  *monitor.AlertEngine
	Metrics *monitor.ScanMetrics
	Sinks   []sink.Sink
	Tail    int // when > 0, only the newest Tail matching entries are written
	Logger  *slog.Logger
}

// Run executes the pipeline: loads the source, parses it lazily, filters,
// and writes to sinks. Returns when every entry has been written or ctx is
// cancelled. Sinks are flushed and closed in every case.
func Run(ctx context.Context, cfg *Config) (err error) {
	if cfg.Source == nil {
		return fmt.Errorf("pipeline: source is required")
	}
	if len(cfg.Sinks) == 0 {
		return fmt.Errorf("pipeline: at least one sink is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	defer func() {
		if cerr := sink.CloseAll(cfg.Sinks...); cerr != nil {
			err = errors.Join(err, fmt.Errorf("pipeline: %w", cerr))
		}
	}()

	raw, err := cfg.Source.Load(ctx)
	if err != nil {
		return fmt.Errorf("pipeline: load source: %w", err)
	}
	logger.Debug("source loaded", "source", cfg.Source.Name(), "bytes", len(raw))

	p := cfg.Parser
	if p == nil {
		p = parser.Default()
	}
	logger.Debug("parsing", "pattern", p.Grammar().Pattern(), "leading", p.Leading().String())
	c := collection.Load(raw, collection.WithMetrics(cfg.Metrics), collection.WithParser(p))
	if cfg.Filters != nil && cfg.Filters.Len() > 0 {
		c = c.Filter(cfg.Filters)
	}

	write := func(e *entry.LogEntry) error {
		for _, name := range cfg.Alerts.Check(e) {
			logger.Warn("alert triggered", "rule", name, "level", e.Level().String(), "header", e.Header())
		}
		for _, s := range cfg.Sinks {
			if err := s.Write(e); err != nil {
				return fmt.Errorf("pipeline: write to %s: %w", s.Name(), err)
			}
		}
		return nil
	}

	if cfg.Tail > 0 {
		for _, e := range c.Tail(cfg.Tail) {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := write(&e); err != nil {
				return err
			}
		}
	} else {
		for e := range c.All() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := write(&e); err != nil {
				return err
			}
		}
	}

	logger.Debug("pipeline finished",
		"source", cfg.Source.Name(),
		"lines", cfg.Metrics.Lines(),
		"entries", cfg.Metrics.Entries(),
		"matched", cfg.Metrics.Matched(),
		"alerts", cfg.Alerts.TotalAlerts(),
	)
	return nil
}
