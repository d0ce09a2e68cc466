package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Geun-Oh/logview/internal/collection"
	"github.com/Geun-Oh/logview/internal/config"
)

// loadCollection opens the selected source and wraps its text in a
// collection using the configured parser.
func loadCollection(ctx context.Context, g *globalOptions, cfg *config.Config, args []string) (*collection.Collection, error) {
	src, err := g.openSource(args)
	if err != nil {
		return nil, err
	}
	p, err := cfg.Parser()
	if err != nil {
		return nil, err
	}

	raw, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug("source loaded", "source", src.Name(), "bytes", len(raw),
		"pattern", p.Grammar().Pattern(), "leading", p.Leading().String())
	return collection.Load(raw, collection.WithParser(p)), nil
}

// isJSON validates a --format value against "json" and the given
// alternative.
func isJSON(format, alt string) (bool, error) {
	switch strings.ToLower(format) {
	case "json":
		return true, nil
	case alt:
		return false, nil
	default:
		return false, fmt.Errorf("unknown format %q (want %s or json)", format, alt)
	}
}
