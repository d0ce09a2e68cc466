package cmd

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Geun-Oh/logview/internal/entry"
	"github.com/Geun-Oh/logview/internal/filter"
	"github.com/Geun-Oh/logview/internal/monitor"
	"github.com/Geun-Oh/logview/internal/pipeline"
	"github.com/Geun-Oh/logview/internal/sink"
)

type streamOptions struct {
	levels   []string
	minLevel string
	keywords []string
	excludes []string
	regex    string
	fold     bool
	alerts   []string
	format   string
	output   string
	tail     int
	noStack  bool
	summary  bool
}

func newStreamCommand(g *globalOptions) *cobra.Command {
	o := &streamOptions{}

	cmd := &cobra.Command{
		Use:   "stream [file|-]",
		Short: "Write every matching entry, in order",
		Example: `  logview stream laravel.log --level error,critical
  logview stream laravel.log --keyword SQLSTATE --exclude "health check"
  logview stream --docker web --since 1h --format json --output errors.jsonl
  logview stream laravel.log --alert "error:Connection refused" --summary`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, err := isJSON(o.format, "text")
			if err != nil {
				return err
			}
			cfg, err := g.setup(jsonOut && o.output == "")
			if err != nil {
				return err
			}

			src, err := g.openSource(args)
			if err != nil {
				return err
			}
			p, err := cfg.Parser()
			if err != nil {
				return err
			}
			chain, err := o.filters()
			if err != nil {
				return err
			}
			alerts, err := monitor.NewAlertEngine(slices.Concat(cfg.Alerts, o.alerts))
			if err != nil {
				return err
			}

			var out sink.Sink
			switch {
			case o.output != "":
				format := "text"
				if jsonOut {
					format = "json"
				}
				if out, err = sink.NewFileSink(o.output, format); err != nil {
					return err
				}
			case jsonOut:
				out = sink.NewJSONSink(cmd.OutOrStdout())
			default:
				out = sink.NewTerminalSink(cmd.OutOrStdout(), cfg.Color).HideStacks(o.noStack)
			}

			metrics := monitor.NewScanMetrics()
			err = pipeline.Run(cmd.Context(), &pipeline.Config{
				Source:  src,
				Parser:  p,
				Filters: chain,
				Alerts:  alerts,
				Metrics: metrics,
				Sinks:   []sink.Sink{out},
				Tail:    o.tail,
				Logger:  slog.Default(),
			})
			if err != nil {
				return err
			}

			if o.summary {
				fmt.Fprintln(cmd.ErrOrStderr(), metrics.Summary())
				if s := alerts.Summary(); s != "" {
					fmt.Fprintln(cmd.ErrOrStderr(), s)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&o.levels, "level", "l", nil, "only these levels (comma-separated)")
	cmd.Flags().StringVar(&o.minLevel, "min-level", "", "only this level or more severe")
	cmd.Flags().StringArrayVarP(&o.keywords, "keyword", "k", nil, "only entries containing this text (repeatable, all must match)")
	cmd.Flags().StringArrayVarP(&o.excludes, "exclude", "x", nil, "drop entries whose header contains this text (repeatable)")
	cmd.Flags().StringVarP(&o.regex, "regex", "r", "", "only entries whose header matches this regular expression")
	cmd.Flags().BoolVarP(&o.fold, "ignore-case", "i", false, "match --keyword, --exclude and --regex without regard to case")
	cmd.Flags().StringArrayVar(&o.alerts, "alert", nil, "alert rule \"[level:]pattern\" (repeatable)")
	cmd.Flags().StringVarP(&o.format, "format", "f", "text", "output format: text, json")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().IntVar(&o.tail, "tail", 0, "only the last N matching entries")
	cmd.Flags().BoolVar(&o.noStack, "no-stack", false, "print headers only")
	cmd.Flags().BoolVar(&o.summary, "summary", false, "print scan and alert summary to stderr")
	return cmd
}

// filters combines every filter flag with AND.
func (o *streamOptions) filters() (*filter.Chain, error) {
	chain := filter.NewChain(filter.MatchAll)

	if len(o.levels) > 0 {
		chain.Add(filter.NewLevelFilter(o.levels...))
	}
	if o.minLevel != "" {
		l := entry.ParseLevel(o.minLevel)
		if !l.Known() {
			return nil, fmt.Errorf("unknown level %q", o.minLevel)
		}
		chain.Add(filter.NewMinLevelFilter(l))
	}
	for _, k := range o.keywords {
		if strings.TrimSpace(k) == "" {
			continue
		}
		kf := filter.NewKeywordFilter(k)
		if o.fold {
			kf.FoldCase()
		}
		chain.Add(kf)
	}
	if len(o.excludes) > 0 {
		xf := filter.NewExcludeFilter(o.excludes...)
		if o.fold {
			xf.FoldCase()
		}
		chain.Add(xf)
	}
	if o.regex != "" {
		pattern := o.regex
		if o.fold {
			pattern = "(?i)" + pattern
		}
		rf, err := filter.NewRegexFilter(pattern)
		if err != nil {
			return nil, err
		}
		chain.Add(rf)
	}
	return chain, nil
}
