package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Geun-Oh/logview/internal/collection"
	"github.com/Geun-Oh/logview/internal/filter"
	"github.com/Geun-Oh/logview/internal/sink"
)

func newEntriesCommand(g *globalOptions) *cobra.Command {
	var (
		page    int
		perPage int
		level   string
		search  string
		format  string
		noStack bool
	)

	cmd := &cobra.Command{
		Use:   "entries [file|-]",
		Short: "Print one page of log entries",
		Example: `  logview entries storage/logs/laravel.log
  logview entries laravel.log --level error --page 2 --per-page 50
  cat laravel.log | logview entries - --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, err := isJSON(format, "text")
			if err != nil {
				return err
			}
			cfg, err := g.setup(jsonOut)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("per-page") {
				perPage = cfg.PerPage
			}

			c, err := loadCollection(cmd.Context(), g, cfg, args)
			if err != nil {
				return err
			}
			if level != "" {
				c = c.FilterByLevel(level)
			}
			if search != "" {
				c = c.Filter(filter.NewKeywordFilter(search))
			}

			p, err := c.Paginate(perPage, page)
			if err != nil {
				return err
			}
			slog.Debug("page loaded", "page", p.CurrentPage, "total", p.Total)

			out := cmd.OutOrStdout()
			if jsonOut {
				return sink.WritePage(out, p)
			}
			return writeTextPage(cmd, p, cfg.Color, noStack)
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number, starting at 1")
	cmd.Flags().IntVarP(&perPage, "per-page", "n", 20, "entries per page (default from config)")
	cmd.Flags().StringVarP(&level, "level", "l", "", "only entries of this level (e.g. error, unknown)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "only entries containing this text")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json")
	cmd.Flags().BoolVar(&noStack, "no-stack", false, "print headers only")
	return cmd
}

func writeTextPage(cmd *cobra.Command, p collection.Page, color, noStack bool) error {
	s := sink.NewTerminalSink(cmd.OutOrStdout(), color).HideStacks(noStack)
	for _, e := range p.Items {
		if err := s.Write(&e); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "entries %d-%d of %d (page %d/%d)\n",
		p.From(), p.To(), p.Total, p.CurrentPage, p.LastPage())
	return nil
}
