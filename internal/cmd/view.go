package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Geun-Oh/logview/internal/tui"
)

func newViewCommand(g *globalOptions) *cobra.Command {
	var (
		perPage int
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "view [file|-]",
		Short: "Browse entries interactively",
		Example: `  logview view storage/logs/laravel.log
  logview view storage/logs/laravel.log --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.setup(false)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("per-page") {
				perPage = cfg.PerPage
			}
			src, err := g.openSource(args)
			if err != nil {
				return err
			}
			p, err := cfg.Parser()
			if err != nil {
				return err
			}

			return tui.Run(cmd.Context(), &tui.RunConfig{
				Source:  src,
				Parser:  p,
				PerPage: perPage,
				Watch:   watch,
				Logger:  slog.Default(),
			})
		},
	}

	cmd.Flags().IntVarP(&perPage, "per-page", "n", 20, "entries per page (default from config)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload when the file changes")
	return cmd
}
