package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/Geun-Oh/logview/internal/sink"
)

func newStatsCommand(g *globalOptions) *cobra.Command {
	var (
		translate bool
		format    string
	)

	cmd := &cobra.Command{
		Use:   "stats [file|-]",
		Short: "Count entries per level",
		Example: `  logview stats storage/logs/laravel.log
  logview stats laravel.log --translate --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, err := isJSON(format, "table")
			if err != nil {
				return err
			}
			cfg, err := g.setup(jsonOut)
			if err != nil {
				return err
			}
			c, err := loadCollection(cmd.Context(), g, cfg, args)
			if err != nil {
				return err
			}

			tree := c.Tree(translate)
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(tree)
			}
			return sink.StatsTable(cmd.OutOrStdout(), tree)
		},
	}

	cmd.Flags().BoolVarP(&translate, "translate", "t", false, "show configured display names")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json")
	return cmd
}
