package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Geun-Oh/logview/internal/files"
	"github.com/Geun-Oh/logview/internal/sink"
)

func newFilesCommand(g *globalOptions) *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "files [dir]",
		Short: "List log files, newest date first",
		Example: `  logview files
  logview files /var/www/app --pattern "storage/logs/**/*.log"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.setup(false)
			if err != nil {
				return err
			}
			if pattern == "" {
				pattern = cfg.Files.Pattern
			}
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			found, err := files.Discover(root, pattern)
			if err != nil {
				return err
			}
			if len(found) == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "no log files match %q under %s\n", pattern, root)
				return nil
			}
			return sink.FilesTable(cmd.OutOrStdout(), found)
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "", "glob relative to dir, supports ** (default from config)")
	return cmd
}
