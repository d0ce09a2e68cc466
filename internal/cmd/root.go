// Package cmd implements the logview command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Geun-Oh/logview/internal/config"
	"github.com/Geun-Oh/logview/internal/logging"
	"github.com/Geun-Oh/logview/internal/source"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	cfgFile  string
	logLevel string
	exec     string
	docker   string
	since    string
	stdin    io.Reader
}

// NewRootCommand builds the logview command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(os.Stdin)
}

func newRootCommand(stdin io.Reader) *cobra.Command {
	opts := &globalOptions{stdin: stdin}

	root := &cobra.Command{
		Use:   "logview",
		Short: "logview reads Laravel-style log files",
		Long: `logview splits Laravel-style log text into entries (a header line plus
any stack trace lines below it) and lets you page, filter and count them.

Read a file, stdin ("-"), a command's output (--exec) or a Docker
container (--docker).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "config file (default: ./.logview.yaml or $HOME/.logview.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "diagnostic log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&opts.exec, "exec", "", "read the output of a command, e.g. \"ssh web cat storage/logs/laravel.log\"")
	root.PersistentFlags().StringVar(&opts.docker, "docker", "", "read the logs of a Docker container")
	root.PersistentFlags().StringVar(&opts.since, "since", "", "with --docker, only logs newer than this (e.g. 1h)")

	root.AddCommand(
		newEntriesCommand(opts),
		newStatsCommand(opts),
		newStreamCommand(opts),
		newFilesCommand(opts),
		newViewCommand(opts),
		newConfigCommand(opts),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// setup loads the configuration and initializes logging. jsonOutput selects
// the JSON diagnostic handler so stderr stays machine-readable alongside
// JSON on stdout.
func (o *globalOptions) setup(jsonOutput bool) (*config.Config, error) {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	logging.Init(jsonOutput, logging.ParseLevel(cfg.LogLevel))
	return cfg, nil
}

// openSource selects the log source from the flags and positional args.
func (o *globalOptions) openSource(args []string) (source.Source, error) {
	selected := 0
	if o.exec != "" {
		selected++
	}
	if o.docker != "" {
		selected++
	}
	if len(args) > 0 {
		selected++
	}

	switch {
	case selected > 1:
		return nil, fmt.Errorf("give exactly one of: a path, \"-\", --exec or --docker")
	case o.exec != "":
		return source.ParseCommandLine(o.exec)
	case o.docker != "":
		return source.NewDockerSource(o.docker, o.since), nil
	case len(args) == 0 || args[0] == "-":
		return source.NewStdinSource(o.stdin), nil
	default:
		return source.NewFileSource(args[0]), nil
	}
}
