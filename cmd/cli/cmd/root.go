// Package cmd provides the CLI commands for eventcost.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"eventcost/core/estimate"
	"eventcost/core/ui"
	"eventcost/internal/config"
	"eventcost/internal/errors"
	"eventcost/internal/logging"
)

// Version is the CLI version
const Version = "0.1.0"

// options are the persistent flags shared by every command
type options struct {
	cfgFile  string
	schedule string
	verbose  bool
	noColor  bool
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "eventcost",
		Short: "Estimate tiered event-volume pricing",
		Long: `eventcost estimates the monthly and annual investment for an analytics
platform priced by monthly event volume (in millions of events).

Examples:
  eventcost estimate 3000
  eventcost estimate --format json --reference 25000
  eventcost table --format markdown
  eventcost simulate`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initConfig()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file, JSON or YAML (default is $HOME/.eventcost.json)")
	rootCmd.PersistentFlags().StringVar(&opts.schedule, "schedule", "", "HCL tier schedule (default is the built-in proposal)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newEstimateCmd(opts))
	rootCmd.AddCommand(newTableCmd(opts))
	rootCmd.AddCommand(newSimulateCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the CLI until it finishes or is interrupted
func Execute() error {
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCommand()
	err := root.ExecuteContext(ctx)
	if err != nil {
		ui.NewWriter(root.ErrOrStderr(), config.Get().Output.NoColor).Error("%v", err)
	}
	return err
}

func (o *options) initConfig() error {
	path := o.cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return errors.Config("loading "+path, err)
	}

	if o.schedule != "" {
		cfg.Pricing.ScheduleFile = o.schedule
	}
	if o.noColor {
		cfg.Output.NoColor = true
	}
	if o.verbose {
		cfg.Logging.Level = "debug"
	}
	config.Set(cfg)

	return logging.Initialize(cfg.Logging)
}

// diagnostics returns a writer on stderr that shows debug lines with --verbose
func (o *options) diagnostics(cmd *cobra.Command) *ui.Writer {
	w := ui.NewWriter(cmd.ErrOrStderr(), config.Get().Output.NoColor)
	if o.verbose {
		w.SetVerbosity(2)
	}
	return w
}

func (o *options) estimator(cmd *cobra.Command) (*estimate.Estimator, error) {
	path := config.Get().Pricing.ScheduleFile
	e, err := estimate.NewFromFile(path, logging.Logger)
	if err != nil {
		return nil, err
	}

	source := path
	if source == "" {
		source = "built-in"
	}
	logging.Debug("schedule selected", zap.String("name", e.Schedule().Name()), zap.String("source", source))
	o.diagnostics(cmd).Debug("schedule %s (%s)", e.Schedule().Name(), source)
	return e, nil
}

// versionCmd prints version information
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "eventcost version %s\n", Version)
		},
	}
}
