// Package cmd - estimate command
package cmd

import (
	"github.com/spf13/cobra"

	"eventcost/core/estimate"
	"eventcost/core/output"
	"eventcost/internal/config"
	"eventcost/internal/errors"
)

type estimateOptions struct {
	events    string
	format    string
	reference bool
}

func newEstimateCmd(opts *options) *cobra.Command {
	eo := &estimateOptions{}

	cmd := &cobra.Command{
		Use:   "estimate [events]",
		Short: "Estimate the investment for a monthly event volume",
		Long: `Price a monthly event volume, given in millions of events.

The volume may be passed as an argument or with --events. Either "." or ","
is accepted as the decimal separator.

Examples:
  eventcost estimate 3000
  eventcost estimate --events 2500,5
  eventcost estimate --format json 30000
  eventcost estimate --reference 500`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(cmd, opts, eo, args)
		},
	}

	cmd.Flags().StringVarP(&eo.events, "events", "e", "", "monthly event volume in millions")
	cmd.Flags().StringVarP(&eo.format, "format", "f", "", "output format (cli, json, markdown)")
	cmd.Flags().BoolVarP(&eo.reference, "reference", "r", false, "also print the reference price table")
	return cmd
}

func runEstimate(cmd *cobra.Command, opts *options, eo *estimateOptions, args []string) error {
	raw := eo.events
	if len(args) > 0 {
		if raw != "" {
			return errors.Input("pass the event volume either as an argument or with --events, not both")
		}
		raw = args[0]
	}

	events, err := estimate.ParseEvents(raw)
	if err != nil {
		return err
	}

	estimator, err := opts.estimator(cmd)
	if err != nil {
		return err
	}
	est, err := estimator.Estimate(events)
	if err != nil {
		return err
	}

	cfg := config.Get()
	report := &output.Report{Estimate: est}
	if eo.reference || cfg.Output.ShowReference {
		report.Reference = output.ReferenceTable(estimator.Schedule(), cfg.Currency)
	}
	return render(cmd, opts, eo.format, report)
}

func render(cmd *cobra.Command, opts *options, format string, report *output.Report) error {
	cfg := config.Get()
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	formatter, err := output.New(output.Format(format), cfg.Currency, cfg.Output.NoColor)
	if err != nil {
		return err
	}
	if cli, ok := formatter.(*output.CLIFormatter); ok {
		cli.Verbose = opts.verbose
	}
	return formatter.Render(cmd.OutOrStdout(), report)
}
