package cmd

import (
	stderrors "errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"eventcost/core/output"
	"eventcost/core/ui"
	"eventcost/internal/config"
	"eventcost/internal/errors"
)

func newSimulateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "simulate",
		Short: "Interactively price event volumes",
		Long: `Open an interactive form that asks for a monthly event volume (in millions),
shows the estimated monthly and annual investment, and repeats until you stop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return errors.New(errors.TypeNotSupported, "simulate needs an interactive terminal; use 'eventcost estimate' instead")
			}
			return runSimulate(cmd, opts)
		},
	}
}

func runSimulate(cmd *cobra.Command, opts *options) error {
	estimator, err := opts.estimator(cmd)
	if err != nil {
		return err
	}

	cfg := config.Get()
	formatter := &output.CLIFormatter{Currency: cfg.Currency, NoColor: cfg.Output.NoColor, Verbose: opts.verbose}
	ctx := cmd.Context()

	last := decimal.Zero
	for {
		events, err := ui.NewEventsForm(last).Run(ctx)
		if stderrors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		last = events

		est, err := estimator.Estimate(events)
		if err != nil {
			return err
		}
		if err := formatter.Render(cmd.OutOrStdout(), &output.Report{Estimate: est}); err != nil {
			return err
		}

		again, err := ui.ConfirmAgain(ctx)
		if stderrors.Is(err, huh.ErrUserAborted) || (err == nil && !again) {
			break
		}
		if err != nil {
			return err
		}
	}

	rows := output.ReferenceTable(estimator.Schedule(), cfg.Currency)
	return formatter.Render(cmd.OutOrStdout(), &output.Report{Reference: rows})
}
