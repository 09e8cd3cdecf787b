package cmd

import (
	"github.com/spf13/cobra"

	"eventcost/core/output"
	"eventcost/internal/config"
)

func newTableCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the reference price table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			estimator, err := opts.estimator(cmd)
			if err != nil {
				return err
			}
			rows := output.ReferenceTable(estimator.Schedule(), config.Get().Currency)
			return render(cmd, opts, format, &output.Report{Reference: rows})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (cli, json, markdown)")
	return cmd
}
