package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"eventcost/core/ui"
	"eventcost/internal/config"
)

// newConfigCmd manages configuration
func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var asYAML bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if asYAML {
				data, err = yaml.Marshal(config.Get())
			} else {
				data, err = json.MarshalIndent(config.Get(), "", "  ")
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	show.Flags().BoolVar(&asYAML, "yaml", false, "print as YAML")

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.cfgFile
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				path = config.DefaultPath()
			}
			if err := config.Default().Save(path); err != nil {
				return err
			}
			ui.NewWriter(cmd.OutOrStdout(), config.Get().Output.NoColor).Success("wrote %s", path)
			return nil
		},
	}

	cmd.AddCommand(show, initCmd)
	return cmd
}
