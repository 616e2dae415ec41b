package commands

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func inspectCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect <header>",
		Short: "Print the parsed interface model",
		Args:  oneHeader,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "yaml" && format != "json" {
				return usagef("unknown format %q (want yaml or json)", format)
			}
			if err := a.load(args[0]); err != nil {
				return err
			}
			decl, err := a.parseHeader(args[0])
			if err != nil {
				return err
			}

			if format == "json" {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return errors.Wrap(enc.Encode(decl), "encode json")
			}

			enc := yaml.NewEncoder(a.stdout)
			enc.SetIndent(2)
			if err := enc.Encode(decl); err != nil {
				return errors.Wrap(err, "encode yaml")
			}
			return errors.Wrap(enc.Close(), "encode yaml")
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml|json)")
	return cmd
}
