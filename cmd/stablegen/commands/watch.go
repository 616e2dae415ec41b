package commands

import (
	"github.com/spf13/cobra"

	"github.com/sghaida/hourglass/watch"
)

func watchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <header>",
		Short: "Regenerate whenever the header changes, until interrupted",
		Args:  oneHeader,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := args[0]
			if err := a.load(header); err != nil {
				return err
			}

			w, err := watch.New(header, a.cfg.Debounce, a.log)
			if err != nil {
				return err
			}

			if err := a.writeOutputs(header); err != nil {
				a.log.Errorw("initial generation failed", "file", header, "error", err)
			}

			a.log.Infow("watching", "file", w.Path(), "debounce", a.cfg.Debounce)
			return w.Run(cmd.Context(), func() error {
				return a.writeOutputs(header)
			})
		},
	}
}
