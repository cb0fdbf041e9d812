package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check DECK",
		Short: "Build a deck and report its diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadDeck(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			diags := d.Diagnostics()
			warnings := len(diags.Warnings)

			if a.cfg.Strict {
				diags.Escalate()
			}

			for _, diag := range diags.All() {
				fmt.Fprintln(out, diag.String())
			}

			fmt.Fprintf(out, "%s: %d cells, %d surfaces, %d data cards, %d instances\n",
				args[0], len(d.Cells()), len(d.Surfaces()), len(d.DataCards()), len(d.Instances()))

			if err := diags.Error(); err != nil {
				return fmt.Errorf("%w: %d warnings: %w", errStrict, warnings, err)
			}

			return nil
		},
	}
}
