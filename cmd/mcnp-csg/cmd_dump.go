package main

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"mcnp-csg/internal/export"
)

func newDumpCmd(a *app) *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "dump DECK",
		Short: "Print the resolved model with all trees and instances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadDeck(args[0])
			if err != nil {
				return err
			}

			m, err := export.FromDeck(d, export.Options{IncludeTree: true, IncludeInstances: true})
			if err != nil {
				return err
			}

			cfg := spew.ConfigState{
				Indent:                  "  ",
				DisablePointerAddresses: true,
				DisableCapacities:       true,
				SortKeys:                true,
				MaxDepth:                depth,
			}
			cfg.Fdump(cmd.OutOrStdout(), m)

			return nil
		},
	}

	cmd.Flags().IntVar(&depth, "depth", 0, "maximum nesting depth to print (0 for no limit)")

	return cmd
}
