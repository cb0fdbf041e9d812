package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mcnp-csg/internal/csg"
)

func newCellsCmd(a *app) *cobra.Command {
	var universe int

	cmd := &cobra.Command{
		Use:   "cells DECK",
		Short: "List the cells of a universe in declaration order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadDeck(args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CELL\tMAT\tFILL\tGEOMETRY")

			for _, c := range d.CellsOfUniverse(universe) {
				fill := "-"
				if c.HasFill() {
					fill = fmt.Sprint(c.Fill().Universes())
				}

				fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", c.Ident(), c.Material(), fill, csg.Format(c.Tree()))
			}

			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&universe, "universe", "u", 0, "universe number")

	return cmd
}
