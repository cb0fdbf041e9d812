package main

import (
	"github.com/spf13/cobra"

	"mcnp-csg/internal/export"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		output    string
		tree      bool
		instances bool
	)

	cmd := &cobra.Command{
		Use:   "export DECK",
		Short: "Write the resolved model as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadDeck(args[0])
			if err != nil {
				return err
			}

			opts := export.Options{
				IncludeTree:      a.cfg.Export.IncludeTree,
				IncludeInstances: *a.cfg.Export.IncludeInstances,
			}

			if cmd.Flags().Changed("tree") {
				opts.IncludeTree = tree
			}

			if cmd.Flags().Changed("instances") {
				opts.IncludeInstances = instances
			}

			m, err := export.FromDeck(d, opts)
			if err != nil {
				return err
			}

			if output != "" {
				return export.WriteFile(m, output)
			}

			data, err := export.Marshal(m)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&tree, "tree", false, "include compiled CSG trees")
	cmd.Flags().BoolVar(&instances, "instances", true, "include the flattened instance list")

	return cmd
}
