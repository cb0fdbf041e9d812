// Package main provides the CLI entrypoint for mcnp-csg.
//
// mcnp-csg reads a geometry input deck, resolves every cross reference
// (transforms, complements, universes and lattices) and reports or exports
// the resulting CSG model:
//   - check: build the deck and print its diagnostics
//   - export: write the resolved model as YAML
//   - cells: list the cells of one universe
//   - dump: print the resolved model in full for debugging
package main

import (
	"fmt"
	"os"
)

const appName = "mcnp-csg"

func main() {
	root := newRootCmd()

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err.Error())
		os.Exit(1)
	}
}
