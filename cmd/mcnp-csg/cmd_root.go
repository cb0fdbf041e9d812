package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"mcnp-csg/internal/config"
	"mcnp-csg/internal/deck"
)

// errStrict is returned by check when --strict turns warnings into failure.
var errStrict = errors.New("deck has warnings")

// app carries the state shared by all subcommands.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	strict     bool

	cfg *config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   appName + " <command> DECK",
		Short: "Read and resolve geometry input decks",
		Long: appName + " parses the cell, surface and data blocks of an input deck,\n" +
			"resolves transforms, complements, universes and lattices, and reports\n" +
			"or exports the resulting CSG model.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text or json")
	root.PersistentFlags().BoolVar(&a.strict, "strict", false, "treat warnings as errors")

	root.AddCommand(
		newCheckCmd(a),
		newExportCmd(a),
		newCellsCmd(a),
		newDumpCmd(a),
	)

	return root
}

// setup loads the configuration and applies flag overrides.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()

	if a.configPath != "" {
		var err error

		cfg, err = config.LoadFile(a.configPath)
		if err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}

	if flags.Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}

	if flags.Changed("strict") {
		cfg.Strict = a.strict
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = newLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())

	return nil
}

// loadDeck builds the deck at path.
func (a *app) loadDeck(path string) (*deck.Deck, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open deck %s: %w", path, err)
	}
	defer f.Close()

	opts := a.cfg.DeckOptions()
	opts.Logger = a.log

	d, err := deck.Build(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	a.log.Info("deck resolved",
		slog.String("file", path),
		slog.Int("cells", len(d.Cells())),
		slog.Int("instances", len(d.Instances())))

	return d, nil
}
