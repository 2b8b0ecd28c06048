package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/fx-xf/bfte/internal/app"
	"github.com/fx-xf/bfte/internal/config"
	"github.com/fx-xf/bfte/pkg/log"
)

type rootOptions struct {
	configPath string
	logLevel   string

	// set in PersistentPreRunE
	app *app.App

	in  io.Reader
	out io.Writer
	tty bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{
		in:  os.Stdin,
		out: os.Stdout,
		tty: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}
	return buildRootCmd(opts)
}

func buildRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bfte",
		Short:         "Brute Force Time Estimator",
		Long:          "bfte estimates password strength from character-class entropy and a length-based regression model.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !opts.tty {
				return cmd.Help()
			}
			return runMenu(cmd.Context(), opts.app, newPrompter(opts), opts.out)
		},
	}
	cmd.SetIn(opts.in)
	cmd.SetOut(opts.out)

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "path to the YAML config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	cmd.AddCommand(
		newFeaturesCmd(opts),
		newTrainCmd(opts),
		newCheckCmd(opts),
		newGenerateCmd(opts),
		newAboutCmd(opts),
		newMenuCmd(opts),
	)
	return cmd
}

func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}

	logger, err := log.Setup(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	logger.Debug("Configuration loaded", log.PathKey, o.configPath)

	o.app = app.New(cfg, logger, o.out)
	return nil
}
