package main

import (
	"fmt"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"

	"github.com/fx-xf/bfte/features"
	"github.com/fx-xf/bfte/generator"
	"github.com/fx-xf/bfte/internal/ui"
)

func newFeaturesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "Build the feature table from the password corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := opts.app.BuildFeatures(cmd.Context())
			if err != nil {
				return err
			}
			body := ui.KeyValues(
				[2]string{"Lines read", fmt.Sprint(stats.Lines)},
				[2]string{"Empty lines", fmt.Sprint(stats.Empty)},
				[2]string{"Rows written", fmt.Sprint(stats.Written)},
				[2]string{"Chunks", fmt.Sprint(stats.Chunks)},
				[2]string{"Output", opts.app.Config.Features.OutputPath},
			)
			ui.PrintSuccess(opts.out, "Feature table built", body)
			return nil
		},
	}
}

func newTrainCmd(opts *rootOptions) *cobra.Command {
	var exportJSON string
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the length to entropy model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := opts.app.Train(cmd.Context())
			if err != nil {
				return err
			}
			if exportJSON != "" {
				if err := res.WriteWeightsJSON(exportJSON); err != nil {
					return err
				}
			}
			fmt.Fprintln(opts.out, opts.app.TrainReport(res))
			return nil
		},
	}
	cmd.Flags().StringVar(&exportJSON, "export-json", "", "also write the trained weights as JSON to this path")
	return cmd
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Analyse a password's strength",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var secret []byte
			if cmd.Flags().Changed("password") {
				secret = []byte(password)
			} else {
				var err error
				if secret, err = newPrompter(opts).Password("Enter password to check"); err != nil {
					return err
				}
			}
			an, err := opts.app.InferSecret(memguard.NewBufferFromBytes(secret))
			if err != nil {
				return err
			}
			fmt.Fprintln(opts.out, opts.app.Report(an))
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password to analyse (prompted for when omitted)")
	return cmd
}

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var (
		length    int
		noUpper   bool
		noDigits  bool
		noSymbols bool
		classes   []string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a secure random password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen := opts.app.GeneratorOptions()
			if cmd.Flags().Changed("length") {
				gen.Length = length
			}
			if cmd.Flags().Changed("classes") {
				parsed, err := features.ParseClasses(classes)
				if err != nil {
					return err
				}
				gen = generator.OptionsFromClasses(gen.Length, parsed)
			} else {
				gen.Uppercase = gen.Uppercase && !noUpper
				gen.Digits = gen.Digits && !noDigits
				gen.Symbols = gen.Symbols && !noSymbols
			}

			res, err := opts.app.Generate(gen)
			if err != nil {
				return err
			}
			fmt.Fprintln(opts.out, opts.app.GenerateReport(res))
			return nil
		},
	}
	cmd.Flags().IntVar(&length, "length", generator.DefaultLength, "password length (minimum 4)")
	cmd.Flags().BoolVar(&noUpper, "no-upper", false, "exclude uppercase letters")
	cmd.Flags().BoolVar(&noDigits, "no-digits", false, "exclude digits")
	cmd.Flags().BoolVar(&noSymbols, "no-symbols", false, "exclude special characters")
	cmd.Flags().StringSliceVar(&classes, "classes", nil, "enabled classes besides lower: upper,digit,special")
	cmd.MarkFlagsMutuallyExclusive("classes", "no-upper")
	cmd.MarkFlagsMutuallyExclusive("classes", "no-digits")
	cmd.MarkFlagsMutuallyExclusive("classes", "no-symbols")
	return cmd
}

func newAboutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "Show information about the developer",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintln(opts.out, ui.About())
		},
	}
}

func newMenuCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMenu(cmd.Context(), opts.app, newPrompter(opts), opts.out)
		},
	}
}
