package main

import (
	"context"
	"fmt"
	"io"

	"github.com/awnumar/memguard"

	"github.com/fx-xf/bfte/internal/app"
	"github.com/fx-xf/bfte/internal/ui"
	"github.com/fx-xf/bfte/pkg/errors"
)

// runMenu loops over the main menu until the user exits. Errors from an
// action are shown and the loop continues.
func runMenu(ctx context.Context, a *app.App, p prompter, out io.Writer) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ui.PrintBanner(out, 0)

		choice, err := p.Menu()
		if errors.Is(err, errAborted) {
			fmt.Fprintln(out, ui.Styles.Error.Render("Exiting..."))
			return nil
		}
		if err != nil {
			ui.PrintError(out, err)
			continue
		}

		switch choice {
		case choiceCheck:
			err = menuCheck(a, p, out)
		case choiceGenerate:
			err = menuGenerate(a, p, out)
		case choiceAbout:
			fmt.Fprintln(out, ui.About())
		case choiceExit:
			fmt.Fprintln(out, ui.Styles.Error.Render("Goodbye!"))
			return nil
		}
		if err != nil && !errors.Is(err, errAborted) {
			ui.PrintError(out, err)
		}

		cont, err := p.Continue()
		if err != nil && !errors.Is(err, errAborted) {
			return err
		}
		if !cont {
			return nil
		}
	}
}

func menuCheck(a *app.App, p prompter, out io.Writer) error {
	if _, err := a.LoadModel(); err != nil {
		return err
	}
	secret, err := p.Password("Enter password to check")
	if err != nil {
		return err
	}
	an, err := a.InferSecret(memguard.NewBufferFromBytes(secret))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, a.Report(an))
	return nil
}

func menuGenerate(a *app.App, p prompter, out io.Writer) error {
	opts, err := p.Generator(a.GeneratorOptions())
	if err != nil {
		return err
	}
	res, err := a.Generate(opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, a.GenerateReport(res))
	return nil
}
