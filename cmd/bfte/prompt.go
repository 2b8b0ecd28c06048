package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/fx-xf/bfte/generator"
	"github.com/fx-xf/bfte/internal/ui"
	"github.com/fx-xf/bfte/pkg/errors"
)

const (
	choiceCheck    = "check"
	choiceGenerate = "generate"
	choiceAbout    = "about"
	choiceExit     = "exit"
)

// errAborted means the user cancelled a prompt.
var errAborted = errors.New("operation cancelled by user")

// prompter collects interactive input.
type prompter interface {
	Menu() (string, error)
	Password(title string) ([]byte, error)
	Generator(defaults generator.Options) (generator.Options, error)
	Continue() (bool, error)
}

func newPrompter(opts *rootOptions) prompter {
	if opts.tty {
		return huhPrompter{}
	}
	return newLinePrompter(opts.in, opts.out)
}

// huhPrompter uses huh forms on a terminal.
type huhPrompter struct{}

func (huhPrompter) run(fields ...huh.Field) error {
	err := huh.NewForm(huh.NewGroup(fields...)).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return errAborted
	}
	return err
}

func (p huhPrompter) Menu() (string, error) {
	choice := choiceCheck
	err := p.run(huh.NewSelect[string]().
		Title("Main Menu").
		Options(
			huh.NewOption("Check Password Strength", choiceCheck),
			huh.NewOption("Generate Secure Password", choiceGenerate),
			huh.NewOption("About Developer", choiceAbout),
			huh.NewOption("Exit", choiceExit),
		).
		Value(&choice))
	return choice, err
}

func (p huhPrompter) Password(title string) ([]byte, error) {
	var password string
	err := p.run(huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Validate(func(s string) error {
			if s == "" {
				return errors.New("password cannot be empty")
			}
			return nil
		}).
		Value(&password))
	return []byte(password), err
}

func (p huhPrompter) Generator(defaults generator.Options) (generator.Options, error) {
	opts := defaults
	length := strconv.Itoa(defaults.Length)
	err := p.run(
		huh.NewInput().
			Title("Password length").
			Description(fmt.Sprintf("minimum %d", generator.MinLength)).
			Validate(func(s string) error {
				_, err := strconv.Atoi(strings.TrimSpace(s))
				return err
			}).
			Value(&length),
		huh.NewConfirm().Title("Use uppercase letters?").Value(&opts.Uppercase),
		huh.NewConfirm().Title("Use digits?").Value(&opts.Digits),
		huh.NewConfirm().Title("Use special characters?").Value(&opts.Symbols),
	)
	if err != nil {
		return defaults, err
	}
	opts.Length, _ = strconv.Atoi(strings.TrimSpace(length))
	return opts, nil
}

func (p huhPrompter) Continue() (bool, error) {
	cont := true
	err := p.run(huh.NewConfirm().
		Title("Back to the main menu?").
		Affirmative("Continue").
		Negative("Exit").
		Value(&cont))
	return cont, err
}

// linePrompter reads plain lines, for pipes and dumb terminals.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{in: bufio.NewReader(in), out: out}
}

func (p *linePrompter) ask(prompt string) (string, error) {
	fmt.Fprintf(p.out, "%s %s: ", ui.Styles.Key.Render("╚═>"), prompt)
	line, err := p.in.ReadString('\n')
	if err == io.EOF && line == "" {
		return "", errAborted
	}
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *linePrompter) Menu() (string, error) {
	fmt.Fprintln(p.out, ui.Panel(ui.Styles.Box, "Main Menu",
		"[0] Check Password Strength\n[1] Generate Secure Password\n[2] About Developer\n[3] Exit"))
	choice, err := p.ask("Select an option")
	if err != nil {
		return "", err
	}
	switch strings.TrimSpace(choice) {
	case "0":
		return choiceCheck, nil
	case "1":
		return choiceGenerate, nil
	case "2":
		return choiceAbout, nil
	case "3":
		return choiceExit, nil
	}
	return "", errors.Newf("invalid option %q, please try again", choice)
}

func (p *linePrompter) Password(title string) ([]byte, error) {
	s, err := p.ask(title)
	return []byte(s), err
}

// Generator follows the defaults for blank answers; anything but "n" keeps a
// class enabled. An unparsable length falls back to the default.
func (p *linePrompter) Generator(defaults generator.Options) (generator.Options, error) {
	opts := defaults

	length, err := p.ask(fmt.Sprintf("Enter password length (default %d)", defaults.Length))
	if err != nil {
		return defaults, err
	}
	if s := strings.TrimSpace(length); s != "" {
		n, convErr := strconv.Atoi(s)
		if convErr != nil {
			fmt.Fprintf(p.out, "Invalid length input. Using default value %d.\n", defaults.Length)
			return defaults, nil
		}
		opts.Length = n
	}

	for _, q := range []struct {
		prompt string
		dst    *bool
	}{
		{"Use uppercase letters? (Y/n)", &opts.Uppercase},
		{"Use digits? (Y/n)", &opts.Digits},
		{"Use special characters? (Y/n)", &opts.Symbols},
	} {
		answer, err := p.ask(q.prompt)
		if err != nil {
			return defaults, err
		}
		*q.dst = strings.ToLower(strings.TrimSpace(answer)) != "n"
	}
	return opts, nil
}

func (p *linePrompter) Continue() (bool, error) {
	if _, err := p.ask("Press Enter to continue"); err != nil {
		if errors.Is(err, errAborted) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
