// Package generator produces random passwords from a cryptographically
// secure source.
package generator

import (
	"crypto/rand"
	"io"
	"math/big"
	"strings"

	"github.com/fx-xf/bfte/features"
	"github.com/fx-xf/bfte/pkg/errors"
)

const (
	// MinLength is the shortest password Generate produces.
	MinLength = 4

	DefaultLength = 16
)

// Options selects the generated password's length and character classes.
// Lowercase letters are always included.
type Options struct {
	Length    int
	Uppercase bool
	Digits    bool
	Symbols   bool
}

// DefaultOptions enables every class at DefaultLength.
func DefaultOptions() Options {
	return Options{Length: DefaultLength, Uppercase: true, Digits: true, Symbols: true}
}

// OptionsFromClasses enables exactly the given classes. Lower is implied.
func OptionsFromClasses(length int, classes []features.Class) Options {
	opts := Options{Length: length}
	for _, c := range classes {
		switch c {
		case features.Upper:
			opts.Uppercase = true
		case features.Digit:
			opts.Digits = true
		case features.Special:
			opts.Symbols = true
		}
	}
	return opts
}

// Classes lists the enabled classes in canonical order.
func (o Options) Classes() []features.Class {
	classes := make([]features.Class, 0, 4)
	if o.Digits {
		classes = append(classes, features.Digit)
	}
	classes = append(classes, features.Lower)
	if o.Uppercase {
		classes = append(classes, features.Upper)
	}
	if o.Symbols {
		classes = append(classes, features.Special)
	}
	return classes
}

// Alphabet is the concatenation of the enabled classes' characters.
func (o Options) Alphabet() string {
	var b strings.Builder
	b.WriteString(features.Lowercase)
	if o.Uppercase {
		b.WriteString(features.Uppercase)
	}
	if o.Digits {
		b.WriteString(features.Digits)
	}
	if o.Symbols {
		b.WriteString(features.Punctuation)
	}
	return b.String()
}

// Result is a generated password.
type Result struct {
	Password string
	Length   int

	// Clamped is set when the requested length was raised to MinLength.
	Clamped   bool
	Requested int
}

// Generator draws characters from an entropy source.
type Generator struct {
	rand io.Reader
}

// New returns a Generator reading from crypto/rand.
func New() *Generator {
	return &Generator{rand: rand.Reader}
}

// NewWithReader returns a Generator reading randomness from r.
func NewWithReader(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Generate returns a password of opts.Length characters, each drawn
// uniformly from the alphabet.
func (g *Generator) Generate(opts Options) (Result, error) {
	return g.generate(opts.Alphabet(), opts.Length)
}

func (g *Generator) generate(alphabet string, length int) (Result, error) {
	if alphabet == "" {
		return Result{}, errors.NewInvalidCharacterClassError("", "at least one character class must be enabled")
	}

	res := Result{Length: length, Requested: length}
	if length < MinLength {
		res.Length = MinLength
		res.Clamped = true
	}

	n := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, res.Length)
	for i := range buf {
		idx, err := rand.Int(g.rand, n)
		if err != nil {
			return Result{}, errors.Wrap(err, "read random source")
		}
		buf[i] = alphabet[idx.Int64()]
	}
	res.Password = string(buf)
	return res, nil
}

// Generate uses a crypto/rand Generator.
func Generate(opts Options) (Result, error) {
	return New().Generate(opts)
}
