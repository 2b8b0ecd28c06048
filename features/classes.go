package features

import (
	"strings"

	"github.com/fx-xf/bfte/pkg/errors"
)

// Class is one of the four character classes a password character falls in.
type Class int

const (
	Digit Class = iota
	Lower
	Upper
	Special
)

const (
	Digits      = "0123456789"
	Lowercase   = "abcdefghijklmnopqrstuvwxyz"
	Uppercase   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// AllClasses lists the classes in canonical order.
var AllClasses = []Class{Digit, Lower, Upper, Special}

var classNames = map[Class]string{
	Digit:   "digit",
	Lower:   "lower",
	Upper:   "upper",
	Special: "special",
}

// String returns the lowercase class name.
func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return "unknown"
}

// Size is the class's contribution to the charset size.
func (c Class) Size() int {
	return len(c.Alphabet())
}

// Alphabet returns the characters a generator draws from for c.
func (c Class) Alphabet() string {
	switch c {
	case Digit:
		return Digits
	case Lower:
		return Lowercase
	case Upper:
		return Uppercase
	case Special:
		return Punctuation
	}
	return ""
}

// ParseClass maps a name such as "digit" or "upper" to its Class. Plurals
// and a few aliases are accepted.
func ParseClass(name string) (Class, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "digit", "digits", "number", "numbers":
		return Digit, nil
	case "lower", "lowercase":
		return Lower, nil
	case "upper", "uppercase":
		return Upper, nil
	case "special", "symbol", "symbols":
		return Special, nil
	}
	return 0, errors.NewInvalidCharacterClassError(name, "expected one of digit, lower, upper, special")
}

// ParseClasses parses each name and drops duplicates, keeping first-seen
// order.
func ParseClasses(names []string) ([]Class, error) {
	seen := make(map[Class]bool, len(names))
	classes := make([]Class, 0, len(names))
	for _, name := range names {
		c, err := ParseClass(name)
		if err != nil {
			return nil, err
		}
		if !seen[c] {
			seen[c] = true
			classes = append(classes, c)
		}
	}
	return classes, nil
}

// ClassOf returns the class of a single character. Anything that is not an
// ASCII letter or digit is Special.
func ClassOf(r rune) Class {
	switch {
	case r >= '0' && r <= '9':
		return Digit
	case r >= 'a' && r <= 'z':
		return Lower
	case r >= 'A' && r <= 'Z':
		return Upper
	default:
		return Special
	}
}
