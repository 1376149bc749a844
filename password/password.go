// Package password holds the deterministic tool functions used by every
// nanoagent tier: cryptographically secure password generation and a
// five-point strength check. The package has no dependencies on the rest of
// the module so agents, flows and the CLI can all call it directly.
package password

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
)

// Character class alphabets. Symbols is the fixed 26 character set shared by the
// generator and the strength check.
const (
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Digits    = "0123456789"
	Symbols   = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// Bounds enforced at the validation boundary.
const (
	MinLength     = 8
	MaxLength     = 128
	DefaultLength = 16
	MinCount      = 1
	MaxCount      = 10
	DefaultCount  = 3
)

// ErrNoCharacterClass is returned when every character class is disabled.
var ErrNoCharacterClass = errors.New("at least one character type must be selected")

// NoCharacterClassResult is the error-kind result string surfaced to callers
// that report failures as text instead of errors.
const NoCharacterClassResult = "Error: At least one character type must be selected"

// ValidationError reports an input record field outside its allowed range.
type ValidationError struct {
	Field   string `json:"field"`
	Value   any    `json:"value"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// Options is the validated input record for Generate.
type Options struct {
	Length           int  `json:"length" description:"Password length (8-128)" minimum:"8" maximum:"128" default:"16"`
	IncludeUppercase bool `json:"include_uppercase" description:"Include uppercase letters" default:"true"`
	IncludeLowercase bool `json:"include_lowercase" description:"Include lowercase letters" default:"true"`
	IncludeNumbers   bool `json:"include_numbers" description:"Include numbers" default:"true"`
	IncludeSymbols   bool `json:"include_symbols" description:"Include special symbols" default:"true"`
}

// DefaultOptions returns length 16 with all four classes enabled.
func DefaultOptions() Options {
	return Options{
		Length:           DefaultLength,
		IncludeUppercase: true,
		IncludeLowercase: true,
		IncludeNumbers:   true,
		IncludeSymbols:   true,
	}
}

// Validate checks the length bound.
func (o Options) Validate() error {
	if o.Length < MinLength || o.Length > MaxLength {
		return &ValidationError{
			Field:   "length",
			Value:   o.Length,
			Message: fmt.Sprintf("must be between %d and %d", MinLength, MaxLength),
		}
	}
	return nil
}

// Charset concatenates the enabled alphabets in the fixed order
// uppercase, lowercase, digits, symbols.
func (o Options) Charset() string {
	var b strings.Builder
	if o.IncludeUppercase {
		b.WriteString(Uppercase)
	}
	if o.IncludeLowercase {
		b.WriteString(Lowercase)
	}
	if o.IncludeNumbers {
		b.WriteString(Digits)
	}
	if o.IncludeSymbols {
		b.WriteString(Symbols)
	}
	return b.String()
}

// MultipleOptions is the validated input record for GenerateMultiple.
type MultipleOptions struct {
	Count  int `json:"count" description:"Number of passwords to generate" minimum:"1" maximum:"10" default:"3"`
	Length int `json:"length" description:"Password length" minimum:"8" maximum:"128" default:"16"`
}

// Validate checks the count and length bounds.
func (o MultipleOptions) Validate() error {
	if o.Count < MinCount || o.Count > MaxCount {
		return &ValidationError{
			Field:   "count",
			Value:   o.Count,
			Message: fmt.Sprintf("must be between %d and %d", MinCount, MaxCount),
		}
	}
	return Options{Length: o.Length}.Validate()
}

// Generator draws characters from an injectable randomness source. The zero
// value uses crypto/rand.
type Generator struct {
	Rand io.Reader
}

func (g Generator) reader() io.Reader {
	if g.Rand == nil {
		return rand.Reader
	}
	return g.Rand
}

// Generate draws opts.Length characters independently and uniformly from the
// enabled alphabets. No per-class presence guarantee is made.
func (g Generator) Generate(opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	charset := opts.Charset()
	if charset == "" {
		return "", ErrNoCharacterClass
	}

	upper := big.NewInt(int64(len(charset)))
	out := make([]byte, opts.Length)
	for i := range out {
		n, err := rand.Int(g.reader(), upper)
		if err != nil {
			return "", fmt.Errorf("read random source: %w", err)
		}
		out[i] = charset[n.Int64()]
	}

	return string(out), nil
}

// GenerateMultiple calls Generate opts.Count times with every class enabled.
// Results are independent draws and may repeat.
func (g Generator) GenerateMultiple(opts MultipleOptions) ([]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	single := DefaultOptions()
	single.Length = opts.Length

	passwords := make([]string, 0, opts.Count)
	for range opts.Count {
		pw, err := g.Generate(single)
		if err != nil {
			return nil, err
		}
		passwords = append(passwords, pw)
	}
	return passwords, nil
}

// Generate is Generator{}.Generate using crypto/rand.
func Generate(opts Options) (string, error) { return Generator{}.Generate(opts) }

// GenerateMultiple is Generator{}.GenerateMultiple using crypto/rand.
func GenerateMultiple(opts MultipleOptions) ([]string, error) {
	return Generator{}.GenerateMultiple(opts)
}
