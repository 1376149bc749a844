package password

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Strength is the label derived from the number of passed checks.
type Strength string

// Strength labels by score: 0-2 weak, 3 medium, 4 strong, 5 very strong.
const (
	StrengthWeak       Strength = "weak"
	StrengthMedium     Strength = "medium"
	StrengthStrong     Strength = "strong"
	StrengthVeryStrong Strength = "very_strong"
)

// MinStrongLength is the length at which the length check passes.
const MinStrongLength = 12

// MaxScore is the number of checks performed by CheckStrength.
const MaxScore = 5

// Checks holds the five boolean strength checks.
type Checks struct {
	LengthOK     bool `json:"length_ok"`
	HasUppercase bool `json:"has_uppercase"`
	HasLowercase bool `json:"has_lowercase"`
	HasNumbers   bool `json:"has_numbers"`
	HasSymbols   bool `json:"has_symbols"`
}

// Passed counts the checks that are true.
func (c Checks) Passed() int {
	n := 0
	for _, ok := range []bool{c.LengthOK, c.HasUppercase, c.HasLowercase, c.HasNumbers, c.HasSymbols} {
		if ok {
			n++
		}
	}
	return n
}

// Report is the result of CheckStrength.
type Report struct {
	PasswordLength  int      `json:"password_length"`
	Strength        Strength `json:"strength"`
	Score           string   `json:"score"`
	Checks          Checks   `json:"checks"`
	Recommendations []string `json:"recommendations"`
}

// Points returns the numeric score (the N in "N/5").
func (r Report) Points() int { return r.Checks.Passed() }

// CheckInput is the validated input record for CheckStrength.
type CheckInput struct {
	Password string `json:"password" description:"The password to check"`
}

// CheckStrength evaluates password against the five checks and returns one
// recommendation per failed check, ordered length, uppercase, lowercase,
// numbers, symbols.
func CheckStrength(password string) Report {
	checks := Checks{
		LengthOK:     utf8.RuneCountInString(password) >= MinStrongLength,
		HasUppercase: strings.IndexFunc(password, unicode.IsUpper) >= 0,
		HasLowercase: strings.IndexFunc(password, unicode.IsLower) >= 0,
		HasNumbers:   strings.IndexFunc(password, unicode.IsDigit) >= 0,
		HasSymbols:   strings.ContainsAny(password, Symbols),
	}

	score := checks.Passed()

	recommendations := []string{}
	if !checks.LengthOK {
		recommendations = append(recommendations, fmt.Sprintf("Increase length to at least %d characters", MinStrongLength))
	}
	if !checks.HasUppercase {
		recommendations = append(recommendations, "Add uppercase letters")
	}
	if !checks.HasLowercase {
		recommendations = append(recommendations, "Add lowercase letters")
	}
	if !checks.HasNumbers {
		recommendations = append(recommendations, "Add numbers")
	}
	if !checks.HasSymbols {
		recommendations = append(recommendations, "Add special symbols")
	}

	return Report{
		PasswordLength:  utf8.RuneCountInString(password),
		Strength:        strengthFor(score),
		Score:           fmt.Sprintf("%d/%d", score, MaxScore),
		Checks:          checks,
		Recommendations: recommendations,
	}
}

func strengthFor(score int) Strength {
	switch {
	case score <= 2:
		return StrengthWeak
	case score == 3:
		return StrengthMedium
	case score == 4:
		return StrengthStrong
	default:
		return StrengthVeryStrong
	}
}
