package password

import (
	"regexp"
	"unicode/utf8"
)

// MaxScore is the highest reachable strength score.
const MaxScore = 8

// maxSuggestions caps the remediation list returned to clients.
const maxSuggestions = 4

var (
	upperRegex   = regexp.MustCompile(`[A-Z]`)
	lowerRegex   = regexp.MustCompile(`[a-z]`)
	digitRegex   = regexp.MustCompile(`[0-9]`)
	specialRegex = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// Strength is the heuristic assessment of a password, independent of any
// breach lookup.
type Strength struct {
	Score        int
	Label        string
	Length       int
	HasUppercase bool
	HasLowercase bool
	HasNumbers   bool
	HasSpecial   bool
	Suggestions  []string
}

// Evaluate scores a password with additive rules: up to 3 points for length,
// 1 each for upper/lower/digit variety and 2 for special characters.
// Suggestions are generated in rule order (length, uppercase, lowercase,
// numbers, special) and truncated to four entries.
func Evaluate(pw string) Strength {
	// Length is counted in characters, not bytes.
	length := utf8.RuneCountInString(pw)
	s := Strength{
		Length:       length,
		HasUppercase: upperRegex.MatchString(pw),
		HasLowercase: lowerRegex.MatchString(pw),
		HasNumbers:   digitRegex.MatchString(pw),
		HasSpecial:   specialRegex.MatchString(pw),
	}

	switch {
	case length >= 16:
		s.Score += 3
	case length >= 12:
		s.Score += 2
	case length >= 8:
		s.Score += 1
	default:
		s.Suggestions = append(s.Suggestions, "Too short - Use at least 8 characters")
	}

	if s.HasUppercase {
		s.Score++
	} else {
		s.Suggestions = append(s.Suggestions, "Add uppercase letters")
	}
	if s.HasLowercase {
		s.Score++
	} else {
		s.Suggestions = append(s.Suggestions, "Add lowercase letters")
	}
	if s.HasNumbers {
		s.Score++
	} else {
		s.Suggestions = append(s.Suggestions, "Add numbers")
	}
	if s.HasSpecial {
		s.Score += 2
	} else {
		s.Suggestions = append(s.Suggestions, "Add special characters (!@#$%)")
	}

	switch {
	case s.Score >= 6:
		s.Label = "Very Strong"
	case s.Score >= 4:
		s.Label = "Strong"
	case s.Score >= 2:
		s.Label = "Moderate"
	case s.Score >= 0:
		s.Label = "Weak"
	default:
		// Unreachable with non-negative scores; kept to mirror the label set.
		s.Label = "Very Weak"
	}

	// Anything under 4 characters is unsalvageable regardless of variety.
	if length < 4 {
		s.Label = "Very Weak"
		s.Suggestions = append([]string{"Password is dangerously short"}, s.Suggestions...)
	}

	if len(s.Suggestions) > maxSuggestions {
		s.Suggestions = s.Suggestions[:maxSuggestions]
	}

	return s
}
