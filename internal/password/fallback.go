package password

import (
	_ "embed"
	"strings"
	"unicode/utf8"
)

//go:embed common_passwords.txt
var commonPasswordsRaw string

// commonPasswords holds the embedded list used when the breach lookup
// service is unreachable. Entries are stored lowercased for
// case-insensitive matching.
var commonPasswords map[string]struct{}

func init() {
	lines := strings.Split(commonPasswordsRaw, "\n")
	commonPasswords = make(map[string]struct{}, len(lines))
	for _, line := range lines {
		pw := strings.TrimSpace(line)
		if pw == "" {
			continue
		}
		commonPasswords[strings.ToLower(pw)] = struct{}{}
	}
}

// fallbackBreachCount is reported for passwords on the embedded common list.
// The real occurrence count is unknown without the lookup service.
const fallbackBreachCount = 1000000

// FallbackScore is the fixed score reported on the degraded path.
const FallbackScore = 2

// FallbackResult is the degraded assessment used when the breach lookup
// collaborator is unavailable.
type FallbackResult struct {
	Pwned       bool
	BreachCount int
	Label       string
	Score       int
}

// FallbackCheck assesses a password offline: breach status from the embedded
// common-password list and a coarse length-only strength label.
func FallbackCheck(pw string) FallbackResult {
	res := FallbackResult{Score: FallbackScore}

	if _, found := commonPasswords[strings.ToLower(pw)]; found {
		res.Pwned = true
		res.BreachCount = fallbackBreachCount
	}

	switch length := utf8.RuneCountInString(pw); {
	case length >= 12:
		res.Label = "Strong"
	case length >= 8:
		res.Label = "Moderate"
	default:
		res.Label = "Weak"
	}

	return res
}
