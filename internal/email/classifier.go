package email

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// BreachRecord describes one breach an address was found in.
type BreachRecord struct {
	Source      string `json:"source"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// DomainAnalysis is the auxiliary block returned when no rule matched.
type DomainAnalysis struct {
	Domain             string `json:"domain"`
	UsernameLength     int    `json:"usernameLength"`
	DomainType         string `json:"domainType"`
	VerificationStatus string `json:"verificationStatus"`
}

// Assessment is the classification verdict for one address. It is always
// presentable: every code path, including the fail-open one, produces a
// complete Assessment rather than an error.
type Assessment struct {
	Breached       bool
	Breaches       []BreachRecord
	Count          int
	Source         string
	Note           string
	Warning        string
	Recommendation string
	Confidence     string
	Analysis       *DomainAnalysis
}

// Classifier evaluates addresses against a compiled rule set.
type Classifier struct {
	knownBreached  map[string]struct{}
	knownSafe      map[string]struct{}
	commonBreached map[string]struct{}
	safePatterns   []*regexp.Regexp
}

// NewClassifier compiles a rule set. Pattern compilation errors surface here
// so a bad configuration fails at startup, not per request.
func NewClassifier(rs RuleSet) (*Classifier, error) {
	return rs.compile()
}

// Classify runs the fixed-priority rules: known-breached list, known-safe
// list, common-breached list, safe patterns, then the neutral default.
// The first match wins. Matching is case-insensitive.
func (c *Classifier) Classify(email string) Assessment {
	lower := strings.ToLower(email)

	if _, ok := c.knownBreached[lower]; ok {
		return Assessment{
			Breached: true,
			Breaches: []BreachRecord{{
				Source:      "User-Verified Breach",
				Date:        "2023-01-15",
				Description: "Manually verified as compromised",
			}},
			Count:      1,
			Source:     "Manual Verification",
			Note:       "This email has been manually verified as breached",
			Warning:    "Immediately change passwords for accounts using this email",
			Confidence: "100% (user verified)",
		}
	}

	if _, ok := c.knownSafe[lower]; ok {
		return Assessment{
			Breached:   false,
			Breaches:   []BreachRecord{},
			Source:     "Manual Verification",
			Note:       "This email has been manually verified as safe",
			Confidence: "100% (user verified)",
		}
	}

	if _, ok := c.commonBreached[lower]; ok {
		return Assessment{
			Breached: true,
			Breaches: []BreachRecord{{
				Source:      "Common Email Database",
				Date:        "2022-06-20",
				Description: "Found in list of commonly breached emails",
			}},
			Count:      1,
			Source:     "Common Email Analysis",
			Note:       "This email pattern is commonly found in data breaches",
			Confidence: "High",
		}
	}

	for _, re := range c.safePatterns {
		if re.MatchString(lower) {
			return Assessment{
				Breached:   false,
				Breaches:   []BreachRecord{},
				Source:     "Pattern Analysis",
				Note:       "This email pattern is less likely to be in breaches",
				Confidence: "Medium",
			}
		}
	}

	// No rule matched: neutral verdict rather than a guess.
	username, domain, _ := strings.Cut(lower, "@")

	domainType := "Other"
	if strings.Contains(domain, ".com") {
		domainType = "Commercial"
	}

	return Assessment{
		Breached:       false,
		Breaches:       []BreachRecord{},
		Source:         "Neutral Analysis",
		Note:           "Email not found in our verification database. Check manually for accurate results.",
		Recommendation: "For 100% accurate results, visit https://haveibeenpwned.com",
		Confidence:     "Low - manual verification recommended",
		Analysis: &DomainAnalysis{
			Domain:             domain,
			UsernameLength:     utf8.RuneCountInString(username),
			DomainType:         domainType,
			VerificationStatus: "Not verified in our database",
		},
	}
}

// FailOpen is the assessment returned when classification itself fails.
// The check never surfaces an internal error to the caller; it degrades to
// a safe verdict with an explicit warning instead.
func FailOpen() Assessment {
	return Assessment{
		Breached:   false,
		Breaches:   []BreachRecord{},
		Source:     "Error Fallback",
		Note:       "Check failed - Assuming email is safe",
		Warning:    "Verify manually at https://haveibeenpwned.com",
		Confidence: "Unknown",
	}
}
