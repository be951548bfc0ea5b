// Package email classifies email addresses as breached, safe, or unknown
// using three lookup lists and a set of pattern rules evaluated in a fixed
// priority order. The rule set is loadable configuration: a database, a JSON
// file, or the embedded defaults.
package email

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// The default rule set ships inside the binary so the service classifies
// sensibly with zero configuration.
//
//go:embed default_rules.json
var defaultRulesRaw []byte

// RuleSet is the loadable classification configuration. List entries are
// matched case-insensitively against the whole address; safe patterns are
// regular expressions applied to the lowercased address.
type RuleSet struct {
	KnownBreached  []string `json:"known_breached"`
	KnownSafe      []string `json:"known_safe"`
	CommonBreached []string `json:"common_breached"`
	SafePatterns   []string `json:"safe_patterns"`
}

// Empty reports whether the rule set carries no entries at all.
func (rs RuleSet) Empty() bool {
	return len(rs.KnownBreached) == 0 &&
		len(rs.KnownSafe) == 0 &&
		len(rs.CommonBreached) == 0 &&
		len(rs.SafePatterns) == 0
}

// DefaultRuleSet returns the embedded rule set.
func DefaultRuleSet() RuleSet {
	var rs RuleSet
	if err := json.Unmarshal(defaultRulesRaw, &rs); err != nil {
		// The file ships inside the binary; a parse failure is a build defect.
		panic(fmt.Sprintf("email: embedded default_rules.json is invalid: %v", err))
	}
	return rs
}

// LoadRuleSetFile reads a rule set from a JSON file.
func LoadRuleSetFile(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("reading rule set: %w", err)
	}
	var rs RuleSet
	if err := json.Unmarshal(data, &rs); err != nil {
		return RuleSet{}, fmt.Errorf("parsing rule set %s: %w", path, err)
	}
	return rs, nil
}

// compile lowercases the lists into lookup sets and compiles the patterns.
func (rs RuleSet) compile() (*Classifier, error) {
	c := &Classifier{
		knownBreached:  toSet(rs.KnownBreached),
		knownSafe:      toSet(rs.KnownSafe),
		commonBreached: toSet(rs.CommonBreached),
	}

	for _, src := range rs.SafePatterns {
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("compiling safe pattern %q: %w", src, err)
		}
		c.safePatterns = append(c.safePatterns, re)
	}

	return c, nil
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		set[v] = struct{}{}
	}
	return set
}
