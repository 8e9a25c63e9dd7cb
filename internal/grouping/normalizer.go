// Package grouping buckets threads whose stack traces are equal once
// per-run lock identifiers are masked.
package grouping

import (
	"regexp"
	"strings"
)

// Placeholder replaces every masked lock identifier.
const Placeholder = "<X>"

// Rule rewrites one kind of lock reference in a stack trace.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// DefaultRules mask the monitor and parking addresses the JVM prints next to
// "waiting on", "locked" and "parking to wait for".
var DefaultRules = []Rule{
	{
		Name:        "waiting-on",
		Pattern:     regexp.MustCompile(`waiting on <[0-9a-zA-Z]+>`),
		Replacement: "waiting on " + Placeholder,
	},
	{
		Name:        "locked",
		Pattern:     regexp.MustCompile(`locked <[0-9a-zA-Z]+>`),
		Replacement: "locked " + Placeholder,
	},
	{
		Name:        "wait-for",
		Pattern:     regexp.MustCompile(`wait for <[0-9a-zA-Z]+>`),
		Replacement: "wait for " + Placeholder,
	},
}

// Normalizer turns a raw stack trace into a grouping key.
// It is immutable and safe for concurrent use.
type Normalizer struct {
	rules []Rule
}

// NewNormalizer creates a Normalizer applying rules in order.
// With no rules it uses DefaultRules.
func NewNormalizer(rules ...Rule) *Normalizer {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Normalizer{rules: append([]Rule(nil), rules...)}
}

// DefaultNormalizer uses DefaultRules.
var DefaultNormalizer = NewNormalizer()

// Normalize masks lock identifiers in stack and trims surrounding whitespace.
// Normalize(Normalize(s)) == Normalize(s).
func (n *Normalizer) Normalize(stack string) string {
	for _, r := range n.rules {
		// The replacement holds no '$' so it is used literally.
		stack = r.Pattern.ReplaceAllLiteralString(stack, r.Replacement)
	}
	return strings.TrimSpace(stack)
}
