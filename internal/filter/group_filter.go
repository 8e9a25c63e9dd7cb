// Package filter selects which thread groups make it into the report.
package filter

import (
	"fmt"
	"strings"

	"github.com/jvm-dump-analyser/internal/grouping"
)

// GroupFilter holds the optional report predicates. All set predicates must
// hold for a group to be emitted.
type GroupFilter struct {
	// MaxSize drops groups with more members. Nil means no upper bound.
	MaxSize *int
	// MinSize drops groups with fewer members. Nil means no lower bound.
	MinSize *int
	// Keywords keeps groups whose normalized key contains at least one of
	// them. Matching is case-sensitive. Empty means no keyword filter.
	Keywords []string
}

// Match reports whether g passes every configured predicate.
func (f GroupFilter) Match(g *grouping.Group) bool {
	size := g.Size()
	if f.MaxSize != nil && size > *f.MaxSize {
		return false
	}
	if f.MinSize != nil && size < *f.MinSize {
		return false
	}
	if len(f.Keywords) == 0 {
		return true
	}
	for _, kw := range f.Keywords {
		if strings.Contains(g.Key, kw) {
			return true
		}
	}
	return false
}

// Apply returns the matching groups of idx in iteration order.
func (f GroupFilter) Apply(idx *grouping.GroupIndex) []*grouping.Group {
	var out []*grouping.Group
	for _, g := range idx.Groups() {
		if f.Match(g) {
			out = append(out, g)
		}
	}
	return out
}

// IsEmpty reports whether no predicate is set.
func (f GroupFilter) IsEmpty() bool {
	return f.MaxSize == nil && f.MinSize == nil && len(f.Keywords) == 0
}

// String describes the active predicates for logging.
func (f GroupFilter) String() string {
	if f.IsEmpty() {
		return "none"
	}
	var parts []string
	if f.MaxSize != nil {
		parts = append(parts, fmt.Sprintf("size<=%d", *f.MaxSize))
	}
	if f.MinSize != nil {
		parts = append(parts, fmt.Sprintf("size>=%d", *f.MinSize))
	}
	if len(f.Keywords) > 0 {
		parts = append(parts, fmt.Sprintf("keywords=%q", f.Keywords))
	}
	return strings.Join(parts, " ")
}

// ParseKeywords splits a comma-separated list, trimming the indentation in
// front of each entry and dropping empty entries. Trailing spaces are kept
// and take part in matching.
func ParseKeywords(csv string) []string {
	var out []string
	for _, kw := range strings.Split(csv, ",") {
		if kw = strings.TrimLeft(kw, " \t"); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// Int returns a pointer to v, for building filters inline.
func Int(v int) *int {
	return &v
}
