// Package formatter renders grouped threads and run summaries.
package formatter

import (
	"io"
	"sort"

	"github.com/jvm-dump-analyser/internal/grouping"
)

// ReportFormatter writes the emitted groups to w.
type ReportFormatter interface {
	// Write renders groups in the order given.
	Write(w io.Writer, groups []*grouping.Group) error

	// Name returns the format name used in configuration.
	Name() string
}

// Registry manages report formatters by name.
type Registry struct {
	formatters map[string]ReportFormatter
	fallback   ReportFormatter
}

// NewRegistry creates a registry holding the text formatter.
func NewRegistry(color bool) *Registry {
	text := &TextFormatter{Color: color}
	r := &Registry{
		formatters: make(map[string]ReportFormatter),
		fallback:   text,
	}
	r.Register(text)
	return r
}

// Register adds or replaces a formatter.
func (r *Registry) Register(f ReportFormatter) {
	r.formatters[f.Name()] = f
}

// Get returns the formatter registered under name, or the text formatter.
func (r *Registry) Get(name string) ReportFormatter {
	if f, ok := r.formatters[name]; ok {
		return f
	}
	return r.fallback
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.formatters[name]
	return ok
}

// Names returns the registered format names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.formatters))
	for n := range r.formatters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
