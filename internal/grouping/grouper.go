package grouping

import (
	"github.com/jvm-dump-analyser/pkg/model"
	"github.com/jvm-dump-analyser/pkg/utils"
)

// Grouper builds a GroupIndex from parsed threads.
type Grouper struct {
	normalizer *Normalizer
	log        utils.Logger
}

// GrouperOption configures a Grouper.
type GrouperOption func(*Grouper)

// WithNormalizer sets the normalizer used to derive keys.
func WithNormalizer(n *Normalizer) GrouperOption {
	return func(g *Grouper) {
		if n != nil {
			g.normalizer = n
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l utils.Logger) GrouperOption {
	return func(g *Grouper) {
		g.log = utils.OrNull(l)
	}
}

// NewGrouper creates a Grouper using DefaultNormalizer unless overridden.
func NewGrouper(opts ...GrouperOption) *Grouper {
	g := &Grouper{
		normalizer: DefaultNormalizer,
		log:        &utils.NullLogger{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Group buckets threads by normalized stack trace, preserving first-seen order.
func (g *Grouper) Group(threads []model.ThreadRecord) *GroupIndex {
	idx := NewGroupIndex()
	for _, t := range threads {
		if !idx.Add(g.normalizer.Normalize(t.StackTrace), t) {
			g.log.Debug("thread %s (%s) already grouped, ignoring duplicate", t.ID, t.Name)
		}
	}
	g.log.Debug("grouped %d threads into %d groups", len(threads), idx.Len())
	return idx
}
