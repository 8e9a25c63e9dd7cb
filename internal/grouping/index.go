package grouping

import (
	"github.com/jvm-dump-analyser/pkg/model"
)

// Group is the set of threads sharing one normalized stack trace.
type Group struct {
	// Key is the normalized stack trace, also printed as the group's trace.
	Key string

	members []model.ThreadRecord
	seen    map[model.ThreadRecord]struct{}
}

func newGroup(key string) *Group {
	return &Group{
		Key:  key,
		seen: make(map[model.ThreadRecord]struct{}),
	}
}

// add inserts r unless an identical record is already present.
func (g *Group) add(r model.ThreadRecord) bool {
	if _, dup := g.seen[r]; dup {
		return false
	}
	g.seen[r] = struct{}{}
	g.members = append(g.members, r)
	return true
}

// Size returns the number of distinct threads in the group.
func (g *Group) Size() int {
	return len(g.members)
}

// Members returns the threads in first-seen order.
func (g *Group) Members() []model.ThreadRecord {
	out := make([]model.ThreadRecord, len(g.members))
	copy(out, g.members)
	return out
}

// Contains reports whether an identical record is in the group.
func (g *Group) Contains(r model.ThreadRecord) bool {
	_, ok := g.seen[r]
	return ok
}

// GroupIndex maps normalized keys to groups and iterates keys in the order
// they were first added.
type GroupIndex struct {
	keys   []string
	groups map[string]*Group
}

// NewGroupIndex creates an empty index.
func NewGroupIndex() *GroupIndex {
	return &GroupIndex{groups: make(map[string]*Group)}
}

// Add inserts r under key, creating the group on first use. It returns false
// if an identical record was already in that group.
func (idx *GroupIndex) Add(key string, r model.ThreadRecord) bool {
	g, ok := idx.groups[key]
	if !ok {
		g = newGroup(key)
		idx.groups[key] = g
		idx.keys = append(idx.keys, key)
	}
	return g.add(r)
}

// Get returns the group for key.
func (idx *GroupIndex) Get(key string) (*Group, bool) {
	g, ok := idx.groups[key]
	return g, ok
}

// Keys returns the keys in insertion order.
func (idx *GroupIndex) Keys() []string {
	out := make([]string, len(idx.keys))
	copy(out, idx.keys)
	return out
}

// Groups returns the groups in insertion order.
func (idx *GroupIndex) Groups() []*Group {
	out := make([]*Group, 0, len(idx.keys))
	for _, k := range idx.keys {
		out = append(out, idx.groups[k])
	}
	return out
}

// Len returns the number of groups.
func (idx *GroupIndex) Len() int {
	return len(idx.keys)
}

// ThreadCount returns the number of distinct threads across all groups.
func (idx *GroupIndex) ThreadCount() int {
	n := 0
	for _, g := range idx.groups {
		n += g.Size()
	}
	return n
}
