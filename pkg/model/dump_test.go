package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseThreadState(t *testing.T) {
	tests := []struct {
		token    string
		expected ThreadState
		ok       bool
	}{
		{"RUNNABLE", ThreadStateRunnable, true},
		{"WAITING", ThreadStateWaiting, true},
		{"TIMED_WAITING", ThreadStateTimedWaiting, true},
		{"BLOCKED", "", false},
		{"NEW", "", false},
		{"runnable", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			state, ok := ParseThreadState(tt.token)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, state)
		})
	}
}

func TestAllThreadStates(t *testing.T) {
	states := AllThreadStates()
	assert.Equal(t, []ThreadState{ThreadStateRunnable, ThreadStateWaiting, ThreadStateTimedWaiting}, states)

	// Mutating the returned slice must not leak into the package.
	states[0] = "BROKEN"
	assert.Equal(t, ThreadStateRunnable, AllThreadStates()[0])
}

func TestThreadRecord_String(t *testing.T) {
	r := ThreadRecord{Name: "main", ID: "t@1", State: ThreadStateRunnable}
	assert.Equal(t, "Thread t@1 - main : RUNNABLE", r.String())
}

func TestThreadRecord_Equality(t *testing.T) {
	a := ThreadRecord{Name: "w", ID: "t@1", State: ThreadStateWaiting, StackTrace: "at x"}
	b := a
	c := a
	c.ID = "t@2"

	assert.True(t, a == b)
	assert.False(t, a == c)
}

func TestDumpDocument_ThreadCount(t *testing.T) {
	var nilDoc *DumpDocument
	assert.Equal(t, 0, nilDoc.ThreadCount())

	doc := &DumpDocument{Threads: []ThreadRecord{{ID: "t@1"}, {ID: "t@2"}}}
	assert.Equal(t, 2, doc.ThreadCount())
}
