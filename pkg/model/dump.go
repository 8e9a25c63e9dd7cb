// Package model defines the core data structures used throughout the application.
package model

import "fmt"

// ThreadState represents the execution state reported for a JVM thread.
type ThreadState string

// The closed set of thread states understood by the analyser.
const (
	ThreadStateRunnable     ThreadState = "RUNNABLE"
	ThreadStateWaiting      ThreadState = "WAITING"
	ThreadStateTimedWaiting ThreadState = "TIMED_WAITING"
)

var threadStates = []ThreadState{
	ThreadStateRunnable,
	ThreadStateWaiting,
	ThreadStateTimedWaiting,
}

// AllThreadStates returns every known thread state in declaration order.
func AllThreadStates() []ThreadState {
	states := make([]ThreadState, len(threadStates))
	copy(states, threadStates)
	return states
}

// ParseThreadState maps a raw state token to a ThreadState.
// The second return value is false if the token is outside the known set.
func ParseThreadState(token string) (ThreadState, bool) {
	for _, s := range threadStates {
		if string(s) == token {
			return s, true
		}
	}
	return "", false
}

// String returns the string representation of ThreadState.
func (s ThreadState) String() string {
	return string(s)
}

// DumpHeader holds the two leading lines of a dump file. Neither is parsed.
type DumpHeader struct {
	Timestamp   string `json:"timestamp"`
	Description string `json:"description"`
}

// ThreadRecord describes one thread parsed from a dump.
//
// ThreadRecord is a comparable value type: two records are the same thread
// exactly when all four fields are equal.
type ThreadRecord struct {
	Name       string      `json:"name"`
	ID         string      `json:"id"`
	State      ThreadState `json:"state"`
	StackTrace string      `json:"stack_trace"`
}

// String returns the report line for the thread.
func (r ThreadRecord) String() string {
	return fmt.Sprintf("Thread %s - %s : %s", r.ID, r.Name, r.State)
}

// DumpDocument is a fully parsed thread dump.
type DumpDocument struct {
	Header  DumpHeader     `json:"header"`
	Threads []ThreadRecord `json:"threads"`
}

// ThreadCount returns the number of parsed threads.
func (d *DumpDocument) ThreadCount() int {
	if d == nil {
		return 0
	}
	return len(d.Threads)
}
