package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvm-dump-analyser/pkg/model"
)

func dumpWithStacks(stacks ...string) *model.DumpDocument {
	doc := &model.DumpDocument{}
	for i, s := range stacks {
		doc.Threads = append(doc.Threads, model.ThreadRecord{
			Name:       "t",
			ID:         "t@" + string(rune('0'+i)),
			State:      model.ThreadStateWaiting,
			StackTrace: s,
		})
	}
	return doc
}

func TestTopFramesCalculator_Calculate(t *testing.T) {
	doc := dumpWithStacks(
		"at jdk.internal.misc.Unsafe.park(Native Method)\nat A.a",
		"at jdk.internal.misc.Unsafe.park(Native Method)\nat B.b",
		"at java.lang.Thread.sleep(Native Method)",
		"at java.lang.Object.wait(Native Method)\nat C.c",
		"at jdk.internal.misc.Unsafe.park(Native Method)",
	)

	entries := NewTopFramesCalculator().Calculate(doc)

	require.Len(t, entries, 3)
	assert.Equal(t, "at jdk.internal.misc.Unsafe.park(Native Method)", entries[0].Frame)
	assert.Equal(t, 3, entries[0].Threads)
	assert.InDelta(t, 60.0, entries[0].Percentage, 0.001)
	// Equal counts sort by frame text.
	assert.Equal(t, "at java.lang.Object.wait(Native Method)", entries[1].Frame)
	assert.Equal(t, "at java.lang.Thread.sleep(Native Method)", entries[2].Frame)
}

func TestTopFramesCalculator_WithTopN(t *testing.T) {
	doc := dumpWithStacks("at A", "at B", "at C", "at A")

	entries := NewTopFramesCalculator(WithTopN(1)).Calculate(doc)

	require.Len(t, entries, 1)
	assert.Equal(t, "at A", entries[0].Frame)
	assert.Equal(t, 2, entries[0].Threads)

	all := NewTopFramesCalculator(WithTopN(0)).Calculate(doc)
	assert.Len(t, all, 3)
}

func TestTopFramesCalculator_Empty(t *testing.T) {
	assert.Empty(t, NewTopFramesCalculator().Calculate(nil))
	assert.Empty(t, NewTopFramesCalculator().Calculate(&model.DumpDocument{}))
}
