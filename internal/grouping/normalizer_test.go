package grouping

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizer_Normalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "locked",
			input: "at A.m(A.java:1)\n- locked <0x1234abcd> (a java.lang.Object)",
			want:  "at A.m(A.java:1)\n- locked <X> (a java.lang.Object)",
		},
		{
			name:  "waiting on",
			input: "at java.lang.Object.wait(Native Method)\n- waiting on <7f3a2b1c> (a java.lang.ref.ReferenceQueue$Lock)",
			want:  "at java.lang.Object.wait(Native Method)\n- waiting on <X> (a java.lang.ref.ReferenceQueue$Lock)",
		},
		{
			name:  "parking to wait for",
			input: "at jdk.internal.misc.Unsafe.park(Native Method)\n- parking to wait for <6f2b5d1a> (a java.util.concurrent.locks.AbstractQueuedSynchronizer$ConditionObject)",
			want:  "at jdk.internal.misc.Unsafe.park(Native Method)\n- parking to wait for <X> (a java.util.concurrent.locks.AbstractQueuedSynchronizer$ConditionObject)",
		},
		{
			name:  "several identifiers",
			input: "- waiting on <aa>\n- locked <bb>\n- locked <cc>",
			want:  "- waiting on <X>\n- locked <X>\n- locked <X>",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "\n  at A.m(A.java:1)  \n\n",
			want:  "at A.m(A.java:1)",
		},
		{
			name:  "bare address left alone",
			input: "- <1a2b3c4d> (a java.util.concurrent.locks.ReentrantLock$NonfairSync)",
			want:  "- <1a2b3c4d> (a java.util.concurrent.locks.ReentrantLock$NonfairSync)",
		},
		{
			name:  "non alphanumeric id left alone",
			input: "- locked <0x12-34>",
			want:  "- locked <0x12-34>",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultNormalizer.Normalize(tt.input))
		})
	}
}

func TestNormalizer_Idempotent(t *testing.T) {
	inputs := []string{
		"- locked <0x1234abcd>",
		"- waiting on <X>\n- wait for <X>",
		"  at A.m(A.java:1)\n- parking to wait for <beef>  ",
	}
	for _, in := range inputs {
		once := DefaultNormalizer.Normalize(in)
		assert.Equal(t, once, DefaultNormalizer.Normalize(once))
	}
}

func TestNormalizer_LockIDsDoNotAffectKey(t *testing.T) {
	a := DefaultNormalizer.Normalize("at A.run\n- locked <11111111>\n- waiting on <22222222>")
	b := DefaultNormalizer.Normalize("at A.run\n- locked <abcdef00>\n- waiting on <00fedcba>")
	assert.Equal(t, a, b)
}

func TestNewNormalizer_CustomRules(t *testing.T) {
	n := NewNormalizer(Rule{
		Name:        "hex",
		Pattern:     regexp.MustCompile(`0x[0-9a-f]+`),
		Replacement: "0x?",
	})

	assert.Equal(t, "at 0x? - locked <aa>", n.Normalize(" at 0xdead - locked <aa> "))
}
