package threaddump

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jvm-dump-analyser/pkg/errors"
)

func TestHeaderParser_ParseNameAndID(t *testing.T) {
	p := NewHeaderParser(DefaultPatterns)

	tests := []struct {
		name     string
		line     string
		wantName string
		wantID   string
	}{
		{"simple", `"main" - Thread t@1`, "main", "t@1"},
		{"spaces", `"Signal Dispatcher" - Thread t@4`, "Signal Dispatcher", "t@4"},
		{"dashes and digits", `"http-nio-8080-exec-1" - Thread t@31`, "http-nio-8080-exec-1", "t@31"},
		{"brackets and parens", `"RMI TCP Connection(2)-[10.0.0.1]" - Thread t@77`, "RMI TCP Connection(2)-[10.0.0.1]", "t@77"},
		{"underscore and dot", `"grpc_worker.pool" - Thread t@a_b-9`, "grpc_worker.pool", "t@a_b-9"},
		{"trailing text", `"main" - Thread t@1 prio=5`, "main", "t@1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotName, gotID, err := p.ParseNameAndID(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, gotName)
			assert.Equal(t, tt.wantID, gotID)
		})
	}
}

func TestHeaderParser_ParseNameAndID_Invalid(t *testing.T) {
	p := NewHeaderParser(DefaultPatterns)

	lines := []string{
		``,
		`main - Thread t@1`,
		`"main" #1 prio=5 os_prio=0 tid=0x00007f nid=0x1 runnable`,
		`"main" - Thread 1`,
		`"bad@name" - Thread t@1`,
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			_, _, err := p.ParseNameAndID(line)
			require.Error(t, err)

			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, line, fe.Line)
			assert.True(t, apperrors.IsFormatError(err))
		})
	}
}

func TestHeaderParser_ParseStateToken(t *testing.T) {
	p := NewHeaderParser(DefaultPatterns)

	tests := []struct {
		line string
		want string
	}{
		{"   java.lang.Thread.State: RUNNABLE", "RUNNABLE"},
		{"\tjava.lang.Thread.State: TIMED_WAITING", "TIMED_WAITING"},
		{"java.lang.Thread.State: BLOCKED", "BLOCKED"},
		{"   java.lang.Thread.State: WAITING (on object monitor)", "WAITING"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := p.ParseStateToken(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHeaderParser_ParseStateToken_Invalid(t *testing.T) {
	p := NewHeaderParser(DefaultPatterns)

	lines := []string{
		"",
		"   java.lang.Thread.State:",
		"   java.lang.Thread.State: runnable",
		"   Thread.State: RUNNABLE",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			_, err := p.ParseStateToken(line)
			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, line, fe.Line)
			assert.Zero(t, fe.LineNumber)
		})
	}
}

func TestFormatError_Message(t *testing.T) {
	err := &FormatError{Line: `bogus`, Reason: "unknown thread header format"}
	assert.Equal(t, `unknown thread header format: "bogus"`, err.Error())

	err.LineNumber = 4
	assert.Equal(t, `line 4: unknown thread header format: "bogus"`, err.Error())
}
