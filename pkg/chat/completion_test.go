package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func completions(line string, pos int) ([]string, int) {
	newLine, length := newExitCompleter().Do([]rune(line), pos)
	var results []string
	for _, l := range newLine {
		results = append(results, string(l))
	}
	return results, length
}

func TestExitCompleter(t *testing.T) {
	got, length := completions("ex", 2)
	assert.Equal(t, []string{"it()", "it"}, got)
	assert.Equal(t, 2, length)

	got, length = completions("  qu", 4)
	assert.Equal(t, []string{"it()", "it"}, got)
	assert.Equal(t, 2, length)

	got, _ = completions("exit", 4)
	assert.Equal(t, []string{"()"}, got)

	got, _ = completions("b", 1)
	assert.Equal(t, []string{"ye"}, got)
}

func TestExitCompleter_NoCandidates(t *testing.T) {
	for _, tc := range []struct {
		line string
		pos  int
	}{
		{"", 0},
		{"   ", 3},
		{"hello ex", 8},
		{"what", 4},
	} {
		got, length := completions(tc.line, tc.pos)
		assert.Empty(t, got, "%q", tc.line)
		if tc.line != "what" {
			assert.Zero(t, length, "%q", tc.line)
		}
	}
}

func TestExitCompleter_PosBeyondLine(t *testing.T) {
	got, _ := completions("by", 10)
	assert.Equal(t, []string{"e"}, got)
}
