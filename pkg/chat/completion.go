package chat

import (
	"strings"
	"unicode"
)

// exitCompleter completes the exit phrases at the start of the line.
type exitCompleter struct {
	phrases []string
}

func newExitCompleter() *exitCompleter {
	return &exitCompleter{
		phrases: append(append([]string{}, exitPhrases...), byePhrase),
	}
}

// triggerChar returns the position where the phrase starts, or -1 when
// the text before pos is not a candidate.
func (ec *exitCompleter) triggerChar(line []rune, pos int) int {
	i := 0
	for ; i < pos && unicode.IsSpace(line[i]); i++ {
	}
	if i == pos {
		return -1
	}
	for j := i; j < pos; j++ {
		if !unicode.IsGraphic(line[j]) || unicode.IsSpace(line[j]) {
			return -1
		}
	}
	return i
}

func (ec *exitCompleter) complete(prefix string) []string {
	results := make([]string, 0, len(ec.phrases))
	for _, p := range ec.phrases {
		if strings.HasPrefix(p, prefix) && p != prefix {
			results = append(results, p[len(prefix):])
		}
	}
	return results
}

// Do implements readline.AutoCompleter.
func (ec *exitCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	if pos > len(line) {
		pos = len(line)
	}
	start := ec.triggerChar(line, pos)
	if start < 0 {
		return nil, 0
	}
	prefix := string(line[start:pos])
	for _, result := range ec.complete(prefix) {
		newLine = append(newLine, []rune(result))
	}
	return newLine, len([]rune(prefix))
}
