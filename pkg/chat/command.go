package chat

import (
	"strings"
)

// exitPhrases end the conversation when typed exactly.
var exitPhrases = []string{
	"exit()",
	"quit()",
	"exit",
	"quit",
}

// byePhrase ends the conversation in any letter case.
const byePhrase = "bye"

// IsExitPhrase reports whether line asks to end the conversation.
// Surrounding whitespace is ignored; "Exit" is not an exit phrase and
// goes to the agent like any other input.
func IsExitPhrase(line string) bool {
	line = strings.TrimSpace(line)
	for _, p := range exitPhrases {
		if line == p {
			return true
		}
	}
	return strings.EqualFold(line, byePhrase)
}
