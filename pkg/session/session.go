package session

import (
	"fmt"

	"github.com/google/uuid"
)

// Scope decides how long a session identifier lives.
type Scope string

const (
	// ScopeTurn regenerates the identifier on every turn. Dialogflow
	// can't correlate turns then, so every query starts a new context.
	ScopeTurn Scope = "turn"
	// ScopeConversation keeps one identifier for the process lifetime.
	ScopeConversation Scope = "conversation"
)

func (s Scope) Validate() error {
	switch s {
	case ScopeTurn, ScopeConversation:
		return nil
	}
	return fmt.Errorf("unknown session scope %q", s)
}

func (s *Scope) UnmarshalText(text []byte) error {
	scope := Scope(text)
	if scope == "" {
		scope = ScopeTurn
	}
	if err := scope.Validate(); err != nil {
		return err
	}
	*s = scope
	return nil
}

// NewID returns a random (v4) session identifier.
func NewID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate session ID: %w", err)
	}
	return id.String(), nil
}

// Valid reports whether id is a well-formed session identifier.
func Valid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Tracker hands out the session identifier for each turn.
type Tracker struct {
	scope   Scope
	current string
	turns   int
}

func NewTracker(scope Scope) (*Tracker, error) {
	if scope == "" {
		scope = ScopeTurn
	}
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	return &Tracker{scope: scope}, nil
}

func (t *Tracker) Scope() Scope {
	return t.scope
}

// Next returns the identifier to send with the next turn.
func (t *Tracker) Next() (string, error) {
	t.turns++
	if t.scope == ScopeConversation && t.current != "" {
		return t.current, nil
	}
	id, err := NewID()
	if err != nil {
		return "", err
	}
	t.current = id
	return id, nil
}

// Current is the identifier handed out last, or "" before the first turn.
func (t *Tracker) Current() string {
	return t.current
}

// Turns is how many identifiers were handed out so far.
func (t *Tracker) Turns() int {
	return t.turns
}
