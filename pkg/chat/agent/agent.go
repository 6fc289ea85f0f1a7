package agent

//go:generate mockgen -source=agent.go -destination=mock/agent_mock.go -package=mock

import (
	"context"
)

// Request is one text query sent to the NLU service.
type Request struct {
	Query     string
	Lang      string
	SessionID string
}

// Agent answers a query with the fulfillment speech.
type Agent interface {
	Query(ctx context.Context, req *Request) (string, error)
}

type Factory interface {
	NewAgent(ctx context.Context) (Agent, error)
}
