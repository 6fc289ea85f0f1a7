// Package dialogflow talks to the Dialogflow v1 query API.
package dialogflow

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/smacpher/frarold/pkg/chat/agent"
)

type Agent struct {
	client  *resty.Client
	version string
}

// New builds an agent from the config. The token is resolved once here
// and then sent as the bearer credential with every query.
func New(c *Config) (*Agent, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	token, err := c.Token()
	if err != nil {
		return nil, err
	}
	baseURL, err := normalizeBaseURL(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid dialogflow base_url: %w", err)
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json; charset=utf-8").
		SetTimeout(c.Timeout)
	return &Agent{
		client:  client,
		version: c.ProtocolVersion,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// Query implements [agent.Agent].
func (a *Agent) Query(ctx context.Context, req *agent.Request) (string, error) {
	r := a.client.R().
		SetContext(ctx).
		SetBody(queryBody{
			Query:     req.Query,
			Lang:      req.Lang,
			SessionID: req.SessionID,
		})
	if a.version != "" {
		r.SetQueryParam("v", a.version)
	}
	resp, err := r.Post("/query")
	if err != nil {
		return "", fmt.Errorf("query request: %w", err)
	}
	if resp.StatusCode()/100 != 2 {
		return "", parseAPIError(resp.StatusCode(), resp.Body())
	}
	return parseSpeech(resp.Body())
}
