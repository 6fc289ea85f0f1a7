package dialogflow

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingSpeech means the response had no result.fulfillment.speech.
var ErrMissingSpeech = errors.New("response has no fulfillment speech")

// APIError is a failed query, either by HTTP status or by the status
// block of the response body.
type APIError struct {
	StatusCode int
	ErrorType  string
	Details    string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("dialogflow: status %d", e.StatusCode)
	if e.ErrorType != "" {
		msg += " " + e.ErrorType
	}
	if e.Details != "" {
		msg += ": " + e.Details
	}
	return msg
}

type queryBody struct {
	Query     string `json:"query"`
	Lang      string `json:"lang"`
	SessionID string `json:"sessionId"`
}

type fulfillment struct {
	Speech *string `json:"speech"`
}

type queryResult struct {
	Source        string         `json:"source"`
	ResolvedQuery string         `json:"resolvedQuery"`
	Action        string         `json:"action"`
	Parameters    map[string]any `json:"parameters"`
	Fulfillment   *fulfillment   `json:"fulfillment"`
}

type status struct {
	Code         int    `json:"code"`
	ErrorType    string `json:"errorType"`
	ErrorDetails string `json:"errorDetails"`
}

type queryResponse struct {
	ID        string       `json:"id"`
	Lang      string       `json:"lang"`
	SessionID string       `json:"sessionId"`
	Result    *queryResult `json:"result"`
	Status    *status      `json:"status"`
}

// parseSpeech extracts result.fulfillment.speech from a /query response
// body.
func parseSpeech(data []byte) (string, error) {
	var resp queryResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("failed to decode query response: %w", err)
	}
	if s := resp.Status; s != nil && s.Code != 0 && s.Code != http.StatusOK {
		return "", &APIError{
			StatusCode: s.Code,
			ErrorType:  s.ErrorType,
			Details:    s.ErrorDetails,
		}
	}
	switch {
	case resp.Result == nil:
		return "", fmt.Errorf("%w: result is missing", ErrMissingSpeech)
	case resp.Result.Fulfillment == nil:
		return "", fmt.Errorf("%w: result.fulfillment is missing", ErrMissingSpeech)
	case resp.Result.Fulfillment.Speech == nil:
		return "", fmt.Errorf("%w: result.fulfillment.speech is missing", ErrMissingSpeech)
	}
	return *resp.Result.Fulfillment.Speech, nil
}

// parseAPIError builds an *APIError from a non-2xx response, using the
// status block when the body carries one.
func parseAPIError(code int, data []byte) error {
	apiErr := &APIError{StatusCode: code}
	var resp queryResponse
	if err := json.Unmarshal(data, &resp); err == nil && resp.Status != nil {
		apiErr.ErrorType = resp.Status.ErrorType
		apiErr.Details = resp.Status.ErrorDetails
	} else {
		apiErr.Details = string(data)
	}
	return apiErr
}
