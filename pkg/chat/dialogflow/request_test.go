package dialogflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpeech(t *testing.T) {
	for _, tc := range []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{
			name: "speech",
			body: `{"result":{"fulfillment":{"speech":"Hello!"}}}`,
			want: "Hello!",
		},
		{
			name: "empty speech is still speech",
			body: `{"result":{"fulfillment":{"speech":""}}}`,
			want: "",
		},
		{
			name:    "no result",
			body:    `{"status":{"code":200}}`,
			wantErr: ErrMissingSpeech,
		},
		{
			name:    "no fulfillment",
			body:    `{"result":{"action":"input.unknown"}}`,
			wantErr: ErrMissingSpeech,
		},
		{
			name:    "no speech",
			body:    `{"result":{"fulfillment":{"messages":[]}}}`,
			wantErr: ErrMissingSpeech,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseSpeech([]byte(tc.body))
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseSpeech_StatusError(t *testing.T) {
	_, err := parseSpeech([]byte(`{"status":{"code":400,"errorType":"bad_request","errorDetails":"lang is missing"}}`))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Equal(t, "dialogflow: status 400 bad_request: lang is missing", apiErr.Error())
}

func TestParseSpeech_Malformed(t *testing.T) {
	_, err := parseSpeech([]byte(`<html>`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingSpeech)
}

func TestParseAPIError_PlainBody(t *testing.T) {
	err := parseAPIError(502, []byte("bad gateway"))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "bad gateway", apiErr.Details)
	assert.Equal(t, "dialogflow: status 502: bad gateway", err.Error())
}
