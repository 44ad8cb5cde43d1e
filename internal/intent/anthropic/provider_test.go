package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_ResolveIntent(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "test-model",
			"content": [{"type": "text", "text": "{\"operation\":\"count\"}"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer srv.Close()

	p, err := New("test-key", "test-model", srv.URL)
	require.NoError(t, err)

	raw, err := p.ResolveIntent(context.Background(), "сколько людей?", "SCHEMA DESCRIPTION")
	require.NoError(t, err)

	assert.Equal(t, `{"operation":"count"}`, raw)
	assert.Equal(t, "/v1/messages", gotPath)
	assert.Equal(t, "test-model", gotBody["model"])

	system, ok := gotBody["system"].([]any)
	require.True(t, ok)
	require.Len(t, system, 1)
	assert.Equal(t, "SCHEMA DESCRIPTION", system[0].(map[string]any)["text"])
}

func TestProvider_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"boom"}}`))
	}))
	defer srv.Close()

	p, err := New("test-key", "", srv.URL)
	require.NoError(t, err)

	_, err = p.ResolveIntent(context.Background(), "q", "d")
	assert.Error(t, err)
}
