package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tripplanner/config"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completionBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1760000000,
  "model": "qwen-plus",
  "choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "{\"title\":\"杭州\"}"}}]
}`

func newTestGenerator(t *testing.T, handler http.HandlerFunc) *OpenAIGenerator {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewOpenAIGenerator(config.LLMConfig{
		BaseURL:        server.URL + "/v1",
		APIKey:         "test-key",
		Model:          "qwen-plus",
		Temperature:    0.7,
		TimeoutSeconds: 5,
	}, discardLogger())
}

func TestOpenAIGenerator_Generate(t *testing.T) {
	var received map[string]any
	gen := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody))
	})

	text, err := gen.Generate(context.Background(), []Message{
		{Role: RoleSystem, Content: "只输出 JSON"},
		{Role: RoleUser, Content: "去杭州"},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"title":"杭州"}`, text)

	assert.Equal(t, "qwen-plus", received["model"])
	assert.Equal(t, 0.7, received["temperature"])
	msgs, ok := received["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	format, ok := received["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_object", format["type"])
}

func TestOpenAIGenerator_Generate_NonJSONError(t *testing.T) {
	gen := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("upstream exploded"))
	})

	_, err := gen.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstreamCallFailed))
	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusInternalServerError, ue.StatusCode)
	assert.Equal(t, "upstream exploded", ue.Body)
}

func TestOpenAIGenerator_Generate_JSONError(t *testing.T) {
	calls := 0
	gen := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key","type":"invalid_request_error"}}`))
	})

	_, err := gen.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusUnauthorized, ue.StatusCode)
	assert.Contains(t, ue.Body, "Incorrect API key")
	assert.Equal(t, 1, calls, "不重试")
}

func TestOpenAIGenerator_Generate_NoChoices(t *testing.T) {
	gen := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"qwen-plus","choices":[]}`))
	})
	_, err := gen.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	assert.True(t, errors.Is(err, ErrMalformedResponse))
}

func TestOpenAIGenerator_Generate_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	gen := NewOpenAIGenerator(config.LLMConfig{BaseURL: url + "/v1", APIKey: "k", Model: "m", TimeoutSeconds: 1}, discardLogger())
	_, err := gen.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Zero(t, ue.StatusCode)
}

func TestOpenAIGenerator_Generate_Cancelled(t *testing.T) {
	gen := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := gen.Generate(ctx, []Message{{Role: RoleUser, Content: "hi"}})
	assert.ErrorIs(t, err, context.Canceled)
}
