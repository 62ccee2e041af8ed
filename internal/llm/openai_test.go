package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  "test-model",
	}
}

func completion(content, finish string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finish,
			}},
			"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
		})
	}
}

func apiError(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": "error", "message": http.StatusText(status)},
		})
	}
}

var pairSchema = &Schema{
	Name: "test-pair",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"front": map[string]any{"type": "string"},
			"back":  map[string]any{"type": "string"},
		},
		"required":             []any{"front", "back"},
		"additionalProperties": false,
	},
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
		ResponseFormat *struct {
			Type string `json:"type"`
		} `json:"response_format"`
	}
	handler := func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		completion(`{"front":"Q","back":"A"}`, "stop")(w, r)
	}

	p := newTestOpenAIProvider(t, handler)
	req := UserPrompt("Create concise Q/A flashcards.", "content")
	req.Schema = pairSchema
	resp, err := p.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.JSONEq(t, `{"front":"Q","back":"A"}`, string(resp.Content))
	assert.Equal(t, 40, resp.Usage.InputTokens)
	assert.Equal(t, 25, resp.Usage.OutputTokens)
	assert.Equal(t, "end", resp.StopReason)

	require.Len(t, got.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, got.Messages[0].Role)
	assert.Equal(t, "test-model", got.Model)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "json_schema", got.ResponseFormat.Type)
}

func TestOpenAIProvider_StripsCodeFence(t *testing.T) {
	p := newTestOpenAIProvider(t, completion("```json\n{\"front\":\"Q\",\"back\":\"A\"}\n```", "stop"))
	req := UserPrompt("", "content")
	req.Schema = pairSchema

	resp, err := p.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"front":"Q","back":"A"}`, string(resp.Content))
}

func TestOpenAIProvider_SchemaMismatch(t *testing.T) {
	p := newTestOpenAIProvider(t, completion(`{"front":"Q"}`, "stop"))
	req := UserPrompt("", "content")
	req.Schema = pairSchema

	_, err := p.Generate(context.Background(), req)
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestOpenAIProvider_PlainText(t *testing.T) {
	p := newTestOpenAIProvider(t, completion("A short summary.", "stop"))

	resp, err := p.Generate(context.Background(), UserPrompt("", "summarize"))
	require.NoError(t, err)

	var text string
	require.NoError(t, json.Unmarshal(resp.Content, &text))
	assert.Equal(t, "A short summary.", text)
}

func TestOpenAIProvider_Truncated(t *testing.T) {
	p := newTestOpenAIProvider(t, completion(`{"front":`, "length"))

	_, err := p.Generate(context.Background(), UserPrompt("", "x"))
	var maxTok *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &maxTok)
}

func TestOpenAIProvider_ErrorMapping(t *testing.T) {
	p := newTestOpenAIProvider(t, apiError(http.StatusTooManyRequests))
	_, err := p.Generate(context.Background(), UserPrompt("", "x"))
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)

	p = newTestOpenAIProvider(t, apiError(http.StatusInternalServerError))
	_, err = p.Generate(context.Background(), UserPrompt("", "x"))
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}

func TestOpenAIProvider_ContextCanceled(t *testing.T) {
	p := newTestOpenAIProvider(t, completion("{}", "stop"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, UserPrompt("", "x"))
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestNewOpenAIProvider(t *testing.T) {
	_, err := NewOpenAIProvider(OpenAIConfig{Model: "m"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "google/gemini-2.5-flash", BaseURL: "https://openrouter.ai/api/v1/"})
	require.NoError(t, err)
	assert.Equal(t, "google/gemini-2.5-flash", p.ModelID())
}
