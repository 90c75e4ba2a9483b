package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chatRequest mirrors the fields of the chat completions body the tests inspect.
type chatRequest struct {
	Model          string `json:"model"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func chatReply(w http.ResponseWriter, model, content string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  model,
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	})
}

func openaiTestConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Provider = ProviderOpenAI
	cfg.Endpoint = endpoint
	cfg.APIKey = "sk-test"
	cfg.Model = "gpt-text"
	cfg.VisionModel = "gpt-vision"
	return cfg
}

func TestOpenAIClient_Generate_Text(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-text", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "break it down", req.Messages[1].Content)
		require.NotNil(t, req.ResponseFormat)
		assert.Equal(t, "json_object", req.ResponseFormat.Type)

		chatReply(w, req.Model, `{"tasks":[]}`)
	}))
	defer srv.Close()

	var captured LLMCallEvent
	client := NewClient(openaiTestConfig(srv.URL), &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskBreakdown,
		SystemPrompt: "you plan projects",
		UserPrompt:   "break it down",
		JSON:         true,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"tasks":[]}`, resp.Text)
	assert.Equal(t, "gpt-text", resp.Model)
	assert.True(t, captured.Success)
	assert.Equal(t, ProviderOpenAI, captured.Provider)
}

func TestOpenAIClient_Generate_ImageAsDataURL(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n0000")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-vision", body["model"])

		msgs := body["messages"].([]any)
		user := msgs[len(msgs)-1].(map[string]any)
		parts := user["content"].([]any)
		require.Len(t, parts, 2)
		img := parts[1].(map[string]any)["image_url"].(map[string]any)
		assert.True(t, strings.HasPrefix(img["url"].(string), "data:image/png;base64,"))

		chatReply(w, "gpt-vision", "{}")
	}))
	defer srv.Close()

	client := NewOpenAIClient(openaiTestConfig(srv.URL), nil)
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskParseImage,
		UserPrompt: "read the chart",
		Images:     [][]byte{png},
	})
	require.NoError(t, err)
}

func TestOpenAIClient_Generate_ServerError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"bad image","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	cfg := openaiTestConfig(srv.URL)
	cfg.MaxRetries = 2
	client := NewOpenAIClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskBreakdown, UserPrompt: "x"})

	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Contains(t, err.Error(), "bad image")
	assert.Equal(t, 3, calls)
}

func TestOpenAIClient_Unavailable(t *testing.T) {
	cfg := openaiTestConfig("http://127.0.0.1:1")
	cfg.MaxRetries = 0
	client := NewOpenAIClient(cfg, NoopObserver{})

	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskBreakdown, UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, client.Available(context.Background()))
}
