package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// chatServer serves chat completion replies and records the last
// request body and headers.
func chatServer(t *testing.T, status int, reply map[string]any) (*httptest.Server, *map[string]any, *http.Header) {
	t.Helper()
	var body map[string]any
	var header http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(reply)
	}))
	t.Cleanup(server.Close)
	return server, &body, &header
}

func chatCompletion(model, content, finishReason string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1760000000,
		"model":   model,
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finishReason,
		}},
		"usage": map[string]any{"prompt_tokens": 240, "completion_tokens": 180, "total_tokens": 420},
	}
}

func newTestOpenAIProvider(t *testing.T, server *httptest.Server) *OpenAIProvider {
	t.Helper()
	p, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		BaseURL: server.URL + "/v1",
	})
	if err != nil {
		t.Fatalf("NewOpenAIProvider: %v", err)
	}
	return p
}

func TestOpenAIProvider_QuestionArray(t *testing.T) {
	server, body, _ := chatServer(t, http.StatusOK,
		chatCompletion("gpt-4o-mini-2024-07-18", questionArray, "stop"))
	p := newTestOpenAIProvider(t, server)

	resp, err := p.Generate(context.Background(), questionRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertQuestionArray(t, resp.Content)

	if (*body)["model"] != "gpt-4o-mini" {
		t.Errorf("model = %v", (*body)["model"])
	}
	if _, ok := (*body)["response_format"]; ok {
		t.Error("json_object mode rejects arrays, no response_format expected")
	}
	msgs, _ := (*body)["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected system and user messages, got %d", len(msgs))
	}
	if first, _ := msgs[0].(map[string]any); first["role"] != "system" {
		t.Errorf("first message role = %v", first["role"])
	}
	if resp.Model != "gpt-4o-mini-2024-07-18" || resp.Usage.TotalTokens != 420 {
		t.Errorf("model = %q usage = %+v", resp.Model, resp.Usage)
	}
}

func TestOpenAIProvider_ChattyArray(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"fenced", "```json\n" + questionArray + "\n```"},
		{"prose", "Here are the questions you asked for:\n\n" + questionArray},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _, _ := chatServer(t, http.StatusOK, chatCompletion("gpt-4o-mini", tt.content, "stop"))
			p := newTestOpenAIProvider(t, server)

			resp, err := p.Generate(context.Background(), questionRequest())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertQuestionArray(t, resp.Content)
		})
	}
}

func TestOpenAIProvider_MalformedArrayPassesThrough(t *testing.T) {
	// Deciding what a refusal means is the question generator's job.
	server, _, _ := chatServer(t, http.StatusOK,
		chatCompletion("gpt-4o-mini", "I'm sorry, I can't write questions on that topic.", "stop"))
	p := newTestOpenAIProvider(t, server)

	resp, err := p.Generate(context.Background(), questionRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if json.Valid(resp.Content) {
		t.Errorf("expected the refusal text, got %s", resp.Content)
	}
}

func TestOpenAIProvider_TruncatedArray(t *testing.T) {
	server, _, _ := chatServer(t, http.StatusOK,
		chatCompletion("gpt-4o-mini", `[{"question":"What is a closure","options":["A`, "length"))
	p := newTestOpenAIProvider(t, server)

	_, err := p.Generate(context.Background(), questionRequest())
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	reply := chatCompletion("gpt-4o-mini", "", "stop")
	reply["choices"] = []map[string]any{}
	server, _, _ := chatServer(t, http.StatusOK, reply)
	p := newTestOpenAIProvider(t, server)

	_, err := p.Generate(context.Background(), questionRequest())
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestOpenAIProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"rate limit", http.StatusTooManyRequests, func(err error) bool {
			var rl *ErrRateLimit
			return errors.As(err, &rl)
		}},
		{"server error", http.StatusInternalServerError, func(err error) bool {
			var unavail *ErrProviderUnavailable
			return errors.As(err, &unavail)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _, _ := chatServer(t, tt.status, map[string]any{
				"error": map[string]any{"type": "server_error", "message": tt.name},
			})
			p := newTestOpenAIProvider(t, server)

			_, err := p.Generate(context.Background(), questionRequest())
			if !tt.check(err) {
				t.Fatalf("unexpected error: %T (%v)", err, err)
			}
		})
	}
}

func TestNewOpenAIProvider(t *testing.T) {
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o" {
		t.Errorf("model = %q", p.ModelID())
	}
	if _, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"}); err == nil {
		t.Error("expected error for empty API key")
	}
}
