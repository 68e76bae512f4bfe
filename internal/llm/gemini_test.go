package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func geminiServer(t *testing.T, status int, reply map[string]any) (*httptest.Server, *map[string]any, *string) {
	t.Helper()
	var body map[string]any
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(reply)
	}))
	t.Cleanup(server.Close)
	return server, &body, &path
}

func geminiReply(text, finishReason string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"role":  "model",
				"parts": []map[string]any{{"text": text}},
			},
			"finishReason": finishReason,
		}},
		"usageMetadata": map[string]any{
			"promptTokenCount":     280,
			"candidatesTokenCount": 120,
			"totalTokenCount":      400,
		},
	}
}

func newTestGeminiProvider(t *testing.T, server *httptest.Server) *GeminiProvider {
	t.Helper()
	p, err := NewGeminiProvider(context.Background(), GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-flash",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("NewGeminiProvider: %v", err)
	}
	return p
}

func TestGeminiProvider_ArrayReplyUsesJSONMode(t *testing.T) {
	server, body, path := geminiServer(t, http.StatusOK, geminiReply(questionArray, "STOP"))
	p := newTestGeminiProvider(t, server)

	resp, err := p.Generate(context.Background(), questionRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertQuestionArray(t, resp.Content)

	if !strings.Contains(*path, "gemini-2.0-flash:generateContent") {
		t.Errorf("path = %q", *path)
	}
	gen, _ := (*body)["generationConfig"].(map[string]any)
	if gen["responseMimeType"] != "application/json" {
		t.Errorf("responseMimeType = %v", gen["responseMimeType"])
	}
	if _, ok := gen["responseSchema"]; ok {
		t.Error("array replies are validated locally, no response schema expected")
	}
	if _, ok := (*body)["systemInstruction"]; !ok {
		t.Error("system prompt missing")
	}
	if resp.Usage.TotalTokens != 400 || resp.Model != "gemini-2.0-flash" {
		t.Errorf("usage = %+v model = %q", resp.Usage, resp.Model)
	}
}

func TestGeminiProvider_FencedArray(t *testing.T) {
	server, _, _ := geminiServer(t, http.StatusOK, geminiReply("```json\n"+questionArray+"\n```", "STOP"))
	p := newTestGeminiProvider(t, server)

	resp, err := p.Generate(context.Background(), questionRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertQuestionArray(t, resp.Content)
}

func TestGeminiProvider_TextReplyPlain(t *testing.T) {
	server, body, _ := geminiServer(t, http.StatusOK, geminiReply("Goroutines are cheap.", "STOP"))
	p := newTestGeminiProvider(t, server)

	req := questionRequest()
	req.Reply = ReplyText
	resp, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != "Goroutines are cheap." {
		t.Errorf("content = %q", resp.Content)
	}
	gen, _ := (*body)["generationConfig"].(map[string]any)
	if _, ok := gen["responseMimeType"]; ok {
		t.Errorf("text reply should not force JSON mode: %v", gen)
	}
}

func TestGeminiProvider_TruncatedArray(t *testing.T) {
	server, _, _ := geminiServer(t, http.StatusOK, geminiReply(`[{"question":"Which keyword`, "MAX_TOKENS"))
	p := newTestGeminiProvider(t, server)

	_, err := p.Generate(context.Background(), questionRequest())
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
}

func TestGeminiProvider_Withheld(t *testing.T) {
	tests := []struct {
		name  string
		reply map[string]any
	}{
		{"prompt blocked", map[string]any{"promptFeedback": map[string]any{"blockReason": "SAFETY"}}},
		{"reply withheld", geminiReply("", "RECITATION")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _, _ := geminiServer(t, http.StatusOK, tt.reply)
			p := newTestGeminiProvider(t, server)

			_, err := p.Generate(context.Background(), questionRequest())
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
			}
		})
	}
}

func TestGeminiProvider_RateLimit(t *testing.T) {
	server, _, _ := geminiServer(t, http.StatusTooManyRequests, map[string]any{
		"error": map[string]any{"code": 429, "message": "quota exceeded", "status": "RESOURCE_EXHAUSTED"},
	})
	p := newTestGeminiProvider(t, server)

	_, err := p.Generate(context.Background(), questionRequest())
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
	}
}

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema_QuestionArray(t *testing.T) {
	def := map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question":      map[string]any{"type": "string"},
				"options":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"correctAnswer": map[string]any{"type": "integer"},
				"difficulty":    map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
			},
			"required": []any{"question", "options", "correctAnswer"},
		},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "ARRAY" || schema.Items == nil {
		t.Fatalf("expected ARRAY with items, got %+v", schema)
	}
	item := schema.Items
	if item.Type != "OBJECT" || len(item.Properties) != 4 {
		t.Fatalf("item = %+v", item)
	}
	if item.Properties["options"].Items.Type != "STRING" {
		t.Errorf("options items = %s", item.Properties["options"].Items.Type)
	}
	if item.Properties["correctAnswer"].Type != "INTEGER" {
		t.Errorf("correctAnswer = %s", item.Properties["correctAnswer"].Type)
	}
	if len(item.Properties["difficulty"].Enum) != 3 {
		t.Errorf("difficulty enum = %v", item.Properties["difficulty"].Enum)
	}
	if len(item.Required) != 3 {
		t.Errorf("required = %v", item.Required)
	}
}
