package llm

import (
	"context"
	"encoding/json"
)

// Provider is a chat model that assessment question generation can call.
type Provider interface {
	// Generate sends one prompt and returns the model's reply. With
	// Reply set to ReplyJSONArray the Content is the bare array text,
	// unwrapped from fences or prose; with Schema set it has been
	// validated against the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation. Question generation sends a single
	// user message.
	Messages []Message

	// Reply selects how the reply text is post-processed.
	Reply ReplyFormat

	// Schema is the JSON Schema the response must conform to.
	// When set, the provider uses its native structured output mechanism.
	// When nil, the response Content is raw text as json.RawMessage.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// ReplyFormat describes the shape the caller expects the reply in.
type ReplyFormat int

const (
	// ReplyText passes the reply through untouched.
	ReplyText ReplyFormat = iota

	// ReplyJSONArray asks for a top-level JSON array. Providers steer the
	// model toward one where their API allows and strip Markdown fences
	// or surrounding prose from the reply. A truncated reply fails with
	// *ErrMaxTokensExceeded and an empty one with *ErrInvalidResponse.
	ReplyJSONArray
)

func (f ReplyFormat) String() string {
	if f == ReplyJSONArray {
		return "json-array"
	}
	return "text"
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (used as tool name for Anthropic,
	// schema name for OpenAI). Kebab-case, e.g. "assessment-questions".
	Name string

	// Description is a human-readable description of what this schema
	// represents. Sent to the LLM to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the reply text. It is only guaranteed to be JSON when
	// the request carried a Schema.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
