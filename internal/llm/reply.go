package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// StripFences removes surrounding whitespace and a Markdown code fence
// (``` or ```json) if present.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// Drop the info string, e.g. "json".
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// extractArray returns the JSON array inside a chatty reply such as
// "Here are your questions:\n```json\n[...]\n```". Text without a
// bracketed span is returned fence-stripped but otherwise unchanged so
// the caller can report what the model actually said.
func extractArray(s string) string {
	s = StripFences(s)
	if strings.HasPrefix(s, "[") {
		return s
	}
	start := strings.IndexByte(s, '[')
	end := strings.LastIndexByte(s, ']')
	if start < 0 || end < start {
		return s
	}
	return StripFences(s[start : end+1])
}

// finishReply applies req.Reply to the raw reply text. stopReason is the
// normalized value ("end", "max_tokens").
func finishReply(req Request, text, stopReason string) (json.RawMessage, error) {
	if req.Reply != ReplyJSONArray {
		return json.RawMessage(text), nil
	}
	if stopReason == "max_tokens" {
		return nil, &ErrMaxTokensExceeded{Content: json.RawMessage(text)}
	}
	out := extractArray(text)
	if out == "" {
		return nil, &ErrInvalidResponse{Err: errors.New("empty reply")}
	}
	return json.RawMessage(out), nil
}
