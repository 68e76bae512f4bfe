package questions

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/abhisek/upskill/internal/llm"
)

// Validation is the tagged outcome of checking a model reply. When Valid
// is false, Questions is nil and Reason says why.
type Validation struct {
	Valid     bool
	Questions []Question
	Reason    string
}

func invalid(format string, args ...any) Validation {
	return Validation{Reason: fmt.Sprintf(format, args...)}
}

// Validate parses a model reply into exactly req.Count questions.
//
// The reply is invalid when it is not JSON, not an array, or has fewer
// than req.Count elements. Longer arrays are truncated. Individual
// elements are never rejected: missing or malformed fields are replaced
// with defaults.
func Validate(raw []byte, req Request) Validation {
	text := llm.StripFences(string(raw))
	if text == "" {
		return invalid("empty response")
	}

	if err := llm.ValidateJSON(ReplySchema, []byte(text)); err != nil {
		if !json.Valid([]byte(text)) {
			return invalid("not JSON")
		}
		return invalid("not a JSON array")
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return invalid("not a JSON array: %v", err)
	}
	if len(items) < req.Count {
		return invalid("got %d questions, want %d", len(items), req.Count)
	}

	out := make([]Question, req.Count)
	for i := range out {
		out[i] = coerce(items[i], i, req)
	}
	return Validation{Valid: true, Questions: out}
}

// coerce turns one array element into a Question, substituting defaults
// for anything missing or malformed.
func coerce(raw json.RawMessage, i int, req Request) Question {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		fields = nil
	}

	q := Question{
		Question:      stringField(fields, "question"),
		Options:       coerceOptions(fields["options"]),
		CorrectAnswer: coerceIndex(fields["correctAnswer"]),
		Explanation:   stringField(fields, "explanation"),
		Difficulty:    Difficulty(strings.ToLower(stringField(fields, "difficulty"))),
		Category:      stringField(fields, "category"),
		Topic:         stringField(fields, "topic"),
	}

	if q.Question == "" {
		q.Question = fmt.Sprintf("Question %d about %s", i+1, req.Topic)
	}
	if q.Explanation == "" {
		q.Explanation = fmt.Sprintf("Review the core concepts of %s to understand the correct answer.", req.Topic)
	}
	if !validDifficulty(q.Difficulty) {
		q.Difficulty = MapDifficulty(req.Level)
	}
	if q.Category == "" {
		q.Category = req.Category
	}
	if q.Topic == "" {
		q.Topic = req.Topic
	}
	return q
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return strings.TrimSpace(s)
}

func defaultOption(i int) string {
	return fmt.Sprintf("Option %c", 'A'+i)
}

// coerceOptions returns exactly OptionCount options, padding with
// placeholders and dropping extras.
func coerceOptions(v any) []string {
	list, _ := v.([]any)
	out := make([]string, 0, OptionCount)
	for _, o := range list {
		if len(out) == OptionCount {
			break
		}
		switch o := o.(type) {
		case string:
			if s := strings.TrimSpace(o); s != "" {
				out = append(out, s)
				continue
			}
		case float64, bool:
			out = append(out, fmt.Sprint(o))
			continue
		}
		out = append(out, defaultOption(len(out)))
	}
	for len(out) < OptionCount {
		out = append(out, defaultOption(len(out)))
	}
	return out
}

// coerceIndex returns v as an option index, or 0 when it is not an
// integer in range.
func coerceIndex(v any) int {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || f < 0 || f >= OptionCount {
		return 0
	}
	return int(f)
}
