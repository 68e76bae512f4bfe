package questions

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert corporate trainer writing skill assessment questions.

Rules:
- Write multiple-choice questions with exactly 4 options and exactly one correct option.
- "correctAnswer" is the zero-based index of the correct option.
- Distractors should reflect common misconceptions, not obviously wrong answers.
- Each explanation states briefly why the correct option is right.
- Respond with a JSON array only. No Markdown, no commentary.`

// buildUserMessage constructs the user message for a question set.
func buildUserMessage(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d multiple-choice questions for the assessment %q.\n", req.Count, req.Title)
	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	fmt.Fprintf(&b, "Category: %s\n", req.Category)
	fmt.Fprintf(&b, "Difficulty: %s (%s level)\n", MapDifficulty(req.Level), req.Level)

	if ctx := roleContext(req); ctx != "" {
		fmt.Fprintf(&b, "\nThe learner works %s. Where it fits, frame questions around situations they would meet at work.\n", ctx)
	}

	b.WriteString("\nReturn a JSON array where each element has this shape:\n")
	b.WriteString(`{"question": string, "options": [string, string, string, string], "correctAnswer": 0-3, "explanation": string, "difficulty": "easy" | "medium" | "hard", "category": string, "topic": string}`)
	b.WriteString("\n")

	return b.String()
}

// roleContext describes the learner for prompts, e.g. "as a developer in
// Engineering". Empty when neither role nor department is known.
func roleContext(req Request) string {
	role := strings.TrimSpace(req.Role)
	dept := strings.TrimSpace(req.Department)
	switch {
	case role != "" && dept != "":
		return fmt.Sprintf("as %s %s in %s", article(role), role, dept)
	case role != "":
		return fmt.Sprintf("as %s %s", article(role), role)
	case dept != "":
		return "in " + dept
	default:
		return ""
	}
}

func article(word string) string {
	if word == "" {
		return "a"
	}
	switch strings.ToLower(word[:1]) {
	case "a", "e", "i", "o", "u":
		return "an"
	}
	return "a"
}
