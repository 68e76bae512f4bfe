package questions

import "github.com/abhisek/upskill/internal/llm"

// ReplySchema is the only structural requirement on a model reply: a JSON
// array. Element fields are coerced rather than validated.
var ReplySchema = &llm.Schema{
	Name:        "assessment-question-list",
	Description: "A list of multiple-choice assessment questions",
	Definition: map[string]any{
		"type": "array",
	},
}
