package questions

import "github.com/abhisek/upskill/internal/catalog"

// OptionCount is the number of answer options on every question.
const OptionCount = 4

// Difficulty is the per-question difficulty label.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// MapDifficulty maps an assessment tier to a question difficulty.
// Unknown tiers map to medium.
func MapDifficulty(level catalog.Level) Difficulty {
	switch level {
	case catalog.LevelBeginner:
		return DifficultyEasy
	case catalog.LevelIntermediate:
		return DifficultyMedium
	case catalog.LevelAdvanced:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

func validDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Question is one multiple-choice assessment question. It is never
// persisted.
type Question struct {
	Question      string     `json:"question"`
	Options       []string   `json:"options"`
	CorrectAnswer int        `json:"correctAnswer"`
	Explanation   string     `json:"explanation"`
	Difficulty    Difficulty `json:"difficulty"`
	Category      string     `json:"category"`
	Topic         string     `json:"topic"`
}

// Request describes the assessment a question set is generated for.
type Request struct {
	Title    string
	Topic    string
	Level    catalog.Level
	Category string
	Count    int

	// Optional learner context used to frame questions.
	Role       string
	Department string
}

// RequestFor builds a Request from an assessment definition.
func RequestFor(a catalog.Assessment, role, department string) Request {
	return Request{
		Title:      a.Title,
		Topic:      a.Topic,
		Level:      a.Level,
		Category:   a.Category,
		Count:      a.QuestionCount,
		Role:       role,
		Department: department,
	}
}

// Source tells where a question set came from.
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// Fallback reasons.
const (
	ReasonNoCredential    = "no-credential"
	ReasonProviderError   = "provider-error"
	ReasonInvalidResponse = "invalid-response"
)

// Set is the outcome of a generation call. It always holds exactly the
// requested number of questions.
type Set struct {
	Questions []Question
	Source    Source
	// Reason explains a fallback; empty for AI sets.
	Reason string
}
