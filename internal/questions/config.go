package questions

// Config controls question generation.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// RoleContextProbability is the chance that each fallback question is
	// prefixed with the learner's role and department.
	RoleContextProbability float64

	// DefaultCount is used when a request asks for no questions.
	DefaultCount int
}

// DefaultConfig returns the recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:              2000,
		Temperature:            0.7,
		RoleContextProbability: 0.3,
		DefaultCount:           5,
	}
}
