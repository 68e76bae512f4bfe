package questions

import (
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abhisek/upskill/internal/catalog"
)

// lookupBank finds the fallback items for a title and tier. Unknown titles
// use the default assessment's bank; a tier missing from a known title uses
// the default assessment's items for that tier.
func lookupBank(title string, level catalog.Level) (bankEntry, []bankItem) {
	def := bank[catalog.DefaultAssessmentTitle]

	entry, ok := bank[title]
	if !ok {
		entry = def
	}
	if items := entry.byLevel[level]; len(items) > 0 {
		return entry, items
	}
	if items := def.byLevel[level]; len(items) > 0 {
		return def, items
	}
	return def, def.byLevel[catalog.LevelBeginner]
}

// fallbackQuestions assembles count questions from the static bank: a
// uniform shuffle, the first count items (cycling when the bank is short),
// and optional role framing with probability roleProb per question.
func fallbackQuestions(req Request, count int, rng *rand.Rand, roleProb float64) []Question {
	entry, items := lookupBank(req.Title, req.Level)

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	framing := roleContext(req)
	difficulty := MapDifficulty(req.Level)

	out := make([]Question, count)
	for i := range out {
		it := items[order[i%len(order)]]
		text := it.q
		if framing != "" && rng.Float64() < roleProb {
			text = frame(framing, text)
		}
		out[i] = Question{
			Question:      text,
			Options:       append([]string(nil), it.options[:]...),
			CorrectAnswer: it.answer,
			Explanation:   it.why,
			Difficulty:    difficulty,
			Category:      entry.category,
			Topic:         entry.topic,
		}
	}
	return out
}

// frame prefixes a question with the learner's context, e.g.
// "As a developer in Engineering, what does ...".
func frame(context, question string) string {
	return upperFirst(context) + ", " + lowerFirst(question)
}

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

// lowerFirst lowercases an initial capital unless the first word looks
// like an acronym or identifier ("RPO", "Promise.all").
func lowerFirst(s string) string {
	first, _, _ := strings.Cut(s, " ")
	if strings.ContainsAny(first, ".()") {
		return s
	}
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 || !unicode.IsUpper(r) {
		return s
	}
	if r2, _ := utf8.DecodeRuneInString(s[n:]); unicode.IsUpper(r2) {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}
