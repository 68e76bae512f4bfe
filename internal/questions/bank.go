package questions

import "github.com/abhisek/upskill/internal/catalog"

// bankItem is a hand-written fallback question. Difficulty, category and
// topic are filled in from the bank entry when the set is assembled.
type bankItem struct {
	q       string
	options [OptionCount]string
	answer  int
	why     string
}

// bankEntry is the fallback material for one assessment title.
type bankEntry struct {
	category string
	topic    string
	byLevel  map[catalog.Level][]bankItem
}

// bank is keyed by exact assessment title.
var bank = map[string]bankEntry{
	catalog.DefaultAssessmentTitle: {
		category: "Programming",
		topic:    "JavaScript",
		byLevel: map[catalog.Level][]bankItem{
			catalog.LevelBeginner: {
				{"Which keyword declares a block-scoped variable that cannot be reassigned?",
					[4]string{"var", "let", "const", "static"}, 2,
					"const creates a block-scoped binding that cannot be reassigned."},
				{"What does typeof null return?",
					[4]string{`"null"`, `"object"`, `"undefined"`, `"number"`}, 1,
					`typeof null is "object", a long-standing quirk of the language.`},
				{"Which operator compares both value and type?",
					[4]string{"=", "==", "===", "=>"}, 2,
					"=== is strict equality and does not coerce types."},
				{"Which method adds an element to the end of an array?",
					[4]string{"push()", "shift()", "unshift()", "pop()"}, 0,
					"push() appends one or more elements and returns the new length."},
				{`What is the result of "5" + 3 in JavaScript?`,
					[4]string{"8", `"53"`, "NaN", "TypeError"}, 1,
					"With a string operand, + concatenates, so 3 is converted to \"3\"."},
			},
			catalog.LevelIntermediate: {
				{"What is a closure?",
					[4]string{"A function bundled with references to its surrounding scope", "A way to end a loop early", "A sealed object", "A private class field"}, 0,
					"A closure keeps access to variables of the scope it was created in."},
				{"What does Array.prototype.map return?",
					[4]string{"The original array, modified", "A new array of transformed elements", "undefined", "The first matching element"}, 1,
					"map builds a new array from the callback's return values."},
				{"Which statement about arrow functions is true?",
					[4]string{"They have their own this", "They can be used as constructors", "They inherit this from the enclosing scope", "They hoist like function declarations"}, 2,
					"Arrow functions capture this lexically."},
				{"What does Promise.all reject with?",
					[4]string{"An array of all errors", "The first rejection reason", "undefined", "The last rejection reason"}, 1,
					"Promise.all rejects as soon as any input promise rejects, with that reason."},
				{"What does the spread syntax in [...a, ...b] do?",
					[4]string{"Creates a nested array", "Concatenates the elements of a and b into a new array", "Mutates a in place", "Creates a Set"}, 1,
					"Spread expands each iterable's elements into the new array literal."},
			},
			catalog.LevelAdvanced: {
				{"In which order do these run: a setTimeout(fn, 0) callback and a resolved promise's then callback?",
					[4]string{"setTimeout first", "Promise callback first", "They run in parallel", "Order is random"}, 1,
					"Promise callbacks are microtasks and run before the next macrotask."},
				{"What does Object.freeze do to nested objects?",
					[4]string{"Freezes them recursively", "Nothing; freezing is shallow", "Deletes them", "Makes them read-only proxies"}, 1,
					"Object.freeze is shallow; nested objects stay mutable."},
				{"What is the prototype of an object created with Object.create(null)?",
					[4]string{"Object.prototype", "null", "Function.prototype", "undefined"}, 1,
					"Object.create(null) creates an object with no prototype."},
				{"Which feature lets a generator function pause execution?",
					[4]string{"await", "yield", "return", "break"}, 1,
					"yield suspends the generator and hands a value to the caller."},
				{"What does a WeakMap allow that a Map does not?",
					[4]string{"Primitive keys", "Iteration over keys", "Keys to be garbage-collected when unreferenced", "Ordered entries"}, 2,
					"WeakMap holds keys weakly, so unreferenced keys can be collected."},
			},
		},
	},
	"React Development Assessment": {
		category: "Programming",
		topic:    "React",
		byLevel: map[catalog.Level][]bankItem{
			catalog.LevelIntermediate: {
				{"When does a useEffect with an empty dependency array run?",
					[4]string{"On every render", "Once after the first render", "Before the first render", "Never"}, 1,
					"An empty array means the effect has no dependencies, so it runs after mount only."},
				{"Why should list items have a key prop?",
					[4]string{"For CSS styling", "To help React match items between renders", "To make items focusable", "Keys are optional and unused"}, 1,
					"Keys let the reconciler identify which items changed, moved or were removed."},
				{"What is the correct way to update state based on the previous state?",
					[4]string{"setCount(count++)", "setCount(prev => prev + 1)", "count = count + 1", "this.count += 1"}, 1,
					"The updater form always receives the latest state."},
				{"What does lifting state up mean?",
					[4]string{"Moving state to the closest common ancestor", "Storing state in localStorage", "Using a global variable", "Converting to a class component"}, 0,
					"Shared state lives in the nearest parent of the components that need it."},
				{"Which hook memoizes a computed value between renders?",
					[4]string{"useRef", "useMemo", "useState", "useEffect"}, 1,
					"useMemo recomputes only when its dependencies change."},
			},
		},
	},
	"Python for Data Analysis Assessment": {
		category: "Data Science",
		topic:    "Python data analysis with pandas",
		byLevel: map[catalog.Level][]bankItem{
			catalog.LevelIntermediate: {
				{"Which pandas method returns the first rows of a DataFrame?",
					[4]string{"df.top()", "df.head()", "df.first()", "df.start()"}, 1,
					"head() returns the first n rows, five by default."},
				{"How do you drop rows containing missing values?",
					[4]string{"df.dropna()", "df.remove_na()", "df.fillna()", "df.clean()"}, 0,
					"dropna() removes rows (or columns) with NaN values."},
				{"What does df.groupby('team')['score'].mean() return?",
					[4]string{"The overall mean score", "The mean score per team", "A list of teams", "The row with the highest score"}, 1,
					"groupby splits by team, then mean aggregates each group."},
				{"Which selects rows where column 'age' is over 30?",
					[4]string{"df[df['age'] > 30]", "df.age > 30", "df.select(age > 30)", "df.where('age > 30')"}, 0,
					"Boolean indexing with a condition Series filters rows."},
				{"What is the difference between loc and iloc?",
					[4]string{"loc is label-based, iloc is position-based", "They are identical", "iloc is label-based, loc is position-based", "loc only works on columns"}, 0,
					"loc selects by labels; iloc selects by integer position."},
			},
		},
	},
	"Leadership Essentials Assessment": {
		category: "Leadership",
		topic:    "Team leadership",
		byLevel: map[catalog.Level][]bankItem{
			catalog.LevelIntermediate: {
				{"What makes feedback most actionable?",
					[4]string{"Being general so it applies widely", "Describing specific behaviour and its impact", "Saving it for the annual review", "Delivering it in a group setting"}, 1,
					"Specific, behaviour-focused feedback tells the person what to change."},
				{"What is the main purpose of a regular one-on-one?",
					[4]string{"Status reporting", "Building trust and supporting the report's growth", "Assigning new work", "Performance ratings"}, 1,
					"One-on-ones are the report's time for concerns, growth and coaching."},
				{"When delegating a task, what should you define most clearly?",
					[4]string{"Every step of how to do it", "The expected outcome and constraints", "Nothing; let them figure it out", "Who to blame if it fails"}, 1,
					"Clear outcomes with room on the how builds ownership."},
				{"Two team members disagree about an approach. What is a good first step?",
					[4]string{"Pick the senior person's approach", "Understand each person's reasoning and shared goals", "Escalate to your manager", "Let them sort it out alone"}, 1,
					"Surfacing reasoning and common goals turns conflict into problem-solving."},
				{"Psychological safety on a team primarily means that people...",
					[4]string{"Never receive criticism", "Can take interpersonal risks without fear of punishment", "Always agree with each other", "Have guaranteed job security"}, 1,
					"Safe teams admit mistakes and raise concerns openly."},
			},
		},
	},
	"Cloud Architecture Assessment": {
		category: "Cloud",
		topic:    "Cloud architecture",
		byLevel: map[catalog.Level][]bankItem{
			catalog.LevelAdvanced: {
				{"Deploying across multiple availability zones primarily protects against...",
					[4]string{"Region-wide outages", "Single data-center failures", "Application bugs", "DDoS attacks"}, 1,
					"AZs are isolated data centers inside one region."},
				{"Which pattern prevents a failing downstream service from being overwhelmed by retries?",
					[4]string{"Circuit breaker", "Singleton", "Sidecar", "Strangler fig"}, 0,
					"A circuit breaker stops calls for a while after repeated failures."},
				{"What does a write-through cache guarantee?",
					[4]string{"Writes go to cache only", "Writes update cache and the backing store together", "Reads always bypass the cache", "The cache never evicts"}, 1,
					"Write-through keeps the cache consistent with the store on every write."},
				{"Which is the best fit for unpredictable, spiky, short-lived workloads?",
					[4]string{"Reserved instances", "Serverless functions", "Dedicated hosts", "Bare metal"}, 1,
					"Serverless scales to zero and bills per invocation."},
				{"An RPO of 15 minutes means...",
					[4]string{"Service must be restored within 15 minutes", "At most 15 minutes of data may be lost", "Backups are retained for 15 minutes", "Failover takes 15 minutes"}, 1,
					"Recovery point objective bounds acceptable data loss."},
			},
		},
	},
}
