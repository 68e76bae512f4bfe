package catalog

import "github.com/abhisek/upskill/internal/store"

func init() {
	idx = buildIndex(seedCourses(), seedAssessments())
}

// DefaultAssessmentTitle is the assessment whose question bank backs
// unknown titles.
const DefaultAssessmentTitle = "JavaScript Fundamentals Assessment"

func lesson(id, title string, mins int, kind string) store.Lesson {
	return store.Lesson{ID: id, Title: title, DurationMins: mins, Kind: kind}
}

func seedCourses() []store.Course {
	return []store.Course{
		{
			ID:            "js-foundations",
			Title:         "Modern JavaScript Foundations",
			Description:   "Variables, functions, objects and the event loop for people new to JavaScript.",
			Category:      "Programming",
			Level:         string(LevelBeginner),
			Instructor:    "Sarah Chen",
			DurationHours: 6,
			Rating:        4.7,
			Tags:          []string{"javascript", "web"},
			Modules: []store.Module{
				{ID: "js-m1", Title: "Language Basics", Lessons: []store.Lesson{
					lesson("js-l1", "Values, types and variables", 15, "video"),
					lesson("js-l2", "Operators and equality", 12, "video"),
					lesson("js-l3", "Control flow", 20, "reading"),
				}},
				{ID: "js-m2", Title: "Functions and Objects", Lessons: []store.Lesson{
					lesson("js-l4", "Functions and scope", 18, "video"),
					lesson("js-l5", "Objects and arrays", 22, "video"),
					lesson("js-l6", "Closures in practice", 25, "lab"),
				}},
				{ID: "js-m3", Title: "Asynchronous JavaScript", Lessons: []store.Lesson{
					lesson("js-l7", "The event loop", 15, "reading"),
					lesson("js-l8", "Promises and async/await", 25, "video"),
					lesson("js-l9", "Module checkpoint", 10, "quiz"),
				}},
			},
		},
		{
			ID:            "react-ui",
			Title:         "Building UIs with React",
			Description:   "Components, state, hooks and data fetching in modern React.",
			Category:      "Programming",
			Level:         string(LevelIntermediate),
			Instructor:    "Marcus Johnson",
			DurationHours: 8,
			Rating:        4.8,
			Tags:          []string{"react", "javascript", "frontend"},
			Modules: []store.Module{
				{ID: "react-m1", Title: "Components", Lessons: []store.Lesson{
					lesson("react-l1", "JSX and rendering", 15, "video"),
					lesson("react-l2", "Props and composition", 20, "video"),
				}},
				{ID: "react-m2", Title: "State and Effects", Lessons: []store.Lesson{
					lesson("react-l3", "useState and events", 20, "video"),
					lesson("react-l4", "useEffect and cleanup", 25, "lab"),
					lesson("react-l5", "Lifting state up", 15, "reading"),
				}},
				{ID: "react-m3", Title: "Working with Data", Lessons: []store.Lesson{
					lesson("react-l6", "Fetching data", 20, "video"),
					lesson("react-l7", "Context and custom hooks", 25, "lab"),
					lesson("react-l8", "Module checkpoint", 10, "quiz"),
				}},
			},
		},
		{
			ID:            "python-data",
			Title:         "Python for Data Analysis",
			Description:   "Load, clean, aggregate and chart tabular data with pandas.",
			Category:      "Data Science",
			Level:         string(LevelIntermediate),
			Instructor:    "Priya Patel",
			DurationHours: 10,
			Rating:        4.6,
			Tags:          []string{"python", "pandas", "analytics"},
			Modules: []store.Module{
				{ID: "py-m1", Title: "pandas Essentials", Lessons: []store.Lesson{
					lesson("py-l1", "Series and DataFrames", 20, "video"),
					lesson("py-l2", "Selecting and filtering", 20, "lab"),
				}},
				{ID: "py-m2", Title: "Cleaning Data", Lessons: []store.Lesson{
					lesson("py-l3", "Missing values", 15, "video"),
					lesson("py-l4", "Types and parsing dates", 15, "reading"),
				}},
				{ID: "py-m3", Title: "Aggregation and Visualisation", Lessons: []store.Lesson{
					lesson("py-l5", "groupby and pivot tables", 25, "lab"),
					lesson("py-l6", "Charts with matplotlib", 20, "video"),
					lesson("py-l7", "Module checkpoint", 10, "quiz"),
				}},
			},
		},
		{
			ID:            "leading-teams",
			Title:         "Leading High-Performing Teams",
			Description:   "Feedback, delegation and running effective one-on-ones for new managers.",
			Category:      "Leadership",
			Level:         string(LevelIntermediate),
			Instructor:    "David Okafor",
			DurationHours: 5,
			Rating:        4.5,
			Tags:          []string{"management", "feedback"},
			Modules: []store.Module{
				{ID: "lead-m1", Title: "Foundations of Leadership", Lessons: []store.Lesson{
					lesson("lead-l1", "From contributor to manager", 15, "video"),
					lesson("lead-l2", "Setting expectations", 15, "reading"),
				}},
				{ID: "lead-m2", Title: "Feedback and Growth", Lessons: []store.Lesson{
					lesson("lead-l3", "Giving actionable feedback", 20, "video"),
					lesson("lead-l4", "Running one-on-ones", 20, "lab"),
					lesson("lead-l5", "Delegation", 15, "video"),
				}},
			},
		},
		{
			ID:            "cloud-arch",
			Title:         "Cloud Architecture Patterns",
			Description:   "Designing resilient, scalable and cost-aware systems on public cloud.",
			Category:      "Cloud",
			Level:         string(LevelAdvanced),
			Instructor:    "Elena Rodriguez",
			DurationHours: 12,
			Rating:        4.9,
			Tags:          []string{"aws", "architecture", "reliability"},
			Modules: []store.Module{
				{ID: "cloud-m1", Title: "Reliability", Lessons: []store.Lesson{
					lesson("cloud-l1", "Availability zones and regions", 20, "video"),
					lesson("cloud-l2", "Designing for failure", 25, "reading"),
				}},
				{ID: "cloud-m2", Title: "Scalability", Lessons: []store.Lesson{
					lesson("cloud-l3", "Horizontal scaling and load balancing", 20, "video"),
					lesson("cloud-l4", "Caching strategies", 20, "lab"),
				}},
				{ID: "cloud-m3", Title: "Operations and Cost", Lessons: []store.Lesson{
					lesson("cloud-l5", "Observability", 20, "video"),
					lesson("cloud-l6", "Cost optimisation", 15, "reading"),
					lesson("cloud-l7", "Architecture review", 30, "lab"),
				}},
			},
		},
		{
			ID:            "business-writing",
			Title:         "Effective Business Communication",
			Description:   "Clear emails, concise documents and confident presentations.",
			Category:      "Soft Skills",
			Level:         string(LevelBeginner),
			Instructor:    "Amanda Lee",
			DurationHours: 3,
			Rating:        4.4,
			Tags:          []string{"writing", "presentations"},
			Modules: []store.Module{
				{ID: "comm-m1", Title: "Writing", Lessons: []store.Lesson{
					lesson("comm-l1", "Writing for busy readers", 15, "video"),
					lesson("comm-l2", "Structuring a proposal", 20, "lab"),
				}},
				{ID: "comm-m2", Title: "Presenting", Lessons: []store.Lesson{
					lesson("comm-l3", "Telling a story with data", 20, "video"),
					lesson("comm-l4", "Handling questions", 10, "reading"),
				}},
			},
		},
	}
}

func seedAssessments() []Assessment {
	return []Assessment{
		{
			ID:            "js-fundamentals",
			Title:         DefaultAssessmentTitle,
			Topic:         "JavaScript",
			Description:   "Core language concepts: types, scope, functions and equality.",
			Category:      "Programming",
			Level:         LevelBeginner,
			QuestionCount: 5,
			DurationMins:  10,
			PassingScore:  70,
			Badge:         "JavaScript Fundamentals Certified",
			Skills:        []string{"JavaScript", "ES6"},
		},
		{
			ID:            "react-development",
			Title:         "React Development Assessment",
			Topic:         "React",
			Description:   "Components, hooks, state management and rendering behaviour.",
			Category:      "Programming",
			Level:         LevelIntermediate,
			QuestionCount: 5,
			DurationMins:  15,
			PassingScore:  70,
			Badge:         "React Developer",
			Skills:        []string{"React", "Hooks", "JSX"},
		},
		{
			ID:            "python-data-analysis",
			Title:         "Python for Data Analysis Assessment",
			Topic:         "Python data analysis with pandas",
			Description:   "DataFrames, cleaning, aggregation and plotting.",
			Category:      "Data Science",
			Level:         LevelIntermediate,
			QuestionCount: 5,
			DurationMins:  15,
			PassingScore:  70,
			Badge:         "Data Analyst",
			Skills:        []string{"Python", "pandas"},
		},
		{
			ID:            "leadership-essentials",
			Title:         "Leadership Essentials Assessment",
			Topic:         "Team leadership",
			Description:   "Feedback, delegation, motivation and conflict resolution.",
			Category:      "Leadership",
			Level:         LevelIntermediate,
			QuestionCount: 5,
			DurationMins:  10,
			PassingScore:  70,
			Badge:         "Emerging Leader",
			Skills:        []string{"Leadership", "Communication"},
		},
		{
			ID:            "cloud-architecture",
			Title:         "Cloud Architecture Assessment",
			Topic:         "Cloud architecture",
			Description:   "Reliability, scalability and cost trade-offs on public cloud.",
			Category:      "Cloud",
			Level:         LevelAdvanced,
			QuestionCount: 5,
			DurationMins:  20,
			PassingScore:  75,
			Badge:         "Cloud Architect",
			Skills:        []string{"AWS", "Architecture"},
		},
		{
			ID:            "advanced-javascript",
			Title:         "Advanced JavaScript Patterns Assessment",
			Topic:         "Advanced JavaScript",
			Description:   "Closures, prototypes, the event loop and async patterns.",
			Category:      "Programming",
			Level:         LevelAdvanced,
			QuestionCount: 5,
			DurationMins:  15,
			PassingScore:  75,
			Badge:         "JavaScript Expert",
			Skills:        []string{"JavaScript", "Async"},
		},
	}
}
