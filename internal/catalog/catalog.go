package catalog

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/abhisek/upskill/internal/store"
)

// Level is a course or assessment difficulty tier.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// AllLevels returns the tiers in ascending order.
func AllLevels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}
}

// Assessment is a static skill assessment definition.
type Assessment struct {
	ID            string
	Title         string
	Topic         string
	Description   string
	Category      string
	Level         Level
	QuestionCount int
	DurationMins  int
	PassingScore  int // percent
	Badge         string
	Skills        []string
}

// index holds the catalog with precomputed lookups.
type index struct {
	courses      []store.Course
	assessments  []Assessment
	courseByID   map[string]int
	assessByID   map[string]int
	byCategory   map[string][]store.Course
	categoryList []string
}

// idx is the package-level catalog, set by init() in seed.go.
var idx *index

func buildIndex(courses []store.Course, assessments []Assessment) *index {
	ix := &index{
		courses:     courses,
		assessments: assessments,
		courseByID:  make(map[string]int, len(courses)),
		assessByID:  make(map[string]int, len(assessments)),
		byCategory:  make(map[string][]store.Course),
	}
	for i := range ix.courses {
		c := &ix.courses[i]
		c.TotalLessons = c.CountLessons()
		ix.courseByID[c.ID] = i
		if _, ok := ix.byCategory[c.Category]; !ok {
			ix.categoryList = append(ix.categoryList, c.Category)
		}
		ix.byCategory[c.Category] = append(ix.byCategory[c.Category], *c)
	}
	for i := range ix.assessments {
		ix.assessByID[ix.assessments[i].ID] = i
	}
	sort.Strings(ix.categoryList)
	return ix
}

// Courses returns a copy of the seed catalog.
func Courses() []store.Course {
	out := make([]store.Course, len(idx.courses))
	for i, c := range idx.courses {
		out[i] = cloneCourse(c)
	}
	return out
}

// CourseByID returns a seed course by ID.
func CourseByID(id string) (store.Course, error) {
	i, ok := idx.courseByID[id]
	if !ok {
		return store.Course{}, fmt.Errorf("course not found: %q", id)
	}
	return cloneCourse(idx.courses[i]), nil
}

// Categories returns the distinct course categories, sorted.
func Categories() []string {
	return slices.Clone(idx.categoryList)
}

// ByCategory returns the seed courses in a category.
func ByCategory(category string) []store.Course {
	return slices.Clone(idx.byCategory[category])
}

// Assessments returns all assessment definitions in display order.
func Assessments() []Assessment {
	return slices.Clone(idx.assessments)
}

// AssessmentByID returns an assessment definition by ID.
func AssessmentByID(id string) (Assessment, bool) {
	i, ok := idx.assessByID[id]
	if !ok {
		return Assessment{}, false
	}
	return idx.assessments[i], true
}

// Validate checks the seed data for structural issues.
func Validate() error {
	return validateCatalog(idx.courses, idx.assessments)
}

func cloneCourse(c store.Course) store.Course {
	c.Tags = slices.Clone(c.Tags)
	mods := make([]store.Module, len(c.Modules))
	for i, m := range c.Modules {
		m.Lessons = slices.Clone(m.Lessons)
		mods[i] = m
	}
	c.Modules = mods
	return c
}

// Seed writes the static courses into repo unless it already holds some.
func Seed(ctx context.Context, repo store.CourseRepo) (bool, error) {
	return repo.SeedIfEmpty(ctx, Courses())
}
