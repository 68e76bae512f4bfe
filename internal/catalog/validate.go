package catalog

import (
	"fmt"
	"strings"

	"github.com/abhisek/upskill/internal/store"
)

// validateCatalog performs structural checks on the seed data.
// Returns a combined error describing all problems found, or nil if valid.
func validateCatalog(courses []store.Course, assessments []Assessment) error {
	var errs []string

	courseIDs := make(map[string]bool, len(courses))
	lessonIDs := make(map[string]bool)
	for _, c := range courses {
		if courseIDs[c.ID] {
			errs = append(errs, fmt.Sprintf("duplicate course ID: %q", c.ID))
		}
		courseIDs[c.ID] = true

		if !validLevel(Level(c.Level)) {
			errs = append(errs, fmt.Sprintf("course %q has unknown level %q", c.ID, c.Level))
		}
		if n := c.CountLessons(); n == 0 {
			errs = append(errs, fmt.Sprintf("course %q has no lessons", c.ID))
		} else if n != c.TotalLessons {
			errs = append(errs, fmt.Sprintf("course %q totalLessons %d, counted %d", c.ID, c.TotalLessons, n))
		}
		for _, m := range c.Modules {
			for _, l := range m.Lessons {
				if lessonIDs[l.ID] {
					errs = append(errs, fmt.Sprintf("duplicate lesson ID: %q", l.ID))
				}
				lessonIDs[l.ID] = true
			}
		}
	}

	assessIDs := make(map[string]bool, len(assessments))
	titles := make(map[string]bool, len(assessments))
	for _, a := range assessments {
		if assessIDs[a.ID] {
			errs = append(errs, fmt.Sprintf("duplicate assessment ID: %q", a.ID))
		}
		assessIDs[a.ID] = true
		if titles[a.Title] {
			errs = append(errs, fmt.Sprintf("duplicate assessment title: %q", a.Title))
		}
		titles[a.Title] = true

		if !validLevel(a.Level) {
			errs = append(errs, fmt.Sprintf("assessment %q has unknown level %q", a.ID, a.Level))
		}
		if a.QuestionCount <= 0 || a.DurationMins <= 0 {
			errs = append(errs, fmt.Sprintf("assessment %q needs positive question count and duration", a.ID))
		}
		if a.PassingScore <= 0 || a.PassingScore > 100 {
			errs = append(errs, fmt.Sprintf("assessment %q passing score %d out of range", a.ID, a.PassingScore))
		}
		if a.Badge == "" {
			errs = append(errs, fmt.Sprintf("assessment %q has no badge", a.ID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func validLevel(l Level) bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}
