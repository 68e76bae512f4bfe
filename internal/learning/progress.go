package learning

import (
	"math"

	"github.com/abhisek/upskill/internal/store"
)

// Progress is round(100*completed/total), 0 for an empty course.
func Progress(completed, total int) int {
	if total <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// derive recomputes e against the course's current lessons, dropping
// completions of lessons that were removed.
func derive(e store.Enrollment, c *store.Course) store.Enrollment {
	kept := make([]string, 0, len(e.CompletedLessons))
	for _, id := range e.CompletedLessons {
		if c.HasLesson(id) {
			kept = append(kept, id)
		}
	}
	e.CompletedLessons = kept
	e.Progress = Progress(len(kept), c.TotalLessons)
	return e
}

func contains(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
