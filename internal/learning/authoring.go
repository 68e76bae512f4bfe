package learning

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/upskill/internal/store"
)

func (s *Service) editCourse(ctx context.Context, courseID string, edit func(c *store.Course) error) (*store.Course, error) {
	c, err := s.course(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := edit(c); err != nil {
		return nil, err
	}
	c.TotalLessons = c.CountLessons()
	if err := s.courses.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save course: %w", err)
	}
	return c, nil
}

// AddModule appends an empty module to the course.
func (s *Service) AddModule(ctx context.Context, courseID, title string) (*store.Course, error) {
	return s.editCourse(ctx, courseID, func(c *store.Course) error {
		c.Modules = append(c.Modules, store.Module{ID: uuid.NewString(), Title: title, Lessons: []store.Lesson{}})
		return nil
	})
}

// AddLesson appends l to a module. An empty lesson ID is generated.
func (s *Service) AddLesson(ctx context.Context, courseID, moduleID string, l store.Lesson) (*store.Course, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return s.editCourse(ctx, courseID, func(c *store.Course) error {
		for i := range c.Modules {
			if c.Modules[i].ID == moduleID {
				c.Modules[i].Lessons = append(c.Modules[i].Lessons, l)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrModuleNotFound, moduleID)
	})
}

// RemoveLesson drops a lesson from whichever module holds it. Removing an
// unknown lesson is a no-op.
func (s *Service) RemoveLesson(ctx context.Context, courseID, lessonID string) (*store.Course, error) {
	return s.editCourse(ctx, courseID, func(c *store.Course) error {
		for i := range c.Modules {
			kept := c.Modules[i].Lessons[:0]
			for _, l := range c.Modules[i].Lessons {
				if l.ID != lessonID {
					kept = append(kept, l)
				}
			}
			c.Modules[i].Lessons = kept
		}
		return nil
	})
}

// RemoveModule drops a module and its lessons.
func (s *Service) RemoveModule(ctx context.Context, courseID, moduleID string) (*store.Course, error) {
	return s.editCourse(ctx, courseID, func(c *store.Course) error {
		kept := c.Modules[:0]
		for _, m := range c.Modules {
			if m.ID != moduleID {
				kept = append(kept, m)
			}
		}
		c.Modules = kept
		return nil
	})
}
