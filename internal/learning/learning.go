// Package learning tracks course enrollments and lesson progress, and edits
// course content.
package learning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/upskill/internal/logger"
	"github.com/abhisek/upskill/internal/notify"
	"github.com/abhisek/upskill/internal/store"
)

var (
	ErrNotEnrolled    = errors.New("not enrolled in this course")
	ErrCourseNotFound = errors.New("course not found")
	ErrModuleNotFound = errors.New("module not found")
	ErrUserNotFound   = errors.New("user not found")
)

type Service struct {
	users       store.UserRepo
	courses     store.CourseRepo
	enrollments store.EnrollmentRepo
	activities  store.ActivityRepo
	notify      notify.Sender
	log         *logger.Logger
	now         func() time.Time
}

// New wires a Service from st. sender may be nil.
func New(st *store.Store, sender notify.Sender, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		users:       st.UserRepo(),
		courses:     st.CourseRepo(),
		enrollments: st.EnrollmentRepo(),
		activities:  st.ActivityRepo(),
		notify:      sender,
		log:         log.With("component", "learning"),
		now:         time.Now,
	}
}

// EnrolledCourse is an enrollment joined with its course.
type EnrolledCourse struct {
	Enrollment store.Enrollment
	Course     store.Course
}

func (s *Service) course(ctx context.Context, id string) (*store.Course, error) {
	c, err := s.courses.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrCourseNotFound, id)
	}
	return c, nil
}

// Enroll enrolls userID in courseID. Enrolling twice returns the existing
// enrollment without side effects.
func (s *Service) Enroll(ctx context.Context, userID, courseID string) (*store.Enrollment, error) {
	c, err := s.course(ctx, courseID)
	if err != nil {
		return nil, err
	}
	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	existing, err := s.enrollments.ByUserCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := s.now().UTC()
	e := &store.Enrollment{
		ID:               uuid.NewString(),
		UserID:           userID,
		CourseID:         courseID,
		CompletedLessons: []string{},
		EnrolledAt:       now,
		LastAccessedAt:   now,
	}
	if err := s.enrollments.Save(ctx, e); err != nil {
		return nil, fmt.Errorf("save enrollment: %w", err)
	}

	a := store.NewActivity(userID, store.ActivityCourseEnrolled, "Enrolled in "+c.Title, c.Category, c.ID, now)
	if err := s.activities.Append(ctx, &a); err != nil {
		return nil, fmt.Errorf("record activity: %w", err)
	}
	if s.notify != nil {
		if _, err := s.notify.Send(ctx, notify.CourseEnrolled(*u, *c)); err != nil {
			s.log.Warn("enrollment email failed", "user_id", userID, "course_id", courseID, "error", err)
		}
	}
	s.log.Info("enrolled", "user_id", userID, "course_id", courseID)
	return e, nil
}

// CompleteLesson marks lessonID done and recomputes progress. Unknown and
// already completed lessons leave the enrollment unchanged.
func (s *Service) CompleteLesson(ctx context.Context, userID, courseID, lessonID string) (*store.Enrollment, error) {
	c, err := s.course(ctx, courseID)
	if err != nil {
		return nil, err
	}
	e, err := s.enrollments.ByUserCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotEnrolled
	}

	now := s.now().UTC()
	added := c.HasLesson(lessonID) && !contains(e.CompletedLessons, lessonID)
	if added {
		e.CompletedLessons = append(e.CompletedLessons, lessonID)
	}
	*e = derive(*e, c)
	e.LastAccessedAt = now
	if e.Progress == 100 && e.CompletedAt == nil {
		e.CompletedAt = &now
	}
	if err := s.enrollments.Save(ctx, e); err != nil {
		return nil, fmt.Errorf("save enrollment: %w", err)
	}

	if added {
		a := store.NewActivity(userID, store.ActivityLessonCompleted, "Completed a lesson in "+c.Title,
			fmt.Sprintf("%d%% complete", e.Progress), lessonID, now)
		if err := s.activities.Append(ctx, &a); err != nil {
			return nil, fmt.Errorf("record activity: %w", err)
		}
	}
	return e, nil
}

// UpdateEnrollmentProgress is CompleteLesson under its historical name.
func (s *Service) UpdateEnrollmentProgress(ctx context.Context, userID, courseID, lessonID string) (*store.Enrollment, error) {
	return s.CompleteLesson(ctx, userID, courseID, lessonID)
}

// Enrollments returns the user's enrollments with progress recomputed
// against the current course content.
func (s *Service) Enrollments(ctx context.Context, userID string) ([]EnrolledCourse, error) {
	es, err := s.enrollments.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]EnrolledCourse, 0, len(es))
	for _, e := range es {
		c, err := s.courses.ByID(ctx, e.CourseID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			s.log.Warn("enrollment references missing course", "course_id", e.CourseID)
			continue
		}
		out = append(out, EnrolledCourse{Enrollment: derive(e, c), Course: *c})
	}
	return out, nil
}

// Enrollment returns one enrolled course, or ErrNotEnrolled.
func (s *Service) Enrollment(ctx context.Context, userID, courseID string) (*EnrolledCourse, error) {
	c, err := s.course(ctx, courseID)
	if err != nil {
		return nil, err
	}
	e, err := s.enrollments.ByUserCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotEnrolled
	}
	return &EnrolledCourse{Enrollment: derive(*e, c), Course: *c}, nil
}
