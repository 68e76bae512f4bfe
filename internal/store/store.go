package store

import (
	"context"
	"fmt"
	"sync"
)

// Store wraps a KV backend and hands out the entity repositories.
type Store struct {
	kv KV

	// mu serializes read-modify-write cycles within this process. Writers in
	// other processes are not coordinated.
	mu sync.Mutex
}

// New wraps an already-open backend.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// KV returns the underlying backend.
func (s *Store) KV() KV {
	return s.kv
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.kv.Close()
}

// Reset deletes every application bucket.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range Buckets {
		if err := s.kv.Delete(ctx, b); err != nil {
			return fmt.Errorf("reset %s: %w", b, err)
		}
	}
	return nil
}

func (s *Store) UserRepo() UserRepo {
	return &userRepo{c: newCollection(s, BucketUsers, func(u *User) string { return u.ID })}
}

func (s *Store) CourseRepo() CourseRepo {
	return &courseRepo{c: newCollection(s, BucketCourses, func(c *Course) string { return c.ID })}
}

func (s *Store) EnrollmentRepo() EnrollmentRepo {
	return &enrollmentRepo{c: newCollection(s, BucketEnrollments, func(e *Enrollment) string { return e.ID })}
}

func (s *Store) ResultRepo() ResultRepo {
	return &resultRepo{c: newCollection(s, BucketResults, func(r *AssessmentResult) string { return r.ID })}
}

func (s *Store) CertificateRepo() CertificateRepo {
	return &certificateRepo{c: newCollection(s, BucketCerts, func(c *Certificate) string { return c.ID })}
}

func (s *Store) ActivityRepo() ActivityRepo {
	return &activityRepo{c: newCollection(s, BucketActivities, func(a *Activity) string { return a.ID })}
}

func (s *Store) EmailRepo() EmailRepo {
	return &emailRepo{c: newCollection(s, BucketEmails, func(e *Email) string { return e.ID })}
}

func (s *Store) StudyGroupRepo() StudyGroupRepo {
	return &studyGroupRepo{c: newCollection(s, BucketGroups, func(g *StudyGroup) string { return g.ID })}
}

// EventRepo returns the LLM request log.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{c: newCollection(s, BucketLLMEvents, func(e *LLMEvent) string { return fmt.Sprint(e.ID) })}
}
