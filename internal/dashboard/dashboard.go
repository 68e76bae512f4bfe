// Package dashboard summarises a learner's progress.
package dashboard

import (
	"context"
	"math"

	"github.com/abhisek/upskill/internal/learning"
	"github.com/abhisek/upskill/internal/store"
)

const recentActivities = 5

type Summary struct {
	EnrolledCourses   int
	CompletedCourses  int
	AverageProgress   int
	AssessmentsTaken  int
	AssessmentsPassed int
	AverageScore      int
	Certificates      []store.Certificate
	UnreadEmails      int
	RecentActivity    []store.Activity
	Courses           []learning.EnrolledCourse
}

type Service struct {
	learning   *learning.Service
	results    store.ResultRepo
	certs      store.CertificateRepo
	emails     store.EmailRepo
	activities store.ActivityRepo
}

func New(st *store.Store, l *learning.Service) *Service {
	return &Service{
		learning:   l,
		results:    st.ResultRepo(),
		certs:      st.CertificateRepo(),
		emails:     st.EmailRepo(),
		activities: st.ActivityRepo(),
	}
}

func (s *Service) Summary(ctx context.Context, userID string) (*Summary, error) {
	courses, err := s.learning.Enrollments(ctx, userID)
	if err != nil {
		return nil, err
	}
	results, err := s.results.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	certs, err := s.certs.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	emails, err := s.emails.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.activities.ByUser(ctx, userID, recentActivities)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		EnrolledCourses:  len(courses),
		AssessmentsTaken: len(results),
		Certificates:     certs,
		RecentActivity:   recent,
		Courses:          courses,
	}

	progress := 0
	for _, c := range courses {
		progress += c.Enrollment.Progress
		if c.Enrollment.Progress == 100 {
			sum.CompletedCourses++
		}
	}
	sum.AverageProgress = average(progress, len(courses))

	score := 0
	for _, r := range results {
		score += r.Score
		if r.Passed() {
			sum.AssessmentsPassed++
		}
	}
	sum.AverageScore = average(score, len(results))

	for _, e := range emails {
		if !e.Read {
			sum.UnreadEmails++
		}
	}
	return sum, nil
}

func average(total, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(n)))
}
