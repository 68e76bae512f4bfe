package store

import (
	"context"
	"sort"
	"strings"
)

type userRepo struct{ c collection[User] }

func (r *userRepo) All(ctx context.Context) ([]User, error) { return r.c.all(ctx) }

func (r *userRepo) ByID(ctx context.Context, id string) (*User, error) { return r.c.byKey(ctx, id) }

func (r *userRepo) ByEmail(ctx context.Context, email string) (*User, error) {
	email = strings.TrimSpace(email)
	return r.c.first(ctx, func(u *User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *userRepo) Save(ctx context.Context, u *User) error { return r.c.upsert(ctx, *u) }

type courseRepo struct{ c collection[Course] }

func (r *courseRepo) All(ctx context.Context) ([]Course, error) { return r.c.all(ctx) }

func (r *courseRepo) ByID(ctx context.Context, id string) (*Course, error) {
	return r.c.byKey(ctx, id)
}

func (r *courseRepo) Save(ctx context.Context, c *Course) error { return r.c.upsert(ctx, *c) }

func (r *courseRepo) SeedIfEmpty(ctx context.Context, courses []Course) (bool, error) {
	r.c.s.mu.Lock()
	defer r.c.s.mu.Unlock()

	existing, err := r.c.load(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	if err := r.c.store(ctx, courses); err != nil {
		return false, err
	}
	return true, nil
}

type enrollmentRepo struct{ c collection[Enrollment] }

func (r *enrollmentRepo) ByUser(ctx context.Context, userID string) ([]Enrollment, error) {
	return r.c.filter(ctx, func(e *Enrollment) bool { return e.UserID == userID })
}

func (r *enrollmentRepo) ByUserCourse(ctx context.Context, userID, courseID string) (*Enrollment, error) {
	return r.c.first(ctx, func(e *Enrollment) bool {
		return e.UserID == userID && e.CourseID == courseID
	})
}

func (r *enrollmentRepo) Save(ctx context.Context, e *Enrollment) error {
	return r.c.upsert(ctx, *e)
}

type resultRepo struct{ c collection[AssessmentResult] }

func (r *resultRepo) All(ctx context.Context) ([]AssessmentResult, error) { return r.c.all(ctx) }

func (r *resultRepo) ByID(ctx context.Context, id string) (*AssessmentResult, error) {
	return r.c.byKey(ctx, id)
}

func (r *resultRepo) ByUser(ctx context.Context, userID string) ([]AssessmentResult, error) {
	return r.c.filter(ctx, func(a *AssessmentResult) bool { return a.UserID == userID })
}

func (r *resultRepo) ByAssessment(ctx context.Context, assessmentID string) ([]AssessmentResult, error) {
	return r.c.filter(ctx, func(a *AssessmentResult) bool { return a.AssessmentID == assessmentID })
}

func (r *resultRepo) Save(ctx context.Context, a *AssessmentResult) error {
	return r.c.upsert(ctx, *a)
}

type certificateRepo struct{ c collection[Certificate] }

func (r *certificateRepo) ByID(ctx context.Context, id string) (*Certificate, error) {
	return r.c.byKey(ctx, id)
}

func (r *certificateRepo) ByUser(ctx context.Context, userID string) ([]Certificate, error) {
	return r.c.filter(ctx, func(c *Certificate) bool { return c.UserID == userID })
}

func (r *certificateRepo) Save(ctx context.Context, c *Certificate) error {
	return r.c.upsert(ctx, *c)
}

type activityRepo struct{ c collection[Activity] }

func (r *activityRepo) ByUser(ctx context.Context, userID string, limit int) ([]Activity, error) {
	items, err := r.c.filter(ctx, func(a *Activity) bool { return a.UserID == userID })
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *activityRepo) Append(ctx context.Context, a *Activity) error {
	return r.c.prepend(ctx, *a)
}

type emailRepo struct{ c collection[Email] }

func (r *emailRepo) ByID(ctx context.Context, id string) (*Email, error) {
	return r.c.byKey(ctx, id)
}

func (r *emailRepo) ByUser(ctx context.Context, userID string) ([]Email, error) {
	items, err := r.c.filter(ctx, func(e *Email) bool { return e.UserID == userID })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SentAt.After(items[j].SentAt)
	})
	return items, nil
}

func (r *emailRepo) Save(ctx context.Context, e *Email) error { return r.c.upsert(ctx, *e) }

type studyGroupRepo struct{ c collection[StudyGroup] }

func (r *studyGroupRepo) All(ctx context.Context) ([]StudyGroup, error) { return r.c.all(ctx) }

func (r *studyGroupRepo) ByID(ctx context.Context, id string) (*StudyGroup, error) {
	return r.c.byKey(ctx, id)
}

func (r *studyGroupRepo) ByMember(ctx context.Context, userID string) ([]StudyGroup, error) {
	return r.c.filter(ctx, func(g *StudyGroup) bool { return g.HasMember(userID) })
}

func (r *studyGroupRepo) Save(ctx context.Context, g *StudyGroup) error {
	return r.c.upsert(ctx, *g)
}
