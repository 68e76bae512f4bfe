package learning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/upskill/internal/catalog"
	"github.com/abhisek/upskill/internal/notify"
	"github.com/abhisek/upskill/internal/store"
)

const jsCourse = "js-foundations"

func setup(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemory()
	_, err := catalog.Seed(ctx, st.CourseRepo())
	require.NoError(t, err)
	require.NoError(t, st.UserRepo().Save(ctx, &store.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}))
	return New(st, notify.New(st.EmailRepo(), nil, nil), nil), st
}

func TestProgress(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 9, 0},
		{1, 9, 11},
		{2, 3, 67},
		{1, 8, 13},
		{9, 9, 100},
		{3, 0, 0},
		{5, 4, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Progress(tt.completed, tt.total), "%d/%d", tt.completed, tt.total)
	}
}

func TestEnroll_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc, st := setup(t)

	first, err := svc.Enroll(ctx, "u1", jsCourse)
	require.NoError(t, err)
	second, err := svc.Enroll(ctx, "u1", jsCourse)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	acts, err := st.ActivityRepo().ByUser(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, store.ActivityCourseEnrolled, acts[0].Kind)

	inbox, err := st.EmailRepo().ByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, store.EmailCourseEnrolled, inbox[0].Kind)
}

func TestEnroll_Errors(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	_, err := svc.Enroll(ctx, "u1", "nope")
	assert.ErrorIs(t, err, ErrCourseNotFound)
	_, err = svc.Enroll(ctx, "ghost", jsCourse)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.CompleteLesson(ctx, "u1", jsCourse, "js-l1")
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

// Progress must equal round(100*|completed|/total) after every update.
func TestCompleteLesson_ProgressInvariant(t *testing.T) {
	ctx := context.Background()
	svc, st := setup(t)
	_, err := svc.Enroll(ctx, "u1", jsCourse)
	require.NoError(t, err)

	course, err := st.CourseRepo().ByID(ctx, jsCourse)
	require.NoError(t, err)

	lessons := []string{"js-l1", "js-l1", "bogus", "js-l2", "js-l3", "js-l4", "js-l5", "js-l6", "js-l7", "js-l8", "js-l9"}
	for _, id := range lessons {
		e, err := svc.UpdateEnrollmentProgress(ctx, "u1", jsCourse, id)
		require.NoError(t, err)
		assert.Equal(t, Progress(len(e.CompletedLessons), course.TotalLessons), e.Progress, "after %s", id)
	}

	e, err := st.EnrollmentRepo().ByUserCourse(ctx, "u1", jsCourse)
	require.NoError(t, err)
	assert.Len(t, e.CompletedLessons, 9)
	assert.Equal(t, 100, e.Progress)
	require.NotNil(t, e.CompletedAt)

	acts, err := st.ActivityRepo().ByUser(ctx, "u1", 0)
	require.NoError(t, err)
	// one enrollment, nine distinct lessons
	assert.Len(t, acts, 10)
	assert.Equal(t, store.ActivityLessonCompleted, acts[0].Kind)
}

func TestAuthoring_RecomputesTotals(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)
	_, err := svc.Enroll(ctx, "u1", jsCourse)
	require.NoError(t, err)
	for _, id := range []string{"js-l1", "js-l2", "js-l7"} {
		_, err := svc.CompleteLesson(ctx, "u1", jsCourse, id)
		require.NoError(t, err)
	}

	c, err := svc.AddLesson(ctx, jsCourse, "js-m1", store.Lesson{Title: "Strict mode", DurationMins: 5, Kind: "reading"})
	require.NoError(t, err)
	assert.Equal(t, 10, c.TotalLessons)

	ec, err := svc.Enrollment(ctx, "u1", jsCourse)
	require.NoError(t, err)
	assert.Equal(t, 30, ec.Enrollment.Progress)

	c, err = svc.RemoveModule(ctx, jsCourse, "js-m3")
	require.NoError(t, err)
	assert.Equal(t, 7, c.TotalLessons)

	c, err = svc.RemoveLesson(ctx, jsCourse, "js-l2")
	require.NoError(t, err)
	assert.Equal(t, 6, c.TotalLessons)

	all, err := svc.Enrollments(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, []string{"js-l1"}, all[0].Enrollment.CompletedLessons)
	assert.Equal(t, Progress(1, 6), all[0].Enrollment.Progress)
	assert.Equal(t, "Modern JavaScript Foundations", all[0].Course.Title)

	_, err = svc.AddLesson(ctx, jsCourse, "js-m3", store.Lesson{Title: "gone"})
	assert.ErrorIs(t, err, ErrModuleNotFound)

	c, err = svc.AddModule(ctx, jsCourse, "Tooling")
	require.NoError(t, err)
	assert.Len(t, c.Modules, 3)
	assert.Equal(t, 6, c.TotalLessons)
}
