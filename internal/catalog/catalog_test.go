package catalog

import (
	"testing"

	"github.com/abhisek/upskill/internal/store"
)

func TestSeedDataIsValid(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestCatalogSize(t *testing.T) {
	if n := len(Courses()); n < 5 {
		t.Errorf("got %d courses, want at least 5", n)
	}
	if n := len(Assessments()); n < 5 {
		t.Errorf("got %d assessments, want at least 5", n)
	}
}

func TestTotalLessonsComputed(t *testing.T) {
	c, err := CourseByID("js-foundations")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.TotalLessons != 9 {
		t.Errorf("TotalLessons = %d, want 9", c.TotalLessons)
	}
}

func TestCourseByID_NotFound(t *testing.T) {
	if _, err := CourseByID("nonexistent"); err == nil {
		t.Fatal("expected error for nonexistent course")
	}
}

func TestCoursesReturnsCopies(t *testing.T) {
	a := Courses()
	a[0].Modules[0].Lessons[0].Title = "mutated"
	b := Courses()
	if b[0].Modules[0].Lessons[0].Title == "mutated" {
		t.Fatal("Courses leaked internal state")
	}
}

func TestAssessmentByID(t *testing.T) {
	a, ok := AssessmentByID("js-fundamentals")
	if !ok {
		t.Fatal("js-fundamentals missing")
	}
	if a.Title != DefaultAssessmentTitle || a.Level != LevelBeginner {
		t.Errorf("got %+v", a)
	}
	if _, ok := AssessmentByID("nope"); ok {
		t.Error("unknown ID should not resolve")
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()
	want := []string{"Cloud", "Data Science", "Leadership", "Programming", "Soft Skills"}
	if len(cats) != len(want) {
		t.Fatalf("got %v, want %v", cats, want)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Errorf("cats[%d] = %q, want %q", i, cats[i], want[i])
		}
	}
	if n := len(ByCategory("Programming")); n != 2 {
		t.Errorf("Programming has %d courses, want 2", n)
	}
}

func TestValidateCatalog_Problems(t *testing.T) {
	courses := []store.Course{
		{ID: "c", Level: "beginner", TotalLessons: 3, Modules: []store.Module{{Lessons: []store.Lesson{{ID: "l"}}}}},
		{ID: "c", Level: "expert"},
	}
	assessments := []Assessment{
		{ID: "a", Title: "A", Level: LevelBeginner, QuestionCount: 5, DurationMins: 1, PassingScore: 70},
	}
	if err := validateCatalog(courses, assessments); err == nil {
		t.Fatal("expected validation error")
	}
}
