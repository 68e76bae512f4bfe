package notify

import (
	"fmt"

	"github.com/abhisek/upskill/internal/store"
)

// Notification is an email about to be sent to a user.
type Notification struct {
	UserID  string
	To      string
	Kind    string
	Subject string
	Body    string
}

func Welcome(u store.User) Notification {
	return Notification{
		UserID:  u.ID,
		To:      u.Email,
		Kind:    store.EmailWelcome,
		Subject: "Welcome to upskill, " + u.Name,
		Body: fmt.Sprintf("Hi %s,\n\nYour account is ready. Browse the course catalog, "+
			"enroll in a course and take an assessment to earn your first certificate.\n", u.Name),
	}
}

func AssessmentCompleted(u store.User, r store.AssessmentResult) Notification {
	outcome := "did not pass"
	if r.Passed() {
		outcome = "passed"
	}
	return Notification{
		UserID:  u.ID,
		To:      u.Email,
		Kind:    store.EmailAssessmentCompleted,
		Subject: "Assessment completed: " + r.AssessmentTitle,
		Body: fmt.Sprintf("Hi %s,\n\nYou %s %s with a score of %d%% (%d of %d correct). "+
			"You scored higher than %d%% of learners.\n", u.Name, outcome, r.AssessmentTitle,
			r.Score, r.Correct, r.Total, r.Percentile),
	}
}

func CertificateEarned(u store.User, c store.Certificate) Notification {
	return Notification{
		UserID:  u.ID,
		To:      u.Email,
		Kind:    store.EmailCertificateEarned,
		Subject: "Certificate earned: " + c.Badge,
		Body: fmt.Sprintf("Congratulations %s,\n\nYou earned the %q badge for %s.\n"+
			"Certificate ID: %s\n", u.Name, c.Badge, c.Title, c.ID),
	}
}

func CourseEnrolled(u store.User, c store.Course) Notification {
	return Notification{
		UserID:  u.ID,
		To:      u.Email,
		Kind:    store.EmailCourseEnrolled,
		Subject: "Enrolled: " + c.Title,
		Body: fmt.Sprintf("Hi %s,\n\nYou are enrolled in %s by %s. It has %d lessons; "+
			"pick up where you left off any time.\n", u.Name, c.Title, c.Instructor, c.TotalLessons),
	}
}
