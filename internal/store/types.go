package store

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered learner.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Role         string    `json:"role"`
	Department   string    `json:"department"`
	JobTitle     string    `json:"jobTitle,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Skills       []string  `json:"skills,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Lesson is the smallest unit of course progress.
type Lesson struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	DurationMins int    `json:"durationMins"`
	Kind         string `json:"kind"` // video, reading, quiz, lab
}

// Module groups lessons inside a course.
type Module struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Lessons []Lesson `json:"lessons"`
}

// Course is a catalog entry.
type Course struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Level         string   `json:"level"`
	Instructor    string   `json:"instructor"`
	DurationHours float64  `json:"durationHours"`
	Rating        float64  `json:"rating"`
	Tags          []string `json:"tags,omitempty"`
	Modules       []Module `json:"modules"`
	TotalLessons  int      `json:"totalLessons"`
}

// CountLessons returns the number of lessons across all modules.
func (c *Course) CountLessons() int {
	n := 0
	for _, m := range c.Modules {
		n += len(m.Lessons)
	}
	return n
}

// HasLesson reports whether lessonID belongs to the course.
func (c *Course) HasLesson(lessonID string) bool {
	for _, m := range c.Modules {
		for _, l := range m.Lessons {
			if l.ID == lessonID {
				return true
			}
		}
	}
	return false
}

// Enrollment links a user to a course and tracks lesson progress.
type Enrollment struct {
	ID               string     `json:"id"`
	UserID           string     `json:"userId"`
	CourseID         string     `json:"courseId"`
	CompletedLessons []string   `json:"completedLessons"`
	Progress         int        `json:"progress"`
	EnrolledAt       time.Time  `json:"enrolledAt"`
	LastAccessedAt   time.Time  `json:"lastAccessedAt"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
}

// Result status values.
const (
	StatusPassed = "passed"
	StatusFailed = "failed"
)

// AssessmentResult is the immutable record of one completed attempt.
type AssessmentResult struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	AssessmentID    string    `json:"assessmentId"`
	AssessmentTitle string    `json:"assessmentTitle"`
	Score           int       `json:"score"`
	Correct         int       `json:"correct"`
	Total           int       `json:"total"`
	Status          string    `json:"status"`
	Percentile      int       `json:"percentile"`
	Badge           string    `json:"badge,omitempty"`
	CertificateID   *string   `json:"certificateId"`
	QuestionSource  string    `json:"questionSource"`
	TimeSpentSecs   int       `json:"timeSpentSecs"`
	CompletedAt     time.Time `json:"completedAt"`
}

// Passed reports whether the attempt met the passing threshold.
func (r *AssessmentResult) Passed() bool {
	return r.Status == StatusPassed
}

// Certificate is issued once per passing result.
type Certificate struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	AssessmentID string    `json:"assessmentId"`
	ResultID     string    `json:"resultId"`
	Title        string    `json:"title"`
	Badge        string    `json:"badge"`
	Score        int       `json:"score"`
	IssuedAt     time.Time `json:"issuedAt"`
}

// Activity kinds.
const (
	ActivityAssessmentCompleted = "assessment_completed"
	ActivityCertificateEarned   = "certificate_earned"
	ActivityCourseEnrolled      = "course_enrolled"
	ActivityLessonCompleted     = "lesson_completed"
	ActivityGroupJoined         = "group_joined"
)

// Activity is an append-only feed entry.
type Activity struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Detail    string    `json:"detail,omitempty"`
	RefID     string    `json:"refId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Email kinds.
const (
	EmailWelcome             = "welcome"
	EmailAssessmentCompleted = "assessment_completed"
	EmailCertificateEarned   = "certificate_earned"
	EmailCourseEnrolled      = "course_enrolled"
)

// Email is a message in the simulated inbox.
type Email struct {
	ID      string    `json:"id"`
	UserID  string    `json:"userId"`
	To      string    `json:"to"`
	Kind    string    `json:"kind"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Read    bool      `json:"read"`
	SentAt  time.Time `json:"sentAt"`
}

// StudyGroup is a small cohort learning a topic together.
type StudyGroup struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Topic       string    `json:"topic"`
	Description string    `json:"description,omitempty"`
	OwnerID     string    `json:"ownerId"`
	MemberIDs   []string  `json:"memberIds"`
	MaxMembers  int       `json:"maxMembers"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HasMember reports whether userID is in the group.
func (g *StudyGroup) HasMember(userID string) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// LLMEvent is one recorded AI completion call.
type LLMEvent struct {
	ID           int       `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Provider     string    `json:"provider"`
	Model        string    `json:"model"`
	Purpose      string    `json:"purpose"`
	InputTokens  int       `json:"inputTokens"`
	OutputTokens int       `json:"outputTokens"`
	LatencyMs    int64     `json:"latencyMs"`
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	RequestBody  string    `json:"requestBody,omitempty"`
	ResponseBody string    `json:"responseBody,omitempty"`
}

// NewActivity builds a feed entry stamped with at.
func NewActivity(userID, kind, title, detail, refID string, at time.Time) Activity {
	return Activity{
		ID:        uuid.NewString(),
		UserID:    userID,
		Kind:      kind,
		Title:     title,
		Detail:    detail,
		RefID:     refID,
		CreatedAt: at.UTC(),
	}
}
