package store

import (
	"context"
	"time"
)

// Lookups return (nil, nil) when nothing matches.

type UserRepo interface {
	All(ctx context.Context) ([]User, error)
	ByID(ctx context.Context, id string) (*User, error)
	// ByEmail matches case-insensitively.
	ByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, u *User) error
}

type CourseRepo interface {
	All(ctx context.Context) ([]Course, error)
	ByID(ctx context.Context, id string) (*Course, error)
	Save(ctx context.Context, c *Course) error
	// SeedIfEmpty writes courses only when the bucket holds none, and
	// reports whether it did.
	SeedIfEmpty(ctx context.Context, courses []Course) (bool, error)
}

type EnrollmentRepo interface {
	ByUser(ctx context.Context, userID string) ([]Enrollment, error)
	ByUserCourse(ctx context.Context, userID, courseID string) (*Enrollment, error)
	Save(ctx context.Context, e *Enrollment) error
}

type ResultRepo interface {
	All(ctx context.Context) ([]AssessmentResult, error)
	ByID(ctx context.Context, id string) (*AssessmentResult, error)
	ByUser(ctx context.Context, userID string) ([]AssessmentResult, error)
	ByAssessment(ctx context.Context, assessmentID string) ([]AssessmentResult, error)
	Save(ctx context.Context, r *AssessmentResult) error
}

type CertificateRepo interface {
	ByID(ctx context.Context, id string) (*Certificate, error)
	ByUser(ctx context.Context, userID string) ([]Certificate, error)
	Save(ctx context.Context, c *Certificate) error
}

type ActivityRepo interface {
	// ByUser returns the user's activities, most recent first. limit <= 0
	// means all.
	ByUser(ctx context.Context, userID string, limit int) ([]Activity, error)
	Append(ctx context.Context, a *Activity) error
}

type EmailRepo interface {
	ByID(ctx context.Context, id string) (*Email, error)
	// ByUser returns the user's inbox, most recent first.
	ByUser(ctx context.Context, userID string) ([]Email, error)
	Save(ctx context.Context, e *Email) error
}

type StudyGroupRepo interface {
	All(ctx context.Context) ([]StudyGroup, error)
	ByID(ctx context.Context, id string) (*StudyGroup, error)
	ByMember(ctx context.Context, userID string) ([]StudyGroup, error)
	Save(ctx context.Context, g *StudyGroup) error
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMUsage aggregates calls for one purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to the LLM request log.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
