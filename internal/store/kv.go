package store

import "context"

// Bucket names. These are the only compatibility contract between runs, so
// they never change.
const (
	BucketUsers       = "upskill_users"
	BucketCourses     = "upskill_courses"
	BucketEnrollments = "upskill_enrollments"
	BucketResults     = "upskill_assessment_results"
	BucketCerts       = "upskill_certificates"
	BucketActivities  = "upskill_activities"
	BucketEmails      = "upskill_emails"
	BucketGroups      = "upskill_study_groups"
	BucketLLMEvents   = "upskill_llm_events"
)

// Buckets lists every bucket the application writes.
var Buckets = []string{
	BucketUsers,
	BucketCourses,
	BucketEnrollments,
	BucketResults,
	BucketCerts,
	BucketActivities,
	BucketEmails,
	BucketGroups,
	BucketLLMEvents,
}

// KV is a named-bucket byte store. Each bucket holds one serialized value
// which is always read and written whole.
type KV interface {
	// Load returns the bucket's value, or nil if the bucket was never written.
	Load(ctx context.Context, bucket string) ([]byte, error)

	// Save replaces the bucket's value.
	Save(ctx context.Context, bucket string, data []byte) error

	// Delete removes the bucket. Deleting a missing bucket is not an error.
	Delete(ctx context.Context, bucket string) error

	Close() error
}
