// Package assessment runs timed skill assessments and records their results,
// certificates and notifications.
package assessment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/upskill/internal/catalog"
	"github.com/abhisek/upskill/internal/logger"
	"github.com/abhisek/upskill/internal/notify"
	"github.com/abhisek/upskill/internal/questions"
	"github.com/abhisek/upskill/internal/store"
)

var (
	ErrAlreadyPassed     = errors.New("you have already passed this assessment")
	ErrUnknownAssessment = errors.New("unknown assessment")
	ErrNotFinished       = errors.New("attempt has not finished")
	ErrWrongPhase        = errors.New("attempt is not generating questions")
)

// Flow performs the side effects of the assessment wizard.
type Flow struct {
	users      store.UserRepo
	results    store.ResultRepo
	certs      store.CertificateRepo
	activities store.ActivityRepo
	generator  questions.Generator
	notify     notify.Sender
	log        *logger.Logger
	now        func() time.Time
}

type FlowOption func(*Flow)

func WithClock(now func() time.Time) FlowOption {
	return func(f *Flow) { f.now = now }
}

// NewFlow wires a Flow. sender may be nil.
func NewFlow(st *store.Store, gen questions.Generator, sender notify.Sender, log *logger.Logger, opts ...FlowOption) *Flow {
	if log == nil {
		log = logger.Nop()
	}
	f := &Flow{
		users:      st.UserRepo(),
		results:    st.ResultRepo(),
		certs:      st.CertificateRepo(),
		activities: st.ActivityRepo(),
		generator:  gen,
		notify:     sender,
		log:        log.With("component", "assessment"),
		now:        time.Now,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Passed reports whether userID already has a passing result for the
// assessment.
func (f *Flow) Passed(ctx context.Context, userID, assessmentID string) (bool, error) {
	rs, err := f.results.ByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, r := range rs {
		if r.AssessmentID == assessmentID && r.Passed() {
			return true, nil
		}
	}
	return false, nil
}

// Begin opens a new attempt in PhaseNotStarted. Already passed assessments
// are refused with ErrAlreadyPassed.
func (f *Flow) Begin(ctx context.Context, userID, assessmentID string) (*Attempt, error) {
	a, ok := catalog.AssessmentByID(assessmentID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAssessment, assessmentID)
	}
	passed, err := f.Passed(ctx, userID, assessmentID)
	if err != nil {
		return nil, err
	}
	if passed {
		return nil, ErrAlreadyPassed
	}
	return NewAttempt(uuid.NewString(), userID, a), nil
}

// Questions builds the generation request for a, personalised with the
// learner's role and department, and returns the generated set. It does
// not modify a.
func (f *Flow) Questions(ctx context.Context, a *Attempt) (questions.Set, error) {
	u, err := f.users.ByID(ctx, a.UserID)
	if err != nil {
		return questions.Set{}, fmt.Errorf("load learner: %w", err)
	}
	var role, dept string
	if u != nil {
		role, dept = u.Role, u.Department
	}
	return f.generator.Generate(ctx, questions.RequestFor(a.Assessment, role, dept)), nil
}

// Generate fetches questions for an attempt in PhaseGenerating and moves it
// to InProgress, or to Failed when the learner cannot be loaded.
func (f *Flow) Generate(ctx context.Context, a *Attempt) error {
	if a.Phase != PhaseGenerating {
		return ErrWrongPhase
	}
	set, err := f.Questions(ctx, a)
	if err != nil {
		a.Fail(err)
		return err
	}
	f.Load(a, set)
	return nil
}

// Load hands a generated set to the attempt and starts its countdown.
func (f *Flow) Load(a *Attempt, set questions.Set) {
	if a.Load(set, f.now()) {
		f.log.Info("assessment started", "attempt_id", a.ID, "assessment", a.Assessment.ID,
			"source", set.Source, "reason", set.Reason, "questions", len(set.Questions))
	}
}

// Start combines Begin, Attempt.Start and Generate.
func (f *Flow) Start(ctx context.Context, userID, assessmentID string) (*Attempt, error) {
	a, err := f.Begin(ctx, userID, assessmentID)
	if err != nil {
		return nil, err
	}
	a.Start()
	if err := f.Generate(ctx, a); err != nil {
		return a, err
	}
	return a, nil
}

// CertificateID is CERT-<assessmentId>-<unixMillis>.
func CertificateID(assessmentID string, at time.Time) string {
	return fmt.Sprintf("CERT-%s-%d", assessmentID, at.UnixMilli())
}

// Complete persists a finished attempt: the result, on a pass the
// certificate, the activity entries and the notifications. Once it succeeds
// later calls return the stored result. A failed call can be retried; it
// resumes at the write that failed.
func (f *Flow) Complete(ctx context.Context, a *Attempt) (*store.AssessmentResult, error) {
	if a.Result != nil {
		return a.Result, nil
	}
	if a.Outcome == nil || (a.Phase != PhaseResults && a.Phase != PhaseCertificate) {
		return nil, ErrNotFinished
	}

	if a.saving == nil {
		c, err := f.prepare(ctx, a)
		if err != nil {
			return nil, err
		}
		a.saving = c
	}
	c := a.saving
	for c.done < len(c.steps) {
		if err := c.steps[c.done](ctx); err != nil {
			return nil, err
		}
		c.done++
	}

	a.Result = c.result
	a.Certificate = c.cert
	a.saving = nil
	f.sendNotifications(ctx, c.result, c.cert)
	f.log.Info("assessment completed", "attempt_id", a.ID, "assessment", c.result.AssessmentID,
		"score", c.result.Score, "status", c.result.Status, "expired", a.Expired)
	return c.result, nil
}

// completion is the pending write set of a finished attempt. done counts
// the steps already applied.
type completion struct {
	result *store.AssessmentResult
	cert   *store.Certificate
	steps  []func(context.Context) error
	done   int
}

// prepare builds the result, the certificate and the write steps once per
// attempt, so a retried Complete writes the same records.
func (f *Flow) prepare(ctx context.Context, a *Attempt) (*completion, error) {
	now := f.now().UTC()
	o := *a.Outcome
	percentile, err := f.percentile(ctx, a.Assessment.ID, a.ID, o.Score)
	if err != nil {
		return nil, err
	}

	r := &store.AssessmentResult{
		ID:              a.ID,
		UserID:          a.UserID,
		AssessmentID:    a.Assessment.ID,
		AssessmentTitle: a.Assessment.Title,
		Score:           o.Score,
		Correct:         o.Correct,
		Total:           o.Total,
		Status:          store.StatusFailed,
		Percentile:      percentile,
		QuestionSource:  string(a.Source),
		TimeSpentSecs:   a.TimeSpent(),
		CompletedAt:     now,
	}
	c := &completion{result: r}
	c.steps = append(c.steps, func(ctx context.Context) error {
		if err := f.results.Save(ctx, r); err != nil {
			return fmt.Errorf("save result: %w", err)
		}
		return nil
	})

	if o.Passed {
		id := CertificateID(a.Assessment.ID, now)
		r.Status = store.StatusPassed
		r.Badge = a.Assessment.Badge
		r.CertificateID = &id
		c.cert = &store.Certificate{
			ID:           id,
			UserID:       a.UserID,
			AssessmentID: a.Assessment.ID,
			ResultID:     r.ID,
			Title:        a.Assessment.Title,
			Badge:        a.Assessment.Badge,
			Score:        o.Score,
			IssuedAt:     now,
		}
		cert := c.cert
		c.steps = append(c.steps, func(ctx context.Context) error {
			if err := f.certs.Save(ctx, cert); err != nil {
				return fmt.Errorf("save certificate: %w", err)
			}
			return nil
		})
	}

	for _, act := range activitiesFor(r, c.cert, now) {
		c.steps = append(c.steps, func(ctx context.Context) error {
			if err := f.activities.Append(ctx, &act); err != nil {
				return fmt.Errorf("record activity: %w", err)
			}
			return nil
		})
	}
	return c, nil
}

// percentile is the share of earlier results for the assessment that
// scored strictly below score, or 100 when there are none.
func (f *Flow) percentile(ctx context.Context, assessmentID, resultID string, score int) (int, error) {
	rs, err := f.results.ByAssessment(ctx, assessmentID)
	if err != nil {
		return 0, err
	}
	total, below := 0, 0
	for _, r := range rs {
		if r.ID == resultID {
			continue
		}
		total++
		if r.Score < score {
			below++
		}
	}
	if total == 0 {
		return 100, nil
	}
	return below * 100 / total, nil
}

// activitiesFor lists the feed entries of a completed attempt:
// assessment_completed always, certificate_earned on a pass.
func activitiesFor(r *store.AssessmentResult, cert *store.Certificate, now time.Time) []store.Activity {
	acts := []store.Activity{
		store.NewActivity(r.UserID, store.ActivityAssessmentCompleted, "Completed "+r.AssessmentTitle,
			fmt.Sprintf("Scored %d%%", r.Score), r.ID, now),
	}
	if cert != nil {
		acts = append(acts, store.NewActivity(r.UserID, store.ActivityCertificateEarned, "Earned "+cert.Badge,
			cert.Title, cert.ID, now))
	}
	return acts
}

func (f *Flow) sendNotifications(ctx context.Context, r *store.AssessmentResult, cert *store.Certificate) {
	if f.notify == nil {
		return
	}
	u, err := f.users.ByID(ctx, r.UserID)
	if err != nil || u == nil {
		f.log.Warn("cannot notify learner", "user_id", r.UserID, "error", err)
		return
	}
	msgs := []notify.Notification{notify.AssessmentCompleted(*u, *r)}
	if cert != nil {
		msgs = append(msgs, notify.CertificateEarned(*u, *cert))
	}
	for _, n := range msgs {
		if _, err := f.notify.Send(ctx, n); err != nil {
			f.log.Warn("notification failed", "kind", n.Kind, "user_id", u.ID, "error", err)
		}
	}
}
