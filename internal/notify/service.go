// Package notify keeps each user's simulated inbox and forwards messages to
// a mailer and, for a few event kinds, to the desktop.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/upskill/internal/logger"
	"github.com/abhisek/upskill/internal/store"
)

// Sender is what other services need from notify.
type Sender interface {
	Send(ctx context.Context, n Notification) (*store.Email, error)
}

type Service struct {
	emails  store.EmailRepo
	mailer  Mailer
	desktop Desktop
	log     *logger.Logger
	now     func() time.Time
}

type Option func(*Service)

// WithDesktop enables desktop notifications. A nil d is ignored.
func WithDesktop(d Desktop) Option {
	return func(s *Service) {
		if d != nil {
			s.desktop = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New returns a Service. A nil mailer keeps messages in the inbox only.
func New(emails store.EmailRepo, mailer Mailer, log *logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.Nop()
	}
	s := &Service{
		emails: emails,
		mailer: mailer,
		log:    log.With("component", "notify"),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Send stores the message in the recipient's inbox, then delivers it.
// Delivery failures are logged; only storage failures are returned.
func (s *Service) Send(ctx context.Context, n Notification) (*store.Email, error) {
	e := store.Email{
		ID:      uuid.NewString(),
		UserID:  n.UserID,
		To:      n.To,
		Kind:    n.Kind,
		Subject: n.Subject,
		Body:    n.Body,
		SentAt:  s.now().UTC(),
	}
	if err := s.emails.Save(ctx, &e); err != nil {
		return nil, fmt.Errorf("store email: %w", err)
	}

	if s.mailer != nil {
		if err := s.mailer.Deliver(ctx, e); err != nil {
			s.log.Warn("email delivery failed", "kind", e.Kind, "to", e.To, "error", err)
		}
	}
	if s.desktop != nil && desktopKind(e.Kind) {
		if err := s.desktop.Notify(ctx, e.Subject, firstLine(e.Body)); err != nil {
			s.log.Debug("desktop notification failed", "kind", e.Kind, "error", err)
		}
	}
	return &e, nil
}

func desktopKind(kind string) bool {
	switch kind {
	case store.EmailWelcome, store.EmailAssessmentCompleted, store.EmailCertificateEarned:
		return true
	}
	return false
}

func firstLine(body string) string {
	line, _, _ := strings.Cut(body, "\n")
	return line
}

// Inbox lists a user's emails, newest first.
func (s *Service) Inbox(ctx context.Context, userID string) ([]store.Email, error) {
	return s.emails.ByUser(ctx, userID)
}

// MarkRead flags an email as read. Unknown IDs are an error.
func (s *Service) MarkRead(ctx context.Context, emailID string) error {
	e, err := s.emails.ByID(ctx, emailID)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("email %q not found", emailID)
	}
	if e.Read {
		return nil
	}
	e.Read = true
	return s.emails.Save(ctx, e)
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	items, err := s.emails.ByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range items {
		if !e.Read {
			n++
		}
	}
	return n, nil
}
