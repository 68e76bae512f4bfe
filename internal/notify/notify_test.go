package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/upskill/internal/store"
)

type recordingMailer struct {
	sent []store.Email
	err  error
}

func (m *recordingMailer) Deliver(_ context.Context, e store.Email) error {
	m.sent = append(m.sent, e)
	return m.err
}

type recordingDesktop struct {
	titles []string
}

func (d *recordingDesktop) Notify(_ context.Context, title, _ string) error {
	d.titles = append(d.titles, title)
	return errors.New("no display")
}

var ada = store.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}

func TestSend_StoresAndDelivers(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	mailer := &recordingMailer{err: errors.New("smtp down")}
	desk := &recordingDesktop{}
	svc := New(st.EmailRepo(), mailer, nil, WithDesktop(desk))

	e, err := svc.Send(ctx, Welcome(ada))
	require.NoError(t, err, "delivery failures must not fail Send")
	assert.Equal(t, store.EmailWelcome, e.Kind)
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Read)

	_, err = svc.Send(ctx, CourseEnrolled(ada, store.Course{ID: "c1", Title: "Go", TotalLessons: 3}))
	require.NoError(t, err)

	assert.Len(t, mailer.sent, 2)
	// Enrollment emails do not reach the desktop.
	assert.Equal(t, []string{"Welcome to upskill, Ada"}, desk.titles)

	inbox, err := svc.Inbox(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, inbox, 2)
}

func TestInboxOrderAndUnread(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := New(st.EmailRepo(), nil, nil, WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))

	first, err := svc.Send(ctx, Welcome(ada))
	require.NoError(t, err)
	res := store.AssessmentResult{AssessmentTitle: "Go Basics", Score: 80, Correct: 4, Total: 5, Status: store.StatusPassed}
	second, err := svc.Send(ctx, AssessmentCompleted(ada, res))
	require.NoError(t, err)

	inbox, err := svc.Inbox(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, inbox, 2)
	assert.Equal(t, second.ID, inbox[0].ID)
	assert.Contains(t, inbox[0].Body, "passed Go Basics")

	n, err := svc.UnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, svc.MarkRead(ctx, first.ID))
	require.NoError(t, svc.MarkRead(ctx, first.ID))
	n, err = svc.UnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Error(t, svc.MarkRead(ctx, "missing"))
}

func TestCertificateEarnedMessage(t *testing.T) {
	n := CertificateEarned(ada, store.Certificate{ID: "CERT-js-1", Title: "JS", Badge: "JS Certified"})
	assert.Equal(t, store.EmailCertificateEarned, n.Kind)
	assert.Contains(t, n.Body, "CERT-js-1")
	assert.Equal(t, "Certificate earned: JS Certified", n.Subject)
}

func TestSendGridMailer(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, sendGridEndpoint, r.URL.Path)
		assert.Equal(t, "Bearer sg-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m := NewSendGridMailer("sg-key", "upskill", "noreply@upskill.dev")
	m.host = srv.URL

	err := m.Deliver(context.Background(), store.Email{To: "ada@example.com", Subject: "Hi", Body: "hello"})
	require.NoError(t, err)

	from := got["from"].(map[string]any)
	assert.Equal(t, "noreply@upskill.dev", from["email"])
	p := got["personalizations"].([]any)[0].(map[string]any)
	assert.Equal(t, "[upskill] Hi", p["subject"])
}

func TestSendGridMailer_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer srv.Close()

	m := NewSendGridMailer("bad", "upskill", "noreply@upskill.dev")
	m.host = srv.URL
	err := m.Deliver(context.Background(), store.Email{To: "ada@example.com", Subject: "Hi", Body: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
