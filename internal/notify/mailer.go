package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/abhisek/upskill/internal/logger"
	"github.com/abhisek/upskill/internal/store"
)

// Mailer delivers a stored email outside the app.
type Mailer interface {
	Deliver(ctx context.Context, e store.Email) error
}

// ConsoleMailer writes emails to the log instead of sending them.
type ConsoleMailer struct {
	log        *logger.Logger
	subjPrefix string
}

func NewConsoleMailer(appName string, log *logger.Logger) *ConsoleMailer {
	if log == nil {
		log = logger.Nop()
	}
	return &ConsoleMailer{log: log, subjPrefix: "[" + appName + "] "}
}

func (m *ConsoleMailer) Deliver(_ context.Context, e store.Email) error {
	m.log.Info("email", "to", e.To, "kind", e.Kind, "subject", m.subjPrefix+e.Subject)
	return nil
}

const (
	sendGridHost     = "https://api.sendgrid.com"
	sendGridEndpoint = "/v3/mail/send"
)

// SendGridMailer sends emails through the SendGrid v3 API.
type SendGridMailer struct {
	key        string
	host       string
	from       *sgmail.Email
	subjPrefix string
}

func NewSendGridMailer(key, fromName, fromEmail string) *SendGridMailer {
	return &SendGridMailer{
		key:        key,
		host:       sendGridHost,
		from:       sgmail.NewEmail(fromName, fromEmail),
		subjPrefix: "[" + fromName + "] ",
	}
}

func (m *SendGridMailer) prepare(e store.Email) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = m.subjPrefix + e.Subject
	p.AddTos(sgmail.NewEmail("", e.To))

	msg := sgmail.NewV3Mail()
	msg.SetFrom(m.from)
	msg.AddPersonalizations(p)
	msg.AddContent(sgmail.NewContent("text/plain", e.Body))
	return msg
}

func (m *SendGridMailer) Deliver(_ context.Context, e store.Email) error {
	req := sendgrid.GetRequest(m.key, sendGridEndpoint, m.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m.prepare(e))

	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}
