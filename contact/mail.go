package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// ErrMailRejected is returned when the mail API answers with a non-2xx status.
var ErrMailRejected = errors.New("mail rejected")

// MailConfig configures a MailSubmitter.
type MailConfig struct {
	APIKey   string
	From     string
	FromName string
	To       string

	// Host overrides the API base URL.
	Host string
}

// MailSubmitter forwards submissions to the sales inbox through SendGrid.
type MailSubmitter struct {
	cfg MailConfig
}

// NewMailSubmitter validates cfg and returns a submitter.
func NewMailSubmitter(cfg MailConfig) (*MailSubmitter, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("mail: api key is required")
	}
	if !strings.Contains(cfg.From, "@") || !strings.Contains(cfg.To, "@") {
		return nil, errors.New("mail: from and to addresses are required")
	}
	if cfg.Host == "" {
		cfg.Host = sendgridHost
	}
	if cfg.FromName == "" {
		cfg.FromName = "Website"
	}
	return &MailSubmitter{cfg: cfg}, nil
}

// Message builds the outgoing mail for s.
func (m *MailSubmitter) Message(s Submission) *mail.SGMailV3 {
	r := s.Request
	from := mail.NewEmail(m.cfg.FromName, m.cfg.From)
	to := mail.NewEmail("", m.cfg.To)
	subject := fmt.Sprintf("Contact request from %s (%s)", r.Name, r.Organization)
	body := fmt.Sprintf("Name: %s\nEmail: %s\nOrganization: %s\nReference: %s\n\n%s\n",
		r.Name, r.Email, r.Organization, s.ID, r.Message)

	msg := mail.NewSingleEmail(from, subject, to, body, "")
	msg.SetReplyTo(mail.NewEmail(r.Name, r.Email))
	return msg
}

// Submit sends the submission.
func (m *MailSubmitter) Submit(ctx context.Context, s Submission) error {
	req := sendgrid.GetRequest(m.cfg.APIKey, sendgridEndpoint, m.cfg.Host)
	req.Method = rest.Post
	req.Body = mail.GetRequestBody(m.Message(s))

	resp, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("mail: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d: %s", ErrMailRejected, resp.StatusCode, resp.Body)
	}
	return nil
}
