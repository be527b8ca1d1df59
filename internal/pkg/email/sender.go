package email

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Sender delivers a single email. Implementations can be swapped
// (SendGrid, logging stub) without changing callers.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is one outbound email.
type Message struct {
	To      string
	ToName  string
	Subject string
	Body    string // Plain text body
}

// Config holds the sender identity and provider credentials.
type Config struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
}

// NewSender returns a SendGrid sender when an API key is configured,
// otherwise a LogSender.
func NewSender(cfg Config) Sender {
	if cfg.SendGridAPIKey == "" {
		log.Warn().Msg("SENDGRID_API_KEY not set, emails will only be logged")
		return NewLogSender()
	}
	return NewSendGridSender(cfg)
}

// SendGridSender sends emails via the SendGrid v3 API.
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewSendGridSender(cfg Config) *SendGridSender {
	fromName := cfg.FromName
	if fromName == "" {
		fromName = "Swarv Barbershop"
	}
	return &SendGridSender{
		client:    sendgrid.NewSendClient(cfg.SendGridAPIKey),
		fromEmail: cfg.FromEmail,
		fromName:  fromName,
	}
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, "")

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		log.Error().Int("status", resp.StatusCode).Str("to", msg.To).Str("body", resp.Body).Msg("sendgrid returned error status")
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}

	log.Debug().Str("to", msg.To).Str("subject", msg.Subject).Int("status", resp.StatusCode).Msg("email sent via sendgrid")
	return nil
}

// LogSender only logs the payload. Used in development and when no provider is configured.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Int("body_len", len(msg.Body)).
		Msg("email logged, not sent")
	return nil
}
