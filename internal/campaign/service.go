package campaign

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/swarvbook/booking-backend/internal/client"
	"github.com/swarvbook/booking-backend/internal/pkg/email"
	"github.com/swarvbook/booking-backend/internal/pkg/metrics"
)

// sendConcurrency bounds parallel provider calls during a bulk send.
const sendConcurrency = 4

// SegmentSource lists the marketing audience.
type SegmentSource interface {
	MarketingSegment(ctx context.Context) ([]*client.Client, error)
}

type Service interface {
	Segment(ctx context.Context) ([]*client.Client, error)
	Preview(ctx context.Context, d Draft) ([]PreviewItem, error)
	// SendTest sends the unrendered draft to the configured test address,
	// or to fallback when none is configured.
	SendTest(ctx context.Context, d Draft, fallback string) (Result, error)
	SendBulk(ctx context.Context, d Draft) (Result, error)
}

type service struct {
	segment     SegmentSource
	sender      email.Sender
	testAddress string
	metrics     *metrics.CampaignMetrics
}

func NewService(segment SegmentSource, sender email.Sender, testAddress string, m *metrics.CampaignMetrics) Service {
	return &service{
		segment:     segment,
		sender:      sender,
		testAddress: strings.TrimSpace(testAddress),
		metrics:     m,
	}
}

// RenderBody replaces every {{first_name}} in template with the trimmed
// first name, or "there" when it is blank.
func RenderBody(template, firstName string) string {
	name := strings.TrimSpace(firstName)
	if name == "" {
		name = FallbackName
	}
	return strings.ReplaceAll(template, FirstNamePlaceholder, name)
}

func (d Draft) validate() error {
	if strings.TrimSpace(d.Subject) == "" {
		return ErrEmptySubject
	}
	if strings.TrimSpace(d.Body) == "" {
		return ErrEmptyBody
	}
	return nil
}

func (s *service) Segment(ctx context.Context) ([]*client.Client, error) {
	return s.segment.MarketingSegment(ctx)
}

func (s *service) Preview(ctx context.Context, d Draft) ([]PreviewItem, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	clients, err := s.segment.MarketingSegment(ctx)
	if err != nil {
		return nil, err
	}
	if len(clients) > PreviewSize {
		clients = clients[:PreviewSize]
	}

	items := make([]PreviewItem, len(clients))
	for i, c := range clients {
		addr := NoEmailLabel
		if c.Email != nil && *c.Email != "" {
			addr = *c.Email
		}
		items[i] = PreviewItem{Email: addr, Rendered: RenderBody(d.Body, c.FirstName)}
	}
	return items, nil
}

func (s *service) SendTest(ctx context.Context, d Draft, fallback string) (Result, error) {
	if err := d.validate(); err != nil {
		return Result{}, err
	}
	to := s.testAddress
	if to == "" {
		to = strings.TrimSpace(fallback)
	}
	if to == "" {
		return Result{}, ErrNoTestAddress
	}

	err := s.sender.Send(ctx, email.Message{To: to, Subject: d.Subject, Body: d.Body})
	s.metrics.ObserveEmail("test", err == nil)
	if err != nil {
		log.Error().Err(err).Str("to", to).Msg("test campaign email failed")
		return Result{}, ErrSendFailed
	}
	return Result{OK: true, Message: "Test email sent to " + to, Sent: 1}, nil
}

func (s *service) SendBulk(ctx context.Context, d Draft) (Result, error) {
	if err := d.validate(); err != nil {
		return Result{}, err
	}
	clients, err := s.segment.MarketingSegment(ctx)
	if err != nil {
		return Result{}, err
	}

	var recipients []*client.Client
	for _, c := range clients {
		if c.Email != nil && *c.Email != "" {
			recipients = append(recipients, c)
		}
	}

	var sent, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sendConcurrency)
	for _, c := range recipients {
		g.Go(func() error {
			msg := email.Message{
				To:      *c.Email,
				ToName:  c.DisplayName(),
				Subject: d.Subject,
				Body:    RenderBody(d.Body, c.FirstName),
			}
			err := s.sender.Send(gctx, msg)
			s.metrics.ObserveEmail("bulk", err == nil)
			if err != nil {
				failed.Add(1)
				log.Warn().Err(err).Str("client_id", c.ID).Msg("campaign email failed")
				// Cancellation stops the rest; a single bad address does not.
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				return nil
			}
			sent.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{
		OK:      failed.Load() == 0,
		Message: fmt.Sprintf("Campaign queued for %d recipients", len(recipients)),
		Sent:    int(sent.Load()),
		Failed:  int(failed.Load()),
	}
	log.Info().Int("sent", res.Sent).Int("failed", res.Failed).Msg("campaign sent")
	return res, nil
}
