package client

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog/log"
)

type ProfileRequest struct {
	Email             string
	FirstName         string
	LastName          string
	Phone             *string
	AddressLine       *string
	Zipcode           *string
	Birthday          *civil.Date
	Allergens         *string
	MarketingOptIn    bool
	ProcessingConsent bool
	ReferralCode      string
}

type AdminUpdateRequest struct {
	Notes          *string
	Trusted        *bool
	Blacklisted    *bool
	MarketingOptIn *bool
}

type Service interface {
	GetByID(ctx context.Context, id string) (*Client, error)
	GetByEmail(ctx context.Context, email string) (*Client, error)
	CreateProfile(ctx context.Context, req ProfileRequest) (*Client, error)
	List(ctx context.Context, filter Filter) ([]*Client, int, error)
	AdminUpdate(ctx context.Context, id string, req AdminUpdateRequest) (*Client, error)
	// MarketingSegment returns every client who opted in to marketing, newest first.
	MarketingSegment(ctx context.Context) ([]*Client, error)
	Referral(c *Client) ReferralInfo
}

type service struct {
	repo    Repository
	baseURL string
	today   func() civil.Date
}

// NewService builds the client service. Birthdays are checked against the
// current date in loc, read from now.
func NewService(repo Repository, publicBaseURL string, loc *time.Location, now func() time.Time) Service {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:    repo,
		baseURL: publicBaseURL,
		today:   func() civil.Date { return civil.DateOf(now().In(loc)) },
	}
}

func (s *service) GetByID(ctx context.Context, id string) (*Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByEmail(ctx context.Context, email string) (*Client, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrNotFound
	}
	return s.repo.GetByEmail(ctx, email)
}

func (s *service) CreateProfile(ctx context.Context, req ProfileRequest) (*Client, error) {
	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	if first == "" || last == "" {
		return nil, ErrMissingName
	}
	if !req.ProcessingConsent {
		return nil, ErrMissingConsent
	}
	if req.Birthday != nil && (!req.Birthday.IsValid() || !req.Birthday.Before(s.today())) {
		return nil, ErrInvalidBirthday
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	c := &Client{
		FirstName:         first,
		LastName:          last,
		FullName:          joinName(first, last),
		Email:             &email,
		Phone:             trimmed(req.Phone),
		AddressLine:       trimmed(req.AddressLine),
		Zipcode:           trimmed(req.Zipcode),
		Birthday:          req.Birthday,
		Allergens:         trimmed(req.Allergens),
		MarketingOptIn:    req.MarketingOptIn,
		ProcessingConsent: req.ProcessingConsent,
	}

	if strings.TrimSpace(req.ReferralCode) != "" {
		referrer, err := s.resolveReferral(ctx, req.ReferralCode)
		if err != nil {
			return nil, err
		}
		c.ReferredBy = &referrer.ID
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	log.Info().Str("client_id", c.ID).Bool("referred", c.ReferredBy != nil).Msg("client profile created")
	return c, nil
}

func (s *service) resolveReferral(ctx context.Context, code string) (*Client, error) {
	prefix := normalizeReferral(code)
	if prefix == "" {
		return nil, ErrInvalidReferral
	}
	referrer, err := s.repo.FindByIDPrefix(ctx, prefix)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidReferral
		}
		return nil, err
	}
	return referrer, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Client, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = DefaultPageSize
	}
	return s.repo.List(ctx, filter)
}

func (s *service) AdminUpdate(ctx context.Context, id string, req AdminUpdateRequest) (*Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Notes != nil {
		c.Notes = trimmed(req.Notes)
	}
	if req.Trusted != nil {
		c.Trusted = *req.Trusted
	}
	if req.Blacklisted != nil {
		c.Blacklisted = *req.Blacklisted
	}
	if req.MarketingOptIn != nil {
		c.MarketingOptIn = *req.MarketingOptIn
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) MarketingSegment(ctx context.Context) ([]*Client, error) {
	return s.repo.ListMarketing(ctx)
}

func (s *service) Referral(c *Client) ReferralInfo {
	return NewReferralInfo(c, s.baseURL)
}

// trimmed returns nil for nil or blank input.
func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
