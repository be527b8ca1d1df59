package client

import (
	"context"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	items []*Client
}

func (r *memRepo) Create(_ context.Context, c *Client) error {
	for _, other := range r.items {
		if other.Email != nil && c.Email != nil && *other.Email == *c.Email {
			return ErrEmailTaken
		}
	}
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	r.items = append(r.items, c)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Client, error) {
	for _, c := range r.items {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepo) GetByEmail(_ context.Context, email string) (*Client, error) {
	for _, c := range r.items {
		if c.Email != nil && strings.EqualFold(*c.Email, email) {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepo) FindByIDPrefix(_ context.Context, prefix string) (*Client, error) {
	for _, c := range r.items {
		if strings.HasPrefix(c.ID, prefix) {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepo) List(_ context.Context, f Filter) ([]*Client, int, error) {
	return r.items, len(r.items), nil
}

func (r *memRepo) ListMarketing(_ context.Context) ([]*Client, error) {
	var out []*Client
	for _, c := range r.items {
		if c.MarketingOptIn {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memRepo) Update(_ context.Context, c *Client) error {
	_, err := r.GetByID(context.Background(), c.ID)
	return err
}

func newTestService(repo Repository) *service {
	return &service{
		repo:    repo,
		baseURL: "https://swarv.example",
		today:   func() civil.Date { return civil.Date{Year: 2024, Month: time.June, Day: 7} },
	}
}

func validProfile(email string) ProfileRequest {
	phone := " 07700 900123 "
	return ProfileRequest{
		Email:             email,
		FirstName:         " Jordan ",
		LastName:          "Smith",
		Phone:             &phone,
		ProcessingConsent: true,
		MarketingOptIn:    true,
	}
}

func TestCreateProfile(t *testing.T) {
	svc := newTestService(&memRepo{})

	c, err := svc.CreateProfile(context.Background(), validProfile("Jordan@Example.com"))
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Jordan Smith", c.FullName)
	require.NotNil(t, c.Email)
	assert.Equal(t, "jordan@example.com", *c.Email)
	require.NotNil(t, c.Phone)
	assert.Equal(t, "07700 900123", *c.Phone)
	assert.Nil(t, c.ReferredBy)

	_, err = svc.CreateProfile(context.Background(), validProfile("jordan@example.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateProfileValidation(t *testing.T) {
	svc := newTestService(&memRepo{})
	ctx := context.Background()

	noName := validProfile("a@example.com")
	noName.LastName = "  "
	_, err := svc.CreateProfile(ctx, noName)
	assert.ErrorIs(t, err, ErrMissingName)

	noConsent := validProfile("a@example.com")
	noConsent.ProcessingConsent = false
	_, err = svc.CreateProfile(ctx, noConsent)
	assert.ErrorIs(t, err, ErrMissingConsent)

	future := validProfile("a@example.com")
	future.Birthday = &civil.Date{Year: 2030, Month: time.January, Day: 1}
	_, err = svc.CreateProfile(ctx, future)
	assert.ErrorIs(t, err, ErrInvalidBirthday)
}

func TestCreateProfileBirthdayUsesShopDate(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)
	// 23:30 UTC on 7 June is already 8 June in London.
	now := func() time.Time { return time.Date(2024, time.June, 7, 23, 30, 0, 0, time.UTC) }
	svc := NewService(&memRepo{}, "https://swarv.example", london, now)

	p := validProfile("late@example.com")
	p.Birthday = &civil.Date{Year: 2024, Month: time.June, Day: 7}
	_, err = svc.CreateProfile(context.Background(), p)
	assert.NoError(t, err)

	p = validProfile("later@example.com")
	p.Birthday = &civil.Date{Year: 2024, Month: time.June, Day: 8}
	_, err = svc.CreateProfile(context.Background(), p)
	assert.ErrorIs(t, err, ErrInvalidBirthday)
}

func TestCreateProfileWithReferral(t *testing.T) {
	repo := &memRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	referrer, err := svc.CreateProfile(ctx, validProfile("first@example.com"))
	require.NoError(t, err)

	req := validProfile("second@example.com")
	req.ReferralCode = svc.Referral(referrer).Code
	friend, err := svc.CreateProfile(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, friend.ReferredBy)
	assert.Equal(t, referrer.ID, *friend.ReferredBy)

	for _, code := range []string{"NOPE", "FFFFFFFF"} {
		req := validProfile(code + "@example.com")
		req.ReferralCode = code
		if strings.HasPrefix(referrer.ID, "ffffffff") {
			continue
		}
		_, err := svc.CreateProfile(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidReferral, code)
	}
}

func TestAdminUpdate(t *testing.T) {
	repo := &memRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	c, err := svc.CreateProfile(ctx, validProfile("c@example.com"))
	require.NoError(t, err)

	notes := "  prefers scissors over clippers "
	trusted := true
	optOut := false
	updated, err := svc.AdminUpdate(ctx, c.ID, AdminUpdateRequest{Notes: &notes, Trusted: &trusted, MarketingOptIn: &optOut})
	require.NoError(t, err)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "prefers scissors over clippers", *updated.Notes)
	assert.True(t, updated.Trusted)
	assert.False(t, updated.MarketingOptIn)
	assert.False(t, updated.Blacklisted)

	segment, err := svc.MarketingSegment(ctx)
	require.NoError(t, err)
	assert.Empty(t, segment)

	_, err = svc.AdminUpdate(ctx, "missing", AdminUpdateRequest{Trusted: &trusted})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByEmailBlank(t *testing.T) {
	svc := newTestService(&memRepo{})

	_, err := svc.GetByEmail(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrNotFound)
}
