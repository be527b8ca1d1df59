package client

import (
	"net/http"
	"time"

	"cloud.google.com/go/civil"

	"github.com/swarvbook/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "client not found")
	ErrEmailTaken      = apperror.New(http.StatusConflict, "a client with this email already exists")
	ErrInvalidReferral = apperror.New(http.StatusBadRequest, "referral code not recognised")
	ErrMissingName     = apperror.New(http.StatusBadRequest, "first and last name are required")
	ErrMissingConsent  = apperror.New(http.StatusBadRequest, "processing consent is required")
	ErrInvalidBirthday = apperror.New(http.StatusBadRequest, "birthday must be a past date")
)

// DefaultPageSize is the page size of the admin client list.
const DefaultPageSize = 25

// Client is a shop customer. A client row is tied to a sign-in account by email.
type Client struct {
	ID                string
	CustomerCardID    *int64
	FirstName         string
	LastName          string
	FullName          string
	Email             *string
	Phone             *string
	AddressLine       *string
	Zipcode           *string
	Birthday          *civil.Date
	Notes             *string
	MarketingOptIn    bool
	ProcessingConsent bool
	Trusted           bool
	Blacklisted       bool
	Allergens         *string
	ReferredBy        *string
	CreatedAt         time.Time
}

// DisplayName prefers FullName and falls back to first and last name.
func (c *Client) DisplayName() string {
	if c.FullName != "" {
		return c.FullName
	}
	name := joinName(c.FirstName, c.LastName)
	if name == "" {
		return "Unknown"
	}
	return name
}

type Filter struct {
	Search   string
	Page     int
	PageSize int
}
