package http

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/swarvbook/booking-backend/internal/client")

type ClientResponse struct {
	ID                string      `json:"id"`
	CustomerCardID    *int64      `json:"customer_card_id"`
	FirstName         string      `json:"first_name"`
	LastName          string      `json:"last_name"`
	FullName          string      `json:"full_name"`
	Email             *string     `json:"email"`
	Phone             *string     `json:"phone"`
	AddressLine       *string     `json:"address_line"`
	Zipcode           *string     `json:"zipcode"`
	Birthday          *civil.Date `json:"birthday"`
	MarketingOptIn    bool        `json:"marketing_opt_in"`
	ProcessingConsent bool        `json:"processing_consent"`
	Allergens         *string     `json:"allergens"`
	CreatedAt         time.Time   `json:"created_at"`
}

func NewClientResponse(c *client.Client) ClientResponse {
	return ClientResponse{
		ID:                c.ID,
		CustomerCardID:    c.CustomerCardID,
		FirstName:         c.FirstName,
		LastName:          c.LastName,
		FullName:          c.DisplayName(),
		Email:             c.Email,
		Phone:             c.Phone,
		AddressLine:       c.AddressLine,
		Zipcode:           c.Zipcode,
		Birthday:          c.Birthday,
		MarketingOptIn:    c.MarketingOptIn,
		ProcessingConsent: c.ProcessingConsent,
		Allergens:         c.Allergens,
		CreatedAt:         c.CreatedAt,
	}
}

// AdminClientResponse adds the shop-internal fields.
type AdminClientResponse struct {
	ClientResponse
	Notes       *string `json:"notes"`
	Trusted     bool    `json:"trusted"`
	Blacklisted bool    `json:"blacklisted"`
	ReferredBy  *string `json:"referred_by"`
}

func NewAdminClientResponse(c *client.Client) AdminClientResponse {
	return AdminClientResponse{
		ClientResponse: NewClientResponse(c),
		Notes:          c.Notes,
		Trusted:        c.Trusted,
		Blacklisted:    c.Blacklisted,
		ReferredBy:     c.ReferredBy,
	}
}

type ReferralResponse struct {
	Code string `json:"code"`
	URL  string `json:"url"`
}

type CreateProfileBody struct {
	FirstName         string  `json:"first_name" binding:"required"`
	LastName          string  `json:"last_name" binding:"required"`
	Phone             *string `json:"phone" binding:"omitempty,max=32"`
	AddressLine       *string `json:"address_line"`
	Zipcode           *string `json:"zipcode" binding:"omitempty,max=16"`
	Birthday          string  `json:"birthday" binding:"omitempty,datetime=2006-01-02"`
	Allergens         *string `json:"allergens"`
	MarketingOptIn    bool    `json:"marketing_opt_in"`
	ProcessingConsent bool    `json:"processing_consent"`
	ReferralCode      string  `json:"referral_code" binding:"omitempty,len=8,hexadecimal"`
}

// ParsedBirthday returns the birthday as a civil date, or nil when unset.
func (b *CreateProfileBody) ParsedBirthday() (*civil.Date, error) {
	if b.Birthday == "" {
		return nil, nil
	}
	d, err := civil.ParseDate(b.Birthday)
	if err != nil {
		return nil, client.ErrInvalidBirthday
	}
	return &d, nil
}

type ListClientsRequest struct {
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"page_size,default=25" binding:"min=1,max=100"`
	Search   string `form:"search" binding:"omitempty,max=100"`
}

type AdminUpdateBody struct {
	Notes          *string `json:"notes"`
	Trusted        *bool   `json:"trusted"`
	Blacklisted    *bool   `json:"blacklisted"`
	MarketingOptIn *bool   `json:"marketing_opt_in"`
}
