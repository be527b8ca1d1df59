package campaign

import (
	"net/http"

	"github.com/swarvbook/booking-backend/internal/pkg/apperror"
)

var (
	ErrEmptySubject  = apperror.New(http.StatusBadRequest, "subject is required")
	ErrEmptyBody     = apperror.New(http.StatusBadRequest, "body is required")
	ErrNoTestAddress = apperror.New(http.StatusBadRequest, "no test email address configured")
	ErrSendFailed    = apperror.New(http.StatusBadGateway, "email provider rejected the message")
)

const (
	// FirstNamePlaceholder is replaced by the recipient's first name.
	FirstNamePlaceholder = "{{first_name}}"
	// FallbackName stands in for a missing first name.
	FallbackName = "there"
	// PreviewSize is how many segment clients a preview renders.
	PreviewSize = 5
	// NoEmailLabel marks preview rows of clients without an address.
	NoEmailLabel = "(no email)"
)

type Draft struct {
	Subject string
	Body    string
}

type PreviewItem struct {
	Email    string
	Rendered string
}

// Result reports the outcome of a send.
type Result struct {
	OK      bool
	Message string
	Sent    int
	Failed  int
}
