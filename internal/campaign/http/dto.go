package http

import (
	"github.com/swarvbook/booking-backend/internal/campaign"
	clientHttp "github.com/swarvbook/booking-backend/internal/client/http"
)

type DraftBody struct {
	Subject string `json:"subject" binding:"required,max=200"`
	Body    string `json:"body" binding:"required,max=20000"`
}

func (b DraftBody) Draft() campaign.Draft {
	return campaign.Draft{Subject: b.Subject, Body: b.Body}
}

type SegmentResponse struct {
	Items []clientHttp.ClientResponse `json:"items"`
	Total int                         `json:"total"`
}

type PreviewItemResponse struct {
	Email    string `json:"email"`
	Rendered string `json:"rendered"`
}

type PreviewResponse struct {
	Items []PreviewItemResponse `json:"items"`
}

type ResultResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
}

func NewResultResponse(r campaign.Result) ResultResponse {
	return ResultResponse{OK: r.OK, Message: r.Message, Sent: r.Sent, Failed: r.Failed}
}
