package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swarvbook/booking-backend/internal/auth"
	"github.com/swarvbook/booking-backend/internal/campaign"
	clientHttp "github.com/swarvbook/booking-backend/internal/client/http"
	"github.com/swarvbook/booking-backend/internal/pkg/response"
)

type Handler struct {
	service campaign.Service
}

func NewHandler(service campaign.Service) *Handler {
	return &Handler{service: service}
}

// Segment lists the opted-in audience a campaign would reach.
func (h *Handler) Segment(c *gin.Context) {
	clients, err := h.service.Segment(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]clientHttp.ClientResponse, len(clients))
	for i, cl := range clients {
		items[i] = clientHttp.NewClientResponse(cl)
	}
	c.JSON(http.StatusOK, SegmentResponse{Items: items, Total: len(items)})
}

func (h *Handler) Preview(c *gin.Context) {
	var body DraftBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	preview, err := h.service.Preview(c.Request.Context(), body.Draft())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PreviewItemResponse, len(preview))
	for i, p := range preview {
		items[i] = PreviewItemResponse{Email: p.Email, Rendered: p.Rendered}
	}
	c.JSON(http.StatusOK, PreviewResponse{Items: items})
}

// SendTest mails the draft to the configured test inbox, or to the calling admin.
func (h *Handler) SendTest(c *gin.Context) {
	var body DraftBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.SendTest(c.Request.Context(), body.Draft(), auth.GetUserEmail(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewResultResponse(res))
}

func (h *Handler) SendBulk(c *gin.Context) {
	var body DraftBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.SendBulk(c.Request.Context(), body.Draft())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewResultResponse(res))
}
