package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swarvbook/booking-backend/internal/pkg/request"
	"github.com/swarvbook/booking-backend/internal/pkg/response"
	"github.com/swarvbook/booking-backend/internal/staff"
)

type Handler struct {
	service staff.Service
}

func NewHandler(service staff.Service) *Handler {
	return &Handler{service: service}
}

// ListActive returns the barbers shown in the booking wizard.
func (h *Handler) ListActive(c *gin.Context) {
	list, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewListResponse(toResponses(list)))
}

func (h *Handler) ListAll(c *gin.Context) {
	list, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewListResponse(toResponses(list)))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateStaffBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	active := true
	if body.Active != nil {
		active = *body.Active
	}

	s, err := h.service.Create(c.Request.Context(), staff.CreateRequest{
		Name:   body.Name,
		Email:  body.Email,
		Active: active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewStaffResponse(s))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	var body UpdateStaffBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	s, err := h.service.Update(c.Request.Context(), uri.ID, staff.UpdateRequest{
		Name:   body.Name,
		Email:  body.Email,
		Active: body.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewStaffResponse(s))
}

func toResponses(list []*staff.Staff) []StaffResponse {
	out := make([]StaffResponse, len(list))
	for i, s := range list {
		out[i] = NewStaffResponse(s)
	}
	return out
}
