package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swarvbook/booking-backend/internal/catalog"
	"github.com/swarvbook/booking-backend/internal/pkg/request"
	"github.com/swarvbook/booking-backend/internal/pkg/response"
)

type Handler struct {
	service catalog.Service
}

func NewHandler(service catalog.Service) *Handler {
	return &Handler{service: service}
}

// ListActive returns the services clients can book, ordered by name.
func (h *Handler) ListActive(c *gin.Context) {
	items, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewListResponse(toResponses(items)))
}

// ListAll returns every service including inactive ones (admin).
func (h *Handler) ListAll(c *gin.Context) {
	items, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewListResponse(toResponses(items)))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateServiceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	active := true
	if body.Active != nil {
		active = *body.Active
	}

	item, err := h.service.Create(c.Request.Context(), catalog.CreateRequest{
		Name:            body.Name,
		Price:           body.Price,
		DurationMinutes: body.DurationMinutes,
		Active:          active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewServiceResponse(item))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	var body UpdateServiceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	item, err := h.service.Update(c.Request.Context(), uri.ID, catalog.UpdateRequest{
		Name:            body.Name,
		Price:           body.Price,
		DurationMinutes: body.DurationMinutes,
		Active:          body.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewServiceResponse(item))
}

func toResponses(items []*catalog.Item) []ServiceResponse {
	out := make([]ServiceResponse, len(items))
	for i, it := range items {
		out[i] = NewServiceResponse(it)
	}
	return out
}
