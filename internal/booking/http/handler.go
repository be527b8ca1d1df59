package http

import (
	"context"
	"errors"
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"

	"github.com/swarvbook/booking-backend/internal/auth"
	"github.com/swarvbook/booking-backend/internal/booking"
	"github.com/swarvbook/booking-backend/internal/client"
	"github.com/swarvbook/booking-backend/internal/pkg/request"
	"github.com/swarvbook/booking-backend/internal/pkg/response"
)

// ClientLookup maps the signed-in account to its client row.
type ClientLookup interface {
	GetByEmail(ctx context.Context, email string) (*client.Client, error)
}

type Handler struct {
	service booking.Service
	clients ClientLookup
}

func NewHandler(service booking.Service, clients ClientLookup) *Handler {
	return &Handler{service: service, clients: clients}
}

// currentClient resolves the caller's client profile. Booking requires one.
func (h *Handler) currentClient(c *gin.Context) (*client.Client, error) {
	cl, err := h.clients.GetByEmail(c.Request.Context(), auth.GetUserEmail(c))
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, booking.ErrClientProfileRequired
		}
		return nil, err
	}
	return cl, nil
}

// Availability lists the free slots of one barber for one service on one day.
func (h *Handler) Availability(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}
	day, err := req.Day()
	if err != nil {
		response.Error(c, err)
		return
	}

	slots, err := h.service.AvailableSlots(c.Request.Context(), req.StaffID, req.ServiceID, day)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewAvailabilityResponse(day, slots))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	cl, err := h.currentClient(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		ClientID:  cl.ID,
		StaffID:   body.StaffID,
		ServiceID: body.ServiceID,
		StartTime: body.StartTime,
		Notes:     body.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// ListMine returns the caller's bookings, newest first, each flagged with can_cancel.
func (h *Handler) ListMine(c *gin.Context) {
	cl, err := h.currentClient(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	list, err := h.service.ListForClient(c.Request.Context(), cl.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]MyBookingResponse, len(list))
	for i, b := range list {
		items[i] = MyBookingResponse{
			BookingResponse: NewBookingResponse(b),
			CanCancel:       h.service.ClientCanCancel(b),
		}
	}
	c.JSON(http.StatusOK, response.NewListResponse(items))
}

func (h *Handler) Cancel(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	cl, err := h.currentClient(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), uri.ID, cl.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	filter := booking.Filter{
		ClientID:  req.ClientID,
		StaffID:   req.StaffID,
		Status:    req.Status,
		From:      req.StartTimeFrom,
		To:        req.StartTimeTo,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	list, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPageResponse(toResponses(list), req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	var body UpdateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	b, err := h.service.AdminUpdate(c.Request.Context(), uri.ID, booking.UpdateRequest{
		Status: body.Status,
		Notes:  body.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Calendar returns the week grid of one barber. Without week, the current week is shown.
func (h *Handler) Calendar(c *gin.Context) {
	var req CalendarRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	day := h.service.Today()
	if req.Week != "" {
		d, err := civil.ParseDate(req.Week)
		if err != nil {
			response.Error(c, booking.ErrInvalidDate)
			return
		}
		day = d
	}

	grid, err := h.service.Week(c.Request.Context(), req.StaffID, day)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCalendarResponse(req.StaffID, grid))
}
