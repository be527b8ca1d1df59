package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swarvbook/booking-backend/internal/auth"
	"github.com/swarvbook/booking-backend/internal/client"
	"github.com/swarvbook/booking-backend/internal/pkg/request"
	"github.com/swarvbook/booking-backend/internal/pkg/response"
)

type Handler struct {
	service client.Service
}

func NewHandler(service client.Service) *Handler {
	return &Handler{service: service}
}

// GetMe returns the caller's client profile, or 404 when they have not created one yet.
func (h *Handler) GetMe(c *gin.Context) {
	cl, err := h.service.GetByEmail(c.Request.Context(), auth.GetUserEmail(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewClientResponse(cl))
}

func (h *Handler) CreateMe(c *gin.Context) {
	var body CreateProfileBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	birthday, err := body.ParsedBirthday()
	if err != nil {
		response.Error(c, err)
		return
	}

	cl, err := h.service.CreateProfile(c.Request.Context(), client.ProfileRequest{
		Email:             auth.GetUserEmail(c),
		FirstName:         body.FirstName,
		LastName:          body.LastName,
		Phone:             body.Phone,
		AddressLine:       body.AddressLine,
		Zipcode:           body.Zipcode,
		Birthday:          birthday,
		Allergens:         body.Allergens,
		MarketingOptIn:    body.MarketingOptIn,
		ProcessingConsent: body.ProcessingConsent,
		ReferralCode:      body.ReferralCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewClientResponse(cl))
}

func (h *Handler) GetReferral(c *gin.Context) {
	cl, err := h.service.GetByEmail(c.Request.Context(), auth.GetUserEmail(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	info := h.service.Referral(cl)
	c.JSON(http.StatusOK, ReferralResponse{Code: info.Code, URL: info.URL})
}

func (h *Handler) List(c *gin.Context) {
	var req ListClientsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	list, total, err := h.service.List(c.Request.Context(), client.Filter{
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]AdminClientResponse, len(list))
	for i, cl := range list {
		items[i] = NewAdminClientResponse(cl)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	cl, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewAdminClientResponse(cl))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	var body AdminUpdateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	cl, err := h.service.AdminUpdate(c.Request.Context(), uri.ID, client.AdminUpdateRequest{
		Notes:          body.Notes,
		Trusted:        body.Trusted,
		Blacklisted:    body.Blacklisted,
		MarketingOptIn: body.MarketingOptIn,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewAdminClientResponse(cl))
}
