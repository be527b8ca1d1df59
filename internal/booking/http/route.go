package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	g.GET("/availability", h.Availability)

	// === Client Routes ===
	client := g.Group("", authMiddleware)
	{
		client.POST("/bookings", h.Create)
		client.POST("/bookings/:id/cancel", h.Cancel)
		client.GET("/me/bookings", h.ListMine)
	}

	// === Admin Routes ===
	admin := g.Group("/admin", authMiddleware, adminMiddleware)
	{
		admin.GET("/bookings", h.List)
		admin.GET("/bookings/:id", h.Get)
		admin.PATCH("/bookings/:id", h.Update)
		admin.GET("/calendar", h.Calendar)
	}
}
