package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	g.GET("/staff", h.ListActive)

	admin := g.Group("/admin/staff", authMiddleware, adminMiddleware)
	{
		admin.GET("", h.ListAll)
		admin.POST("", h.Create)
		admin.PATCH("/:id", h.Update)
	}
}
