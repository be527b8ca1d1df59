package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	admin := g.Group("/admin/campaigns", authMiddleware, adminMiddleware)
	{
		admin.GET("/segment", h.Segment)
		admin.POST("/preview", h.Preview)
		admin.POST("/test", h.SendTest)
		admin.POST("/send", h.SendBulk)
	}
}
