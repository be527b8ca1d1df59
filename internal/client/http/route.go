package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	me := g.Group("/me", authMiddleware)
	{
		me.GET("/client", h.GetMe)
		me.POST("/client", h.CreateMe)
		me.GET("/referral", h.GetReferral)
	}

	admin := g.Group("/admin/clients", authMiddleware, adminMiddleware)
	{
		admin.GET("", h.List)
		admin.GET("/:id", h.Get)
		admin.PATCH("/:id", h.Update)
	}
}
