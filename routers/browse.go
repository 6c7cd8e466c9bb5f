package routers

import (
	"github.com/Yulian302/findit-gateway/auth"
	"github.com/Yulian302/findit-gateway/browse"
	"github.com/gin-gonic/gin"
)

func RegisterBrowseRoutes(h *browse.BrowseHandler, jwtSecret string, route *gin.Engine) {
	b := route.Group("/browse", auth.JWTMiddleware(jwtSecret))

	b.POST("", h.Open)
	b.GET("", h.View)
	b.POST("/select", h.Select)
	b.POST("/back", h.Back)
	b.POST("/refresh", h.Refresh)
	b.DELETE("", h.Close)
}
