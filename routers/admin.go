package routers

import (
	"github.com/Yulian302/findit-gateway/auth"
	"github.com/Yulian302/findit-gateway/objects"
	"github.com/gin-gonic/gin"
)

func RegisterAdminRoutes(h *objects.ObjectsHandler, jwtSecret string, adminIDs []string, route *gin.Engine) {
	admin := route.Group("/admin", auth.JWTMiddleware(jwtSecret), auth.RequireAdmin(adminIDs))

	admin.GET("/records", h.AllRecords)
}
