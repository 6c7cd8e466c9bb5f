package routers

import (
	"github.com/Yulian302/findit-gateway/auth"
	"github.com/Yulian302/findit-gateway/devices"
	"github.com/gin-gonic/gin"
)

func RegisterDeviceRoutes(h *devices.DeviceHandler, jwtSecret string, route *gin.Engine) {
	d := route.Group("/devices")

	d.POST("/token", auth.JWTMiddleware(jwtSecret), h.SaveToken)
}
