package routers

import (
	"github.com/Yulian302/findit-gateway/auth"
	"github.com/Yulian302/findit-gateway/objects"
	"github.com/gin-gonic/gin"
)

func RegisterObjectsRoutes(h *objects.ObjectsHandler, jwtSecret string, route *gin.Engine) {
	objs := route.Group("/objects")

	objs.GET("/grouped", auth.OptionalJWTMiddleware(jwtSecret), h.Grouped)

	authed := objs.Group("", auth.JWTMiddleware(jwtSecret))
	authed.GET("/folders", h.ListFolders)
	authed.GET("/folders/:folder/entries", h.ListEntries)
	authed.GET("/detected", h.ListDetected)
	authed.POST("", h.Register)
}
