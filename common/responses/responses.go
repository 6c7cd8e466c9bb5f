package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

func JSONSuccess(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, MessageResponse{Message: msg})
}

func JSONCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func JSONData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
