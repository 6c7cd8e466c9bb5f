package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Error string `json:"error" example:"something went wrong"`
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, HTTPError{Error: msg})
}

func BadRequestResponse(c *gin.Context, msg string) {
	abort(c, http.StatusBadRequest, msg)
}

func UnauthorizedResponse(c *gin.Context, msg string) {
	abort(c, http.StatusUnauthorized, msg)
}

func ForbiddenResponse(c *gin.Context, msg string) {
	abort(c, http.StatusForbidden, msg)
}

func NotFoundResponse(c *gin.Context, msg string) {
	abort(c, http.StatusNotFound, msg)
}

func ConflictResponse(c *gin.Context, msg string) {
	abort(c, http.StatusConflict, msg)
}

func RequestTooLargeResponse(c *gin.Context, msg string) {
	abort(c, http.StatusRequestEntityTooLarge, msg)
}

func TooManyRequestsResponse(c *gin.Context, msg string) {
	abort(c, http.StatusTooManyRequests, msg)
}

func BadGatewayResponse(c *gin.Context, msg string) {
	abort(c, http.StatusBadGateway, msg)
}

func ServiceUnavailableResponse(c *gin.Context, msg string) {
	abort(c, http.StatusServiceUnavailable, msg)
}

func InternalServerErrorResponse(c *gin.Context, msg string) {
	abort(c, http.StatusInternalServerError, msg)
}
