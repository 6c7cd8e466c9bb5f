package objects

import (
	"errors"
	"net/http"

	apperror "github.com/Yulian302/findit-gateway/common/errors"
	"github.com/Yulian302/findit-gateway/listing"
	"github.com/Yulian302/findit-gateway/services"
	"github.com/gin-gonic/gin"
)

// respondError writes the HTTP error for a service failure.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, apperror.ErrAuthRequired):
		apperror.UnauthorizedResponse(c, "user not authenticated")
	case errors.As(err, &maxBytes):
		apperror.RequestTooLargeResponse(c, "upload is too large")
	case errors.Is(err, apperror.ErrInvalidInput), errors.Is(err, apperror.ErrFileSizeInvalid):
		apperror.BadRequestResponse(c, err.Error())
	case errors.Is(err, apperror.ErrFolderNotFound):
		apperror.NotFoundResponse(c, "folder not found")
	case services.IsUnavailable(err):
		apperror.ServiceUnavailableResponse(c, "storage temporarily unavailable")
	case errors.Is(err, apperror.ErrUploadFailed):
		apperror.BadGatewayResponse(c, "could not register object")
	case listing.IsListingFailure(err):
		apperror.BadGatewayResponse(c, listing.FailureMessage(err))
	default:
		apperror.InternalServerErrorResponse(c, "internal server error")
	}
}
