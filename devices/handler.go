package devices

import (
	"errors"

	"github.com/Yulian302/findit-gateway/auth"
	apperror "github.com/Yulian302/findit-gateway/common/errors"
	"github.com/Yulian302/findit-gateway/common/responses"
	devicestypes "github.com/Yulian302/findit-gateway/devices/types"
	"github.com/Yulian302/findit-gateway/services"
	"github.com/gin-gonic/gin"
)

type DeviceHandler struct {
	deviceService services.DeviceService
}

func NewDeviceHandler(deviceService services.DeviceService) *DeviceHandler {
	return &DeviceHandler{
		deviceService: deviceService,
	}
}

// SaveToken godoc
// @Summary      Store the caller's push token
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        request  body      devicestypes.TokenRequest  true  "Device token"
// @Success      200  {object}  responses.MessageResponse
// @Failure      400  {object}  apperror.HTTPError "Bad request params"
// @Failure      401  {object}  apperror.HTTPError "Not authenticated"
// @Failure      500  {object}  apperror.HTTPError
// @Router       /devices/token [post]
func (h *DeviceHandler) SaveToken(c *gin.Context) {
	id, _ := auth.IdentityFrom(c)

	var req devicestypes.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.BadRequestResponse(c, err.Error())
		return
	}

	if err := h.deviceService.SaveToken(c.Request.Context(), id, req.Token); err != nil {
		switch {
		case errors.Is(err, apperror.ErrAuthRequired):
			apperror.UnauthorizedResponse(c, "user not authenticated")
		case errors.Is(err, apperror.ErrInvalidInput):
			apperror.BadRequestResponse(c, "token is empty")
		default:
			apperror.InternalServerErrorResponse(c, "could not save token")
		}
		return
	}

	responses.JSONSuccess(c, "token saved")
}
