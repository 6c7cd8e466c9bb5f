package browse

import (
	"errors"
	"net/http"

	"github.com/Yulian302/findit-gateway/auth"
	browsetypes "github.com/Yulian302/findit-gateway/browse/types"
	apperror "github.com/Yulian302/findit-gateway/common/errors"
	"github.com/Yulian302/findit-gateway/common/responses"
	"github.com/Yulian302/findit-gateway/listing"
	"github.com/Yulian302/findit-gateway/services"
	"github.com/gin-gonic/gin"
)

type BrowseHandler struct {
	browseService services.BrowseService
}

func NewBrowseHandler(browseService services.BrowseService) *BrowseHandler {
	return &BrowseHandler{
		browseService: browseService,
	}
}

// Open godoc
// @Summary      Open a browsing session
// @Description  Starts in the folders state and fetches the folder list. A listing failure is reported in the view's error field.
// @Tags         browse
// @Produce      json
// @Success      200  {object}  listing.View
// @Failure      401  {object}  apperror.HTTPError "Not authenticated"
// @Router       /browse [post]
func (h *BrowseHandler) Open(c *gin.Context) {
	id, _ := auth.IdentityFrom(c)
	h.respond(c, func() (listing.View, error) {
		return h.browseService.Open(c.Request.Context(), id)
	})
}

// View godoc
// @Summary      Current browsing view
// @Tags         browse
// @Produce      json
// @Success      200  {object}  listing.View
// @Failure      404  {object}  apperror.HTTPError "No session"
// @Router       /browse [get]
func (h *BrowseHandler) View(c *gin.Context) {
	id, _ := auth.IdentityFrom(c)
	h.respond(c, func() (listing.View, error) {
		return h.browseService.View(id)
	})
}

// Select godoc
// @Summary      Select a folder
// @Tags         browse
// @Accept       json
// @Produce      json
// @Param        request  body      browsetypes.SelectRequest  true  "Folder to open"
// @Success      200  {object}  listing.View
// @Failure      400  {object}  apperror.HTTPError "Bad request params"
// @Failure      404  {object}  apperror.HTTPError "No session or unknown folder"
// @Router       /browse/select [post]
func (h *BrowseHandler) Select(c *gin.Context) {
	id, _ := auth.IdentityFrom(c)

	var req browsetypes.SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.BadRequestResponse(c, err.Error())
		return
	}

	h.respond(c, func() (listing.View, error) {
		return h.browseService.Select(c.Request.Context(), id, req.Folder)
	})
}

// Back godoc
// @Summary      Return to the folder list
// @Tags         browse
// @Produce      json
// @Success      200  {object}  listing.View
// @Failure      404  {object}  apperror.HTTPError "No session"
// @Router       /browse/back [post]
func (h *BrowseHandler) Back(c *gin.Context) {
	id, _ := auth.IdentityFrom(c)
	h.respond(c, func() (listing.View, error) {
		return h.browseService.Back(id)
	})
}

// Refresh godoc
// @Summary      Refetch the current view
// @Tags         browse
// @Produce      json
// @Success      200  {object}  listing.View
// @Failure      404  {object}  apperror.HTTPError "No session"
// @Router       /browse/refresh [post]
func (h *BrowseHandler) Refresh(c *gin.Context) {
	id, _ := auth.IdentityFrom(c)
	h.respond(c, func() (listing.View, error) {
		return h.browseService.Refresh(c.Request.Context(), id)
	})
}

// Close godoc
// @Summary      Close the browsing session
// @Tags         browse
// @Produce      json
// @Success      200  {object}  responses.MessageResponse
// @Failure      404  {object}  apperror.HTTPError "No session"
// @Router       /browse [delete]
func (h *BrowseHandler) Close(c *gin.Context) {
	id, _ := auth.IdentityFrom(c)

	if err := h.browseService.Close(id); err != nil {
		respondError(c, err)
		return
	}
	responses.JSONSuccess(c, "session closed")
}

func (h *BrowseHandler) respond(c *gin.Context, op func() (listing.View, error)) {
	v, err := op()
	if err != nil {
		respondError(c, err)
		return
	}
	responses.JSONData(c, http.StatusOK, v)
}

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, apperror.ErrAuthRequired):
		apperror.UnauthorizedResponse(c, "user not authenticated")
	case errors.Is(err, apperror.ErrSessionNotFound):
		apperror.NotFoundResponse(c, "no browsing session")
	case errors.Is(err, apperror.ErrFolderNotFound):
		apperror.NotFoundResponse(c, "folder not found")
	case errors.Is(err, apperror.ErrInvalidInput):
		apperror.BadRequestResponse(c, err.Error())
	default:
		apperror.InternalServerErrorResponse(c, "internal server error")
	}
}
