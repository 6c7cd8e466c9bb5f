package objects

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/Yulian302/findit-gateway/auth"
	apperror "github.com/Yulian302/findit-gateway/common/errors"
	"github.com/Yulian302/findit-gateway/common/responses"
	"github.com/Yulian302/findit-gateway/listing"
	objectstypes "github.com/Yulian302/findit-gateway/objects/types"
	"github.com/Yulian302/findit-gateway/services"
	"github.com/gin-gonic/gin"
)

type ObjectsHandler struct {
	listingService      services.ListingService
	registrationService services.RegistrationService
	maxUploadSize       int64
}

func NewObjectsHandler(listingService services.ListingService, registrationService services.RegistrationService, maxUploadSize int64) *ObjectsHandler {
	return &ObjectsHandler{
		listingService:      listingService,
		registrationService: registrationService,
		maxUploadSize:       maxUploadSize,
	}
}

// ListFolders godoc
// @Summary      List object folders
// @Description  Folders directly under the caller's root, reserved folder excluded, sorted by name
// @Tags         objects
// @Produce      json
// @Success      200  {object}  objectstypes.FoldersResponse
// @Failure      401  {object}  apperror.HTTPError "Not authenticated"
// @Failure      502  {object}  apperror.HTTPError "Listing failed"
// @Failure      503  {object}  apperror.HTTPError "Storage unavailable"
// @Router       /objects/folders [get]
func (h *ObjectsHandler) ListFolders(c *gin.Context) {
	id, _ := auth.IdentityFrom(c)

	folders, err := h.listingService.ListFolders(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	responses.JSONData(c, http.StatusOK, objectstypes.FoldersResponse{Folders: folders})
}

// ListEntries godoc
// @Summary      List images of a folder
// @Description  Every image of the folder with a resolved download address, newest first
// @Tags         objects
// @Produce      json
// @Param        folder  path      string  true  "Folder name"
// @Success      200  {object}  objectstypes.EntriesResponse
// @Failure      400  {object}  apperror.HTTPError "Bad folder name"
// @Failure      401  {object}  apperror.HTTPError "Not authenticated"
// @Failure      404  {object}  apperror.HTTPError "Folder not found"
// @Failure      502  {object}  apperror.HTTPError "Listing failed"
// @Router       /objects/folders/{folder}/entries [get]
func (h *ObjectsHandler) ListEntries(c *gin.Context) {
	id, _ := auth.IdentityFrom(c)
	folder := c.Param("folder")

	entries, err := h.listingService.ListEntries(c.Request.Context(), id, folder)
	if err != nil {
		respondError(c, err)
		return
	}

	responses.JSONData(c, http.StatusOK, objectstypes.EntriesResponse{Folder: folder, Entries: entries})
}

// ListDetected godoc
// @Summary      List detected matches
// @Tags         objects
// @Produce      json
// @Success      200  {object}  objectstypes.EntriesResponse
// @Failure      401  {object}  apperror.HTTPError "Not authenticated"
// @Failure      502  {object}  apperror.HTTPError "Listing failed"
// @Router       /objects/detected [get]
func (h *ObjectsHandler) ListDetected(c *gin.Context) {
	id, _ := auth.IdentityFrom(c)

	entries, err := h.listingService.ListDetected(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	responses.JSONData(c, http.StatusOK, objectstypes.EntriesResponse{Entries: entries})
}

// Grouped godoc
// @Summary      Registered objects grouped by name
// @Description  Anonymous callers get an empty list
// @Tags         objects
// @Produce      json
// @Success      200  {object}  objectstypes.GroupsResponse
// @Failure      401  {object}  apperror.HTTPError "Invalid token"
// @Failure      502  {object}  apperror.HTTPError "Query failed"
// @Router       /objects/grouped [get]
func (h *ObjectsHandler) Grouped(c *gin.Context) {
	id, _ := auth.IdentityFrom(c)

	groups, err := h.listingService.GroupedObjects(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	responses.JSONData(c, http.StatusOK, objectstypes.GroupsResponse{Groups: groups.Render()})
}

// Register godoc
// @Summary      Register an object
// @Description  Stores the uploaded images under the object's name and records them
// @Tags         objects
// @Accept       multipart/form-data
// @Produce      json
// @Param        name    formData  string  true  "Object name"
// @Param        images  formData  file    true  "Object images"
// @Success      201  {object}  objectstypes.RegisterResponse
// @Failure      400  {object}  apperror.HTTPError "Bad request params"
// @Failure      401  {object}  apperror.HTTPError "Not authenticated"
// @Failure      413  {object}  apperror.HTTPError "Upload too large"
// @Failure      502  {object}  apperror.HTTPError "Upload failed"
// @Router       /objects [post]
func (h *ObjectsHandler) Register(c *gin.Context) {
	id, ok := auth.IdentityFrom(c)
	if !ok {
		apperror.UnauthorizedResponse(c, "user not authenticated")
		return
	}

	if h.maxUploadSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)
	}

	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, fmt.Errorf("%w: %w", apperror.ErrInvalidInput, err))
		return
	}

	headers := form.File["images"]
	headers = append(headers, form.File["images[]"]...)

	images := make([]services.ImageUpload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			respondError(c, fmt.Errorf("%w: %w", apperror.ErrInvalidInput, err))
			return
		}
		defer f.Close()
		images = append(images, imageUpload(fh, f))
	}

	res, err := h.registrationService.Register(c.Request.Context(), id, c.PostForm("name"), images)
	if err != nil {
		respondError(c, err)
		return
	}

	responses.JSONCreated(c, objectstypes.RegisterResponse{
		Name:      res.Name,
		Timestamp: res.Timestamp,
		Records:   res.Records,
	})
}

// AllRecords godoc
// @Summary      Every registered record
// @Description  Diagnostic listing across all owners
// @Tags         admin
// @Produce      json
// @Param        order_by  query     string  false  "timestamp or name"
// @Success      200  {object}  objectstypes.RecordsResponse
// @Failure      400  {object}  apperror.HTTPError "Unsupported order"
// @Failure      403  {object}  apperror.HTTPError "Not an admin"
// @Router       /admin/records [get]
func (h *ObjectsHandler) AllRecords(c *gin.Context) {
	records, err := h.listingService.AllRecords(c.Request.Context(), c.Query("order_by"))
	if err != nil {
		respondError(c, err)
		return
	}

	if records == nil {
		records = []listing.Record{}
	}
	responses.JSONData(c, http.StatusOK, objectstypes.RecordsResponse{Records: records})
}

func imageUpload(fh *multipart.FileHeader, f multipart.File) services.ImageUpload {
	return services.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}
}
