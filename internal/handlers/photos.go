package handlers

import (
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/sharespace/backend/internal/middleware"
	"github.com/sharespace/backend/internal/models"
	"github.com/sharespace/backend/internal/services"
	"github.com/sharespace/backend/pkg/logger"
	"github.com/sharespace/backend/pkg/utils"
	"gorm.io/gorm"
)

type PhotosHandler struct {
	DB       *gorm.DB
	Access   *services.AccessService
	Uploader *services.Uploader
}

func NewPhotosHandler(db *gorm.DB, access *services.AccessService, uploader *services.Uploader) *PhotosHandler {
	return &PhotosHandler{DB: db, Access: access, Uploader: uploader}
}

// Upload runs one batch through the upload pipeline. The space is resolved by
// slug once for the whole batch; if that fails nothing is uploaded. Rejected
// files are reported per-file and the rest proceed.
func (h *PhotosHandler) Upload(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	space, err := findSpaceBySlug(h.DB, c.Params("slug"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Error(c, fiber.StatusNotFound, "space not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading space")
	}

	if !h.Access.Can(c.Context(), currentUser, services.ActionUpload, space) {
		logger.WarnWithUser(currentUser.ID.String(), "permission_denied", map[string]interface{}{
			"action":   "photo_upload",
			"space_id": space.ID.String(),
		})
		return utils.Error(c, fiber.StatusForbidden, "no permission to upload to this space")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "multipart form is required")
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "at least one file is required")
	}

	incoming := make([]services.IncomingFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		incoming = append(incoming, incomingFromHeader(fh))
	}

	pending, rejected := h.Uploader.ProcessFiles(incoming)
	results := h.Uploader.Run(c.Context(), space, currentUser, pending)

	succeeded := 0
	failed := 0
	for _, r := range results {
		switch r.State {
		case services.StateSuccess:
			succeeded++
		case services.StateError:
			failed++
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"results":   results,
		"rejected":  rejected,
		"succeeded": succeeded,
		"failed":    failed,
	})
}

func incomingFromHeader(fh *multipart.FileHeader) services.IncomingFile {
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(fh.Filename))
	}
	return services.IncomingFile{
		Filename:    filepath.Base(fh.Filename),
		ContentType: contentType,
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// ListForModeration returns every photo of a space, approved or not, newest
// first. Moderators need to see both.
func (h *PhotosHandler) ListForModeration(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	space, err := findSpaceBySlug(h.DB, c.Params("slug"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Error(c, fiber.StatusNotFound, "space not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading space")
	}

	if !h.Access.Can(c.Context(), currentUser, services.ActionModerate, space) {
		return utils.Error(c, fiber.StatusForbidden, "no permission to moderate this space")
	}

	var photos []models.Photo
	if err := h.DB.Where("space_id = ?", space.ID).Order("created_at DESC").Find(&photos).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing photos")
	}

	return utils.Success(c, fiber.StatusOK, photos)
}

type setApprovalRequest struct {
	Approved *bool `json:"approved"`
}

// SetApproval toggles the approval flag. Setting the current value again is a
// no-op for the caller; the local view is only updated from the confirmed
// write.
func (h *PhotosHandler) SetApproval(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	photoID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid photo id")
	}

	var photo models.Photo
	if err := h.DB.First(&photo, "id = ?", photoID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Error(c, fiber.StatusNotFound, "photo not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading photo")
	}

	var space models.Space
	if err := h.DB.First(&space, "id = ?", photo.SpaceID).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading space")
	}

	if !h.Access.Can(c.Context(), currentUser, services.ActionModerate, &space) {
		return utils.Error(c, fiber.StatusForbidden, "no permission to moderate this space")
	}

	var req setApprovalRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Approved == nil {
		return utils.Error(c, fiber.StatusBadRequest, "approved is required")
	}

	if err := h.DB.Model(&photo).Update("approved", *req.Approved).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed updating approval")
	}
	photo.Approved = *req.Approved

	logger.InfoWithUser(currentUser.ID.String(), "photo_approval_set", map[string]interface{}{
		"photo_id": photo.ID.String(),
		"space_id": photo.SpaceID.String(),
		"approved": *req.Approved,
	})

	return utils.Success(c, fiber.StatusOK, photo)
}

// Gallery is the only photo read path open to unauthenticated visitors, and
// it only ever returns approved photos.
func (h *PhotosHandler) Gallery(c *fiber.Ctx) error {
	space, err := findSpaceBySlug(h.DB, c.Params("slug"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Error(c, fiber.StatusNotFound, "space not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading space")
	}

	currentUser := middleware.GetCurrentUser(c)
	if !h.Access.Can(c.Context(), currentUser, services.ActionView, space) {
		if currentUser == nil {
			return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
		}
		return utils.Error(c, fiber.StatusForbidden, "access denied")
	}

	var photos []models.Photo
	if err := h.DB.Where("space_id = ? AND approved = ?", space.ID, true).
		Order("created_at DESC").
		Find(&photos).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing photos")
	}

	return utils.Success(c, fiber.StatusOK, photos)
}
