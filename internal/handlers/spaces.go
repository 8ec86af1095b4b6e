package handlers

import (
	"mime"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sharespace/backend/internal/middleware"
	"github.com/sharespace/backend/internal/models"
	"github.com/sharespace/backend/internal/services"
	"github.com/sharespace/backend/pkg/logger"
	"github.com/sharespace/backend/pkg/utils"
	"gorm.io/gorm"
)

type SpacesHandler struct {
	DB     *gorm.DB
	Store  services.ObjectStore
	Access *services.AccessService
}

func NewSpacesHandler(db *gorm.DB, store services.ObjectStore, access *services.AccessService) *SpacesHandler {
	return &SpacesHandler{DB: db, Store: store, Access: access}
}

// Create handles the multipart create-space form: name, date, description,
// isPublic, cohostEmail and an optional cover image. The slug conflict check
// runs before the cover upload so a rejected creation never leaves a blob
// behind.
func (h *SpacesHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return utils.Error(c, fiber.StatusBadRequest, "name is required")
	}

	slug := utils.Slugify(name)
	if slug == "" {
		return utils.Error(c, fiber.StatusBadRequest, "name must contain at least one letter or digit")
	}

	var existing int64
	if err := h.DB.Model(&models.Space{}).Where("slug = ?", slug).Count(&existing).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed checking existing spaces")
	}
	if existing > 0 {
		return utils.Error(c, fiber.StatusConflict, "a space with this name already exists")
	}

	isPublic := true
	if raw := strings.TrimSpace(c.FormValue("isPublic")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "invalid isPublic value")
		}
		isPublic = parsed
	}

	coverURL := ""
	coverKey := ""
	if fileHeader, err := c.FormFile("cover"); err == nil && fileHeader != nil {
		stream, err := fileHeader.Open()
		if err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "failed opening cover image")
		}
		defer stream.Close()

		contentType := fileHeader.Header.Get("Content-Type")
		if contentType == "" {
			contentType = mime.TypeByExtension(filepath.Ext(fileHeader.Filename))
		}
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		coverKey = services.NewObjectKey("covers", fileHeader.Filename)
		if err := h.Store.Upload(c.Context(), coverKey, stream, fileHeader.Size, contentType); err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "failed uploading cover image")
		}
		coverURL = h.Store.PublicURL(coverKey)
	}

	space := models.Space{
		Name:        name,
		Slug:        slug,
		Date:        strings.TrimSpace(c.FormValue("date")),
		Description: strings.TrimSpace(c.FormValue("description")),
		CoverURL:    coverURL,
		OwnerID:     currentUser.ID,
		IsPublic:    isPublic,
	}

	if err := h.DB.Create(&space).Error; err != nil {
		if coverKey != "" {
			_ = h.Store.Delete(c.Context(), coverKey)
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed creating space")
	}

	logger.InfoWithUser(currentUser.ID.String(), "space_created", map[string]interface{}{
		"space_id": space.ID.String(),
		"slug":     space.Slug,
		"public":   space.IsPublic,
	})

	// A co-host email that does not resolve is skipped, not fatal, but the
	// caller is told about it.
	cohostWarning := ""
	if email := strings.ToLower(strings.TrimSpace(c.FormValue("cohostEmail"))); email != "" {
		var cohost models.User
		if err := h.DB.First(&cohost, "email = ?", email).Error; err == nil {
			link := models.CohostLink{SpaceID: space.ID, CohostID: cohost.ID}
			if err := h.DB.Create(&link).Error; err != nil {
				cohostWarning = "failed adding co-host; the space was still created"
			}
		} else {
			cohostWarning = "no account found for the co-host email; the space was created without a co-host"
			logger.WarnWithUser(currentUser.ID.String(), "cohost_email_not_found", map[string]interface{}{
				"space_id": space.ID.String(),
				"email":    email,
			})
		}
	}

	payload := fiber.Map{"space": space}
	if cohostWarning != "" {
		payload["cohostWarning"] = cohostWarning
	}
	return utils.Success(c, fiber.StatusCreated, payload)
}

type updateSpaceRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	IsPublic    *bool   `json:"isPublic"`
}

func (h *SpacesHandler) Update(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	spaceID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid space id")
	}

	var space models.Space
	if err := h.DB.First(&space, "id = ?", spaceID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Error(c, fiber.StatusNotFound, "space not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading space")
	}

	if !h.Access.Can(c.Context(), currentUser, services.ActionEdit, &space) {
		return utils.Error(c, fiber.StatusForbidden, "no permission to edit this space")
	}

	var req updateSpaceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return utils.Error(c, fiber.StatusBadRequest, "name cannot be empty")
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Date != nil {
		updates["date"] = strings.TrimSpace(*req.Date)
	}
	if req.IsPublic != nil {
		updates["is_public"] = *req.IsPublic
	}

	if len(updates) == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "no fields to update")
	}

	if err := h.DB.Model(&space).Updates(updates).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed updating space")
	}

	logger.InfoWithUser(currentUser.ID.String(), "space_updated", map[string]interface{}{
		"space_id": space.ID.String(),
		"fields":   len(updates),
	})

	return utils.Success(c, fiber.StatusOK, space)
}

// List returns the caller's own spaces, or the spaces they co-host
// (?filter=cohost). The co-host listing is a two-step join: link rows first,
// then the spaces whose ids appear in that set.
func (h *SpacesHandler) List(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	filter := c.Query("filter", "mine")

	switch filter {
	case "mine":
		var spaces []models.Space
		if err := h.DB.Where("owner_id = ?", currentUser.ID).Order("created_at DESC").Find(&spaces).Error; err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "failed listing spaces")
		}
		return utils.Success(c, fiber.StatusOK, spaces)

	case "cohost":
		var links []models.CohostLink
		if err := h.DB.Where("cohost_id = ?", currentUser.ID).Find(&links).Error; err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "failed listing co-host links")
		}

		seen := map[uuid.UUID]bool{}
		ids := make([]uuid.UUID, 0, len(links))
		for _, link := range links {
			if !seen[link.SpaceID] {
				seen[link.SpaceID] = true
				ids = append(ids, link.SpaceID)
			}
		}

		spaces := []models.Space{}
		if len(ids) > 0 {
			if err := h.DB.Where("id IN ?", ids).Order("created_at DESC").Find(&spaces).Error; err != nil {
				return utils.Error(c, fiber.StatusInternalServerError, "failed listing co-hosted spaces")
			}
		}
		return utils.Success(c, fiber.StatusOK, spaces)

	default:
		return utils.Error(c, fiber.StatusBadRequest, "invalid filter")
	}
}

func (h *SpacesHandler) PublicList(c *fiber.Ctx) error {
	var spaces []models.Space
	if err := h.DB.Where("is_public = ?", true).Order("created_at DESC").Find(&spaces).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing public spaces")
	}
	return utils.Success(c, fiber.StatusOK, spaces)
}

// PublicGet resolves a space by slug for visitors. Private spaces require an
// authorized viewer. Each successful fetch bumps the informational view
// counter.
func (h *SpacesHandler) PublicGet(c *fiber.Ctx) error {
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

	if err := h.DB.Model(&models.Space{}).
		Where("id = ?", space.ID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		logger.Warn("space_view_count_failed", map[string]interface{}{
			"space_id": space.ID.String(),
			"error":    err.Error(),
		})
	}

	return utils.Success(c, fiber.StatusOK, space)
}
