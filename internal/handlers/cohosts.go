package handlers

import (
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

type CohostsHandler struct {
	DB     *gorm.DB
	Access *services.AccessService
}

func NewCohostsHandler(db *gorm.DB, access *services.AccessService) *CohostsHandler {
	return &CohostsHandler{DB: db, Access: access}
}

type addCohostRequest struct {
	Email string `json:"email"`
}

// Add links a user to a space by exact email match. Unlike the optional
// co-host field at space creation, a miss here is a hard failure the caller
// sees.
func (h *CohostsHandler) Add(c *fiber.Ctx) error {
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

	var req addCohostRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return utils.Error(c, fiber.StatusBadRequest, "email is required")
	}

	var cohost models.User
	if err := h.DB.First(&cohost, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Error(c, fiber.StatusNotFound, "user not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed looking up user")
	}

	link := models.CohostLink{SpaceID: space.ID, CohostID: cohost.ID}
	if err := h.DB.Create(&link).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed adding co-host")
	}

	logger.InfoWithUser(currentUser.ID.String(), "cohost_added", map[string]interface{}{
		"space_id":  space.ID.String(),
		"cohost_id": cohost.ID.String(),
	})

	return utils.Success(c, fiber.StatusCreated, fiber.Map{
		"id":      link.ID,
		"spaceID": space.ID,
		"cohost": fiber.Map{
			"id":          cohost.ID,
			"email":       cohost.Email,
			"displayName": cohost.DisplayName,
		},
	})
}

// List returns the space's co-hosts with emails. Duplicate links are possible
// in the data, so the listing de-duplicates by user.
func (h *CohostsHandler) List(c *fiber.Ctx) error {
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

	if !h.Access.Can(c.Context(), currentUser, services.ActionView, &space) {
		return utils.Error(c, fiber.StatusForbidden, "access denied")
	}

	var links []models.CohostLink
	if err := h.DB.Preload("Cohost").Where("space_id = ?", space.ID).Order("created_at ASC").Find(&links).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing co-hosts")
	}

	seen := map[uuid.UUID]bool{}
	cohosts := []fiber.Map{}
	for _, link := range links {
		if seen[link.CohostID] {
			continue
		}
		seen[link.CohostID] = true
		cohosts = append(cohosts, fiber.Map{
			"id":          link.Cohost.ID,
			"email":       link.Cohost.Email,
			"displayName": link.Cohost.DisplayName,
		})
	}

	return utils.Success(c, fiber.StatusOK, cohosts)
}
