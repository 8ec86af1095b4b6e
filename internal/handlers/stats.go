package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sharespace/backend/internal/models"
	"github.com/sharespace/backend/pkg/utils"
	"gorm.io/gorm"
)

type StatsHandler struct {
	DB *gorm.DB
}

func NewStatsHandler(db *gorm.DB) *StatsHandler {
	return &StatsHandler{DB: db}
}

// Overview reports count-only analytics for the admin dashboard.
func (h *StatsHandler) Overview(c *fiber.Ctx) error {
	var users, spaces, publicSpaces, photos, pendingPhotos int64

	if err := h.DB.Model(&models.User{}).Count(&users).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed counting users")
	}
	if err := h.DB.Model(&models.Space{}).Count(&spaces).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed counting spaces")
	}
	if err := h.DB.Model(&models.Space{}).Where("is_public = ?", true).Count(&publicSpaces).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed counting public spaces")
	}
	if err := h.DB.Model(&models.Photo{}).Count(&photos).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed counting photos")
	}
	if err := h.DB.Model(&models.Photo{}).Where("approved = ?", false).Count(&pendingPhotos).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed counting pending photos")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"users":         users,
		"spaces":        spaces,
		"publicSpaces":  publicSpaces,
		"photos":        photos,
		"pendingPhotos": pendingPhotos,
	})
}
