package handlers

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sharespace/backend/internal/models"
	"gorm.io/gorm"
)

func parseUUID(value string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(value))
}

// sanitizeSlug strips anything that cannot appear in a slug before the lookup.
func sanitizeSlug(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func findSpaceBySlug(db *gorm.DB, slug string) (*models.Space, error) {
	var space models.Space
	if err := db.First(&space, "slug = ?", sanitizeSlug(slug)).Error; err != nil {
		return nil, err
	}
	return &space, nil
}
