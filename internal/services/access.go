package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sharespace/backend/internal/models"
	"gorm.io/gorm"
)

// Action is something a user can attempt on a space.
type Action string

const (
	ActionView     Action = "view"
	ActionUpload   Action = "upload"
	ActionEdit     Action = "edit"
	ActionModerate Action = "moderate"
)

// AccessService is the single authorization policy consulted by every
// handler. The backend remains the enforcement point regardless; this keeps
// the API from offering actions the caller cannot complete.
type AccessService struct {
	DB *gorm.DB
}

func NewAccessService(db *gorm.DB) *AccessService {
	return &AccessService{DB: db}
}

// Can reports whether user may perform action on space. A nil user is an
// anonymous visitor, who may only view public spaces. Lookup failures deny
// rather than escalate.
func (a *AccessService) Can(ctx context.Context, user *models.User, action Action, space *models.Space) bool {
	if space == nil {
		return false
	}

	if user == nil {
		return action == ActionView && space.IsPublic
	}

	if user.IsAdmin() {
		return true
	}

	if space.OwnerID == user.ID {
		return true
	}

	if a.isCohost(ctx, user.ID, space.ID) {
		return true
	}

	switch action {
	case ActionView, ActionUpload:
		return space.IsPublic
	default:
		return false
	}
}

func (a *AccessService) isCohost(ctx context.Context, userID, spaceID uuid.UUID) bool {
	var count int64
	err := a.DB.WithContext(ctx).
		Model(&models.CohostLink{}).
		Where("space_id = ? AND cohost_id = ?", spaceID, userID).
		Count(&count).Error
	if err != nil {
		return false
	}
	return count > 0
}
