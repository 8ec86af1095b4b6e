package models

import "github.com/google/uuid"

// CohostLink grants a secondary user edit/moderate rights on a space. Nothing
// enforces uniqueness of (space, cohost) pairs; readers de-duplicate.
type CohostLink struct {
	BaseModel
	SpaceID  uuid.UUID `json:"spaceID" gorm:"type:uuid;not null;index"`
	CohostID uuid.UUID `json:"cohostID" gorm:"type:uuid;not null;index"`

	Space  Space `json:"space,omitempty" gorm:"foreignKey:SpaceID;references:ID"`
	Cohost User  `json:"cohost,omitempty" gorm:"foreignKey:CohostID;references:ID"`
}

func (CohostLink) TableName() string {
	return "cohost_links"
}
