package models

import "github.com/google/uuid"

// Space is an event-scoped photo gallery owned by a host user. Spaces are never
// hard-deleted; the only mutations are the partial edits in the spaces handler.
// The views/uploads counters are informational and maintained with plain column
// increments, not transactions.
type Space struct {
	BaseModel
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Slug        string    `json:"slug" gorm:"type:varchar(255);uniqueIndex;not null"`
	Date        string    `json:"date" gorm:"type:varchar(40)"`
	Description string    `json:"description" gorm:"type:text"`
	CoverURL    string    `json:"coverURL" gorm:"type:text"`
	OwnerID     uuid.UUID `json:"ownerID" gorm:"type:uuid;not null;index"`
	IsPublic    bool      `json:"isPublic" gorm:"not null;default:true;index"`
	Views       int64     `json:"views" gorm:"not null;default:0"`
	Uploads     int64     `json:"uploads" gorm:"not null;default:0"`

	Owner       User         `json:"owner,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
	CohostLinks []CohostLink `json:"-" gorm:"foreignKey:SpaceID"`
	Photos      []Photo      `json:"-" gorm:"foreignKey:SpaceID"`
}
