package models

import "github.com/google/uuid"

// Photo is an uploaded image belonging to one space. Created by the upload
// pipeline with Approved=false; the approval flag is the only field that is
// ever updated afterwards.
type Photo struct {
	BaseModel
	SpaceID    uuid.UUID `json:"spaceID" gorm:"type:uuid;not null;index"`
	URL        string    `json:"url" gorm:"type:text;not null"`
	StorageKey string    `json:"-" gorm:"type:text;not null"`
	Filename   string    `json:"filename" gorm:"type:varchar(255);not null"`
	UploaderID uuid.UUID `json:"uploaderID" gorm:"type:uuid;not null;index"`
	Approved   bool      `json:"approved" gorm:"not null;default:false;index"`

	Space    Space `json:"space,omitempty" gorm:"foreignKey:SpaceID;references:ID"`
	Uploader User  `json:"uploader,omitempty" gorm:"foreignKey:UploaderID;references:ID"`
}
