package api

import "time"

// User mirrors the backend User model.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Space mirrors the backend Space model fields relevant to the CLI.
type Space struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Date        string    `json:"date,omitempty"`
	Description string    `json:"description,omitempty"`
	CoverURL    string    `json:"coverURL,omitempty"`
	OwnerID     string    `json:"ownerID"`
	IsPublic    bool      `json:"isPublic"`
	Views       int64     `json:"views"`
	Uploads     int64     `json:"uploads"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Owner       *User     `json:"owner,omitempty"`
}

// Photo mirrors the backend Photo model.
type Photo struct {
	ID         string    `json:"id"`
	SpaceID    string    `json:"spaceID"`
	URL        string    `json:"url"`
	Filename   string    `json:"filename"`
	UploaderID string    `json:"uploaderID"`
	Approved   bool      `json:"approved"`
	CreatedAt  time.Time `json:"createdAt"`
	Uploader   *User     `json:"uploader,omitempty"`
}

// LoginResponse is returned by POST /auth/login and /auth/register.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateSpaceResponse is returned by POST /spaces.
type CreateSpaceResponse struct {
	Space         Space  `json:"space"`
	CohostWarning string `json:"cohostWarning,omitempty"`
}

// UploadResult describes the outcome of a single file in an upload batch.
type UploadResult struct {
	Filename string `json:"filename"`
	State    string `json:"state"`
	Progress int    `json:"progress"`
	Error    string `json:"error,omitempty"`
	Photo    *Photo `json:"photo,omitempty"`
}

// Rejection describes a file turned away before the upload queue.
type Rejection struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// UploadReport is returned by POST /spaces/:slug/photos.
type UploadReport struct {
	Results   []UploadResult `json:"results"`
	Rejected  []Rejection    `json:"rejected"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
}
