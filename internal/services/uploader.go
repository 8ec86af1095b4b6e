package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/sharespace/backend/internal/models"
	"github.com/sharespace/backend/pkg/logger"
	"gorm.io/gorm"
)

// ObjectStore is the slice of the blob store the upload pipeline needs.
// *storage.MinIOClient satisfies it.
type ObjectStore interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// FileState is the per-file upload state. Files move pending → uploading →
// success|error; there is no retry path back to pending.
type FileState string

const (
	StatePending   FileState = "pending"
	StateUploading FileState = "uploading"
	StateSuccess   FileState = "success"
	StateError     FileState = "error"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// IncomingFile is one file offered to the pipeline. Open is called at most
// once, when the file's turn in the batch comes.
type IncomingFile struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Rejection records a file refused at intake; rejected files never enter the
// pending queue.
type Rejection struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// UploadResult is the final state of one pending file after a batch run.
type UploadResult struct {
	Filename string        `json:"filename"`
	State    FileState     `json:"state"`
	Progress int           `json:"progress"`
	Error    string        `json:"error,omitempty"`
	Photo    *models.Photo `json:"photo,omitempty"`
}

// Uploader runs upload batches: object upload first, then the photo row,
// strictly one file at a time with a throttle pause between files.
type Uploader struct {
	DB          *gorm.DB
	Store       ObjectStore
	MaxFileSize int64
	Throttle    time.Duration

	// OnProgress, when set, observes every per-file progress change.
	OnProgress func(filename string, state FileState, progress int)
}

func NewUploader(db *gorm.DB, store ObjectStore, maxFileSize int64, throttle time.Duration) *Uploader {
	return &Uploader{DB: db, Store: store, MaxFileSize: maxFileSize, Throttle: throttle}
}

// ProcessFiles is the single intake point for every entry path (HTTP
// multipart, CLI). It splits the offered files into the pending queue and
// per-file rejections, preserving order.
func (u *Uploader) ProcessFiles(files []IncomingFile) (pending []IncomingFile, rejected []Rejection) {
	for _, f := range files {
		if reason := u.validate(f); reason != "" {
			rejected = append(rejected, Rejection{Filename: f.Filename, Reason: reason})
			continue
		}
		pending = append(pending, f)
	}
	return pending, rejected
}

func (u *Uploader) validate(f IncomingFile) string {
	if !allowedImageTypes[strings.ToLower(f.ContentType)] {
		return fmt.Sprintf("unsupported file type %q: only JPEG, PNG, WebP and GIF images are accepted", f.ContentType)
	}
	if u.MaxFileSize > 0 && f.Size > u.MaxFileSize {
		return fmt.Sprintf("file is too large: %d bytes exceeds the %d MiB limit", f.Size, u.MaxFileSize/(1024*1024))
	}
	return ""
}

// Run uploads the pending files for one already-resolved space, in order. A
// failed file is marked error with its message and the batch continues; it is
// never retried. Metadata-insert failures leave the blob orphaned in storage,
// which is logged for reconciliation.
func (u *Uploader) Run(ctx context.Context, space *models.Space, uploader *models.User, pending []IncomingFile) []UploadResult {
	results := make([]UploadResult, len(pending))

	for i, f := range pending {
		results[i] = UploadResult{Filename: f.Filename, State: StatePending}

		u.step(&results[i], StateUploading, 10)

		key := NewObjectKey("spaces/"+space.Slug, f.Filename)
		u.step(&results[i], StateUploading, 30)

		if err := u.uploadObject(ctx, key, f); err != nil {
			u.fail(&results[i], err)
			u.pause(ctx, i, len(pending))
			continue
		}
		u.step(&results[i], StateUploading, 70)

		photo := models.Photo{
			SpaceID:    space.ID,
			URL:        u.Store.PublicURL(key),
			StorageKey: key,
			Filename:   f.Filename,
			UploaderID: uploader.ID,
			Approved:   false,
		}
		u.step(&results[i], StateUploading, 90)

		if err := u.DB.WithContext(ctx).Create(&photo).Error; err != nil {
			// The blob is already stored and now has no metadata row.
			logger.Error("photo_orphan_blob", err, map[string]interface{}{
				"key":      key,
				"space_id": space.ID.String(),
				"filename": f.Filename,
			})
			u.fail(&results[i], err)
			u.pause(ctx, i, len(pending))
			continue
		}

		if err := u.DB.WithContext(ctx).
			Model(&models.Space{}).
			Where("id = ?", space.ID).
			UpdateColumn("uploads", gorm.Expr("uploads + 1")).Error; err != nil {
			logger.Warn("space_upload_count_failed", map[string]interface{}{
				"space_id": space.ID.String(),
				"error":    err.Error(),
			})
		}

		results[i].Photo = &photo
		u.step(&results[i], StateSuccess, 100)

		logger.InfoWithUser(uploader.ID.String(), "photo_uploaded", map[string]interface{}{
			"photo_id": photo.ID.String(),
			"space_id": space.ID.String(),
			"filename": f.Filename,
			"key":      key,
		})

		u.pause(ctx, i, len(pending))
	}

	return results
}

func (u *Uploader) uploadObject(ctx context.Context, key string, f IncomingFile) error {
	reader, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.Filename, err)
	}
	defer reader.Close()

	return u.Store.Upload(ctx, key, reader, f.Size, f.ContentType)
}

func (u *Uploader) step(r *UploadResult, state FileState, progress int) {
	r.State = state
	r.Progress = progress
	if u.OnProgress != nil {
		u.OnProgress(r.Filename, state, progress)
	}
}

func (u *Uploader) fail(r *UploadResult, err error) {
	r.State = StateError
	r.Error = err.Error()
	if u.OnProgress != nil {
		u.OnProgress(r.Filename, StateError, r.Progress)
	}
}

func (u *Uploader) pause(ctx context.Context, i, total int) {
	if u.Throttle <= 0 || i == total-1 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(u.Throttle):
	}
}

// NewObjectKey builds a collision-resistant storage key under prefix:
// {prefix}/{unix-ms}-{token}.{ext}
func NewObjectKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("%s/%d-%s%s", prefix, time.Now().UnixMilli(), randomToken(), ext)
}

func randomToken() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
