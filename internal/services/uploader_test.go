package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sharespace/backend/internal/models"
)

type recordingStore struct {
	uploads  map[string][]byte
	failKeys map[string]bool
	order    []string
}

func newRecordingStore() *recordingStore {
	return &recordingStore{uploads: map[string][]byte{}, failKeys: map[string]bool{}}
}

func (s *recordingStore) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	for pattern := range s.failKeys {
		if strings.Contains(key, pattern) {
			return fmt.Errorf("simulated storage failure for %s", key)
		}
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.uploads[key] = data
	s.order = append(s.order, key)
	return nil
}

func (s *recordingStore) Delete(ctx context.Context, key string) error {
	delete(s.uploads, key)
	return nil
}

func (s *recordingStore) PublicURL(key string) string {
	return "http://storage.test/sharespace/" + key
}

func incoming(filename, contentType string, content []byte) IncomingFile {
	return IncomingFile{
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(content)), nil
		},
	}
}

func TestProcessFilesIntake(t *testing.T) {
	u := &Uploader{MaxFileSize: 1024}

	files := []IncomingFile{
		incoming("good.jpg", "image/jpeg", []byte("ok")),
		incoming("doc.pdf", "application/pdf", []byte("nope")),
		incoming("big.png", "image/png", make([]byte, 2048)),
		incoming("anim.gif", "image/gif", []byte("ok")),
		incoming("modern.webp", "image/webp", []byte("ok")),
	}

	pending, rejected := u.ProcessFiles(files)

	if len(pending) != 3 {
		t.Fatalf("expected 3 pending files, got %d", len(pending))
	}
	if len(rejected) != 2 {
		t.Fatalf("expected 2 rejections, got %d", len(rejected))
	}
	if pending[0].Filename != "good.jpg" || pending[1].Filename != "anim.gif" || pending[2].Filename != "modern.webp" {
		t.Fatalf("pending queue out of order: %+v", pending)
	}
	if rejected[0].Filename != "doc.pdf" {
		t.Fatalf("expected doc.pdf rejected first, got %s", rejected[0].Filename)
	}
	if !strings.Contains(rejected[0].Reason, "unsupported file type") {
		t.Fatalf("unexpected rejection reason: %s", rejected[0].Reason)
	}
	if rejected[1].Filename != "big.png" {
		t.Fatalf("expected big.png rejected second, got %s", rejected[1].Filename)
	}
	if !strings.Contains(rejected[1].Reason, "too large") {
		t.Fatalf("unexpected rejection reason: %s", rejected[1].Reason)
	}
}

func TestProcessFilesCaseInsensitiveType(t *testing.T) {
	u := &Uploader{MaxFileSize: 1024}

	pending, rejected := u.ProcessFiles([]IncomingFile{
		incoming("shouty.jpg", "IMAGE/JPEG", []byte("ok")),
	})
	if len(pending) != 1 || len(rejected) != 0 {
		t.Fatalf("expected case-insensitive content type match, got %d pending %d rejected", len(pending), len(rejected))
	}
}

func TestUploaderRun(t *testing.T) {
	db := setupTestDB(t)
	owner := createUser(t, db, "run-owner@test.com", models.UserRoleUser)
	guest := createUser(t, db, "run-guest@test.com", models.UserRoleUser)
	space := createSpace(t, db, owner, "run-party", true)

	t.Run("a failed file leaves the rest of the batch intact", func(t *testing.T) {
		store := newRecordingStore()
		u := NewUploader(db, store, 10*1024*1024, 0)

		var progressed []string
		u.OnProgress = func(filename string, state FileState, progress int) {
			progressed = append(progressed, fmt.Sprintf("%s:%s:%d", filename, state, progress))
		}

		pending := []IncomingFile{
			incoming("first.jpg", "image/jpeg", []byte("one")),
			{
				Filename:    "second.jpg",
				ContentType: "image/jpeg",
				Size:        3,
				Open: func() (io.ReadCloser, error) {
					return nil, fmt.Errorf("disk gone")
				},
			},
			incoming("third.jpg", "image/jpeg", []byte("three")),
		}

		results := u.Run(context.Background(), space, guest, pending)

		if len(results) != 3 {
			t.Fatalf("expected 3 results, got %d", len(results))
		}
		if results[0].State != StateSuccess || results[0].Progress != 100 {
			t.Fatalf("expected first success, got %+v", results[0])
		}
		if results[1].State != StateError {
			t.Fatalf("expected second error, got %+v", results[1])
		}
		if !strings.Contains(results[1].Error, "disk gone") {
			t.Fatalf("expected the open error surfaced, got %q", results[1].Error)
		}
		if results[2].State != StateSuccess {
			t.Fatalf("expected third success, got %+v", results[2])
		}

		if results[0].Photo == nil || results[0].Photo.Approved {
			t.Fatalf("successful uploads must produce an unapproved photo row")
		}
		if results[1].Photo != nil {
			t.Fatalf("failed uploads must not produce a photo row")
		}

		var count int64
		db.Model(&models.Photo{}).Where("space_id = ?", space.ID).Count(&count)
		if count != 2 {
			t.Fatalf("expected 2 photo rows, got %d", count)
		}

		var refreshed models.Space
		db.First(&refreshed, "id = ?", space.ID)
		if refreshed.Uploads != 2 {
			t.Fatalf("expected uploads counter 2, got %d", refreshed.Uploads)
		}

		if len(store.order) != 2 {
			t.Fatalf("expected 2 stored objects, got %d", len(store.order))
		}
		for _, key := range store.order {
			if !strings.HasPrefix(key, "spaces/run-party/") {
				t.Fatalf("object key outside the space prefix: %s", key)
			}
		}
		if len(progressed) == 0 {
			t.Fatalf("expected progress callbacks")
		}
	})

	t.Run("progress walks the fixed stages on success", func(t *testing.T) {
		store := newRecordingStore()
		u := NewUploader(db, store, 10*1024*1024, 0)

		var stages []int
		u.OnProgress = func(filename string, state FileState, progress int) {
			stages = append(stages, progress)
		}

		u.Run(context.Background(), space, guest, []IncomingFile{
			incoming("stages.jpg", "image/jpeg", []byte("x")),
		})

		want := []int{10, 30, 70, 90, 100}
		if len(stages) != len(want) {
			t.Fatalf("expected %d progress steps, got %v", len(want), stages)
		}
		for i, p := range want {
			if stages[i] != p {
				t.Fatalf("expected stage %d at position %d, got %v", p, i, stages)
			}
		}
	})

	t.Run("storage failure keeps the database clean", func(t *testing.T) {
		store := newRecordingStore()
		store.failKeys["spaces/run-party/"] = true
		u := NewUploader(db, store, 10*1024*1024, 0)

		var before int64
		db.Model(&models.Photo{}).Count(&before)

		results := u.Run(context.Background(), space, guest, []IncomingFile{
			incoming("lost.jpg", "image/jpeg", []byte("x")),
		})

		if results[0].State != StateError {
			t.Fatalf("expected error result, got %+v", results[0])
		}

		var after int64
		db.Model(&models.Photo{}).Count(&after)
		if after != before {
			t.Fatalf("no photo row may be written when storage fails")
		}
	})

	t.Run("throttle pauses between files but not after the last", func(t *testing.T) {
		store := newRecordingStore()
		throttle := 30 * time.Millisecond
		u := NewUploader(db, store, 10*1024*1024, throttle)

		pending := []IncomingFile{
			incoming("pace-a.jpg", "image/jpeg", []byte("a")),
			incoming("pace-b.jpg", "image/jpeg", []byte("b")),
			incoming("pace-c.jpg", "image/jpeg", []byte("c")),
		}

		start := time.Now()
		results := u.Run(context.Background(), space, guest, pending)
		elapsed := time.Since(start)

		for _, r := range results {
			if r.State != StateSuccess {
				t.Fatalf("expected all files to succeed, got %+v", r)
			}
		}
		// Two gaps between three files; the last file gets no pause.
		if elapsed < 2*throttle {
			t.Fatalf("expected at least %v of throttle pauses, batch took %v", 2*throttle, elapsed)
		}

		start = time.Now()
		u.Run(context.Background(), space, guest, []IncomingFile{
			incoming("pace-solo.jpg", "image/jpeg", []byte("s")),
		})
		if solo := time.Since(start); solo >= throttle {
			t.Fatalf("a single-file batch must not pause, took %v", solo)
		}
	})

	t.Run("cancelled context cuts the throttle pause short", func(t *testing.T) {
		store := newRecordingStore()
		u := NewUploader(db, store, 10*1024*1024, 10*time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		done := make(chan struct{})
		go func() {
			u.pause(ctx, 0, 2)
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatalf("pause did not return after context cancellation")
		}
	})
}

func TestNewObjectKey(t *testing.T) {
	key := NewObjectKey("spaces/my-party", "Holiday Photo.JPG")
	if !strings.HasPrefix(key, "spaces/my-party/") {
		t.Fatalf("expected the prefix preserved, got %s", key)
	}
	if !strings.HasSuffix(key, ".jpg") {
		t.Fatalf("expected a lowercased extension, got %s", key)
	}

	other := NewObjectKey("spaces/my-party", "Holiday Photo.JPG")
	if key == other {
		t.Fatalf("two keys for the same filename must differ")
	}

	bare := NewObjectKey("covers", "no-extension")
	if !strings.HasSuffix(bare, ".jpg") {
		t.Fatalf("expected the default extension, got %s", bare)
	}
}
