package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"log"
	"sync"
	"time"

	"github.com/nfnt/resize"
)

// ErrInvalidImage is returned when a captured frame cannot be decoded
var ErrInvalidImage = errors.New("captured frame is not a decodable image")

const (
	captureKeyPrefix   = "images_recognition"
	captureJPEGQuality = 85
)

// ImageService stages captured frames in transient object storage
type ImageService struct {
	storage    ObjectStorage
	presignTTL time.Duration
	maxWidth   uint
	now        func() time.Time
}

// StagedImage is an uploaded frame with a fetchable URL. Release must be
// called on every exit path once the URL is no longer needed.
type StagedImage struct {
	Key     string
	URL     string
	storage ObjectStorage
	release sync.Once
}

// NewImageService creates a new ImageService instance
func NewImageService(storage ObjectStorage, presignTTL time.Duration, maxWidth uint) *ImageService {
	return &ImageService{
		storage:    storage,
		presignTTL: presignTTL,
		maxWidth:   maxWidth,
		now:        time.Now,
	}
}

// CaptureKey derives the object name for a frame captured at t
func CaptureKey(t time.Time) string {
	return fmt.Sprintf("%s/%d.jpg", captureKeyPrefix, t.UnixMilli())
}

// Normalize decodes a JPEG or PNG frame, scales it down to the configured
// width when wider, and re-encodes it as JPEG.
func (s *ImageService) Normalize(frame []byte) ([]byte, error) {
	if len(frame) == 0 {
		return nil, ErrInvalidImage
	}

	img, _, err := image.Decode(bytes.NewReader(frame))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	if s.maxWidth > 0 && uint(img.Bounds().Dx()) > s.maxWidth {
		img = resize.Resize(s.maxWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: captureJPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// Stage uploads a normalized frame under a time-derived key and presigns a
// GET URL for it. Key collisions are not checked.
func (s *ImageService) Stage(ctx context.Context, frame []byte) (*StagedImage, error) {
	data, err := s.Normalize(frame)
	if err != nil {
		return nil, err
	}

	key := CaptureKey(s.now())
	if err := s.storage.UploadObject(ctx, key, data, "image/jpeg"); err != nil {
		return nil, fmt.Errorf("failed to upload capture: %w", err)
	}

	staged := &StagedImage{Key: key, storage: s.storage}

	url, err := s.storage.GeneratePresignedURL(ctx, key, s.presignTTL)
	if err != nil {
		staged.Release(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("failed to presign capture URL: %w", err)
	}
	staged.URL = url

	log.Printf("[ImageService] Staged capture %s (%d bytes)", key, len(data))
	return staged, nil
}

// Release deletes the staged object once; later calls do nothing.
// Failures are logged, not returned.
func (i *StagedImage) Release(ctx context.Context) {
	if i == nil {
		return
	}
	i.release.Do(func() {
		if err := i.storage.DeleteObject(ctx, i.Key); err != nil {
			log.Printf("[ImageService] Failed to delete staged capture %s: %v", i.Key, err)
			return
		}
		log.Printf("[ImageService] Deleted staged capture %s", i.Key)
	})
}
