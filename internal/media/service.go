package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/ttanapat/mealdiary-backend/pkg/config"
	"github.com/ttanapat/mealdiary-backend/pkg/enums"
	pkgerrors "github.com/ttanapat/mealdiary-backend/pkg/errors"
)

type objectStore interface {
	Upload(ctx context.Context, bucket, key, contentType string, size int64, reader io.Reader) (string, error)
	Remove(ctx context.Context, bucket, key string) error
	FoodBucket() string
	ProfileBucket() string
}

// UploadInput models an image file arriving on a multipart request.
type UploadInput struct {
	FileName    string
	ContentType string
	SizeBytes   int64
	Reader      io.Reader
}

// UploadResult identifies the stored object and its public URL.
type UploadResult struct {
	Key string
	URL string
}

// Service stores and removes the images attached to food entries and profiles.
type Service interface {
	Upload(ctx context.Context, kind enums.MediaKind, input UploadInput) (*UploadResult, error)
	Remove(ctx context.Context, kind enums.MediaKind, key string) error
}

type service struct {
	store    objectStore
	maxBytes int64
	now      func() time.Time
}

// NewService constructs a media service backed by the provided object store.
func NewService(store objectStore, mediaCfg config.MediaConfig) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("object store required")
	}
	maxBytes := mediaCfg.MaxUploadBytes()
	if maxBytes <= 0 {
		return nil, fmt.Errorf("max upload size must be positive")
	}
	return &service{
		store:    store,
		maxBytes: maxBytes,
		now:      time.Now,
	}, nil
}

func (s *service) Upload(ctx context.Context, kind enums.MediaKind, input UploadInput) (*UploadResult, error) {
	bucket, err := s.bucketFor(kind)
	if err != nil {
		return nil, err
	}

	fileName := strings.TrimSpace(input.FileName)
	if fileName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file name is required")
	}
	if input.SizeBytes <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file is empty")
	}
	if input.SizeBytes > s.maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("file exceeds %d bytes", s.maxBytes))
	}
	if input.Reader == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file content is required")
	}

	mimeType, err := sniffMimeType(input.ContentType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse content type")
	}
	if !isAllowedImageMime(mimeType) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("content type must be one of %s", allowedMimeDescription()))
	}

	key := s.buildObjectKey(fileName)
	url, err := s.store.Upload(ctx, bucket, key, mimeType, input.SizeBytes, input.Reader)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload object")
	}

	return &UploadResult{Key: key, URL: url}, nil
}

func (s *service) Remove(ctx context.Context, kind enums.MediaKind, key string) error {
	bucket, err := s.bucketFor(kind)
	if err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "object key is required")
	}
	if err := s.store.Remove(ctx, bucket, key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove object")
	}
	return nil
}

func (s *service) bucketFor(kind enums.MediaKind) (string, error) {
	switch kind {
	case enums.MediaKindFood:
		return s.store.FoodBucket(), nil
	case enums.MediaKindProfile:
		return s.store.ProfileBucket(), nil
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid media kind")
	}
}

// buildObjectKey namespaces objects by upload time so filenames never collide.
func (s *service) buildObjectKey(fileName string) string {
	cleanName := sanitizeFileName(fileName)
	if cleanName == "" {
		cleanName = "upload"
	}
	return fmt.Sprintf("%d_%s", s.now().UnixMilli(), cleanName)
}

func sanitizeFileName(name string) string {
	if name == "" {
		return ""
	}
	clean := path.Base(strings.TrimSpace(name))
	if clean == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(clean))
	for _, r := range clean {
		switch {
		case r == '/' || r == '\\' || unicode.IsControl(r):
			continue
		case unicode.IsSpace(r):
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-_.")
}
