package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"gecapi/internal/model"
	"gecapi/internal/storage"
)

// DocumentPrefix is the object key prefix for every courrier attachment.
const DocumentPrefix = "courriers/"

// DocumentService stores the files referenced by joindre_document actions.
// It knows nothing about courriers: the returned DataDocument is attached by
// the caller through the workflow.
type DocumentService interface {
	// Upload streams the content to object storage under a generated key.
	// originalFilename is kept as the display name and used for its extension only.
	Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.DataDocument, error)

	// PresignURL returns a temporary download link for an uploaded document.
	PresignURL(ctx context.Context, key string) (string, error)

	// Delete removes an uploaded document. Documents already referenced by an
	// action stay in the history; only the stored file disappears.
	Delete(ctx context.Context, key string) error
}

type documentService struct {
	store         storage.Storage
	presignExpiry time.Duration
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, presignExpiry time.Duration) DocumentService {
	if presignExpiry <= 0 {
		presignExpiry = 15 * time.Minute
	}
	return &documentService{store: store, presignExpiry: presignExpiry}
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.DataDocument, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	id := uuid.New().String()
	key := DocumentPrefix + id + strings.ToLower(filepath.Ext(originalFilename))

	info, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.DataDocument{
		ID:       id,
		Filename: originalFilename,
		URL:      info.Key,
		Type:     info.ContentType,
		Size:     info.Size,
	}
	if doc.Filename == "" {
		doc.Filename = path.Base(key)
	}
	if doc.Type == "" {
		doc.Type = contentType
	}
	return doc, nil
}

func (s *documentService) PresignURL(ctx context.Context, key string) (string, error) {
	if err := s.checkKey(ctx, key); err != nil {
		return "", err
	}
	url, err := s.store.PresignGet(ctx, key, s.presignExpiry)
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}
	return url, nil
}

func (s *documentService) Delete(ctx context.Context, key string) error {
	if err := s.checkKey(ctx, key); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return nil
}

// checkKey confines callers to attachment keys and reports missing objects.
func (s *documentService) checkKey(ctx context.Context, key string) error {
	if key == "" {
		return ErrIDRequired
	}
	if !strings.HasPrefix(key, DocumentPrefix) || path.Clean(key) != key || strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	if _, err := s.store.Stat(ctx, key); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("stat storage: %w", err)
	}
	return nil
}
