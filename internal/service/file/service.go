package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hadirin/absensi-backend-go/internal/pkg/storage"
)

// Service stores capture proof photos and resolves their public URLs.
type Service interface {
	UploadCaptureProof(ctx context.Context, userID string, capturedAt time.Time, file io.Reader, filename string) (string, error)
	ProofURL(ctx context.Context, path string) (string, error)
}

type fileService struct {
	storage storage.FileStorage
}

func NewFileService(fs storage.FileStorage) Service {
	return &fileService{storage: fs}
}

// UploadCaptureProof implements Service. Paths are namespaced per user and
// day so retention jobs can prune by prefix.
func (s *fileService) UploadCaptureProof(ctx context.Context, userID string, capturedAt time.Time, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	path := fmt.Sprintf("captures/%s/%s/%s%s",
		userID,
		capturedAt.Format("2006-01-02"),
		uuid.New().String(),
		ext,
	)

	contentType := "image/jpeg"
	if ext == ".png" {
		contentType = "image/png"
	}

	storedPath, err := s.storage.Upload(ctx, file, path, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload capture proof: %w", err)
	}

	return storedPath, nil
}

// ProofURL implements Service.
func (s *fileService) ProofURL(ctx context.Context, path string) (string, error) {
	return s.storage.GetURL(ctx, path)
}
