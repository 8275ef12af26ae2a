package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/resume-ranker/internal/models"
)

type StorageService interface {
	SaveFile(file *multipart.FileHeader, kind models.DocKind) (string, error)
	DeleteFile(path string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath  string
	maxFileSize int64
}

func NewStorageService(uploadPath string, maxFileSize int64) StorageService {
	return &storageService{
		uploadPath:  uploadPath,
		maxFileSize: maxFileSize,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile stores an upload under a unique name and returns its path. The
// original extension is kept so the extractor can pick a format.
func (s *storageService) SaveFile(file *multipart.FileHeader, kind models.DocKind) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !slices.Contains(SupportedExtensions, ext) {
		return "", fmt.Errorf("invalid file extension: %s", ext)
	}
	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return "", fmt.Errorf("file %s exceeds %d bytes", file.Filename, s.maxFileSize)
	}

	filePath := filepath.Join(s.uploadPath, fmt.Sprintf("%s_%s%s", kind, uuid.New().String(), ext))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return filePath, nil
}

func (s *storageService) DeleteFile(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
