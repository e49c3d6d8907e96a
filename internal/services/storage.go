package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StorageService keeps uploads in a scratch directory for the lifetime of a
// single request.
type StorageService interface {
	SaveFile(file *multipart.FileHeader, fileType string) (string, string, error)
	GetFilePath(filename string) string
	DeleteFile(filename string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile writes the upload under a fresh name so concurrent requests with
// identical client filenames never share a scratch path. The original
// extension is kept because extraction dispatches on it.
func (s *storageService) SaveFile(file *multipart.FileHeader, fileType string) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))

	uniqueFilename := fmt.Sprintf("%s_%s%s", fileType, uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(filePath)
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(filePath)
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return uniqueFilename, filePath, nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.uploadPath, filepath.Base(filename))
}

// DeleteFile removes a scratch file. A file that is already gone is not an error.
func (s *storageService) DeleteFile(filename string) error {
	filePath := s.GetFilePath(filename)
	if err := os.Remove(filePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
