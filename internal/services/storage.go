package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/mock-interview/internal/apperrors"
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// AllowedFile reports whether filename has an accepted résumé extension.
func AllowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

type StorageService interface {
	SaveFile(file *multipart.FileHeader) (string, error)
	GetFilePath(filename string) string
	DeleteFile(path string) error
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

// SaveFile copies an upload to a uniquely named temp file and returns its path.
func (s *storageService) SaveFile(file *multipart.FileHeader) (string, error) {
	if !AllowedFile(file.Filename) {
		return "", apperrors.NewUnsupportedFormatError(file.Filename)
	}

	base := filepath.Base(file.Filename)
	uniqueFilename := fmt.Sprintf("temp_%s_%s", uuid.New().String(), base)
	filePath := s.GetFilePath(uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return "", apperrors.NewStorageFailedError(fmt.Errorf("failed to open uploaded file: %w", err))
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", apperrors.NewStorageFailedError(fmt.Errorf("failed to create destination file: %w", err))
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(filePath)
		return "", apperrors.NewStorageFailedError(fmt.Errorf("failed to save file: %w", err))
	}

	return filePath, nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.uploadPath, filename)
}

func (s *storageService) DeleteFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
