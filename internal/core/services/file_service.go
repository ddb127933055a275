package services

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"trip-planner/internal/core/domain"

	"github.com/google/uuid"
)

// MaxImageSize is the largest accepted upload (5 MB)
const MaxImageSize = 5 << 20

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// FileService stores trip images on local disk under a configured directory.
// Stored names are random so uploads can never collide or traverse paths.
type FileService struct {
	uploadDir string
}

// NewFileService creates a new file service and ensures the upload directory exists
func NewFileService(uploadDir string) (*FileService, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &FileService{uploadDir: uploadDir}, nil
}

// SaveImage validates and stores an uploaded image, returning the stored filename
func (s *FileService) SaveImage(header *multipart.FileHeader) (string, error) {
	if header.Size > MaxImageSize {
		return "", domain.ErrInvalidImage
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		return "", domain.ErrInvalidImage
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	filename := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(s.uploadDir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	log.Printf("✅ Image stored: %s", filename)
	return filename, nil
}

// validStoredName rejects anything that could escape the upload directory:
// empty names, path separators, and the "." / ".." entries that survive
// filepath.Base unchanged.
func validStoredName(filename string) bool {
	if filename == "" || filename == "." || filename == ".." {
		return false
	}
	return filename == filepath.Base(filename)
}

// Path resolves a stored filename to its on-disk path.
// Names with path separators are rejected.
func (s *FileService) Path(filename string) (string, error) {
	if !validStoredName(filename) {
		return "", domain.ErrInvalidImage
	}

	path := filepath.Join(s.uploadDir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", domain.ErrNotFound
	}
	return path, nil
}

// Remove deletes a stored image. Missing files are not an error.
func (s *FileService) Remove(filename string) error {
	if !validStoredName(filename) {
		return domain.ErrInvalidImage
	}

	err := os.Remove(filepath.Join(s.uploadDir, filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ListStored returns the filenames currently on disk
func (s *FileService) ListStored() ([]string, error) {
	entries, err := os.ReadDir(s.uploadDir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
