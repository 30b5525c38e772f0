package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore keeps uploaded images on the local filesystem under a single
// directory. Stored paths always use forward slashes so they can be served
// back as URLs.
type ImageStore struct {
	dir string
}

func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

func (s *ImageStore) Dir() string {
	return s.dir
}

// Save writes the uploaded file under a generated name and returns the
// relative path it is served from.
func (s *ImageStore) Save(file io.Reader, fileName string) (string, error) {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	objectName := uuid.New().String() + fileExt

	dst, err := os.Create(filepath.Join(s.dir, objectName))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}

	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close image file: %w", err)
	}

	return path.Join(filepath.ToSlash(s.dir), objectName), nil
}

// Remove unlinks the file behind a stored image path. Only the base name is
// honored, so a path can never escape the upload dir.
func (s *ImageStore) Remove(imageURL string) error {
	objectName := path.Base(imageURL)
	if objectName == "." || objectName == "/" || objectName == "" {
		return fmt.Errorf("invalid image path: %q", imageURL)
	}

	if err := os.Remove(filepath.Join(s.dir, objectName)); err != nil {
		return fmt.Errorf("failed to remove image %s: %w", imageURL, err)
	}

	return nil
}
