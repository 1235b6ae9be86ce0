package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	config "github.com/ethvolunteer/volunteer-backend-go/config"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// SanitizeFilename replaces whitespace runs with underscores and strips any
// path components from a client-supplied file name.
func SanitizeFilename(filename string) string {
	return whitespaceRe.ReplaceAllString(filepath.Base(filename), "_")
}

// SaveEventImage stores an uploaded image and returns the path to persist on
// the event (relative "/uploads/..." for local storage, full URL for
// Cloudinary). Local is the default; Cloudinary is used when configured.
func SaveEventImage(cfg *config.Config, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %v", err)
	}
	defer file.Close()

	if cfg.UseCloudinary() {
		return UploadToCloudinary(cfg, file)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create upload dir: %v", err)
	}

	name := SanitizeFilename(fileHeader.Filename)
	if name == "" || name == "." {
		name = uuid.NewString() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	}
	name = fmt.Sprintf("%d-%s", time.Now().UnixMilli(), name)

	dst, err := os.Create(filepath.Join(cfg.UploadDir, name))
	if err != nil {
		return "", fmt.Errorf("could not create file: %v", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("could not write file: %v", err)
	}

	return "/uploads/" + name, nil
}

// RemoveEventImage deletes a previously stored image. Best effort: callers
// ignore the error beyond logging.
func RemoveEventImage(cfg *config.Config, imagePath string) error {
	if imagePath == "" {
		return nil
	}
	if strings.HasPrefix(imagePath, "http://") || strings.HasPrefix(imagePath, "https://") {
		return DeleteFromCloudinary(cfg, imagePath)
	}
	name := filepath.Base(imagePath)
	return os.Remove(filepath.Join(cfg.UploadDir, name))
}

// ImageURL turns a stored image path into an absolute URL for responses.
func ImageURL(cfg *config.Config, imagePath string) string {
	if imagePath == "" || strings.HasPrefix(imagePath, "http") {
		return imagePath
	}
	return cfg.BaseURL + imagePath
}
