package utils

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	config "github.com/ethvolunteer/volunteer-backend-go/config"
)

func cloudinaryInstance(cfg *config.Config) (*cloudinary.Cloudinary, error) {
	return cloudinary.NewFromParams(cfg.CloudinaryCloud, cfg.CloudinaryKey, cfg.CloudinarySecret)
}

// UploadToCloudinary uploads an event image and returns its secure URL.
func UploadToCloudinary(cfg *config.Config, file multipart.File) (string, error) {
	cld, err := cloudinaryInstance(cfg)
	if err != nil {
		return "", fmt.Errorf("cloudinary config error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	uploadResp, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder: "events",
	})
	if err != nil {
		return "", fmt.Errorf("upload error: %v", err)
	}

	return uploadResp.SecureURL, nil
}

// DeleteFromCloudinary removes an image given its full delivery URL.
func DeleteFromCloudinary(cfg *config.Config, imageURL string) error {
	cld, err := cloudinaryInstance(cfg)
	if err != nil {
		return fmt.Errorf("cloudinary config error: %v", err)
	}

	publicID, err := extractPublicID(imageURL)
	if err != nil {
		return fmt.Errorf("could not extract public ID: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err = cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("delete error: %v", err)
	}

	return nil
}

// extractPublicID pulls the Cloudinary public ID out of a delivery URL.
// Example: https://res.cloudinary.com/demo/image/upload/v1234567890/events/abc123.jpg
func extractPublicID(imageURL string) (string, error) {
	parsedURL, err := url.Parse(imageURL)
	if err != nil {
		return "", err
	}

	parts := strings.Split(strings.Trim(parsedURL.Path, "/"), "/")

	// Everything after the "upload" segment is version + public ID.
	upload := -1
	for i, p := range parts {
		if p == "upload" {
			upload = i
			break
		}
	}
	if upload < 0 || upload == len(parts)-1 {
		return "", fmt.Errorf("invalid cloudinary URL format")
	}

	rest := parts[upload+1:]
	// Drop the version segment (e.g. v1234567890) if present.
	if len(rest) > 1 && versionRe.MatchString(rest[0]) {
		rest = rest[1:]
	}

	publicID := strings.TrimSuffix(path.Join(rest...), path.Ext(rest[len(rest)-1]))

	return publicID, nil
}

var versionRe = regexp.MustCompile(`^v\d+$`)
