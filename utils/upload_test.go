package utils

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	config "github.com/ethvolunteer/volunteer-backend-go/config"
)

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"beach cleanup.jpg": "beach_cleanup.jpg",
		"a  b\tc.png":       "a_b_c.png",
		"../../etc/passwd":  "passwd",
		"plain.jpg":         "plain.jpg",
	}
	for input, expect := range cases {
		if got := SanitizeFilename(input); got != expect {
			t.Fatalf("SanitizeFilename(%q) = %q, want %q", input, got, expect)
		}
	}
}

func TestSaveEventImageLocal(t *testing.T) {
	cfg := &config.Config{UploadDir: t.TempDir()}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", "beach cleanup.jpg")
	if err != nil {
		t.Fatalf("form file error: %v", err)
	}
	if _, err := part.Write([]byte("fake image bytes")); err != nil {
		t.Fatalf("write error: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/events/create", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, fileHeader, err := req.FormFile("image")
	if err != nil {
		t.Fatalf("form file parse error: %v", err)
	}

	path, err := SaveEventImage(cfg, fileHeader)
	if err != nil {
		t.Fatalf("save error: %v", err)
	}
	if !strings.HasPrefix(path, "/uploads/") {
		t.Fatalf("expected relative upload path, got %s", path)
	}
	if strings.Contains(path, " ") {
		t.Fatalf("stored name must not contain spaces: %s", path)
	}

	data, err := os.ReadFile(filepath.Join(cfg.UploadDir, filepath.Base(path)))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Fatalf("stored file content mismatch")
	}

	if err := RemoveEventImage(cfg, path); err != nil {
		t.Fatalf("remove error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.UploadDir, filepath.Base(path))); !os.IsNotExist(err) {
		t.Fatalf("expected file to be removed")
	}
}

func TestImageURL(t *testing.T) {
	cfg := &config.Config{BaseURL: "http://localhost:5000"}

	if got := ImageURL(cfg, "/uploads/123-pic.jpg"); got != "http://localhost:5000/uploads/123-pic.jpg" {
		t.Fatalf("unexpected url: %s", got)
	}
	if got := ImageURL(cfg, "https://res.cloudinary.com/demo/image/upload/v1/events/a.jpg"); !strings.HasPrefix(got, "https://res.cloudinary.com") {
		t.Fatalf("cloudinary urls must pass through, got %s", got)
	}
	if got := ImageURL(cfg, ""); got != "" {
		t.Fatalf("empty path must stay empty, got %s", got)
	}
}
