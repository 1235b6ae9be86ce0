package utils

import "testing"

func TestExtractPublicID(t *testing.T) {
	publicID, err := extractPublicID("https://res.cloudinary.com/demo/image/upload/v1234567890/events/abc123.jpg")
	if err != nil {
		t.Fatalf("extract error: %v", err)
	}
	if publicID != "events/abc123" {
		t.Fatalf("unexpected public id: %s", publicID)
	}

	if _, err := extractPublicID("://not-a-url"); err == nil {
		t.Fatalf("expected invalid url to error")
	}
}
