package controllers

import (
	"testing"
	"time"

	config "github.com/ethvolunteer/volunteer-backend-go/config"
	models "github.com/ethvolunteer/volunteer-backend-go/models"
)

func TestParseEventDate(t *testing.T) {
	cases := []string{
		"2025-06-01",
		"2025-06-01 10:30",
		"2025-06-01 10:30:00",
		"2025-06-01T10:30:00Z",
	}
	for _, input := range cases {
		parsed, err := parseEventDate(input)
		if err != nil {
			t.Fatalf("expected %q to parse: %v", input, err)
		}
		if parsed.Year() != 2025 || parsed.Month() != time.June || parsed.Day() != 1 {
			t.Fatalf("unexpected date for %q: %v", input, parsed)
		}
	}

	for _, input := range []string{"", "June 1st", "01/06/2025"} {
		if _, err := parseEventDate(input); err == nil {
			t.Fatalf("expected %q to fail", input)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"ngo@x.org", "a.b+c@sub.example.co"}
	for _, email := range valid {
		if !isValidEmail(email) {
			t.Fatalf("expected %q to be valid", email)
		}
	}

	invalid := []string{"", "plainaddress", "no@tld", "a b@x.org", "@x.org"}
	for _, email := range invalid {
		if isValidEmail(email) {
			t.Fatalf("expected %q to be invalid", email)
		}
	}
}

func TestWithImageURLs(t *testing.T) {
	cfg := &config.Config{BaseURL: "http://localhost:5000"}
	events := []models.Event{
		{Image: "/uploads/1-a.jpg"},
		{Image: ""},
		{Image: "https://res.cloudinary.com/demo/image/upload/v1/events/a.jpg"},
	}

	out := withImageURLs(cfg, events)
	if out[0].Image != "http://localhost:5000/uploads/1-a.jpg" {
		t.Fatalf("expected base url prefix, got %s", out[0].Image)
	}
	if out[1].Image != "" {
		t.Fatalf("expected empty image to stay empty")
	}
	if out[2].Image != "https://res.cloudinary.com/demo/image/upload/v1/events/a.jpg" {
		t.Fatalf("expected absolute url to pass through")
	}
}
