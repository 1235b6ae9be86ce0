package utils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	config "github.com/ethvolunteer/volunteer-backend-go/config"
)

func TestBuildEmailRequest(t *testing.T) {
	mail := config.MailConfig{From: "noreply@volunteer.org"}
	payload := buildEmailRequest(mail, "ngo@x.org", "GreenOrg", "Approved", "<p>hi</p>")

	if payload.From.Address != "noreply@volunteer.org" {
		t.Fatalf("unexpected from: %s", payload.From.Address)
	}
	if len(payload.To) != 1 || payload.To[0].Email.Address != "ngo@x.org" || payload.To[0].Email.Name != "GreenOrg" {
		t.Fatalf("unexpected recipient: %+v", payload.To)
	}
	if payload.Subject != "Approved" || payload.HtmlBody != "<p>hi</p>" {
		t.Fatalf("unexpected subject/body")
	}
}

func TestSendEmail(t *testing.T) {
	var received emailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	mail := config.MailConfig{
		APIURL: srv.URL,
		APIKey: "test-key",
		From:   "noreply@volunteer.org",
	}

	if err := SendEmail(mail, "ngo@x.org", "GreenOrg", "Approved", "<p>hi</p>"); err != nil {
		t.Fatalf("send error: %v", err)
	}
	if received.To[0].Email.Address != "ngo@x.org" {
		t.Fatalf("server did not receive recipient")
	}
}

func TestSendEmailFailures(t *testing.T) {
	if err := SendEmail(config.MailConfig{}, "a@b.c", "", "s", "b"); err == nil {
		t.Fatalf("expected missing config to error")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	mail := config.MailConfig{APIURL: srv.URL, APIKey: "k", From: "f@x.org"}
	if err := SendEmail(mail, "a@b.c", "", "s", "b"); err == nil {
		t.Fatalf("expected API failure to error")
	}
}
