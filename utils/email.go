package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	config "github.com/ethvolunteer/volunteer-backend-go/config"
)

// email request payload for ZeptoMail API
type emailRequest struct {
	From     emailAddress  `json:"from"`
	To       []toRecipient `json:"to"`
	Subject  string        `json:"subject"`
	HtmlBody string        `json:"htmlbody"`
}

type emailAddress struct {
	Address string `json:"address"`
}

type toRecipient struct {
	Email emailWithName `json:"email_address"`
}

type emailWithName struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

func buildEmailRequest(mail config.MailConfig, to, toName, subject, body string) emailRequest {
	return emailRequest{
		From: emailAddress{Address: mail.From},
		To: []toRecipient{
			{
				Email: emailWithName{
					Address: to,
					Name:    toName,
				},
			},
		},
		Subject:  subject,
		HtmlBody: body,
	}
}

// SendEmail sends an HTML email using the ZeptoMail HTTP API.
func SendEmail(mail config.MailConfig, to, toName, subject, body string) error {
	if mail.APIURL == "" || mail.APIKey == "" || mail.From == "" {
		log.Println("Missing ZEPTO_API_URL, ZEPTO_API_KEY, or EMAIL_FROM")
		return fmt.Errorf("missing required email config")
	}

	payload := buildEmailRequest(mail, to, toName, subject, body)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal email payload: %v", err)
		return err
	}

	req, err := http.NewRequest("POST", mail.APIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		log.Printf("Failed to create request: %v", err)
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", mail.APIKey)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("Failed to send email: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		log.Printf("ZeptoMail returned status %s", resp.Status)
		return fmt.Errorf("zeptomail API error: %s", resp.Status)
	}

	log.Printf("Email successfully sent to %s", to)
	return nil
}

// NotifyAsync dispatches an email in the background with bounded retries.
// Approval responses never wait on, or fail because of, the mail server.
func NotifyAsync(mail config.MailConfig, to, toName, subject, body string) {
	go func() {
		for attempt := 1; attempt <= 3; attempt++ {
			if err := SendEmail(mail, to, toName, subject, body); err == nil {
				return
			}
			time.Sleep(time.Duration(attempt) * 2 * time.Second)
		}
		log.Printf("Giving up sending email to %s after 3 attempts", to)
	}()
}
