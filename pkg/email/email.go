package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const resendEndpoint = "https://api.resend.com/emails"

// EmailService sends transactional mail through the Resend HTTP API.
type EmailService struct {
	apiKey    string
	from      string
	appURL    string
	endpoint  string
	client    *http.Client
	templates *template.Template
}

type EmailData struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
}

type SignupConfirmationData struct {
	FirstName   string
	ConfirmLink string
}

func NewEmailService(apiKey, from, appURL string) (*EmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %w", err)
	}

	return &EmailService{
		apiKey:    apiKey,
		from:      from,
		appURL:    appURL,
		endpoint:  resendEndpoint,
		client:    &http.Client{Timeout: 10 * time.Second},
		templates: templates,
	}, nil
}

func (s *EmailService) sendTemplateEmail(ctx context.Context, to, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	jsonData, err := json.Marshal(EmailData{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    body.String(),
	})
	if err != nil {
		return fmt.Errorf("error marshaling email data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("resend API error: status %d: %s", resp.StatusCode, string(respBody))
	}

	log.Printf("[email] %q sent to %s", subject, to)
	return nil
}

// ConfirmLink is the auth callback URL that redeems code.
func (s *EmailService) ConfirmLink(code string) string {
	return s.appURL + "/auth/callback?code=" + url.QueryEscape(code)
}

func (s *EmailService) SendSignupConfirmation(ctx context.Context, to, firstName, code string) error {
	data := SignupConfirmationData{
		FirstName:   firstName,
		ConfirmLink: s.ConfirmLink(code),
	}
	return s.sendTemplateEmail(ctx, to, "Confirm your RoomFinder account", "signup_confirmation.html", data)
}
