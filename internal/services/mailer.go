package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SendGridMailer sends submitter notifications through the SendGrid v3 mail
// API. A nil mailer or empty API key disables sending; notification mail is
// best-effort and never blocks a request outcome.
type SendGridMailer struct {
	APIKey     string
	FromEmail  string
	HTTPClient *http.Client
	Endpoint   string
}

func NewSendGridMailer(apiKey string, fromEmail string) *SendGridMailer {
	return &SendGridMailer{
		APIKey:    strings.TrimSpace(apiKey),
		FromEmail: strings.TrimSpace(fromEmail),
		Endpoint:  "https://api.sendgrid.com/v3/mail/send",
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (m *SendGridMailer) Enabled() bool {
	return m != nil && m.APIKey != "" && m.FromEmail != ""
}

type sendGridEmailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendGridPersonalization struct {
	To      []sendGridEmailAddress `json:"to"`
	Subject string                 `json:"subject"`
}

type sendGridMailSendRequest struct {
	Personalizations []sendGridPersonalization `json:"personalizations"`
	From             sendGridEmailAddress      `json:"from"`
	Content          []sendGridContent         `json:"content"`
}

// SendPaymentInstructions tells a submitter their profile was received and
// where to complete the purchase.
func (m *SendGridMailer) SendPaymentInstructions(ctx context.Context, toEmail, name, paymentURL string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour profile was submitted and is awaiting payment.\nComplete your purchase here: %s\n\nYour profile goes live as soon as payment is confirmed.\n",
		strings.TrimSpace(name), paymentURL,
	)
	return m.send(ctx, toEmail, name, "Your LinkSwipe profile is almost live", body)
}

// SendApprovalNotice tells a submitter their payment was confirmed and their
// profile is now visible in the gallery.
func (m *SendGridMailer) SendApprovalNotice(ctx context.Context, toEmail, name string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nPayment confirmed. Your profile is now live in the LinkSwipe gallery.\n",
		strings.TrimSpace(name),
	)
	return m.send(ctx, toEmail, name, "Your LinkSwipe profile is live", body)
}

func (m *SendGridMailer) send(ctx context.Context, toEmail, toName, subject, plain string) error {
	if !m.Enabled() {
		return fmt.Errorf("sendgrid mailer not configured")
	}
	if strings.TrimSpace(toEmail) == "" {
		return fmt.Errorf("missing recipient email")
	}

	reqBody := sendGridMailSendRequest{
		Personalizations: []sendGridPersonalization{
			{
				To:      []sendGridEmailAddress{{Email: toEmail, Name: toName}},
				Subject: subject,
			},
		},
		From:    sendGridEmailAddress{Email: m.FromEmail, Name: "LinkSwipe"},
		Content: []sendGridContent{{Type: "text/plain", Value: plain}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid responded %d", resp.StatusCode)
	}
	return nil
}
