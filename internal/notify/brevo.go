package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"fleettrack-backend/internal/platform/db"
)

const (
	sendPath    = "/v3/smtp/email"
	sendTimeout = 10 * time.Second
)

// Brevo delivers email through the Brevo transactional API. Best effort
// only: Send reports success as a bool and never propagates a failure.
type Brevo struct {
	apiKey      string
	baseURL     string
	senderName  string
	senderEmail string
	client      *http.Client
}

func NewBrevo(cfg db.MailConfig) *Brevo {
	name := cfg.SenderName
	if name == "" {
		name = "Fleet Tracker"
	}
	return &Brevo{
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		senderName:  name,
		senderEmail: cfg.SenderEmail,
		client:      &http.Client{Timeout: sendTimeout},
	}
}

// Enabled reports whether an API key is configured. Without one the whole
// mail feature is off, which is a supported deployment, not an error.
func (b *Brevo) Enabled() bool { return b.apiKey != "" }

type sendPayload struct {
	Sender      party   `json:"sender"`
	To          []party `json:"to"`
	Subject     string  `json:"subject"`
	HTMLContent string  `json:"htmlContent"`
}

type party struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Send makes exactly one API call and returns true only on HTTP 200 or 201.
// Anything else, including a timeout or a missing key, logs and returns
// false; the caller just moves on.
func (b *Brevo) Send(ctx context.Context, subject, htmlBody, to string) bool {
	if !b.Enabled() {
		log.Printf("[INFO] notify: BREVO_API_KEY not set; skipping email")
		return false
	}

	body, err := json.Marshal(sendPayload{
		Sender:      party{Name: b.senderName, Email: b.senderEmail},
		To:          []party{{Email: to}},
		Subject:     subject,
		HTMLContent: htmlBody,
	})
	if err != nil {
		log.Printf("[ERROR] notify: payload encode failed: %v", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		log.Printf("[ERROR] notify: request build failed: %v", err)
		return false
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("api-key", b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		log.Printf("[ERROR] notify: send failed: %v", err)
		return false
	}
	defer resp.Body.Close()

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	log.Printf("[INFO] notify: Brevo response: %d %s", resp.StatusCode, bytes.TrimSpace(snippet))

	// 200/201 are the only acceptances; redirects and everything else fail.
	return resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated
}
