package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultAPIURL is the EmailJS send endpoint.
const DefaultAPIURL = "https://api.emailjs.com/api/v1.0/email/send"

// ErrNotConfigured is returned when the client is missing credentials.
var ErrNotConfigured = errors.New("emailjs: service id, template id and public key must be configured")

// Config holds the EmailJS credentials and endpoint.
type Config struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	APIURL     string
	Timeout    time.Duration
}

// Client delivers passcodes through the EmailJS transactional API.
// A send is a single synchronous attempt; the caller decides whether a
// failure warrants compensation. No retries happen here.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates an EmailJS client.
func NewClient(cfg Config) *Client {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams templateParams `json:"template_params"`
}

// Field names match the placeholders in the EmailJS template:
// {{email}}, {{passcode}}, {{time}}.
type templateParams struct {
	Email    string `json:"email"`
	Passcode string `json:"passcode"`
	Time     string `json:"time"`
}

// SendOTP sends the passcode and its formatted expiry to the address.
func (c *Client) SendOTP(ctx context.Context, toEmail, code string, expiresAt time.Time) error {
	if c.cfg.ServiceID == "" || c.cfg.TemplateID == "" || c.cfg.PublicKey == "" {
		return ErrNotConfigured
	}

	payload := sendRequest{
		ServiceID:  c.cfg.ServiceID,
		TemplateID: c.cfg.TemplateID,
		UserID:     c.cfg.PublicKey,
		TemplateParams: templateParams{
			Email:    toEmail,
			Passcode: code,
			Time:     expiresAt.Format("15:04:05"),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("emailjs: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("emailjs: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("emailjs: api returned %d: %s", resp.StatusCode, string(detail))
	}

	return nil
}
