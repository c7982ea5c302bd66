package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"granrah.cl/granrah-web/internal/observability"
)

const defaultTimeout = 8 * time.Second

// Contact Form 7 statuses.
const (
	StatusMailSent         = "mail_sent"
	StatusMailFailed       = "mail_failed"
	StatusValidationFailed = "validation_failed"
	StatusSpam             = "spam"
)

// Result relays the Contact Form 7 feedback response.
type Result struct {
	Status        string
	Message       string
	InvalidFields []InvalidField
	Raw           json.RawMessage
}

// Sent reports whether the mail was accepted.
func (r Result) Sent() bool { return r.Status == StatusMailSent }

// InvalidField is a server-side field rejection.
type InvalidField struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Client submits forms to a Contact Form 7 feedback endpoint.
type Client struct {
	baseURL string
	formID  string
	unitTag string
	http    *http.Client
}

// NewClient constructs a client. When baseURL is empty, Submit returns a fake
// mail_sent result without any network call.
func NewClient(baseURL, formID, unitTag string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		formID:  strings.TrimSpace(formID),
		unitTag: unitTag,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// WithHTTPClient replaces the transport, mainly for tests.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	if h != nil {
		c.http = h
	}
	return c
}

// Endpoint returns the feedback URL for the configured form.
func (c *Client) Endpoint() (string, error) {
	return url.JoinPath(c.baseURL, "wp-json", "contact-form-7", "v1", "contact-forms", c.formID, "feedback")
}

// Payload builds the multipart body Contact Form 7 expects.
func Payload(f Form, unitTag string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := [][2]string{
		{"your-name", f.Name},
		{"your-email", f.Email},
		{"your-phone", f.Phone},
		{"your-subject", f.Subject},
		{"your-message", f.Message},
		{"_wpcf7_unit_tag", unitTag},
	}
	for _, kv := range fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// Submit validates the form and posts it once; there are no retries.
// Validation failures are returned as FieldErrors before any request is made.
func (c *Client) Submit(ctx context.Context, f Form) (Result, error) {
	if err := f.Validate(); err != nil {
		return Result{}, err
	}
	logger := observability.FromContext(ctx)
	if c == nil || c.baseURL == "" {
		logger.Info("contact: no backend configured, returning fake result")
		return fakeResult(), nil
	}

	endpoint, err := c.Endpoint()
	if err != nil {
		return Result{}, err
	}
	body, contentType, err := Payload(f, c.unitTag)
	if err != nil {
		return Result{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return Result{}, fmt.Errorf("contact: feedback status %d: %s", resp.StatusCode, drainError(resp.Body))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Result{}, err
	}
	var payload struct {
		Status        string         `json:"status"`
		Message       string         `json:"message"`
		InvalidFields []InvalidField `json:"invalid_fields"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Result{}, fmt.Errorf("contact: decode feedback: %w", err)
	}
	logger.Info("contact: form submitted", zap.String("status", payload.Status))
	return Result{
		Status:        payload.Status,
		Message:       payload.Message,
		InvalidFields: payload.InvalidFields,
		Raw:           json.RawMessage(raw),
	}, nil
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
