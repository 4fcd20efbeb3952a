// Package replicate is a minimal client for the Replicate predictions
// API: create a prediction and fetch it back by id. The remote service
// owns all job scheduling; this client never retries or polls on its own.
package replicate

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.replicate.com/v1"

// Client talks to the Replicate API on behalf of a single credential.
// Construct one per request so concurrent callers with different tokens
// stay isolated.
type Client struct {
	http *resty.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.http.SetBaseURL(url)
	}
}

// WithTimeout overrides the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// NewClient creates a client bound to the given API token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(defaultBaseURL).
			SetTimeout(30 * time.Second).
			SetAuthToken(token).
			SetHeader("Content-Type", "application/json"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PredictionInput is the model-specific input payload.
type PredictionInput map[string]interface{}

// Prediction mirrors the remote job record. Output keeps its raw JSON
// because the API returns it in several shapes; use OutputURL to
// normalize.
type Prediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  string          `json:"error"`
	Logs   string          `json:"logs"`
}

// OutputURL normalizes the output field to a single URL. The API may
// return a bare URL string, a list whose first element is a URL or a
// file object, or a file object with a url field. Empty when the
// prediction has no output yet.
func (p *Prediction) OutputURL() string {
	if len(p.Output) == 0 || string(p.Output) == "null" {
		return ""
	}
	var s string
	if json.Unmarshal(p.Output, &s) == nil {
		return s
	}
	var obj struct {
		URL string `json:"url"`
	}
	var list []json.RawMessage
	if json.Unmarshal(p.Output, &list) == nil {
		if len(list) == 0 {
			return ""
		}
		if json.Unmarshal(list[0], &s) == nil {
			return s
		}
		if json.Unmarshal(list[0], &obj) == nil {
			return obj.URL
		}
		return ""
	}
	if json.Unmarshal(p.Output, &obj) == nil {
		return obj.URL
	}
	return ""
}

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("replicate: %d %s", e.StatusCode, e.Detail)
}

// IsAuthError reports whether the error looks like a rejected credential.
// The API exposes no structured error codes here, so this matches the
// known auth failure texts; unknown texts fall through to the generic
// remote error path.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "401") ||
		strings.Contains(msg, "Unauthenticated") ||
		strings.Contains(msg, "Invalid token")
}

// DataURI encodes raw image bytes as a data URI, the form the predictions
// API accepts for inline file inputs.
func DataURI(contentType string, data []byte) string {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// CreatePrediction submits a job for the given model version and returns
// the remote job record with its id and initial status.
func (c *Client) CreatePrediction(ctx context.Context, version string, input PredictionInput) (*Prediction, error) {
	var prediction Prediction
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"version": version,
			"input":   input,
		}).
		SetResult(&prediction).
		Post("/predictions")
	if err != nil {
		return nil, fmt.Errorf("replicate: create prediction: %w", err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Detail: errorDetail(resp.Body())}
	}
	return &prediction, nil
}

// GetPrediction fetches the current state of a prediction.
func (c *Client) GetPrediction(ctx context.Context, id string) (*Prediction, error) {
	var prediction Prediction
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&prediction).
		Get("/predictions/" + id)
	if err != nil {
		return nil, fmt.Errorf("replicate: get prediction %s: %w", id, err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Detail: errorDetail(resp.Body())}
	}
	return &prediction, nil
}

// errorDetail pulls the detail field out of an API error body, falling
// back to the raw body.
func errorDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return string(body)
}
