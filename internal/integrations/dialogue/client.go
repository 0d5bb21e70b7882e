// Package dialogue is a client for the dialogue service REST channel. The
// service owns intent recognition and slot filling; this package only posts
// user text and collects the textual replies.
package dialogue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"skincare-bot/internal/domain"
)

const (
	defaultBaseURL = "http://localhost:5005"
	defaultTimeout = 10 * time.Second
	webhookPath    = "/webhooks/rest/webhook"
)

// messageRequest is the body accepted by the REST channel webhook.
type messageRequest struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

// HTTPStatusError captures non-200 responses from the dialogue service.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("dialogue: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// DecodeError reports a 200 response whose body is not a reply list.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("dialogue: decode reply: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Client posts user messages to the dialogue service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSpace(baseURL)
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithToken sets the auth token the dialogue server expects in the "token"
// query parameter when it runs with authentication enabled.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) resolvedHTTPClient() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}
	return &http.Client{Timeout: defaultTimeout}
}

func webhookURL(baseURL, token string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	u := base + webhookPath
	if token != "" {
		u += "?token=" + url.QueryEscape(token)
	}
	return u
}

// Send posts one message for sender and returns the text replies in the
// order the service produced them.
func (c *Client) Send(ctx context.Context, sender, message string) ([]string, error) {
	if strings.TrimSpace(sender) == "" {
		return nil, errors.New("dialogue: sender must not be empty")
	}

	body, err := json.Marshal(messageRequest{Sender: sender, Message: message})
	if err != nil {
		return nil, fmt.Errorf("dialogue: marshal request: %w", err)
	}

	endpoint := webhookURL(c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("dialogue: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.resolvedHTTPClient().Do(req)
	if err != nil {
		// The request URL carries the token; keep it out of error text.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = webhookURL(c.baseURL, "")
		}
		return nil, fmt.Errorf("dialogue: request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, &HTTPStatusError{
			StatusCode: res.StatusCode,
			URL:        webhookURL(c.baseURL, ""),
			Body:       string(buf),
		}
	}

	var replies []domain.BotReply
	if err := json.NewDecoder(io.LimitReader(res.Body, 1<<20)).Decode(&replies); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return replyTexts(replies), nil
}

func replyTexts(replies []domain.BotReply) []string {
	out := make([]string, 0, len(replies))
	for _, r := range replies {
		if r.Text == "" {
			continue
		}
		out = append(out, r.Text)
	}
	return out
}
