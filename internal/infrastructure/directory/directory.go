package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andreyxaxa/Scan-Checkin/internal/entity"
	"github.com/andreyxaxa/Scan-Checkin/pkg/types/errs"
)

const (
	_defaultTimeout = 15 * time.Second
	_maxBodyBytes   = 1 << 20
)

// Client talks to the guest directory's get-guest and update-guest-status
// endpoints with a bearer key.
type Client struct {
	baseURL string
	apiKey  string
	eventID string
	timeout time.Duration

	http *http.Client
}

func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: _defaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}

	return c
}

// guest is the directory's guest object. Fields of unexpected type are
// treated as absent.
type guest map[string]any

func (g guest) text(key string) string {
	v, _ := g[key].(string)

	return strings.TrimSpace(v)
}

func (g guest) attendee() entity.Attendee {
	name := g.text("name")
	if name == "" {
		name = strings.TrimSpace(g.text("first_name") + " " + g.text("last_name"))
	}

	return entity.Attendee{
		Name:    name,
		Company: firstNonBlank(g.text("company"), g.text("organization"), g.text("org")),
		Email:   g.text("email"),
	}
}

// Resolve returns whatever the directory knows about the ticket. Deciding if
// that is enough to print is left to the caller.
func (c *Client) Resolve(ctx context.Context, ticketID string) (entity.Attendee, error) {
	q := url.Values{}
	q.Set("id", strings.TrimSpace(ticketID))
	if c.eventID != "" {
		q.Set("event_id", c.eventID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/get-guest?"+q.Encode(), nil)
	if err != nil {
		return entity.Attendee{}, fmt.Errorf("Client - Resolve - http.NewRequestWithContext: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return entity.Attendee{}, fmt.Errorf("Client - Resolve - c.http.Do: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, _maxBodyBytes))
	if err != nil {
		return entity.Attendee{}, fmt.Errorf("Client - Resolve - io.ReadAll: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return entity.Attendee{}, fmt.Errorf("Client - Resolve: %w: %s", errs.ErrDirectoryStatus, errorMessage(resp.StatusCode, body))
	}

	var g guest
	err = json.Unmarshal(body, &g)
	if err != nil {
		return entity.Attendee{}, fmt.Errorf("Client - Resolve - json.Unmarshal: invalid JSON: %w", err)
	}

	return g.attendee(), nil
}

func (c *Client) MarkCheckedIn(ctx context.Context, ticketID string) error {
	payload := map[string]any{
		"id":         strings.TrimSpace(ticketID),
		"checked_in": true,
	}
	if c.eventID != "" {
		payload["event_id"] = c.eventID
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("Client - MarkCheckedIn - json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/update-guest-status", bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("Client - MarkCheckedIn - http.NewRequestWithContext: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("Client - MarkCheckedIn - c.http.Do: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, _maxBodyBytes))

	return fmt.Errorf("Client - MarkCheckedIn: %w: %s", errs.ErrDirectoryStatus, errorMessage(resp.StatusCode, body))
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
}

// errorMessage prefers the directory's own message/error field, then the raw
// body, then the status code.
func errorMessage(status int, body []byte) string {
	var e struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil {
		if msg := firstNonBlank(e.Message, e.Error); msg != "" {
			return msg
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}

	return fmt.Sprintf("HTTP %d", status)
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}

	return ""
}
