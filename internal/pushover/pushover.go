// Package pushover delivers the end-of-run summary as a Pushover message.
package pushover

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultEndpoint = "https://api.pushover.net/1/messages.json"

type Client struct {
	hc       *http.Client
	endpoint string

	userKey  string
	apiToken string
}

func New(userKey, apiToken string) *Client {
	return &Client{
		hc:       &http.Client{Timeout: 10 * time.Second},
		endpoint: defaultEndpoint,
		userKey:  userKey,
		apiToken: apiToken,
	}
}

// Configured reports whether credentials are present. An unconfigured client
// skips delivery instead of failing the run.
func (c *Client) Configured() bool {
	return c.userKey != "" && c.apiToken != ""
}

// Send posts one message. The title is optional.
func (c *Client) Send(ctx context.Context, message, title string) error {
	form := url.Values{
		"token":   {c.apiToken},
		"user":    {c.userKey},
		"message": {message},
	}
	if title != "" {
		form.Set("title", title)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("content-type", "application/x-www-form-urlencoded")

	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("pushover: send: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return fmt.Errorf("pushover: send failed (status=%d): %s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
