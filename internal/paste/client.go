// Package paste posts note text to a pastebin-style service.
package paste

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxResponse bounds how much of the service's reply is read.
const maxResponse = 4096

// Options configures a Client.
type Options struct {
	Endpoint string
	DevKey   string
	Expire   string
	Private  int
	Timeout  time.Duration
	Logger   *slog.Logger
}

// Client submits pastes.
type Client struct {
	opts   Options
	http   *http.Client
	logger *slog.Logger
}

// New returns a client for the configured endpoint.
func New(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		opts:   opts,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Submit posts encoded, which is already percent-encoded, and returns the
// new paste's URL. Any failure yields "".
func (c *Client) Submit(ctx context.Context, encoded string) string {
	u, err := c.post(ctx, encoded)
	if err != nil {
		c.logger.Warn("paste request failed", "err", err)
		return ""
	}
	return u
}

func (c *Client) post(ctx context.Context, encoded string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.Endpoint, strings.NewReader(c.form(encoded)))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	reply := strings.TrimSpace(string(body))

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paste service returned %d: %s", resp.StatusCode, reply)
	}
	return parseReply(reply)
}

// form builds the request body. The paste code is inserted as-is since the
// caller has encoded it.
func (c *Client) form(encoded string) string {
	v := url.Values{}
	v.Set("api_option", "paste")
	v.Set("api_dev_key", c.opts.DevKey)
	if c.opts.Expire != "" {
		v.Set("api_paste_expire_date", c.opts.Expire)
	}
	v.Set("api_paste_private", fmt.Sprint(c.opts.Private))
	return v.Encode() + "&api_paste_code=" + encoded
}

// parseReply accepts a reply that is an absolute http(s) URL. The service
// answers errors with a 200 and a "Bad API request" line.
func parseReply(reply string) (string, error) {
	u, err := url.Parse(reply)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("unexpected reply: %q", reply)
	}
	return reply, nil
}
