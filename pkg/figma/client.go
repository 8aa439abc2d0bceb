// Package figma provides a minimal client for the Figma REST API.
//
// Auth: a personal access token sent as the X-Figma-Token header.
//
// Base URL: https://api.figma.com/v1
package figma

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the production Figma API.
	DefaultBaseURL = "https://api.figma.com/v1"

	// DefaultTimeout bounds a single file fetch.
	DefaultTimeout = 30 * time.Second

	tokenHeader = "X-Figma-Token"
)

// ErrMissingFileKey is returned when GetFile is called with an empty key.
var ErrMissingFileKey = errors.New("figma: file key is required")

// APIError is a non-200 response from the Figma API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Figma API error: %d - %s", e.StatusCode, e.Body)
}

// Config holds the settings for a Client.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client is a lightweight Figma file client.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// New creates a client from cfg, filling in the default base URL and timeout.
func New(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL:    strings.TrimRight(base, "/"),
		Token:      cfg.Token,
		HTTPClient: &http.Client{Timeout: timeout},
		Logger:     zap.NewNop(),
	}
}

// GetFile fetches the full document tree of a file.
func (c *Client) GetFile(ctx context.Context, fileKey string) (*File, error) {
	fileKey = strings.TrimSpace(fileKey)
	if fileKey == "" {
		return nil, ErrMissingFileKey
	}

	uri := fmt.Sprintf("%s/files/%s", c.BaseURL, url.PathEscape(fileKey))
	body, err := c.doGet(ctx, uri)
	if err != nil {
		return nil, err
	}

	var file File
	if err := json.Unmarshal(body, &file); err != nil {
		return nil, fmt.Errorf("parse file %s: %w", fileKey, err)
	}
	return &file, nil
}

// doGet performs an authenticated GET request and returns the body of a 200 response.
func (c *Client) doGet(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(tokenHeader, c.Token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	c.logger().Debug("figma request",
		zap.String("uri", uri),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: DefaultTimeout}
}

func (c *Client) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}
