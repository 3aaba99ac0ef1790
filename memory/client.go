package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/soartravel/soar/errors"
	"github.com/soartravel/soar/internal/mylog"
	"github.com/soartravel/soar/internal/stringutils"
)

const (
	acknowledgementPrefix = "I've noted the following information: "
	maxLoggedBodyBytes    = 2048
)

type (
	// Client talks to the hosted mem0 memory API.
	Client struct {
		baseURL    *url.URL
		apiKey     string
		httpClient *http.Client
		logger     *slog.Logger
	}

	ClientOption func(*Client)

	message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	addRequest struct {
		Messages     []message         `json:"messages"`
		UserID       string            `json:"user_id"`
		OutputFormat string            `json:"output_format"`
		Metadata     map[string]string `json:"metadata"`
		Version      string            `json:"version"`
	}

	searchRequest struct {
		Query  string `json:"query"`
		UserID string `json:"user_id"`
	}
)

var (
	_ Store = (*Client)(nil)
)

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

func NewClient(apiKey string, baseURL string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "memory store api key is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "invalid memory store base url %q", baseURL)
	}

	c := &Client{
		baseURL:    u,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = mylog.Discard()
	}

	return c, nil
}

func (c *Client) Add(ctx context.Context, text string, userID string) error {
	if userID == "" {
		return errors.InvalidRequest(nil, "user id is required")
	}

	text = stringutils.SanitizeUnicodeString(text)
	req := addRequest{
		Messages: []message{
			{Role: "user", Content: text},
			{Role: "assistant", Content: acknowledgementPrefix + text},
		},
		UserID:       userID,
		OutputFormat: "v1.1",
		Metadata: map[string]string{
			"content_type": ContentTypeTravelInfo,
			"app":          AppName,
		},
		Version: "v2",
	}

	body, err := c.do(ctx, c.baseURL.JoinPath("v1", "memories/"), req)
	if err != nil {
		return err
	}

	c.logger.Debug("memory added", "user_id", userID, "response", stringutils.Truncate(string(body), maxLoggedBodyBytes))
	return nil
}

func (c *Client) Search(ctx context.Context, query string, userID string) ([]Record, error) {
	if userID == "" {
		return nil, errors.InvalidRequest(nil, "user id is required")
	}

	endpoint := c.baseURL.JoinPath("v1", "memories", "search/")
	endpoint.RawQuery = url.Values{"version": {"v2"}}.Encode()

	body, err := c.do(ctx, endpoint, searchRequest{
		Query:  stringutils.SanitizeUnicodeString(query),
		UserID: userID,
	})
	if err != nil {
		return nil, err
	}

	records, err := decodeSearchResponse(body)
	if err != nil {
		c.logger.Warn("failed to decode memory search response",
			"user_id", userID,
			"body", stringutils.Truncate(string(body), maxLoggedBodyBytes),
			"error", err,
		)
		return nil, errors.Decode(err, "invalid memory search response")
	}

	return records, nil
}

func (c *Client) do(ctx context.Context, endpoint *url.URL, payload any) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.InvalidRequest(err, "failed to encode request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(reqBody))
	if err != nil {
		return nil, errors.InvalidRequest(err, "failed to build request to %s", endpoint.Path)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Transport(err, "failed to call %s", endpoint.Path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Transport(err, "failed to read response from %s", endpoint.Path)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("memory store returned an error status",
			"path", endpoint.Path,
			"status", resp.StatusCode,
			"body", stringutils.Truncate(string(body), maxLoggedBodyBytes),
		)
		return nil, errors.HTTPStatus(resp.StatusCode, stringutils.Truncate(string(body), maxLoggedBodyBytes))
	}

	return body, nil
}

// decodeSearchResponse accepts both the bare array returned by the v2 search endpoint and the {"results": [...]} envelope.
func decodeSearchResponse(body []byte) ([]Record, error) {
	var records []Record
	arrErr := json.Unmarshal(body, &records)
	if arrErr == nil {
		return records, nil
	}

	var envelope struct {
		Results *[]Record `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Results == nil {
		return nil, arrErr
	}
	return *envelope.Results, nil
}
