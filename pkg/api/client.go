// Package api is a typed client for the remote memory-extraction service.
// It owns the endpoint paths and JSON (de)serialization and holds no
// state beyond the base URL; every call is a single attempt with no
// retries, so callers decide whether and when to try again.
package api

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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

// Client talks HTTP/JSON to the memory service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client created with NewClient.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client. Used by commands
// that want a custom timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger attaches a logger for per-request debug logging.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the service at baseURL
// (e.g. http://localhost:8000).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the configured service URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CheckHealth probes the service's liveness endpoint. Any 2xx answer
// counts as healthy; the payload is ignored.
func (c *Client) CheckHealth(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/", nil, nil)
}

// ListChats fetches every conversation the service knows about.
func (c *Client) ListChats(ctx context.Context) ([]Chat, error) {
	var out chatsResponse
	if err := c.do(ctx, http.MethodGet, "/api/chats", nil, &out); err != nil {
		return nil, err
	}
	return out.Chats, nil
}

// ListMemories fetches the extracted memories for one chat.
func (c *Client) ListMemories(ctx context.Context, chatID string) ([]Memory, error) {
	var out memoriesResponse
	if err := c.do(ctx, http.MethodGet, "/api/memories/"+url.PathEscape(chatID), nil, &out); err != nil {
		return nil, err
	}
	return out.Memories, nil
}

// ExtractMemories asks the service to (re)derive memories from the
// chat's messages. Not idempotent: repeated calls may create or update
// memories per server policy.
func (c *Client) ExtractMemories(ctx context.Context, chatID string) (*ExtractionResult, error) {
	var out ExtractionResult
	if err := c.do(ctx, http.MethodPost, "/api/memories/extract/"+url.PathEscape(chatID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// QueryMemories searches memories across chats. An empty ChatID or
// MemoryTypes in req leaves that filter off.
func (c *Client) QueryMemories(ctx context.Context, req QueryRequest) ([]Memory, error) {
	var out memoriesResponse
	if err := c.do(ctx, http.MethodPost, "/api/memories/query", req, &out); err != nil {
		return nil, err
	}
	return out.Memories, nil
}

// UploadMessages submits a transcript batch. The body is the bare
// message array, not a wrapper object.
func (c *Client) UploadMessages(ctx context.Context, messages []Message) (*UploadAck, error) {
	var out UploadAck
	if err := c.do(ctx, http.MethodPost, "/api/chat/upload", messages, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMemoryTypes fetches the type names the service can extract.
// The endpoint has returned both a bare array and a wrapper object
// across service versions, so both shapes are accepted.
func (c *Client) ListMemoryTypes(ctx context.Context) ([]string, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/memory-types", nil, &raw); err != nil {
		return nil, err
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err == nil {
		return names, nil
	}

	var wrapped memoryTypesResponse
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, &RequestError{Status: http.StatusOK, Message: "unexpected memory-types payload"}
	}
	return wrapped.MemoryTypes, nil
}

// CleanupMemories asks the service to remove duplicate memories for a chat.
func (c *Client) CleanupMemories(ctx context.Context, chatID string) (*CleanupAck, error) {
	var out CleanupAck
	if err := c.do(ctx, http.MethodPost, "/api/memories/cleanup/"+url.PathEscape(chatID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do issues one request and decodes the JSON response into out when out
// is non-nil. Non-2xx statuses and transport failures both come back as
// *RequestError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debug("memory service request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("memory service unreachable",
			zap.String("path", path),
			zap.Error(err),
		)
		return &RequestError{Status: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(raw)),
		}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}

	return nil
}
