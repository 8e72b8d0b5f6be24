package jobtracker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrNotFound marks a stale-record failure: the job was deleted or never
// existed by the time an update/delete reached the backend.
var ErrNotFound = errors.New("job not found")

// ValidationError carries backend field-level errors so handlers can merge
// them into the same inline error rendering used for client-side checks.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Client for requests to the job tracker backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	userAgent  string
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger:    logger,
		userAgent: "JobTracker-Bot/1.0",
	}
}

// doRequest for HTTP reqs with retries on transport failures
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	fullURL := c.baseURL + path

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		payload = data
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * time.Second
			c.logger.Debug("retrying request",
				zap.String("url", fullURL),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response body: %w", err)
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			c.logger.Debug("successful request",
				zap.String("method", method),
				zap.String("url", fullURL),
				zap.Int("status", resp.StatusCode),
			)
			return respBody, nil
		}

		c.logger.Error("backend error",
			zap.String("method", method),
			zap.String("url", fullURL),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)),
		)

		switch resp.StatusCode {
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			// validation failure, no retry
			return nil, decodeValidationError(respBody)
		case http.StatusNotFound:
			return nil, ErrNotFound
		case http.StatusTooManyRequests:
			lastErr = fmt.Errorf("rate limit exceeded")
			continue
		default:
			lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
	}

	return nil, fmt.Errorf("request failed after retries: %w", lastErr)
}

func decodeValidationError(body []byte) error {
	var apiErr errorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil {
		if len(apiErr.Errors) > 0 {
			return &ValidationError{Fields: apiErr.Errors}
		}
		if apiErr.Message != "" {
			return fmt.Errorf("bad request: %s", apiErr.Message)
		}
		if apiErr.Error != "" {
			return fmt.Errorf("bad request: %s", apiErr.Error)
		}
	}
	return fmt.Errorf("bad request: %s", string(body))
}

// parseResponse parses a JSON response body
func (c *Client) parseResponse(data []byte, dest interface{}) error {
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
