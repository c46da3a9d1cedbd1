// Package analyzer implements the HTTP client for the code analysis service.
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SuryaShavi/ChatBotOrigin/pkg/types"
	"github.com/SuryaShavi/ChatBotOrigin/pkg/utils"
)

const (
	// DefaultTimeout bounds a single analysis round trip. The service may
	// consult a slow upstream model, so this is generous.
	DefaultTimeout = 60 * time.Second

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 1 << 20

	analyzePath = "/analyze"
)

// ServerError reports a non-2xx response from the analysis service. Message
// carries the body's error field verbatim when the service provided one.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("analysis service returned status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("analysis service returned status %d", e.Status)
}

// Client talks to the analysis service. One client is shared across attempts;
// each Analyze call issues exactly one request.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the service at baseURL with the default
// timeout.
func NewClient(baseURL string) *Client {
	return NewClientWithTimeout(baseURL, DefaultTimeout)
}

// NewClientWithTimeout creates a client with an explicit request timeout.
func NewClientWithTimeout(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the configured request timeout.
func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}

// Analyze submits code for analysis and returns the normalized verdict.
// Any 2xx response produces a result; malformed fields in the body are
// absorbed into defaults rather than surfaced as errors.
func (c *Client) Analyze(ctx context.Context, req types.AnalysisRequest) (types.AnalysisResult, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return types.AnalysisResult{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	requestID := uuid.NewString()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, bytes.NewBuffer(reqBody))
	if err != nil {
		return types.AnalysisResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	logger := utils.GetLogger()
	logger.Logf("analyze request %s: language=%s code_bytes=%d", requestID, req.Language, len(req.Code))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Logf("analyze request %s: transport error: %v", requestID, err)
		return types.AnalysisResult{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return types.AnalysisResult{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &ServerError{Status: resp.StatusCode, Message: extractErrorMessage(respBody)}
		logger.Logf("analyze request %s: status=%d message=%q", requestID, resp.StatusCode, serr.Message)
		return types.AnalysisResult{}, serr
	}

	// A 2xx body that fails to parse still yields the default verdict.
	var raw map[string]any
	if err := json.Unmarshal(respBody, &raw); err != nil {
		raw = nil
	}
	result := types.Normalize(raw)
	logger.Logf("analyze request %s: status=%d verdict=%s confidence=%d model=%q", requestID, resp.StatusCode, result.Verdict, result.Confidence, result.Model)
	return result, nil
}

func extractErrorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Error
}
