package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/communityhours/hours-dashboard/internal/system/config"
	"github.com/communityhours/hours-dashboard/internal/system/constants"
	"github.com/communityhours/hours-dashboard/internal/system/middleware"
	"github.com/communityhours/hours-dashboard/internal/system/utils"
)

// TokenProvider returns the bearer token to attach to an outgoing request.
// An empty token means the request goes out without credentials.
type TokenProvider func(ctx context.Context) (string, error)

// ForwardedToken is the default TokenProvider: it forwards the caller's own
// bearer token stored in the request context by the identity middleware.
func ForwardedToken(ctx context.Context) (string, error) {
	token, _ := utils.BearerTokenFromContext(ctx)
	return token, nil
}

// StaticToken returns a TokenProvider that always yields token
func StaticToken(token string) TokenProvider {
	return func(context.Context) (string, error) {
		return token, nil
	}
}

// Client handles communication with the Community Hours backend API
type Client struct {
	httpClient *http.Client
	config     *config.BackendConfig
	tokens     TokenProvider
	logger     *logrus.Logger
}

// NewClient creates a backend client. The token provider is fixed at
// construction; there is no way to swap it on a live client.
func NewClient(cfg *config.BackendConfig, tokens TokenProvider, logger *logrus.Logger) *Client {
	timeout := 30 * time.Second
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}
	if tokens == nil {
		tokens = ForwardedToken
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		config: cfg,
		tokens: tokens,
		logger: logger,
	}
}

// Close closes the HTTP client connections
func (c *Client) Close() {
	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
	}
}

type tokenResult struct {
	token string
	err   error
}

// resolveToken waits at most TokenTimeout for the provider. On timeout or
// provider error it returns "" so the request proceeds unauthenticated and the
// backend's 401 surfaces as a normal, recoverable error.
func (c *Client) resolveToken(ctx context.Context) string {
	wait := c.config.TokenTimeout
	if wait <= 0 {
		wait = 5 * time.Second
	}
	tokenCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	done := make(chan tokenResult, 1)
	go func() {
		token, err := c.tokens(tokenCtx)
		done <- tokenResult{token: token, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			c.logger.WithError(res.err).Warn("Token provider failed, sending request without credentials")
			return ""
		}
		return res.token
	case <-tokenCtx.Done():
		c.logger.WithField("timeout", wait).Warn("Token retrieval timed out, sending request without credentials")
		return ""
	}
}

// do executes a JSON request against the backend and decodes the response into out
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	url := c.config.GetEndpointURL(path)

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)
	req.Header.Set("Accept", constants.ContentTypeJSON)
	if correlationID := middleware.CorrelationIDFromContext(ctx); correlationID != "" {
		req.Header.Set(constants.CorrelationIDHeaderName, correlationID)
	}
	if token := c.resolveToken(ctx); token != "" {
		req.Header.Set(constants.AuthorizationHeaderName, constants.TokenTypeBearer+" "+token)
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"url":      url,
			"duration": duration,
		}).Error("Backend call failed")
		return &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{URL: url, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	c.logger.WithFields(logrus.Fields{
		"method":     method,
		"url":        url,
		"statusCode": resp.StatusCode,
		"duration":   duration,
	}).Debug("Backend response received")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WithFields(logrus.Fields{
			"statusCode": resp.StatusCode,
			"url":        url,
		}).Warn("Backend returned non-success status")
		return newAPIError(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response from %s: %w", path, err)
	}
	return nil
}
