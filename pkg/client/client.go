package client

// API CLIENT

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/th3funto/ninja-store/internal/api"
	"github.com/th3funto/ninja-store/internal/pricing"
)

// StatusError is returned for any non-200 answer. Message is the server's
// error text when it sent one.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status: %d", e.Code)
	}
	return fmt.Sprintf("unexpected status: %d: %s", e.Code, e.Message)
}

// Client talks to the calculator JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func New(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

func (c *Client) Profiles(ctx context.Context) ([]pricing.FeeProfile, error) {
	var profiles []pricing.FeeProfile
	if err := c.do(ctx, http.MethodGet, "/api/profiles", nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (c *Client) Quote(ctx context.Context, req api.QuoteRequest) (*api.QuoteResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var resp api.QuoteResponse
	if err := c.do(ctx, http.MethodPost, "/api/quote", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Installments(ctx context.Context, cash float64, profile pricing.ProfileID) (*api.InstallmentsResponse, error) {
	query := url.Values{}
	query.Set("cash", strconv.FormatFloat(cash, 'f', -1, 64))
	if profile != "" {
		query.Set("profile", string(profile))
	}

	var resp api.InstallmentsResponse
	if err := c.do(ctx, http.MethodGet, "/api/installments?"+query.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := &StatusError{Code: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&payload) == nil {
			statusErr.Message = payload.Error
		}
		c.logger.Warn("API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return statusErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// IsUnknownProfile reports whether err is the server rejecting the
// requested fee profile.
func IsUnknownProfile(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) &&
		statusErr.Code == http.StatusBadRequest &&
		statusErr.Message == pricing.ErrUnknownProfile.Error()
}
