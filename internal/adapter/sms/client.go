package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"
)

// ErrDeliveryRejected indicates the gateway refused to deliver the message.
var ErrDeliveryRejected = errors.New("sms delivery rejected")

// TooManyRequestsError represents rate limiting signal from the SMS gateway.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes operations to deliver one-time codes.
type Client interface {
	Send(ctx context.Context, phone, code string) error
}

// HTTPClient implements Client via the gateway HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// request mirrors JSON payload expected by the gateway.
type request struct {
	Route   string `json:"route"`
	Numbers string `json:"numbers"`
	Code    string `json:"variables_values"`
}

// response mirrors JSON payload returned by the gateway.
type response struct {
	Return  bool   `json:"return"`
	Message string `json:"message,omitempty"`
}

// NewHTTPClient creates HTTP SMS client with default timeout.
func NewHTTPClient(baseURL, apiKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse sms gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("sms gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Send delivers a verification code to the phone number.
func (c *HTTPClient) Send(ctx context.Context, phone, code string) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/sms/otp")

	payload, err := json.Marshal(request{Route: "otp", Numbers: phone, Code: code})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		var data response
		if err := json.Unmarshal(body, &data); err != nil {
			return err
		}
		if !data.Return {
			c.logger.Error("sms gateway rejected message", slog.String("message", data.Message))
			return ErrDeliveryRejected
		}
		return nil
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("sms request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return fmt.Errorf("sms gateway error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
