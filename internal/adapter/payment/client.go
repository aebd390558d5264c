package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"
)

// ErrOrderUnknown indicates the gateway has no record of the order.
var ErrOrderUnknown = errors.New("gateway order unknown")

// GatewayPaymentStatus mirrors payment states reported by the gateway.
type GatewayPaymentStatus string

const (
	GatewayPaymentCreated    GatewayPaymentStatus = "created"
	GatewayPaymentAuthorized GatewayPaymentStatus = "authorized"
	GatewayPaymentCaptured   GatewayPaymentStatus = "captured"
	GatewayPaymentFailed     GatewayPaymentStatus = "failed"
)

// GatewayOrder is an order registered with the payment gateway before the
// checkout widget opens.
type GatewayOrder struct {
	ID       string
	Amount   float64
	Currency string
	Receipt  string
}

// GatewayPayment is a payment attempt against a gateway order.
type GatewayPayment struct {
	ID      string
	OrderID string
	Status  GatewayPaymentStatus
}

// Client exposes operations against the payment gateway.
type Client interface {
	CreateOrder(ctx context.Context, amount float64, receipt string) (*GatewayOrder, error)
	LatestPayment(ctx context.Context, gatewayOrderID string) (*GatewayPayment, error)
}

// HTTPClient implements Client via the gateway REST API.
type HTTPClient struct {
	baseURL    *url.URL
	keyID      string
	keySecret  string
	httpClient *http.Client
	logger     *slog.Logger
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"` // minor units
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type paymentsResponse struct {
	Items []struct {
		ID      string `json:"id"`
		OrderID string `json:"order_id"`
		Status  string `json:"status"`
	} `json:"items"`
}

// NewHTTPClient creates HTTP gateway client with default timeout.
func NewHTTPClient(baseURL, keyID, keySecret string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse payment gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("payment gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL:   parsed,
		keyID:     keyID,
		keySecret: keySecret,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreateOrder registers an order with the gateway. Amount is in rupees and
// converted to paise on the wire.
func (c *HTTPClient) CreateOrder(ctx context.Context, amount float64, receipt string) (*GatewayOrder, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/orders")

	payload, err := json.Marshal(createOrderRequest{
		Amount:   int64(amount * 100),
		Currency: "INR",
		Receipt:  receipt,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway order creation failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("payment gateway error: %s", resp.Status)
	}

	var data orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}
	return &GatewayOrder{
		ID:       data.ID,
		Amount:   float64(data.Amount) / 100,
		Currency: data.Currency,
		Receipt:  data.Receipt,
	}, nil
}

// LatestPayment fetches the most recent payment attempt for a gateway order.
func (c *HTTPClient) LatestPayment(ctx context.Context, gatewayOrderID string) (*GatewayPayment, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/orders/", gatewayOrderID, "/payments")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var data paymentsResponse
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			return nil, err
		}
		if len(data.Items) == 0 {
			return nil, ErrOrderUnknown
		}
		last := data.Items[len(data.Items)-1]
		return &GatewayPayment{ID: last.ID, OrderID: last.OrderID, Status: GatewayPaymentStatus(last.Status)}, nil
	case http.StatusNotFound:
		return nil, ErrOrderUnknown
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway payment fetch failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("payment gateway error: %s", resp.Status)
	}
}

// Sign computes the checkout signature for a gateway order/payment pair.
func Sign(gatewayOrderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks the signature returned by the checkout widget.
func VerifySignature(gatewayOrderID, paymentID, signature, secret string) bool {
	expected := Sign(gatewayOrderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
