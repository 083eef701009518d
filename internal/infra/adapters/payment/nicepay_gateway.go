// File: internal/infra/adapters/payment/nicepay_gateway.go
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Chakis0/multibot-service/internal/domain"
	"github.com/Chakis0/multibot-service/internal/domain/model"
	"github.com/Chakis0/multibot-service/internal/domain/ports/adapter"
	"github.com/Chakis0/multibot-service/internal/infra/metrics"
)

var _ adapter.PaymentGateway = (*NicepayGateway)(nil)

// NicepayGateway implements adapter.PaymentGateway against Nicepay's public
// payment API. The connect timeout is short while the overall deadline gives
// the processor time to answer slow requests.
type NicepayGateway struct {
	baseURL string
	client  *http.Client
	retry   RetryPolicy
	log     *zerolog.Logger
}

func NewNicepayGateway(baseURL string, connectTimeout, readTimeout time.Duration, retry RetryPolicy, logger *zerolog.Logger) *NicepayGateway {
	if connectTimeout <= 0 {
		connectTimeout = 10 * time.Second
	}
	if readTimeout <= 0 {
		readTimeout = 60 * time.Second
	}
	return &NicepayGateway{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: readTimeout,
			Transport: &http.Transport{
				DialContext:         (&net.Dialer{Timeout: connectTimeout}).DialContext,
				TLSHandshakeTimeout: connectTimeout,
				MaxIdleConnsPerHost: 20,
			},
		},
		retry: retry,
		log:   logger,
	}
}

func (g *NicepayGateway) Name() string { return "nicepay" }

type nicepayRequest struct {
	MerchantID  string `json:"merchant_id"`
	Secret      string `json:"secret"`
	OrderID     string `json:"order_id"`
	Customer    string `json:"customer"`
	Account     string `json:"account"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

type nicepayResponse struct {
	Status string `json:"status"`
	Data   struct {
		Link    string `json:"link"`
		Message string `json:"message"`
	} `json:"data"`
}

// CreatePayment posts the payment-creation request, retrying transient
// failures with exponential backoff. A decoded JSON body ends the retry loop
// regardless of its status: at that point the processor has spoken.
func (g *NicepayGateway) CreatePayment(ctx context.Context, tenant *model.Tenant, req *model.PaymentRequest) (string, error) {
	body, err := json.Marshal(nicepayRequest{
		MerchantID:  tenant.MerchantID,
		Secret:      tenant.ProcessorSecret,
		OrderID:     req.OrderID,
		Customer:    req.CustomerID,
		Account:     req.CustomerID,
		Amount:      req.AmountMinor,
		Currency:    req.Currency,
		Description: req.Description,
	})
	if err != nil {
		return "", fmt.Errorf("marshal payment request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < g.retry.MaxAttempts; attempt++ {
		if attempt > 0 {
			if err := g.retry.Wait(ctx, attempt-1); err != nil {
				return "", err
			}
			metrics.IncProcessorAttempt("retried")
		}

		resp, err := g.post(ctx, body)
		if err != nil {
			// Connection-class failure: retryable.
			lastErr = err
			g.log.Warn().Err(err).Int("attempt", attempt+1).Str("order_id", req.OrderID).Msg("nicepay request failed")
			continue
		}

		if g.retry.RetryableStatus(resp.status) {
			lastErr = fmt.Errorf("nicepay http %d", resp.status)
			g.log.Warn().Int("status", resp.status).Int("attempt", attempt+1).Str("order_id", req.OrderID).Msg("nicepay transient status")
			continue
		}

		var out nicepayResponse
		if err := json.Unmarshal(resp.body, &out); err != nil {
			metrics.IncProcessorAttempt("failed")
			return "", fmt.Errorf("%w: decode body: %v", domain.ErrUpstreamProtocol, err)
		}

		if out.Status != "success" {
			// Business rejection on HTTP 200: not a transient fault.
			metrics.IncProcessorAttempt("failed")
			msg := out.Data.Message
			if msg == "" {
				msg = "unknown processor error"
			}
			return "", fmt.Errorf("%w: %s", domain.ErrUpstreamRejected, msg)
		}
		if out.Data.Link == "" {
			metrics.IncProcessorAttempt("failed")
			return "", fmt.Errorf("%w: success without link", domain.ErrUpstreamProtocol)
		}
		metrics.IncProcessorAttempt("ok")
		return out.Data.Link, nil
	}

	metrics.IncProcessorAttempt("failed")
	return "", fmt.Errorf("%w: %d attempts exhausted: %v", domain.ErrUpstreamUnavailable, g.retry.MaxAttempts, lastErr)
}

type httpResult struct {
	status int
	body   []byte
}

func (g *NicepayGateway) post(ctx context.Context, body []byte) (*httpResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/public/api/payment", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	return &httpResult{status: resp.StatusCode, body: b}, nil
}
