package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/domain"
	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/infrastructure/metrics"
)

// Client is the read-only HTTP gateway to the core system's data sources.
// It implements the usecase source interfaces. Transient failures (network
// errors, 5xx) are retried with exponential backoff; exhausted retries
// surface wrapped in domain.ErrTransportFailure.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	metrics    *metrics.Metrics // optional
	logger     zerolog.Logger
}

// NewClient creates a new core API client. m may be nil.
func NewClient(baseURL string, timeout time.Duration, maxRetries int, m *metrics.Metrics, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
		metrics:    m,
		logger:     logger,
	}
}

// errNotFound marks a 404 from upstream so per-endpoint handling can decide
// whether absence is an error.
var errNotFound = errors.New("not found")

// GetSession fetches the session detail, including the opening balance and
// opening per-service balances.
func (c *Client) GetSession(ctx context.Context, registerID string) (*domain.RegisterSession, error) {
	var w wireSession
	if err := c.getJSON(ctx, "/registers/"+url.PathEscape(registerID), "session", &w); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, fmt.Errorf("register %s: %w", registerID, domain.ErrRegisterNotFound)
		}
		return nil, err
	}
	return c.mapSession(&w), nil
}

// GetClosingSnapshot fetches the closure declaration. A 404 means no
// snapshot was recorded and returns (nil, nil); the caller falls back to
// the session detail's own closing fields.
func (c *Client) GetClosingSnapshot(ctx context.Context, registerID string) (*domain.ClosingSnapshot, error) {
	var w wireClosingSnapshot
	if err := c.getJSON(ctx, "/registers/"+url.PathEscape(registerID)+"/closing-snapshot", "closing_snapshot", &w); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return c.mapSnapshot(&w), nil
}

// GetMovement fetches the per-operator movement counters.
func (c *Client) GetMovement(ctx context.Context, registerID string) (*domain.MovementCounters, error) {
	var w wireMovement
	if err := c.getJSON(ctx, "/registers/"+url.PathEscape(registerID)+"/movement", "movement", &w); err != nil {
		if errors.Is(err, errNotFound) {
			// No recorded movement is a valid state, not a failure.
			return &domain.MovementCounters{}, nil
		}
		return nil, err
	}
	return c.mapMovement(&w), nil
}

// GetHeadOfficePayments fetches the status-bearing head-office payments for
// a register.
func (c *Client) GetHeadOfficePayments(ctx context.Context, registerID string) ([]domain.PaymentRecord, error) {
	var ws []wirePayment
	path := "/head-office-payments?registerId=" + url.QueryEscape(registerID)
	if err := c.getJSON(ctx, path, "head_office_payments", &ws); err != nil {
		return nil, err
	}
	return c.mapPayments(ws), nil
}

// GetRegisterPayments fetches the register-scoped payments (no status).
func (c *Client) GetRegisterPayments(ctx context.Context, registerID string) ([]domain.PaymentRecord, error) {
	var ws []wirePayment
	if err := c.getJSON(ctx, "/registers/"+url.PathEscape(registerID)+"/payments", "register_payments", &ws); err != nil {
		return nil, err
	}
	return c.mapPayments(ws), nil
}

// GetWithdrawals fetches the withdrawals logged during the session.
func (c *Client) GetWithdrawals(ctx context.Context, registerID string) ([]domain.WithdrawalRecord, error) {
	var ws []wireWithdrawal
	if err := c.getJSON(ctx, "/registers/"+url.PathEscape(registerID)+"/withdrawals", "withdrawals", &ws); err != nil {
		return nil, err
	}
	return c.mapWithdrawals(ws), nil
}

// GetBankOperations fetches the bank operations logged during the session.
func (c *Client) GetBankOperations(ctx context.Context, registerID string) ([]domain.BankOperationRecord, error) {
	var ws []wireBankOperation
	if err := c.getJSON(ctx, "/bank-operations/register/"+url.PathEscape(registerID), "bank_operations", &ws); err != nil {
		return nil, err
	}
	return c.mapBankOperations(ws), nil
}

// GetRateByDate fetches the rate effective on the given date, or (nil, nil)
// when none exists for it.
func (c *Client) GetRateByDate(ctx context.Context, date time.Time) (*domain.ExchangeRate, error) {
	var w wireRate
	path := "/exchange-rates/date/" + date.Format("2006-01-02")
	if err := c.getJSON(ctx, path, "rate_by_date", &w); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	rate := c.mapRate(w)
	return &rate, nil
}

// ListRates fetches the full rate history.
func (c *Client) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	var ws []wireRate
	if err := c.getJSON(ctx, "/exchange-rates", "rates", &ws); err != nil {
		return nil, err
	}
	rates := make([]domain.ExchangeRate, 0, len(ws))
	for _, w := range ws {
		rates = append(rates, c.mapRate(w))
	}
	return rates, nil
}

// getJSON performs a GET with retries and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, path, endpoint string, out any) error {
	body, err := c.get(ctx, path, endpoint)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.countRequest(endpoint, "decode_error")
		return fmt.Errorf("GET %s: decode response: %w: %v", path, domain.ErrTransportFailure, err)
	}
	c.countRequest(endpoint, "ok")
	return nil
}

func (c *Client) get(ctx context.Context, path, endpoint string) ([]byte, error) {
	var body []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.noteRetry(endpoint, err)
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(errNotFound)
		case resp.StatusCode >= 500:
			err := fmt.Errorf("status %d", resp.StatusCode)
			c.noteRetry(endpoint, err)
			return err
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("status %d", resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			c.noteRetry(endpoint, err)
			return err
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 2 * time.Second

	err := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(b, uint64(c.maxRetries)), ctx))
	if err != nil {
		if errors.Is(err, errNotFound) {
			c.countRequest(endpoint, "not_found")
			return nil, fmt.Errorf("GET %s: %w", path, errNotFound)
		}
		c.countRequest(endpoint, "error")
		return nil, fmt.Errorf("GET %s: %w: %v", path, domain.ErrTransportFailure, err)
	}

	return body, nil
}

// amount unwraps a FlexAmount, logging and counting coerced values once per
// anomalous input.
func (c *Client) amount(f FlexAmount, field string) decimal.Decimal {
	if f.Coerced() {
		c.logger.Debug().Str("field", field).Msg("coerced malformed amount to zero")
		if c.metrics != nil {
			c.metrics.CoercedAmounts.Inc()
		}
	}
	return f.Decimal()
}

func (c *Client) countRequest(endpoint, result string) {
	if c.metrics != nil {
		c.metrics.GatewayRequests.WithLabelValues(endpoint, result).Inc()
	}
}

func (c *Client) noteRetry(endpoint string, err error) {
	c.logger.Debug().Err(err).Str("endpoint", endpoint).Msg("upstream request failed, may retry")
	if c.metrics != nil {
		c.metrics.GatewayRetries.Inc()
	}
}
