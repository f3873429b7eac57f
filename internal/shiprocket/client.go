package shiprocket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Gunvolt24/shop_backend/internal/ports"
	"github.com/Gunvolt24/shop_backend/pkg/metrics"
)

// Config — параметры клиента Shiprocket.
type Config struct {
	BaseURL        string
	Email          string
	Password       string
	RequestTimeout time.Duration
	TokenTTL       time.Duration
}

// Client — HTTP-клиент Shiprocket API. Все рабочие запросы ходят
// с bearer-токеном, который кэшируется в tokenSource.
type Client struct {
	baseURL string
	email   string
	pass    string
	http    *http.Client
	log     ports.Logger
	tokens  *tokenSource
}

func NewClient(cfg Config, log ports.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c := &Client{
		baseURL: cfg.BaseURL,
		email:   cfg.Email,
		pass:    cfg.Password,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
	c.tokens = newTokenSource(cfg.TokenTTL, c.loginRequest)
	return c
}

// loginRequest — POST /auth/login; единственный запрос без bearer-токена.
func (c *Client) loginRequest(ctx context.Context) (string, error) {
	body, err := json.Marshal(loginRequest{Email: c.email, Password: c.pass})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ShiprocketRequests.WithLabelValues("login", "error").Inc()
		return "", fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var remote struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&remote)
		metrics.ShiprocketRequests.WithLabelValues("login", "auth_error").Inc()
		if remote.Message != "" {
			return "", fmt.Errorf("%w: %s", ErrAuthFailed, remote.Message)
		}
		return "", fmt.Errorf("%w: status %d", ErrAuthFailed, resp.StatusCode)
	}

	var lr loginResponse
	if decErr := json.NewDecoder(resp.Body).Decode(&lr); decErr != nil {
		metrics.ShiprocketRequests.WithLabelValues("login", "error").Inc()
		return "", fmt.Errorf("%w: decode response: %v", ErrAuthFailed, decErr)
	}

	token := lr.Token
	if token == "" {
		token = lr.Data.Token
	}
	if token == "" {
		metrics.ShiprocketRequests.WithLabelValues("login", "auth_error").Inc()
		return "", fmt.Errorf("%w: no token in response", ErrAuthFailed)
	}

	metrics.ShiprocketRequests.WithLabelValues("login", "ok").Inc()
	c.log.Infof(ctx, "shiprocket login ok, token cached")
	return token, nil
}

// do — авторизованный запрос; body=nil для GET. Ответ декодируется в out (если не nil).
func (c *Client) do(ctx context.Context, op, method, endpoint string, body, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	var reader *bytes.Reader
	if body != nil {
		data, mErr := json.Marshal(body)
		if mErr != nil {
			return mErr
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ShiprocketRequests.WithLabelValues(op, "error").Inc()
		return fmt.Errorf("shiprocket %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Токен протух раньше расчётного срока — сбрасываем кэш,
		// следующий вызов залогинится заново.
		c.tokens.Invalidate()
	}

	if resp.StatusCode >= 300 {
		var remote struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&remote)
		metrics.ShiprocketRequests.WithLabelValues(op, "error").Inc()
		return &APIError{Op: op, Status: resp.StatusCode, Message: remote.Message}
	}

	if out != nil {
		if decErr := json.NewDecoder(resp.Body).Decode(out); decErr != nil {
			metrics.ShiprocketRequests.WithLabelValues(op, "error").Inc()
			return fmt.Errorf("shiprocket %s: decode response: %w", op, decErr)
		}
	}

	metrics.ShiprocketRequests.WithLabelValues(op, "ok").Inc()
	return nil
}

// CreateAdhocOrder — создать adhoc-заказ.
func (c *Client) CreateAdhocOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	var resp CreateOrderResponse
	if err := c.do(ctx, "create_order", http.MethodPost, "/orders/create/adhoc", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetRates — тарифы курьеров (serviceability); ответ отдаём как есть.
func (c *Client) GetRates(ctx context.Context, req RateRequest) (json.RawMessage, error) {
	var resp json.RawMessage
	if err := c.do(ctx, "rates", http.MethodPost, "/courier/serviceability/", req, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// PrintLabel — печать транспортной этикетки.
func (c *Client) PrintLabel(ctx context.Context, orderID string) (json.RawMessage, error) {
	var resp json.RawMessage
	if err := c.do(ctx, "print_label", http.MethodGet, "/orders/print/"+url.PathEscape(orderID), nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// TrackByAWB — трек по AWB-номеру.
func (c *Client) TrackByAWB(ctx context.Context, awb string) (json.RawMessage, error) {
	var resp json.RawMessage
	if err := c.do(ctx, "track_awb", http.MethodGet, "/courier/track/awb/"+url.PathEscape(awb), nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// TrackByOrderID — трек по channel_order_id Shiprocket.
func (c *Client) TrackByOrderID(ctx context.Context, channelOrderID string) (TrackingResponse, error) {
	var resp TrackingResponse
	endpoint := "/courier/track?order_id=" + url.QueryEscape(channelOrderID)
	if err := c.do(ctx, "track_order", http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
