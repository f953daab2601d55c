// Package banking wraps the two banking sandboxes used to build portfolios:
// Capital One's Nessie API and Plaid.
package banking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hera_backend/internal/config"
	"hera_backend/internal/logger"
)

var ErrNotConfigured = errors.New("banking provider not configured")

// APIError is a non-2xx response from an upstream banking API.
type APIError struct {
	Provider string
	Status   int
	Body     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API %d: %s", e.Provider, e.Status, e.Body)
}

type NessieClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewNessieClient(cfg config.NessieConfig) *NessieClient {
	return &NessieClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout.Duration},
	}
}

func (c *NessieClient) Configured() bool {
	return c != nil && c.apiKey != ""
}

func (c *NessieClient) ListCustomers(ctx context.Context) ([]Customer, error) {
	var out []Customer
	return out, c.do(ctx, http.MethodGet, "/customers", nil, &out)
}

func (c *NessieClient) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	var out Customer
	if err := c.do(ctx, http.MethodGet, "/customers/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *NessieClient) CreateCustomer(ctx context.Context, in NewCustomer) (*Customer, error) {
	var out Customer
	if err := c.create(ctx, "/customers", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *NessieClient) DeleteCustomer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/customers/"+url.PathEscape(id), nil, nil)
}

func (c *NessieClient) ListAccounts(ctx context.Context, customerID string) ([]Account, error) {
	var out []Account
	return out, c.do(ctx, http.MethodGet, "/customers/"+url.PathEscape(customerID)+"/accounts", nil, &out)
}

func (c *NessieClient) CreateAccount(ctx context.Context, customerID string, in NewAccount) (*Account, error) {
	var out Account
	if err := c.create(ctx, "/customers/"+url.PathEscape(customerID)+"/accounts", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *NessieClient) DeleteAccount(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/accounts/"+url.PathEscape(id), nil, nil)
}

func (c *NessieClient) ListPurchases(ctx context.Context, accountID string) ([]Purchase, error) {
	var out []Purchase
	return out, c.do(ctx, http.MethodGet, "/accounts/"+url.PathEscape(accountID)+"/purchases", nil, &out)
}

func (c *NessieClient) CreatePurchase(ctx context.Context, accountID string, in NewPurchase) (*Purchase, error) {
	var out Purchase
	if err := c.create(ctx, "/accounts/"+url.PathEscape(accountID)+"/purchases", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *NessieClient) GetMerchant(ctx context.Context, id string) (*Merchant, error) {
	var out Merchant
	if err := c.do(ctx, http.MethodGet, "/merchants/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *NessieClient) CreateMerchant(ctx context.Context, in NewMerchant) (*Merchant, error) {
	var out Merchant
	if err := c.create(ctx, "/merchants", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// create posts body and decodes the created object. Nessie wraps it in an
// objectCreated envelope, but some endpoints return the object directly.
func (c *NessieClient) create(ctx context.Context, path string, body, out any) error {
	var envelope struct {
		ObjectCreated json.RawMessage `json:"objectCreated"`
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, path, body, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.ObjectCreated) > 0 {
		raw = envelope.ObjectCreated
	}
	return json.Unmarshal(raw, out)
}

func (c *NessieClient) do(ctx context.Context, method, path string, body, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return err
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return doJSON(c.httpClient, req, "Nessie", out)
}

func doJSON(client *http.Client, req *http.Request, provider string, out any) error {
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s %s: %w", provider, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s read body: %w", provider, err)
	}
	logger.CtxDebug(req.Context(), "upstream request",
		"provider", provider,
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Provider: provider, Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s decode %s: %w", provider, req.URL.Path, err)
	}
	return nil
}
