package banking

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"hera_backend/internal/config"
	"hera_backend/internal/logger"

	"github.com/plaid/plaid-go/v29/plaid"
)

const plaidClientName = "Hera"

var plaidEnvironments = map[string]plaid.Environment{
	"sandbox":     plaid.Sandbox,
	"development": plaid.Sandbox,
	"production":  plaid.Production,
}

type LinkToken struct {
	LinkToken  string
	Expiration time.Time
	RequestID  string
}

type TokenExchange struct {
	AccessToken string
	ItemID      string
	RequestID   string
}

// PlaidError is a failed Plaid call. Code and Message are Plaid's
// error_code and error_message when the response carried them.
type PlaidError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *PlaidError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("Plaid API %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("Plaid API %d: %v", e.Status, e.Err)
}

func (e *PlaidError) Unwrap() error { return e.Err }

type PlaidClient struct {
	api        *plaid.APIClient
	configured bool
}

// NewPlaidClient targets the configured environment. Unknown names and the
// retired development environment use the sandbox.
func NewPlaidClient(cfg config.PlaidConfig) *PlaidClient {
	env, ok := plaidEnvironments[cfg.Env]
	if !ok {
		env = plaid.Sandbox
	}
	return newPlaidClient(cfg, env)
}

func newPlaidClient(cfg config.PlaidConfig, env plaid.Environment) *PlaidClient {
	conf := plaid.NewConfiguration()
	conf.AddDefaultHeader("PLAID-CLIENT-ID", cfg.ClientID)
	conf.AddDefaultHeader("PLAID-SECRET", cfg.Secret)
	conf.UseEnvironment(env)
	conf.HTTPClient = &http.Client{Timeout: cfg.Timeout.Duration}

	return &PlaidClient{
		api:        plaid.NewAPIClient(conf),
		configured: cfg.ClientID != "" && cfg.Secret != "",
	}
}

func (c *PlaidClient) Configured() bool {
	return c != nil && c.configured
}

func (c *PlaidClient) CreateLinkToken(ctx context.Context, clientUserID string) (*LinkToken, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	user := plaid.LinkTokenCreateRequestUser{ClientUserId: clientUserID}
	req := plaid.NewLinkTokenCreateRequest(plaidClientName, "en", []plaid.CountryCode{plaid.COUNTRYCODE_US}, user)
	req.SetProducts([]plaid.Products{plaid.PRODUCTS_TRANSACTIONS, plaid.PRODUCTS_INVESTMENTS})

	start := time.Now()
	resp, httpResp, err := c.api.PlaidApi.LinkTokenCreate(ctx).LinkTokenCreateRequest(*req).Execute()
	logPlaidCall("link/token/create", httpResp, start, err)
	if err != nil {
		return nil, plaidCallError(err, httpResp)
	}
	return &LinkToken{
		LinkToken:  resp.GetLinkToken(),
		Expiration: resp.GetExpiration(),
		RequestID:  resp.GetRequestId(),
	}, nil
}

func (c *PlaidClient) ExchangePublicToken(ctx context.Context, publicToken string) (*TokenExchange, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	req := plaid.NewItemPublicTokenExchangeRequest(publicToken)

	start := time.Now()
	resp, httpResp, err := c.api.PlaidApi.ItemPublicTokenExchange(ctx).ItemPublicTokenExchangeRequest(*req).Execute()
	logPlaidCall("item/public_token/exchange", httpResp, start, err)
	if err != nil {
		return nil, plaidCallError(err, httpResp)
	}
	return &TokenExchange{
		AccessToken: resp.GetAccessToken(),
		ItemID:      resp.GetItemId(),
		RequestID:   resp.GetRequestId(),
	}, nil
}

func plaidCallError(err error, httpResp *http.Response) error {
	out := &PlaidError{Err: err}
	if httpResp != nil {
		out.Status = httpResp.StatusCode
	}
	if body, perr := plaid.ToPlaidError(err); perr == nil {
		out.Code = body.ErrorCode
		out.Message = body.ErrorMessage
	}
	return out
}

func logPlaidCall(endpoint string, httpResp *http.Response, start time.Time, err error) {
	status := 0
	if httpResp != nil {
		status = httpResp.StatusCode
	}
	logger.WorkerLog("plaid", endpoint, err, "status", status, "duration_ms", time.Since(start).Milliseconds())
}

// PlaidMessage extracts Plaid's error_message from err, if any.
func PlaidMessage(err error) string {
	var plaidErr *PlaidError
	if !errors.As(err, &plaidErr) {
		return ""
	}
	return plaidErr.Message
}
