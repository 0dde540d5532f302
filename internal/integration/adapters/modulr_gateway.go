// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goalguard/backend/internal/application/adapter"
	domainerror "github.com/goalguard/backend/internal/domain/error"
)

const (
	gatewayCurrency = "GBP"

	// transferKeyTTL bounds how long a submitted transfer's idempotency key
	// stays reserved. Modulr deduplicates on its side for the same window.
	transferKeyTTL = 24 * time.Hour
)

// ModulrGateway implements the adapter.PaymentGateway interface against the
// Modulr REST API. Transfers reserve their idempotency key before submission
// so a crashed process cannot resubmit the same movement.
type ModulrGateway struct {
	baseURL     string
	apiKey      string
	apiSecret   string
	httpClient  *http.Client
	idempotency adapter.IdempotencyStore
	logger      *slog.Logger
}

// NewModulrGateway creates a new Modulr gateway instance.
func NewModulrGateway(baseURL, apiKey, apiSecret string, idempotency adapter.IdempotencyStore, logger *slog.Logger) *ModulrGateway {
	return &ModulrGateway{
		baseURL:   baseURL,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		idempotency: idempotency,
		logger:      logger,
	}
}

type modulrCustomerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	ExternalID string `json:"externalId"`
}

type modulrCustomerResponse struct {
	ID string `json:"id"`
}

type modulrAccountRequest struct {
	CustomerID string `json:"customerId"`
	Currency   string `json:"currency"`
	Name       string `json:"name,omitempty"`
	ExternalID string `json:"externalId"`
}

type modulrAccountResponse struct {
	ID string `json:"id"`
}

type modulrTransferRequest struct {
	SourceAccountID      string `json:"sourceAccountId"`
	DestinationAccountID string `json:"destinationAccountId"`
	Amount               string `json:"amount"`
	Currency             string `json:"currency"`
	Reference            string `json:"reference"`
	ExternalID           string `json:"externalId"`
}

type modulrTransferResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type modulrBalanceResponse struct {
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
}

type modulrErrorResponse struct {
	Message string `json:"message"`
}

// CreateCustomer onboards a user with Modulr and opens their primary account.
func (g *ModulrGateway) CreateCustomer(ctx context.Context, name, email string) (*adapter.GatewayCustomer, error) {
	var customer modulrCustomerResponse
	err := g.post(ctx, "/api/customers", "", modulrCustomerRequest{
		Name:       name,
		Email:      email,
		ExternalID: uuid.NewString(),
	}, &customer)
	if err != nil {
		return nil, err
	}

	var account modulrAccountResponse
	err = g.post(ctx, "/api/accounts", "", modulrAccountRequest{
		CustomerID: customer.ID,
		Currency:   gatewayCurrency,
		ExternalID: uuid.NewString(),
	}, &account)
	if err != nil {
		// The customer exists without an account. Surface the error and let
		// registration report onboarding failure.
		g.logger.Error("Primary account creation failed after customer creation",
			"customer_id", customer.ID, "error", err)
		return nil, err
	}

	return &adapter.GatewayCustomer{
		CustomerID:       customer.ID,
		PrimaryAccountID: account.ID,
	}, nil
}

// CreateSubAccount opens a segregated account under the customer for a goal.
func (g *ModulrGateway) CreateSubAccount(ctx context.Context, customerID, label string) (*adapter.GatewayAccount, error) {
	var account modulrAccountResponse
	err := g.post(ctx, "/api/accounts", "", modulrAccountRequest{
		CustomerID: customerID,
		Currency:   gatewayCurrency,
		Name:       label,
		ExternalID: uuid.NewString(),
	}, &account)
	if err != nil {
		return nil, err
	}
	return &adapter.GatewayAccount{AccountID: account.ID}, nil
}

// Transfer moves money between two gateway accounts. The idempotency key is
// reserved before submission; a key that is already taken means this exact
// movement was submitted before and must not run again.
func (g *ModulrGateway) Transfer(ctx context.Context, req adapter.TransferRequest) (*adapter.TransferResult, error) {
	reserved, err := g.idempotency.Reserve(ctx, req.IdempotencyKey, transferKeyTTL)
	if err != nil {
		return nil, domainerror.NewGatewayError(domainerror.ErrCodeGatewayUnavailable,
			"transfer", "idempotency reservation failed", err)
	}
	if !reserved {
		return nil, domainerror.NewGatewayError(domainerror.ErrCodeGatewayRejected,
			"transfer", "duplicate idempotency key", nil)
	}

	var result modulrTransferResponse
	err = g.post(ctx, "/api/transfers", req.IdempotencyKey, modulrTransferRequest{
		SourceAccountID:      req.FromAccountID,
		DestinationAccountID: req.ToAccountID,
		Amount:               req.Amount.StringFixed(2),
		Currency:             gatewayCurrency,
		Reference:            req.Reference,
		ExternalID:           req.IdempotencyKey,
	}, &result)
	if err != nil {
		// Rejections are final; the reserved key stays burned. Transport and
		// server failures release the key so the caller may retry.
		if !domainerror.IsGatewayRejected(err) {
			if relErr := g.idempotency.Release(ctx, req.IdempotencyKey); relErr != nil {
				g.logger.Warn("Failed to release idempotency key", "key", req.IdempotencyKey, "error", relErr)
			}
		}
		return nil, err
	}

	return &adapter.TransferResult{
		TransferID: result.ID,
		Status:     result.Status,
	}, nil
}

// GetBalance returns the current balance of a gateway account.
func (g *ModulrGateway) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.baseURL+"/api/accounts/"+accountID+"/balance", nil)
	if err != nil {
		return decimal.Zero, domainerror.NewGatewayError(domainerror.ErrCodeGatewayUnavailable,
			"get_balance", "failed to build request", err)
	}
	g.setHeaders(httpReq, "")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return decimal.Zero, domainerror.NewGatewayError(domainerror.ErrCodeGatewayUnavailable,
			"get_balance", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, g.mapError("get_balance", resp)
	}

	var balance modulrBalanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&balance); err != nil {
		return decimal.Zero, domainerror.NewGatewayError(domainerror.ErrCodeGatewayUnavailable,
			"get_balance", "failed to decode response", err)
	}

	amount, err := decimal.NewFromString(balance.Balance)
	if err != nil {
		return decimal.Zero, domainerror.NewGatewayError(domainerror.ErrCodeGatewayUnavailable,
			"get_balance", "invalid balance in response", err)
	}
	return amount, nil
}

// post submits a JSON body and decodes the JSON response into out.
func (g *ModulrGateway) post(ctx context.Context, path, nonce string, body, out any) error {
	op := path[len("/api/"):]

	payload, err := json.Marshal(body)
	if err != nil {
		return domainerror.NewGatewayError(domainerror.ErrCodeGatewayUnavailable,
			op, "failed to encode request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return domainerror.NewGatewayError(domainerror.ErrCodeGatewayUnavailable,
			op, "failed to build request", err)
	}
	g.setHeaders(httpReq, nonce)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return domainerror.NewGatewayError(domainerror.ErrCodeGatewayUnavailable,
			op, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return g.mapError(op, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domainerror.NewGatewayError(domainerror.ErrCodeGatewayUnavailable,
			op, "failed to decode response", err)
	}
	return nil
}

func (g *ModulrGateway) setHeaders(req *http.Request, nonce string) {
	token := base64.StdEncoding.EncodeToString([]byte(g.apiKey + ":" + g.apiSecret))
	req.Header.Set("Authorization", "Basic "+token)
	req.Header.Set("Content-Type", "application/json")
	if nonce != "" {
		req.Header.Set("x-mod-nonce", nonce)
	}
}

// mapError turns a non-2xx response into a GatewayError. Client errors are
// provider rejections; everything else is treated as retryable.
func (g *ModulrGateway) mapError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	message := fmt.Sprintf("unexpected status %d", resp.StatusCode)
	var apiErr modulrErrorResponse
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Message != "" {
		message = apiErr.Message
	}

	code := domainerror.ErrCodeGatewayUnavailable
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		code = domainerror.ErrCodeGatewayRejected
	}
	return domainerror.NewGatewayError(code, op, message, nil)
}
