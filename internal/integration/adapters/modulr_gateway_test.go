package adapters

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalguard/backend/internal/application/adapter"
	domainerror "github.com/goalguard/backend/internal/domain/error"
)

// memoryIdempotencyStore is an in-process stand-in for the Redis store.
type memoryIdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]bool
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{keys: map[string]bool{}}
}

func (s *memoryIdempotencyStore) Reserve(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keys[key] {
		return false, nil
	}
	s.keys[key] = true
	return true, nil
}

func (s *memoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	return nil
}

func testGateway(t *testing.T, handler http.Handler) (*ModulrGateway, *memoryIdempotencyStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := newMemoryIdempotencyStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewModulrGateway(server.URL, "key", "secret", store, logger), store
}

func TestCreateCustomerOpensPrimaryAccount(t *testing.T) {
	var customerReq, accountReq map[string]any

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/customers", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&customerReq))
		assert.Contains(t, r.Header.Get("Authorization"), "Basic ")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "C0001"})
	})
	mux.HandleFunc("POST /api/accounts", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&accountReq))
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "A0001"})
	})

	gateway, _ := testGateway(t, mux)

	customer, err := gateway.CreateCustomer(context.Background(), "Alice", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "C0001", customer.CustomerID)
	assert.Equal(t, "A0001", customer.PrimaryAccountID)

	assert.Equal(t, "Alice", customerReq["name"])
	assert.Equal(t, "alice@example.com", customerReq["email"])
	assert.NotEmpty(t, customerReq["externalId"])
	assert.Equal(t, "C0001", accountReq["customerId"])
	assert.Equal(t, "GBP", accountReq["currency"])
}

func TestCreateSubAccountCarriesLabel(t *testing.T) {
	var accountReq map[string]any

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/accounts", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&accountReq))
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "A-SUB-1"})
	})

	gateway, _ := testGateway(t, mux)

	account, err := gateway.CreateSubAccount(context.Background(), "C0001", "Emergency fund")
	require.NoError(t, err)
	assert.Equal(t, "A-SUB-1", account.AccountID)
	assert.Equal(t, "Emergency fund", accountReq["name"])
	assert.Equal(t, "C0001", accountReq["customerId"])
}

func TestTransferSubmitsIdempotencyKey(t *testing.T) {
	var transferReq map[string]any
	var nonce string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/transfers", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&transferReq))
		nonce = r.Header.Get("x-mod-nonce")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "T0001", "status": "SETTLED"})
	})

	gateway, _ := testGateway(t, mux)

	result, err := gateway.Transfer(context.Background(), adapter.TransferRequest{
		FromAccountID:  "A0001",
		ToAccountID:    "A-SUB-1",
		Amount:         decimal.RequireFromString("100.50"),
		Reference:      "Contribution to Emergency fund",
		IdempotencyKey: "key-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "T0001", result.TransferID)
	assert.Equal(t, "SETTLED", result.Status)

	assert.Equal(t, "100.50", transferReq["amount"])
	assert.Equal(t, "GBP", transferReq["currency"])
	assert.Equal(t, "key-1", transferReq["externalId"])
	assert.Equal(t, "key-1", nonce)
}

func TestTransferDuplicateKeyRejected(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/transfers", func(w http.ResponseWriter, r *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "T0001", "status": "SETTLED"})
	})

	gateway, _ := testGateway(t, mux)

	req := adapter.TransferRequest{
		FromAccountID:  "A0001",
		ToAccountID:    "A-SUB-1",
		Amount:         decimal.NewFromInt(100),
		IdempotencyKey: "key-1",
	}
	_, err := gateway.Transfer(context.Background(), req)
	require.NoError(t, err)

	_, err = gateway.Transfer(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerror.ErrGatewayRejected)
	assert.Equal(t, 1, calls, "a burned key must never reach the provider again")
}

func TestTransferServerErrorReleasesKey(t *testing.T) {
	failing := true
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/transfers", func(w http.ResponseWriter, r *http.Request) {
		if failing {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "T0001", "status": "SETTLED"})
	})

	gateway, store := testGateway(t, mux)

	req := adapter.TransferRequest{
		FromAccountID:  "A0001",
		ToAccountID:    "A-SUB-1",
		Amount:         decimal.NewFromInt(100),
		IdempotencyKey: "key-1",
	}
	_, err := gateway.Transfer(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerror.ErrGatewayUnavailable)
	assert.False(t, store.keys["key-1"], "retryable failure must free the key")

	failing = false
	result, err := gateway.Transfer(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "T0001", result.TransferID)
}

func TestTransferClientErrorKeepsKeyBurned(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/transfers", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "insufficient funds"})
	})

	gateway, store := testGateway(t, mux)

	_, err := gateway.Transfer(context.Background(), adapter.TransferRequest{
		FromAccountID:  "A0001",
		ToAccountID:    "A-SUB-1",
		Amount:         decimal.NewFromInt(100),
		IdempotencyKey: "key-1",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerror.ErrGatewayRejected)
	assert.Contains(t, err.Error(), "insufficient funds")
	assert.True(t, store.keys["key-1"], "rejected submissions stay burned")
}

func TestGetBalance(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/accounts/A0001/balance", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"balance": "250.75", "currency": "GBP"})
	})

	gateway, _ := testGateway(t, mux)

	balance, err := gateway.GetBalance(context.Background(), "A0001")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("250.75")))
}
