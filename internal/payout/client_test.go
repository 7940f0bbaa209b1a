package payout

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shenikar/rescue_chain/internal/config"
	"github.com/shenikar/rescue_chain/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return NewClient(&config.Config{
		PayoutURL:           url,
		PayoutKeyID:         "key_id",
		PayoutKeySecret:     "key_secret",
		PayoutSourceAccount: "2323230016925121",
		PayoutTimeout:       time.Second,
		PayoutMaxRetries:    3,
		PayoutBaseDelay:     time.Millisecond,
	}, logger)
}

func upiRequest() models.PayoutRequest {
	return models.PayoutRequest{
		Amount:         200000,
		Currency:       "INR",
		Destination:    models.Destination{Method: models.MethodUPI, UPIID: "ravi@okhdfc"},
		IdempotencyKey: "key-1",
		Reference:      "withdrawal-1",
	}
}

func TestCreatePayout_Success(t *testing.T) {
	// Подготовка
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payouts", r.URL.Path)
		assert.Equal(t, "key-1", r.Header.Get(idempotencyHeader))
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key_id", user)
		assert.Equal(t, "key_secret", pass)

		raw, _ := io.ReadAll(r.Body)
		assert.Equal(t, generateHMACSHA256(raw, "key_secret"), r.Header.Get(signatureHeader))

		var body payoutBody
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "UPI", body.Mode)
		assert.Equal(t, int64(200000), body.Amount)
		assert.Equal(t, "vpa", body.FundAccount.AccountType)
		assert.Equal(t, "ravi@okhdfc", body.FundAccount.VPA.Address)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"pout_42","status":"processing"}`))
	}))
	defer server.Close()

	// Действие
	id, err := newTestClient(server.URL).CreatePayout(context.Background(), upiRequest())

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "pout_42", id)
}

func TestCreatePayout_RetriesServerErrors(t *testing.T) {
	// Подготовка
	var calls int32
	keys := make(chan string, 3)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys <- r.Header.Get(idempotencyHeader)
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"id":"pout_7"}`))
	}))
	defer server.Close()

	// Действие
	id, err := newTestClient(server.URL).CreatePayout(context.Background(), upiRequest())

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "pout_7", id)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	close(keys)
	for k := range keys {
		assert.Equal(t, "key-1", k, "повтор идет с тем же ключом идемпотентности")
	}
}

func TestCreatePayout_ClientErrorIsFinal(t *testing.T) {
	// Подготовка
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"description":"Invalid IFSC"}}`))
	}))
	defer server.Close()

	// Действие
	_, err := newTestClient(server.URL).CreatePayout(context.Background(), upiRequest())

	// Проверки
	require.Error(t, err)
	assert.ErrorContains(t, err, "Invalid IFSC")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCreatePayout_GivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).CreatePayout(context.Background(), upiRequest())

	require.Error(t, err)
	assert.ErrorContains(t, err, "after 3 attempts")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestCreatePayout_NotConfigured(t *testing.T) {
	_, err := newTestClient("").CreatePayout(context.Background(), upiRequest())

	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestBuildBody(t *testing.T) {
	tests := []struct {
		name        string
		destination models.Destination
		mode        string
		accountType string
	}{
		{name: "bank", destination: models.Destination{Method: models.MethodBank, AccountNumber: "0012", IFSCCode: "HDFC0001"}, mode: "IMPS", accountType: "bank_account"},
		{name: "upi", destination: models.Destination{Method: models.MethodUPI, UPIID: "a@b"}, mode: "UPI", accountType: "vpa"},
		{name: "wallet", destination: models.Destination{Method: models.MethodWallet, WalletAddress: "0xabc"}, mode: "WALLET", accountType: "wallet"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := buildBody("src", models.PayoutRequest{Destination: tt.destination, Amount: 100, Currency: "INR"})
			require.NoError(t, err)
			assert.Equal(t, tt.mode, body.Mode)
			assert.Equal(t, tt.accountType, body.FundAccount.AccountType)
			assert.Equal(t, "src", body.AccountNumber)
		})
	}

	_, err := buildBody("src", models.PayoutRequest{Destination: models.Destination{Method: "cheque"}})
	assert.Error(t, err)
}
