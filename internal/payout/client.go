// Package payout - HTTP клиент внешнего провайдера выплат.
package payout

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
	"net/http"
	"strings"
	"time"

	"github.com/shenikar/rescue_chain/internal/config"
	"github.com/shenikar/rescue_chain/internal/models"
	"github.com/shenikar/rescue_chain/internal/service"
	"github.com/sirupsen/logrus"
)

const (
	idempotencyHeader = "X-Payout-Idempotency"
	signatureHeader   = "X-Payout-Signature"
	payoutPurpose     = "withdrawal"
)

// ErrNotConfigured возвращается, когда адрес провайдера не задан
var ErrNotConfigured = errors.New("payout provider is not configured")

type fundAccount struct {
	AccountType string       `json:"account_type"`
	BankAccount *bankAccount `json:"bank_account,omitempty"`
	VPA         *vpa         `json:"vpa,omitempty"`
	Wallet      *wallet      `json:"wallet,omitempty"`
}

type bankAccount struct {
	Name          string `json:"name,omitempty"`
	AccountNumber string `json:"account_number"`
	IFSC          string `json:"ifsc"`
}

type vpa struct {
	Address string `json:"address"`
}

type wallet struct {
	Address string `json:"address"`
}

type payoutBody struct {
	AccountNumber string      `json:"account_number"`
	Amount        int64       `json:"amount"`
	Currency      string      `json:"currency"`
	Mode          string      `json:"mode"`
	Purpose       string      `json:"purpose"`
	ReferenceID   string      `json:"reference_id"`
	FundAccount   fundAccount `json:"fund_account"`
}

type payoutResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  *struct {
		Description string `json:"description"`
	} `json:"error,omitempty"`
}

// Client - реализация service.PayoutProvider поверх HTTP API провайдера
type Client struct {
	baseURL       string
	keyID         string
	keySecret     string
	sourceAccount string
	maxRetries    int
	baseDelay     time.Duration
	httpClient    *http.Client
	logger        *logrus.Logger
}

var _ service.PayoutProvider = (*Client)(nil)

// NewClient создает клиента провайдера выплат
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	maxRetries := cfg.PayoutMaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Client{
		baseURL:       strings.TrimRight(cfg.PayoutURL, "/"),
		keyID:         cfg.PayoutKeyID,
		keySecret:     cfg.PayoutKeySecret,
		sourceAccount: cfg.PayoutSourceAccount,
		maxRetries:    maxRetries,
		baseDelay:     cfg.PayoutBaseDelay,
		httpClient: &http.Client{
			Timeout: cfg.PayoutTimeout,
		},
		logger: logger,
	}
}

func buildBody(sourceAccount string, req models.PayoutRequest) (payoutBody, error) {
	body := payoutBody{
		AccountNumber: sourceAccount,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Purpose:       payoutPurpose,
		ReferenceID:   req.Reference,
	}
	d := req.Destination
	switch d.Method {
	case models.MethodBank:
		body.Mode = "IMPS"
		body.FundAccount = fundAccount{
			AccountType: "bank_account",
			BankAccount: &bankAccount{Name: d.BankName, AccountNumber: d.AccountNumber, IFSC: d.IFSCCode},
		}
	case models.MethodUPI:
		body.Mode = "UPI"
		body.FundAccount = fundAccount{AccountType: "vpa", VPA: &vpa{Address: d.UPIID}}
	case models.MethodWallet:
		body.Mode = "WALLET"
		body.FundAccount = fundAccount{AccountType: "wallet", Wallet: &wallet{Address: d.WalletAddress}}
	default:
		return payoutBody{}, fmt.Errorf("unsupported payout method %q", d.Method)
	}
	return body, nil
}

// CreatePayout отправляет выплату. Сетевые ошибки и 5xx повторяются с тем же ключом идемпотентности,
// 4xx считается окончательным отказом.
func (c *Client) CreatePayout(ctx context.Context, req models.PayoutRequest) (string, error) {
	if c.baseURL == "" {
		return "", ErrNotConfigured
	}

	body, err := buildBody(c.sourceAccount, req)
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payout request: %w", err)
	}

	log := c.logger.WithFields(logrus.Fields{
		"component":   "payout",
		"reference":   req.Reference,
		"mode":        body.Mode,
		"amount":      req.Amount,
		"idempotency": req.IdempotencyKey,
	})

	delay := c.baseDelay
	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2 // Экспоненциальная задержка
		}

		id, retry, err := c.send(ctx, payload, req.IdempotencyKey)
		if err == nil {
			log.WithField("payout_id", id).Info("Payout created successfully.")
			return id, nil
		}
		lastErr = err
		if !retry {
			log.WithError(err).Warn("Payout rejected by provider.")
			return "", err
		}
		log.WithError(err).Warnf("Payout attempt failed. Retries left: %d", c.maxRetries-1-i)
	}

	log.WithError(lastErr).Errorf("Failed to create payout after %d attempts.", c.maxRetries)
	return "", fmt.Errorf("payout failed after %d attempts: %w", c.maxRetries, lastErr)
}

// send выполняет один запрос и сообщает, имеет ли смысл повтор
func (c *Client) send(ctx context.Context, payload []byte, idempotencyKey string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payouts", bytes.NewReader(payload))
	if err != nil {
		return "", false, fmt.Errorf("failed to create payout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(idempotencyHeader, idempotencyKey)
	req.SetBasicAuth(c.keyID, c.keySecret)
	if c.keySecret != "" {
		req.Header.Set(signatureHeader, generateHMACSHA256(payload, c.keySecret))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		return "", true, fmt.Errorf("failed to send payout request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", true, fmt.Errorf("failed to read payout response: %w", err)
	}

	var parsed payoutResponse
	_ = json.Unmarshal(raw, &parsed)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if parsed.ID == "" {
			return "", false, errors.New("payout response has no id")
		}
		return parsed.ID, false, nil
	case resp.StatusCode >= 500:
		return "", true, fmt.Errorf("provider returned %d", resp.StatusCode)
	default:
		reason := strings.TrimSpace(string(raw))
		if parsed.Error != nil && parsed.Error.Description != "" {
			reason = parsed.Error.Description
		}
		return "", false, fmt.Errorf("provider returned %d: %s", resp.StatusCode, reason)
	}
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись тела запроса
func generateHMACSHA256(data []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
