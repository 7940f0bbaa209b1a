package models

import (
	"time"

	"github.com/google/uuid"
)

// RoleVolunteer - роль пользователя в записи о вкладе
const RoleVolunteer = "Volunteer"

// Contribution - начисление за конкретный инцидент, одно на пару (пользователь, инцидент)
type Contribution struct {
	IncidentID       uuid.UUID `json:"incident_id"`
	Role             string    `json:"role"`
	CompletedAt      time.Time `json:"completed_at"`
	IncentivesEarned int64     `json:"incentives_earned"`
}

// PayoutDetails - реквизиты для вывода средств
type PayoutDetails struct {
	AccountNumber string `json:"account_number,omitempty"`
	IFSCCode      string `json:"ifsc_code,omitempty"`
	BankName      string `json:"bank_name,omitempty"`
	UPIID         string `json:"upi_id,omitempty"`
	WalletAddress string `json:"wallet_address,omitempty"`
}

// Merge переносит непустые поля update поверх текущих реквизитов
func (d PayoutDetails) Merge(update PayoutDetails) PayoutDetails {
	if update.AccountNumber != "" {
		d.AccountNumber = update.AccountNumber
	}
	if update.IFSCCode != "" {
		d.IFSCCode = update.IFSCCode
	}
	if update.BankName != "" {
		d.BankName = update.BankName
	}
	if update.UPIID != "" {
		d.UPIID = update.UPIID
	}
	if update.WalletAddress != "" {
		d.WalletAddress = update.WalletAddress
	}
	return d
}

// IsEmpty - реквизиты не заполнены
func (d PayoutDetails) IsEmpty() bool {
	return d == PayoutDetails{}
}

// PayoutMethod - способ вывода
type PayoutMethod string

const (
	MethodBank   PayoutMethod = "bank"
	MethodUPI    PayoutMethod = "upi"
	MethodWallet PayoutMethod = "wallet"
)

// Destination - адрес выплаты, выбранный из реквизитов
type Destination struct {
	Method        PayoutMethod `json:"method"`
	AccountNumber string       `json:"account_number,omitempty"`
	IFSCCode      string       `json:"ifsc_code,omitempty"`
	BankName      string       `json:"bank_name,omitempty"`
	UPIID         string       `json:"upi_id,omitempty"`
	WalletAddress string       `json:"wallet_address,omitempty"`
}

// Destination возвращает адрес выплаты для метода, если нужные реквизиты сохранены
func (d PayoutDetails) Destination(method PayoutMethod) (Destination, bool) {
	switch method {
	case MethodBank:
		if d.AccountNumber == "" || d.IFSCCode == "" {
			return Destination{}, false
		}
		return Destination{Method: method, AccountNumber: d.AccountNumber, IFSCCode: d.IFSCCode, BankName: d.BankName}, true
	case MethodUPI:
		if d.UPIID == "" {
			return Destination{}, false
		}
		return Destination{Method: method, UPIID: d.UPIID}, true
	case MethodWallet:
		if d.WalletAddress == "" {
			return Destination{}, false
		}
		return Destination{Method: method, WalletAddress: d.WalletAddress}, true
	}
	return Destination{}, false
}

// LedgerAccount - счет вознаграждений пользователя
type LedgerAccount struct {
	UserID    uuid.UUID     `json:"user_id"`
	Balance   int64         `json:"balance"`
	Details   PayoutDetails `json:"details"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// WithdrawalStatus - состояние заявки на вывод
type WithdrawalStatus string

const (
	WithdrawalPending   WithdrawalStatus = "pending"
	WithdrawalCompleted WithdrawalStatus = "completed"
	WithdrawalFailed    WithdrawalStatus = "failed"
)

// Withdrawal - списание с внешней выплатой
type Withdrawal struct {
	ID             uuid.UUID        `json:"id"`
	UserID         uuid.UUID        `json:"user_id"`
	Amount         int64            `json:"amount"`
	CurrencyAmount int64            `json:"currency_amount"`
	Currency       string           `json:"currency"`
	Destination    Destination      `json:"destination"`
	IdempotencyKey string           `json:"idempotency_key"`
	PayoutID       string           `json:"payout_id,omitempty"`
	Status         WithdrawalStatus `json:"status"`
	FailureReason  string           `json:"failure_reason,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// PayoutRequest - запрос к внешнему провайдеру выплат, сумма в минорных единицах валюты
type PayoutRequest struct {
	Amount         int64
	Currency       string
	Destination    Destination
	IdempotencyKey string
	Reference      string
}
