package service

import (
	"errors"
	"fmt"
)

// Таксономия ошибок движков. Обработчики сопоставляют их кодам ответа через errors.Is.
var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrStateConflict     = errors.New("state conflict")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrPayoutFailed      = errors.New("payout failed")
)

// newError оборачивает ошибку таксономии подробным сообщением
func newError(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// IsRetryable сообщает, может ли вызывающий перечитать состояние и повторить запрос
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStateConflict) || errors.Is(err, ErrPayoutFailed)
}

// IsDomainError - ошибка относится к таксономии, а не к сбою инфраструктуры
func IsDomainError(err error) bool {
	for _, kind := range []error{ErrValidation, ErrNotFound, ErrForbidden, ErrStateConflict, ErrInsufficientFunds, ErrPayoutFailed} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
