package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/rescue_chain/internal/models"
	"github.com/shenikar/rescue_chain/internal/service"
)

type LedgerRepository struct {
	db *pgxpool.Pool
}

func NewLedgerRepository(db *pgxpool.Pool) service.LedgerRepository {
	return &LedgerRepository{db: db}
}

// CreditContribution начисляет вклад; баланс меняется только если запись о вкладе создана впервые
func (r *LedgerRepository) CreditContribution(ctx context.Context, userID uuid.UUID, contribution models.Contribution) (bool, error) {
	var credited bool
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
			INSERT INTO contributions (user_id, incident_id, role, incentives_earned, completed_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, incident_id) DO NOTHING;
		`, userID, contribution.IncidentID, contribution.Role, contribution.IncentivesEarned, contribution.CompletedAt)
		if err != nil {
			return fmt.Errorf("failed to insert contribution: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return nil
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO ledger_accounts (user_id, balance, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id) DO UPDATE
			SET balance = ledger_accounts.balance + EXCLUDED.balance, updated_at = EXCLUDED.updated_at;
		`, userID, contribution.IncentivesEarned, contribution.CompletedAt)
		if err != nil {
			return fmt.Errorf("failed to credit ledger account: %w", err)
		}
		credited = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return credited, nil
}

func (r *LedgerRepository) GetAccount(ctx context.Context, userID uuid.UUID) (*models.LedgerAccount, error) {
	acc := &models.LedgerAccount{UserID: userID}
	err := r.db.QueryRow(ctx, `
		SELECT balance, payout_details, updated_at FROM ledger_accounts WHERE user_id = $1;
	`, userID).Scan(&acc.Balance, &acc.Details, &acc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: ledger account %s", service.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get ledger account: %w", err)
	}
	return acc, nil
}

func (r *LedgerRepository) SavePayoutDetails(ctx context.Context, userID uuid.UUID, details models.PayoutDetails) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO ledger_accounts (user_id, payout_details, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET payout_details = EXCLUDED.payout_details, updated_at = EXCLUDED.updated_at;
	`, userID, details)
	if err != nil {
		return fmt.Errorf("failed to save payout details: %w", err)
	}
	return nil
}

func (r *LedgerRepository) ListContributions(ctx context.Context, userID uuid.UUID) ([]models.Contribution, error) {
	rows, err := r.db.Query(ctx, `
		SELECT incident_id, role, completed_at, incentives_earned
		FROM contributions
		WHERE user_id = $1
		ORDER BY completed_at DESC;
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions: %w", err)
	}
	defer rows.Close()

	result := make([]models.Contribution, 0)
	for rows.Next() {
		var c models.Contribution
		if err := rows.Scan(&c.IncidentID, &c.Role, &c.CompletedAt, &c.IncentivesEarned); err != nil {
			return nil, fmt.Errorf("failed to scan contribution row: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error contributions iteration: %w", err)
	}
	return result, nil
}

// Debit списывает сумму условным UPDATE, поэтому параллельные списания не уводят баланс в минус
func (r *LedgerRepository) Debit(ctx context.Context, w *models.Withdrawal) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
			UPDATE ledger_accounts SET balance = balance - $2, updated_at = $3
			WHERE user_id = $1 AND balance >= $2;
		`, w.UserID, w.Amount, w.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to debit ledger account: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%w: balance changed before debit", service.ErrInsufficientFunds)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO withdrawals (id, user_id, amount, currency_amount, currency, destination,
				idempotency_key, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
		`, w.ID, w.UserID, w.Amount, w.CurrencyAmount, w.Currency, w.Destination,
			w.IdempotencyKey, w.Status, w.CreatedAt, w.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: withdrawal with key %s already exists", service.ErrStateConflict, w.IdempotencyKey)
			}
			return fmt.Errorf("failed to create withdrawal: %w", err)
		}
		return nil
	})
}

const withdrawalColumns = `
	id, user_id, amount, currency_amount, currency, destination, idempotency_key,
	payout_id, status, failure_reason, created_at, updated_at`

func scanWithdrawal(row pgx.Row) (*models.Withdrawal, error) {
	w := &models.Withdrawal{}
	err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.Amount,
		&w.CurrencyAmount,
		&w.Currency,
		&w.Destination,
		&w.IdempotencyKey,
		&w.PayoutID,
		&w.Status,
		&w.FailureReason,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *LedgerRepository) GetWithdrawalByKey(ctx context.Context, userID uuid.UUID, key string) (*models.Withdrawal, error) {
	query := `SELECT` + withdrawalColumns + ` FROM withdrawals WHERE user_id = $1 AND idempotency_key = $2;`

	w, err := scanWithdrawal(r.db.QueryRow(ctx, query, userID, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: withdrawal with key %s", service.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to get withdrawal: %w", err)
	}
	return w, nil
}

// finishWithdrawal переводит pending-заявку в конечный статус и возвращает ее
func finishWithdrawal(ctx context.Context, tx pgx.Tx, id uuid.UUID, set string, args ...any) (*models.Withdrawal, error) {
	query := fmt.Sprintf(`
		UPDATE withdrawals SET %s, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING %s;
	`, set, withdrawalColumns)

	w, err := scanWithdrawal(tx.QueryRow(ctx, query, append([]any{id}, args...)...))
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to update withdrawal: %w", err)
	}

	var status models.WithdrawalStatus
	if err := tx.QueryRow(ctx, `SELECT status FROM withdrawals WHERE id = $1`, id).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: withdrawal %s", service.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get withdrawal status: %w", err)
	}
	return nil, fmt.Errorf("%w: withdrawal %s is %s", service.ErrStateConflict, id, status)
}

func (r *LedgerRepository) CompleteWithdrawal(ctx context.Context, id uuid.UUID, payoutID string) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := finishWithdrawal(ctx, tx, id, "status = $2, payout_id = $3", models.WithdrawalCompleted, payoutID)
		return err
	})
}

// RefundWithdrawal возвращает сумму на счет в той же транзакции, что и смена статуса
func (r *LedgerRepository) RefundWithdrawal(ctx context.Context, id uuid.UUID, reason string) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		w, err := finishWithdrawal(ctx, tx, id, "status = $2, failure_reason = $3", models.WithdrawalFailed, reason)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			UPDATE ledger_accounts SET balance = balance + $2, updated_at = NOW() WHERE user_id = $1;
		`, w.UserID, w.Amount)
		if err != nil {
			return fmt.Errorf("failed to refund ledger account: %w", err)
		}
		return nil
	})
}

func (r *LedgerRepository) ListStaleWithdrawals(ctx context.Context, before time.Time) ([]*models.Withdrawal, error) {
	query := `SELECT` + withdrawalColumns + `
		FROM withdrawals
		WHERE status = 'pending' AND created_at < $1
		ORDER BY created_at;`

	rows, err := r.db.Query(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale withdrawals: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Withdrawal, 0)
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan withdrawal row: %w", err)
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error withdrawals iteration: %w", err)
	}
	return result, nil
}
