package service

//go:generate mockgen -source=incentive.go -destination=mocks/mock_incentive_service.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/rescue_chain/internal/config"
	"github.com/shenikar/rescue_chain/internal/models"
	"github.com/sirupsen/logrus"
)

// IncentiveService определяет контракт движка вознаграждений
type IncentiveService interface {
	CreditForApproval(ctx context.Context, incident *models.Incident, volunteerID uuid.UUID) (int64, error)
	Balance(ctx context.Context, userID uuid.UUID) (int64, error)
	GetPayoutDetails(ctx context.Context, userID uuid.UUID) (models.PayoutDetails, error)
	SavePayoutDetails(ctx context.Context, userID uuid.UUID, details models.PayoutDetails) (models.PayoutDetails, error)
	Contributions(ctx context.Context, userID uuid.UUID) ([]models.Contribution, error)
	Withdraw(ctx context.Context, userID uuid.UUID, method models.PayoutMethod, idempotencyKey string) (*models.Withdrawal, error)
	ReconcilePendingWithdrawals(ctx context.Context) (int, error)
}

// incentiveTable - вознаграждение волонтеру в зависимости от тяжести инцидента
var incentiveTable = map[models.Severity]int64{
	models.SeverityCritical: 50,
	models.SeverityHigh:     30,
	models.SeverityMedium:   20,
	models.SeverityLow:      20,
}

// IncentiveFor возвращает размер вознаграждения за инцидент указанной тяжести
func IncentiveFor(severity models.Severity) int64 {
	if amount, ok := incentiveTable[severity]; ok {
		return amount
	}
	return incentiveTable[models.SeverityLow]
}

// withdrawalNamespace - пространство имен для ключей идемпотентности выплат
var withdrawalNamespace = uuid.MustParse("6f1c1f0e-34a4-4c4b-9a43-3d2b8e7b5a10")

// maxKeyAttempts - сколько отказанных выплат может начать один ключ клиента
const maxKeyAttempts = 5

type incentiveService struct {
	ledger   LedgerRepository
	payouts  PayoutProvider
	notifier Notifier
	logger   *logrus.Logger
	cfg      *config.Config
	now      func() time.Time
}

func NewIncentiveService(ledger LedgerRepository, payouts PayoutProvider, notifier Notifier, logger *logrus.Logger, cfg *config.Config) IncentiveService {
	return &incentiveService{
		ledger:   ledger,
		payouts:  payouts,
		notifier: notifier,
		logger:   logger,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreditForApproval начисляет волонтеру вознаграждение за инцидент. Повторный вызов ничего не меняет.
func (s *incentiveService) CreditForApproval(ctx context.Context, incident *models.Incident, volunteerID uuid.UUID) (int64, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "incentive",
		"method":       "CreditForApproval",
		"incident_id":  incident.ID,
		"volunteer_id": volunteerID,
		"severity":     incident.Severity,
	})

	if !incident.HasVolunteer(volunteerID) {
		return 0, newError(ErrNotFound, "volunteer %s is not on the roster of incident %s", volunteerID, incident.ID)
	}

	amount := IncentiveFor(incident.Severity)
	contribution := models.Contribution{
		IncidentID:       incident.ID,
		Role:             models.RoleVolunteer,
		CompletedAt:      s.now(),
		IncentivesEarned: amount,
	}

	created, err := s.ledger.CreditContribution(ctx, volunteerID, contribution)
	if err != nil {
		log.WithError(err).Error("Failed to credit contribution")
		return 0, fmt.Errorf("service: could not credit contribution: %w", err)
	}
	if !created {
		log.Info("Contribution already credited, skipping")
		return amount, nil
	}

	log.WithField("amount", amount).Info("Incentives credited")
	return amount, nil
}

// Balance возвращает текущий баланс; у пользователя без счета баланс нулевой
func (s *incentiveService) Balance(ctx context.Context, userID uuid.UUID) (int64, error) {
	account, err := s.account(ctx, userID)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

func (s *incentiveService) GetPayoutDetails(ctx context.Context, userID uuid.UUID) (models.PayoutDetails, error) {
	account, err := s.account(ctx, userID)
	if err != nil {
		return models.PayoutDetails{}, err
	}
	return account.Details, nil
}

func (s *incentiveService) account(ctx context.Context, userID uuid.UUID) (*models.LedgerAccount, error) {
	account, err := s.ledger.GetAccount(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return &models.LedgerAccount{UserID: userID}, nil
		}
		s.logger.WithError(err).WithField("user_id", userID).Error("Failed to get ledger account")
		return nil, fmt.Errorf("service: could not get account: %w", err)
	}
	return account, nil
}

// SavePayoutDetails объединяет новые реквизиты с сохраненными
func (s *incentiveService) SavePayoutDetails(ctx context.Context, userID uuid.UUID, details models.PayoutDetails) (models.PayoutDetails, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incentive",
		"method":  "SavePayoutDetails",
		"user_id": userID,
	})

	details = trimDetails(details)
	if details.IsEmpty() {
		return models.PayoutDetails{}, newError(ErrValidation, "at least one payout detail is required")
	}
	if (details.AccountNumber == "") != (details.IFSCCode == "") {
		return models.PayoutDetails{}, newError(ErrValidation, "account number and IFSC code must be provided together")
	}

	account, err := s.account(ctx, userID)
	if err != nil {
		return models.PayoutDetails{}, err
	}
	merged := account.Details.Merge(details)

	if err := s.ledger.SavePayoutDetails(ctx, userID, merged); err != nil {
		log.WithError(err).Error("Failed to save payout details")
		return models.PayoutDetails{}, fmt.Errorf("service: could not save payout details: %w", err)
	}

	log.Info("Payout details saved")
	return merged, nil
}

func trimDetails(d models.PayoutDetails) models.PayoutDetails {
	return models.PayoutDetails{
		AccountNumber: strings.TrimSpace(d.AccountNumber),
		IFSCCode:      strings.ToUpper(strings.TrimSpace(d.IFSCCode)),
		BankName:      strings.TrimSpace(d.BankName),
		UPIID:         strings.TrimSpace(d.UPIID),
		WalletAddress: strings.TrimSpace(d.WalletAddress),
	}
}

func (s *incentiveService) Contributions(ctx context.Context, userID uuid.UUID) ([]models.Contribution, error) {
	contributions, err := s.ledger.ListContributions(ctx, userID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("Failed to list contributions")
		return nil, fmt.Errorf("service: could not list contributions: %w", err)
	}
	return contributions, nil
}

// WithdrawableAmount - наибольшее кратное шагу значение, не превышающее баланс
func WithdrawableAmount(balance, step int64) int64 {
	if step <= 0 || balance <= 0 {
		return 0
	}
	return balance / step * step
}

// ToCurrencyMinor переводит единицы вознаграждения в минорные единицы валюты (пайсы для INR)
func ToCurrencyMinor(units, unitsPerCurrency int64) int64 {
	if unitsPerCurrency <= 0 {
		return 0
	}
	return units * 100 / unitsPerCurrency
}

// Withdraw списывает доступную сумму и выполняет внешнюю выплату.
// При отказе провайдера списание возвращается на баланс.
func (s *incentiveService) Withdraw(ctx context.Context, userID uuid.UUID, method models.PayoutMethod, idempotencyKey string) (*models.Withdrawal, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incentive",
		"method":  "Withdraw",
		"user_id": userID,
		"payout":  method,
	})
	log.Info("Attempting to withdraw incentives")

	if method == "" {
		method = models.MethodBank
	}
	switch method {
	case models.MethodBank, models.MethodUPI, models.MethodWallet:
	default:
		return nil, newError(ErrValidation, "unknown payout method %q", method)
	}

	if idempotencyKey != "" {
		key, existing, err := s.resolveClientKey(ctx, log, userID, idempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			log.WithFields(logrus.Fields{"withdrawal_id": existing.ID, "status": existing.Status}).Info("Returning existing withdrawal for idempotency key")
			return existing, nil
		}
		idempotencyKey = key
	}

	account, err := s.account(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account.Balance < s.cfg.MinWithdrawal {
		return nil, newError(ErrInsufficientFunds, "balance %d is below the minimum withdrawal of %d", account.Balance, s.cfg.MinWithdrawal)
	}
	destination, ok := account.Details.Destination(method)
	if !ok {
		return nil, newError(ErrInsufficientFunds, "no %s payout details on file", method)
	}

	amount := WithdrawableAmount(account.Balance, s.cfg.WithdrawalStep)
	now := s.now()
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewSHA1(withdrawalNamespace, []byte(fmt.Sprintf("%s:%d:%d", userID, now.UnixNano(), amount))).String()
	}

	withdrawal := &models.Withdrawal{
		ID:             uuid.New(),
		UserID:         userID,
		Amount:         amount,
		CurrencyAmount: ToCurrencyMinor(amount, s.cfg.IncentiveUnitsPerCurrency),
		Currency:       s.cfg.PayoutCurrency,
		Destination:    destination,
		IdempotencyKey: idempotencyKey,
		Status:         models.WithdrawalPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.ledger.Debit(ctx, withdrawal); err != nil {
		log.WithError(err).Warn("Failed to debit balance")
		return nil, fmt.Errorf("service: could not debit balance: %w", err)
	}
	log = log.WithFields(logrus.Fields{"withdrawal_id": withdrawal.ID, "amount": amount})

	if err := s.settle(ctx, log, withdrawal); err != nil {
		return nil, err
	}

	s.notifyUser(ctx, log, userID, fmt.Sprintf("Your withdrawal of %d incentives has been processed.", amount))
	log.Info("Withdrawal completed")
	return withdrawal, nil
}

// resolveClientKey переводит ключ клиента в ключ заявки. Заявка в статусе pending или completed
// возвращается как есть; после отказанной заявки ключ открывает новую попытку с производным ключом.
func (s *incentiveService) resolveClientKey(ctx context.Context, log *logrus.Entry, userID uuid.UUID, clientKey string) (string, *models.Withdrawal, error) {
	key := clientWithdrawalKey(userID, clientKey)
	for attempt := 0; attempt < maxKeyAttempts; attempt++ {
		existing, err := s.ledger.GetWithdrawalByKey(ctx, userID, key)
		if errors.Is(err, ErrNotFound) {
			return key, nil, nil
		}
		if err != nil {
			log.WithError(err).Error("Failed to look up withdrawal by key")
			return "", nil, fmt.Errorf("service: could not look up withdrawal: %w", err)
		}
		if existing.Status != models.WithdrawalFailed {
			return "", existing, nil
		}
		key = retryWithdrawalKey(key)
	}
	log.Warn("Idempotency key exhausted by failed payouts")
	return "", nil, newError(ErrValidation, "idempotency key %q was used for %d failed payouts, use a new key", clientKey, maxKeyAttempts)
}

// clientWithdrawalKey привязывает ключ клиента к пользователю: одинаковые ключи разных пользователей не пересекаются
// ни в хранилище, ни у провайдера выплат
func clientWithdrawalKey(userID uuid.UUID, clientKey string) string {
	return uuid.NewSHA1(withdrawalNamespace, []byte(userID.String()+":"+clientKey)).String()
}

// retryWithdrawalKey - ключ следующей попытки после отказанной заявки
func retryWithdrawalKey(failedKey string) string {
	return uuid.NewSHA1(withdrawalNamespace, []byte(failedKey+":retry")).String()
}

// settle вызывает провайдера и переводит заявку в completed или failed с возвратом суммы
func (s *incentiveService) settle(ctx context.Context, log *logrus.Entry, w *models.Withdrawal) error {
	payoutID, err := s.payouts.CreatePayout(ctx, models.PayoutRequest{
		Amount:         w.CurrencyAmount,
		Currency:       w.Currency,
		Destination:    w.Destination,
		IdempotencyKey: w.IdempotencyKey,
		Reference:      w.ID.String(),
	})
	if err != nil {
		log.WithError(err).Error("Payout provider rejected withdrawal, refunding")
		if refundErr := s.ledger.RefundWithdrawal(ctx, w.ID, err.Error()); refundErr != nil {
			log.WithError(refundErr).Error("Failed to refund withdrawal")
			return errors.Join(
				fmt.Errorf("%w: %v", ErrPayoutFailed, err),
				fmt.Errorf("service: could not refund withdrawal %s: %w", w.ID, refundErr),
			)
		}
		w.Status = models.WithdrawalFailed
		w.FailureReason = err.Error()
		return fmt.Errorf("%w: %v", ErrPayoutFailed, err)
	}

	w.PayoutID = payoutID
	w.Status = models.WithdrawalCompleted
	w.UpdatedAt = s.now()
	if err := s.ledger.CompleteWithdrawal(ctx, w.ID, payoutID); err != nil {
		// выплата прошла, заявку дозавершит сверка
		log.WithError(err).Error("Failed to mark withdrawal completed")
	}
	return nil
}

// ReconcilePendingWithdrawals повторяет выплату для зависших заявок с тем же ключом идемпотентности
func (s *incentiveService) ReconcilePendingWithdrawals(ctx context.Context) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incentive",
		"method":  "ReconcilePendingWithdrawals",
	})

	stale, err := s.ledger.ListStaleWithdrawals(ctx, s.now().Add(-s.cfg.ReconcileAfter))
	if err != nil {
		log.WithError(err).Error("Failed to list stale withdrawals")
		return 0, fmt.Errorf("service: could not list stale withdrawals: %w", err)
	}

	settled := 0
	for _, w := range stale {
		if ctx.Err() != nil {
			return settled, ctx.Err()
		}
		entry := log.WithFields(logrus.Fields{"withdrawal_id": w.ID, "user_id": w.UserID})
		if err := s.settle(ctx, entry, w); err != nil {
			if errors.Is(err, ErrPayoutFailed) {
				settled++
				s.notifyUser(ctx, entry, w.UserID, fmt.Sprintf("Your withdrawal of %d incentives failed and has been returned to your balance.", w.Amount))
			}
			continue
		}
		settled++
	}

	if settled > 0 {
		log.WithField("settled", settled).Info("Stale withdrawals reconciled")
	}
	return settled, nil
}

func (s *incentiveService) notifyUser(ctx context.Context, log *logrus.Entry, userID uuid.UUID, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, userID, message); err != nil {
		log.WithError(err).Error("Failed to deliver notification")
	}
}
