package service

//go:generate mockgen -source=ports.go -destination=mocks/mock_ports.go -package=mocks

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/rescue_chain/internal/models"
)

// IncidentRepository определяет контракт для работы с бд инцидентов.
// Методы изменения состояния принимают ожидаемую версию и возвращают ErrStateConflict при расхождении.
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	ClaimVolunteer(ctx context.Context, incidentID uuid.UUID, expectedVersion int, status models.IncidentStatus, assignment models.VolunteerAssignment, entry models.HistoryEntry) error
	UpdateAssignment(ctx context.Context, incidentID uuid.UUID, expectedVersion int, assignment models.VolunteerAssignment, entry *models.HistoryEntry) error
	Approve(ctx context.Context, incidentID uuid.UUID, expectedVersion int, entry models.HistoryEntry) error
	// AddMedia добавляет файлы, только если их общее число не превысит maxFiles; иначе ErrValidation
	AddMedia(ctx context.Context, incidentID uuid.UUID, media []models.MediaFile, maxFiles int) error
	ListIncidents(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error)
	ListVolunteerHistory(ctx context.Context, volunteerID uuid.UUID) ([]models.VolunteerHistoryItem, error)
	GetStats(ctx context.Context) (models.DashboardStats, error)

	GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	SetIncidentCache(ctx context.Context, incident *models.Incident) error
	InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error
}

// LedgerRepository - единственный путь изменения баланса вознаграждений
type LedgerRepository interface {
	// CreditContribution создает запись о вкладе и увеличивает баланс; false, если вклад уже был начислен
	CreditContribution(ctx context.Context, userID uuid.UUID, contribution models.Contribution) (bool, error)
	GetAccount(ctx context.Context, userID uuid.UUID) (*models.LedgerAccount, error)
	SavePayoutDetails(ctx context.Context, userID uuid.UUID, details models.PayoutDetails) error
	ListContributions(ctx context.Context, userID uuid.UUID) ([]models.Contribution, error)
	// Debit атомарно списывает withdrawal.Amount и сохраняет заявку в статусе pending
	Debit(ctx context.Context, withdrawal *models.Withdrawal) error
	GetWithdrawalByKey(ctx context.Context, userID uuid.UUID, key string) (*models.Withdrawal, error)
	CompleteWithdrawal(ctx context.Context, id uuid.UUID, payoutID string) error
	// RefundWithdrawal возвращает списанную сумму на баланс и помечает заявку failed
	RefundWithdrawal(ctx context.Context, id uuid.UUID, reason string) error
	ListStaleWithdrawals(ctx context.Context, before time.Time) ([]*models.Withdrawal, error)
}

// NotificationRepository хранит доставленные пользователям сообщения
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
}

// Notifier - приемник уведомлений. Ошибка доставки не должна отменять переход состояния.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, message string) error
}

// PayoutProvider выполняет внешнюю выплату и возвращает ее идентификатор
type PayoutProvider interface {
	CreatePayout(ctx context.Context, req models.PayoutRequest) (string, error)
}

// MediaStore сохраняет файл и возвращает постоянный URL
type MediaStore interface {
	Save(ctx context.Context, fileName, contentType string, body io.Reader) (string, error)
}
