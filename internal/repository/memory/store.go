// Package memory - хранилище в памяти процесса для разработки и тестов движков.
// Реализует те же контракты и те же гарантии версий, что и Postgres.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/rescue_chain/internal/models"
	"github.com/shenikar/rescue_chain/internal/service"
)

var severityRank = map[models.Severity]int{
	models.SeverityCritical: 0,
	models.SeverityHigh:     1,
	models.SeverityMedium:   2,
	models.SeverityLow:      3,
}

type contributionKey struct {
	userID     uuid.UUID
	incidentID uuid.UUID
}

// Store хранит все данные под одним мьютексом
type Store struct {
	mu sync.Mutex

	incidents     map[uuid.UUID]*models.Incident
	accounts      map[uuid.UUID]*models.LedgerAccount
	contributions map[contributionKey]models.Contribution
	contribOrder  []contributionKey
	withdrawals   map[uuid.UUID]*models.Withdrawal
}

func NewStore() *Store {
	return &Store{
		incidents:     make(map[uuid.UUID]*models.Incident),
		accounts:      make(map[uuid.UUID]*models.LedgerAccount),
		contributions: make(map[contributionKey]models.Contribution),
		withdrawals:   make(map[uuid.UUID]*models.Withdrawal),
	}
}

var (
	_ service.IncidentRepository = (*Store)(nil)
	_ service.LedgerRepository   = (*Store)(nil)
)

func (s *Store) Create(_ context.Context, incident *models.Incident) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.incidents[incident.ID]; ok {
		return fmt.Errorf("%w: incident %s already exists", service.ErrStateConflict, incident.ID)
	}
	s.incidents[incident.ID] = incident.Clone()
	return nil
}

func (s *Store) GetByID(_ context.Context, id uuid.UUID) (*models.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	incident, ok := s.incidents[id]
	if !ok {
		return nil, fmt.Errorf("%w: incident %s", service.ErrNotFound, id)
	}
	return incident.Clone(), nil
}

// current возвращает инцидент, если его версия совпадает с ожидаемой. Вызывается под мьютексом.
func (s *Store) current(id uuid.UUID, expectedVersion int) (*models.Incident, error) {
	incident, ok := s.incidents[id]
	if !ok {
		return nil, fmt.Errorf("%w: incident %s", service.ErrNotFound, id)
	}
	if incident.Version != expectedVersion {
		return nil, fmt.Errorf("%w: incident %s was modified concurrently", service.ErrStateConflict, id)
	}
	return incident, nil
}

func (s *Store) ClaimVolunteer(_ context.Context, incidentID uuid.UUID, expectedVersion int, status models.IncidentStatus, assignment models.VolunteerAssignment, entry models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	incident, err := s.current(incidentID, expectedVersion)
	if err != nil {
		return err
	}
	if incident.HasVolunteer(assignment.VolunteerID) {
		return fmt.Errorf("%w: volunteer %s already assigned", service.ErrStateConflict, assignment.VolunteerID)
	}
	incident.Status = status
	incident.Volunteers = append(incident.Volunteers, assignment)
	incident.History = append(incident.History, entry)
	incident.Version++
	incident.UpdatedAt = entry.Timestamp
	return nil
}

func (s *Store) UpdateAssignment(_ context.Context, incidentID uuid.UUID, expectedVersion int, assignment models.VolunteerAssignment, entry *models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	incident, err := s.current(incidentID, expectedVersion)
	if err != nil {
		return err
	}
	current, ok := incident.Assignment(assignment.VolunteerID)
	if !ok {
		return fmt.Errorf("%w: volunteer %s is not assigned", service.ErrNotFound, assignment.VolunteerID)
	}
	*current = assignment
	if entry != nil {
		incident.History = append(incident.History, *entry)
	}
	incident.Version++
	incident.UpdatedAt = assignment.UpdatedAt
	return nil
}

func (s *Store) Approve(_ context.Context, incidentID uuid.UUID, expectedVersion int, entry models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	incident, err := s.current(incidentID, expectedVersion)
	if err != nil {
		return err
	}
	incident.Status = models.StatusCompleted
	incident.VictimApproval = true
	incident.History = append(incident.History, entry)
	incident.Version++
	incident.UpdatedAt = entry.Timestamp
	return nil
}

func (s *Store) AddMedia(_ context.Context, incidentID uuid.UUID, media []models.MediaFile, maxFiles int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	incident, ok := s.incidents[incidentID]
	if !ok {
		return fmt.Errorf("%w: incident %s", service.ErrNotFound, incidentID)
	}
	if len(incident.Media)+len(media) > maxFiles {
		return fmt.Errorf("%w: incident %s can hold at most %d files", service.ErrValidation, incidentID, maxFiles)
	}
	incident.Media = append(incident.Media, media...)
	return nil
}

func (s *Store) ListIncidents(_ context.Context, filter models.IncidentFilter) ([]*models.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*models.Incident, 0)
	for _, incident := range s.incidents {
		if matches(incident, filter) {
			result = append(result, incident.Clone())
		}
	}
	sortIncidents(result, filter.SortBy)

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		if offset >= len(result) {
			return []*models.Incident{}, nil
		}
		end := offset + filter.PageSize
		if end > len(result) {
			end = len(result)
		}
		result = result[offset:end]
	}
	return result, nil
}

func matches(incident *models.Incident, filter models.IncidentFilter) bool {
	if len(filter.Statuses) > 0 {
		found := false
		for _, st := range filter.Statuses {
			if incident.Status == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.ReporterID != nil && incident.ReporterID != *filter.ReporterID {
		return false
	}
	if filter.Location != "" && !strings.Contains(strings.ToLower(incident.Location), strings.ToLower(filter.Location)) {
		return false
	}
	if filter.Type != "" && incident.Type != filter.Type {
		return false
	}
	if filter.Severity != "" && incident.Severity != filter.Severity {
		return false
	}
	for _, r := range filter.Resources {
		if !incident.Needs.Has(models.NeedColumns[r]) {
			return false
		}
	}
	return true
}

func sortIncidents(items []*models.Incident, sortBy string) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch sortBy {
		case models.SortBySeverity:
			if severityRank[a.Severity] != severityRank[b.Severity] {
				return severityRank[a.Severity] < severityRank[b.Severity]
			}
		case models.SortByType:
			if a.Type != b.Type {
				return a.Type < b.Type
			}
		case models.SortByTime:
			if !a.OccurredAt.Equal(b.OccurredAt) {
				return a.OccurredAt.After(b.OccurredAt)
			}
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

func (s *Store) ListVolunteerHistory(_ context.Context, volunteerID uuid.UUID) ([]models.VolunteerHistoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.VolunteerHistoryItem, 0)
	for _, incident := range s.incidents {
		a, ok := incident.Assignment(volunteerID)
		if !ok {
			continue
		}
		item := models.VolunteerHistoryItem{
			IncidentID:       incident.ID,
			Type:             incident.Type,
			Status:           incident.Status,
			AssignmentStatus: a.Status,
			Role:             models.RoleVolunteer,
			AssignedAt:       a.AssignedAt,
			CompletedAt:      a.CompletedAt,
		}
		if c, ok := s.contributions[contributionKey{userID: volunteerID, incidentID: incident.ID}]; ok {
			item.IncentivesEarned = c.IncentivesEarned
			item.Role = c.Role
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].AssignedAt.After(items[j].AssignedAt) })
	return items, nil
}

func (s *Store) GetStats(_ context.Context) (models.DashboardStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats models.DashboardStats
	contributors := make(map[uuid.UUID]struct{})
	for _, incident := range s.incidents {
		switch incident.Status {
		case models.StatusPending:
			stats.ActiveEmergencies++
		case models.StatusCompleted:
			stats.ResolvedEmergencies++
		}
		for _, a := range incident.Volunteers {
			contributors[a.VolunteerID] = struct{}{}
		}
	}
	stats.TotalContributors = len(contributors)
	return stats, nil
}

// Кеш в памяти не нужен: чтения и так идут из карты
func (s *Store) GetIncidentFromCache(context.Context, uuid.UUID) (*models.Incident, error) {
	return nil, nil
}

func (s *Store) SetIncidentCache(context.Context, *models.Incident) error { return nil }

func (s *Store) InvalidateIncidentCache(context.Context, uuid.UUID) error { return nil }

// account возвращает счет, создавая его при необходимости. Вызывается под мьютексом.
func (s *Store) account(userID uuid.UUID) *models.LedgerAccount {
	acc, ok := s.accounts[userID]
	if !ok {
		acc = &models.LedgerAccount{UserID: userID}
		s.accounts[userID] = acc
	}
	return acc
}

func (s *Store) CreditContribution(_ context.Context, userID uuid.UUID, contribution models.Contribution) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := contributionKey{userID: userID, incidentID: contribution.IncidentID}
	if _, ok := s.contributions[key]; ok {
		return false, nil
	}
	s.contributions[key] = contribution
	s.contribOrder = append(s.contribOrder, key)

	acc := s.account(userID)
	acc.Balance += contribution.IncentivesEarned
	acc.UpdatedAt = contribution.CompletedAt
	return true, nil
}

func (s *Store) GetAccount(_ context.Context, userID uuid.UUID) (*models.LedgerAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[userID]
	if !ok {
		return nil, fmt.Errorf("%w: ledger account %s", service.ErrNotFound, userID)
	}
	c := *acc
	return &c, nil
}

func (s *Store) SavePayoutDetails(_ context.Context, userID uuid.UUID, details models.PayoutDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc := s.account(userID)
	acc.Details = details
	acc.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *Store) ListContributions(_ context.Context, userID uuid.UUID) ([]models.Contribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.Contribution, 0)
	for i := len(s.contribOrder) - 1; i >= 0; i-- {
		key := s.contribOrder[i]
		if key.userID == userID {
			result = append(result, s.contributions[key])
		}
	}
	return result, nil
}

func (s *Store) Debit(_ context.Context, withdrawal *models.Withdrawal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range s.withdrawals {
		if w.IdempotencyKey == withdrawal.IdempotencyKey {
			return fmt.Errorf("%w: withdrawal with key %s already exists", service.ErrStateConflict, withdrawal.IdempotencyKey)
		}
	}
	acc, ok := s.accounts[withdrawal.UserID]
	if !ok || acc.Balance < withdrawal.Amount {
		return fmt.Errorf("%w: balance changed before debit", service.ErrInsufficientFunds)
	}
	acc.Balance -= withdrawal.Amount
	acc.UpdatedAt = withdrawal.CreatedAt
	w := *withdrawal
	s.withdrawals[w.ID] = &w
	return nil
}

func (s *Store) GetWithdrawalByKey(_ context.Context, userID uuid.UUID, key string) (*models.Withdrawal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range s.withdrawals {
		if w.UserID == userID && w.IdempotencyKey == key {
			c := *w
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: withdrawal with key %s", service.ErrNotFound, key)
}

// pending возвращает заявку в статусе pending. Вызывается под мьютексом.
func (s *Store) pending(id uuid.UUID) (*models.Withdrawal, error) {
	w, ok := s.withdrawals[id]
	if !ok {
		return nil, fmt.Errorf("%w: withdrawal %s", service.ErrNotFound, id)
	}
	if w.Status != models.WithdrawalPending {
		return nil, fmt.Errorf("%w: withdrawal %s is %s", service.ErrStateConflict, id, w.Status)
	}
	return w, nil
}

func (s *Store) CompleteWithdrawal(_ context.Context, id uuid.UUID, payoutID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.pending(id)
	if err != nil {
		return err
	}
	w.Status = models.WithdrawalCompleted
	w.PayoutID = payoutID
	w.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *Store) RefundWithdrawal(_ context.Context, id uuid.UUID, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.pending(id)
	if err != nil {
		return err
	}
	w.Status = models.WithdrawalFailed
	w.FailureReason = reason
	w.UpdatedAt = time.Now().UTC()
	s.account(w.UserID).Balance += w.Amount
	return nil
}

func (s *Store) ListStaleWithdrawals(_ context.Context, before time.Time) ([]*models.Withdrawal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*models.Withdrawal, 0)
	for _, w := range s.withdrawals {
		if w.Status == models.WithdrawalPending && w.CreatedAt.Before(before) {
			c := *w
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

// Withdrawals возвращает все заявки пользователя, используется в тестах и отладке
func (s *Store) Withdrawals(userID uuid.UUID) []models.Withdrawal {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.Withdrawal, 0)
	for _, w := range s.withdrawals {
		if w.UserID == userID {
			result = append(result, *w)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result
}
