package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/rescue_chain/internal/config"
	"github.com/shenikar/rescue_chain/internal/models"
	"github.com/shenikar/rescue_chain/internal/notify"
	"github.com/shenikar/rescue_chain/internal/repository/memory"
	"github.com/shenikar/rescue_chain/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPayouts запоминает ключи идемпотентности и может отказать
type stubPayouts struct {
	mu   sync.Mutex
	fail error
	keys []string
}

func (p *stubPayouts) CreatePayout(_ context.Context, req models.PayoutRequest) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, req.IdempotencyKey)
	if p.fail != nil {
		return "", p.fail
	}
	return "pout_" + req.IdempotencyKey[:8], nil
}

// stubMedia выдает URL без записи на диск
type stubMedia struct{}

func (stubMedia) Save(_ context.Context, fileName, _ string, _ io.Reader) (string, error) {
	return "/media/" + uuid.NewString() + "-" + fileName, nil
}

type engine struct {
	store         *memory.Store
	notifications *memory.NotificationStore
	payouts       *stubPayouts
	incidents     service.IncidentService
	incentives    service.IncentiveService
	inbox         service.NotificationService
}

func newEngine(t *testing.T, multi bool) *engine {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		MultiVolunteer:            multi,
		MinWithdrawal:             1000,
		WithdrawalStep:            1000,
		IncentiveUnitsPerCurrency: 100,
		PayoutCurrency:            "INR",
		ReconcileAfter:            time.Nanosecond,
	}

	e := &engine{
		store:         memory.NewStore(),
		notifications: memory.NewNotificationStore(),
		payouts:       &stubPayouts{},
	}
	sink := notify.NewDirectSink(e.notifications)
	e.incentives = service.NewIncentiveService(e.store, e.payouts, sink, logger, cfg)
	e.incidents = service.NewIncidentService(e.store, e.incentives, sink, stubMedia{}, logger, cfg)
	e.inbox = service.NewNotificationService(e.notifications, logger)
	return e
}

func (e *engine) report(t *testing.T, reporter uuid.UUID, severity models.Severity) *models.Incident {
	t.Helper()
	incident, err := e.incidents.Report(context.Background(), models.Actor{ID: reporter}, models.ReportDetails{
		Type:        models.TypeFlood,
		Severity:    severity,
		Priority:    models.PriorityHighest,
		Description: "Вода поднялась до второго этажа",
		Location:    "Chennai",
		Contact:     models.Contact{Email: "victim@example.com"},
	})
	require.NoError(t, err)
	return incident
}

// fund начисляет баланс через подтвержденные инциденты
func (e *engine) fund(t *testing.T, volunteer uuid.UUID, critical int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < critical; i++ {
		reporter := uuid.New()
		incident := e.report(t, reporter, models.SeverityCritical)
		_, err := e.incidents.Volunteer(ctx, incident.ID, models.Actor{ID: volunteer})
		require.NoError(t, err)
		_, err = e.incidents.ApproveCompletion(ctx, incident.ID, models.Actor{ID: reporter})
		require.NoError(t, err)
	}
}

func TestLifecycle_HappyPath(t *testing.T) {
	e := newEngine(t, false)
	ctx := context.Background()
	reporter, volunteer := uuid.New(), uuid.New()

	incident := e.report(t, reporter, models.SeverityHigh)

	_, err := e.incidents.Volunteer(ctx, incident.ID, models.Actor{ID: volunteer, Name: "Asha"})
	require.NoError(t, err)
	_, err = e.incidents.MarkVolunteerCompleted(ctx, incident.ID, models.Actor{ID: volunteer})
	require.NoError(t, err)
	approved, err := e.incidents.ApproveCompletion(ctx, incident.ID, models.Actor{ID: reporter})
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, approved.Status)
	assert.True(t, approved.VictimApproval)

	stored, err := e.store.GetByID(ctx, incident.ID)
	require.NoError(t, err)
	actions := make([]models.HistoryAction, 0, len(stored.History))
	for i, h := range stored.History {
		actions = append(actions, h.Action)
		if i > 0 {
			assert.False(t, h.Timestamp.Before(stored.History[i-1].Timestamp), "журнал упорядочен по времени")
		}
	}
	assert.Equal(t, []models.HistoryAction{models.ActionReported, models.ActionVolunteered, models.ActionCompleted, models.ActionApproved}, actions)

	balance, err := e.incentives.Balance(ctx, volunteer)
	require.NoError(t, err)
	assert.Equal(t, int64(30), balance)

	reporterInbox, err := e.inbox.List(ctx, reporter, 0)
	require.NoError(t, err)
	require.Len(t, reporterInbox, 2)
	assert.Equal(t, "Asha has been assigned to help with your emergency.", reporterInbox[1].Message)

	volunteerInbox, err := e.inbox.List(ctx, volunteer, 0)
	require.NoError(t, err)
	require.Len(t, volunteerInbox, 2)
	assert.Equal(t, "You have been credited with 30 incentives for your help.", volunteerInbox[0].Message)

	history, err := e.incidents.VolunteerHistory(ctx, volunteer)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, int64(30), history[0].IncentivesEarned)
}

func TestLifecycle_ConcurrentVolunteersHaveSingleWinner(t *testing.T) {
	e := newEngine(t, false)
	ctx := context.Background()
	incident := e.report(t, uuid.New(), models.SeverityMedium)

	const contenders = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		winners   int
		conflicts int
	)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.incidents.Volunteer(ctx, incident.ID, models.Actor{ID: uuid.New()})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners++
			case errors.Is(err, service.ErrStateConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
	assert.Equal(t, contenders-1, conflicts)

	stored, err := e.store.GetByID(ctx, incident.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Volunteers, 1)
	assert.Equal(t, models.StatusInProgress, stored.Status)
}

func TestLifecycle_ApproveTwiceCreditsOnce(t *testing.T) {
	e := newEngine(t, false)
	ctx := context.Background()
	reporter, volunteer := uuid.New(), uuid.New()
	incident := e.report(t, reporter, models.SeverityCritical)

	_, err := e.incidents.Volunteer(ctx, incident.ID, models.Actor{ID: volunteer})
	require.NoError(t, err)
	_, err = e.incidents.ApproveCompletion(ctx, incident.ID, models.Actor{ID: reporter})
	require.NoError(t, err)
	_, err = e.incidents.ApproveCompletion(ctx, incident.ID, models.Actor{ID: reporter})
	assert.ErrorIs(t, err, service.ErrStateConflict)

	balance, err := e.incentives.Balance(ctx, volunteer)
	require.NoError(t, err)
	assert.Equal(t, int64(50), balance)

	contributions, err := e.incentives.Contributions(ctx, volunteer)
	require.NoError(t, err)
	assert.Len(t, contributions, 1)
}

func TestLifecycle_RetriedCreditIsIdempotent(t *testing.T) {
	e := newEngine(t, false)
	ctx := context.Background()
	volunteer := uuid.New()
	incident := e.report(t, uuid.New(), models.SeverityHigh)
	claimed, err := e.incidents.Volunteer(ctx, incident.ID, models.Actor{ID: volunteer})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		amount, err := e.incentives.CreditForApproval(ctx, claimed, volunteer)
		require.NoError(t, err)
		assert.Equal(t, int64(30), amount)
	}

	balance, err := e.incentives.Balance(ctx, volunteer)
	require.NoError(t, err)
	assert.Equal(t, int64(30), balance)
}

func TestLifecycle_MultiVolunteerCriticalCreditsEach(t *testing.T) {
	e := newEngine(t, true)
	ctx := context.Background()
	reporter := uuid.New()
	volunteers := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	incident := e.report(t, reporter, models.SeverityCritical)

	for _, v := range volunteers {
		_, err := e.incidents.Volunteer(ctx, incident.ID, models.Actor{ID: v})
		require.NoError(t, err)
	}
	_, err := e.incidents.Volunteer(ctx, incident.ID, models.Actor{ID: volunteers[0]})
	assert.ErrorIs(t, err, service.ErrStateConflict, "повторная запись того же волонтера")

	approved, err := e.incidents.ApproveCompletion(ctx, incident.ID, models.Actor{ID: reporter})
	require.NoError(t, err)
	require.Len(t, approved.Volunteers, 3)

	var total int64
	for i, v := range volunteers {
		assert.Equal(t, v, approved.Volunteers[i].VolunteerID, "порядок ростера - порядок записи")
		balance, err := e.incentives.Balance(ctx, v)
		require.NoError(t, err)
		assert.Equal(t, int64(50), balance)
		total += balance
	}
	assert.Equal(t, int64(150), total)
}

func TestLifecycle_NonReporterCannotApprove(t *testing.T) {
	e := newEngine(t, false)
	ctx := context.Background()
	volunteer := uuid.New()
	incident := e.report(t, uuid.New(), models.SeverityLow)
	_, err := e.incidents.Volunteer(ctx, incident.ID, models.Actor{ID: volunteer})
	require.NoError(t, err)

	_, err = e.incidents.ApproveCompletion(ctx, incident.ID, models.Actor{ID: volunteer})
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = e.incidents.MarkVolunteerCompleted(ctx, incident.ID, models.Actor{ID: uuid.New()})
	assert.ErrorIs(t, err, service.ErrForbidden)

	balance, err := e.incentives.Balance(ctx, volunteer)
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestAttachMedia_ConcurrentUploadsRespectLimit(t *testing.T) {
	e := newEngine(t, false)
	ctx := context.Background()
	reporter := uuid.New()
	incident := e.report(t, reporter, models.SeverityHigh)

	uploads := func() []models.Upload {
		files := make([]models.Upload, 3)
		for i := range files {
			files[i] = models.Upload{FileName: "photo.jpg", ContentType: "image/jpeg", Body: strings.NewReader("jpeg")}
		}
		return files
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.incidents.AttachMedia(ctx, incident.ID, models.Actor{ID: reporter}, uploads())
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, service.ErrValidation)
			failures++
		}
	}
	assert.Equal(t, 1, failures)
	stored, err := e.incidents.GetIncident(ctx, incident.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Media, 3)
}

func TestWithdraw_FloorsToStep(t *testing.T) {
	e := newEngine(t, false)
	ctx := context.Background()
	volunteer := uuid.New()
	e.fund(t, volunteer, 50) // 2500
	_, err := e.incentives.SavePayoutDetails(ctx, volunteer, models.PayoutDetails{UPIID: "asha@okaxis"})
	require.NoError(t, err)

	w, err := e.incentives.Withdraw(ctx, volunteer, models.MethodUPI, "")
	require.NoError(t, err)

	assert.Equal(t, int64(2000), w.Amount)
	assert.Equal(t, int64(2000), w.CurrencyAmount)
	assert.Equal(t, models.WithdrawalCompleted, w.Status)
	balance, err := e.incentives.Balance(ctx, volunteer)
	require.NoError(t, err)
	assert.Equal(t, int64(500), balance)
}

func TestWithdraw_BelowMinimum(t *testing.T) {
	e := newEngine(t, false)
	ctx := context.Background()
	volunteer := uuid.New()
	e.fund(t, volunteer, 18) // 900
	_, err := e.incentives.SavePayoutDetails(ctx, volunteer, models.PayoutDetails{AccountNumber: "0012", IFSCCode: "hdfc0001"})
	require.NoError(t, err)

	_, err = e.incentives.Withdraw(ctx, volunteer, models.MethodBank, "")
	assert.ErrorIs(t, err, service.ErrInsufficientFunds)

	balance, err := e.incentives.Balance(ctx, volunteer)
	require.NoError(t, err)
	assert.Equal(t, int64(900), balance)
	assert.Empty(t, e.payouts.keys)
}

func TestWithdraw_PayoutFailureRestoresBalance(t *testing.T) {
	e := newEngine(t, false)
	ctx := context.Background()
	volunteer := uuid.New()
	e.fund(t, volunteer, 30) // 1500
	_, err := e.incentives.SavePayoutDetails(ctx, volunteer, models.PayoutDetails{WalletAddress: "0xabc"})
	require.NoError(t, err)
	e.payouts.fail = errors.New("provider returned 400: wallet frozen")

	_, err = e.incentives.Withdraw(ctx, volunteer, models.MethodWallet, "")
	assert.ErrorIs(t, err, service.ErrPayoutFailed)

	balance, err := e.incentives.Balance(ctx, volunteer)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), balance)

	withdrawals := e.store.Withdrawals(volunteer)
	require.Len(t, withdrawals, 1)
	assert.Equal(t, models.WithdrawalFailed, withdrawals[0].Status)
}

func TestWithdraw_ClientKeyIsIdempotent(t *testing.T) {
	e := newEngine(t, false)
	ctx := context.Background()
	volunteer := uuid.New()
	e.fund(t, volunteer, 60) // 3000
	_, err := e.incentives.SavePayoutDetails(ctx, volunteer, models.PayoutDetails{UPIID: "asha@okaxis"})
	require.NoError(t, err)

	first, err := e.incentives.Withdraw(ctx, volunteer, models.MethodUPI, "client-key-7")
	require.NoError(t, err)
	second, err := e.incentives.Withdraw(ctx, volunteer, models.MethodUPI, "client-key-7")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, e.payouts.keys, 1)
	balance, err := e.incentives.Balance(ctx, volunteer)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestWithdraw_SameClientKeyForDifferentUsers(t *testing.T) {
	e := newEngine(t, false)
	ctx := context.Background()
	first, second := uuid.New(), uuid.New()
	for _, user := range []uuid.UUID{first, second} {
		e.fund(t, user, 20) // 1000
		_, err := e.incentives.SavePayoutDetails(ctx, user, models.PayoutDetails{UPIID: "shared@okaxis"})
		require.NoError(t, err)
	}

	a, err := e.incentives.Withdraw(ctx, first, models.MethodUPI, "shared-key-0001")
	require.NoError(t, err)
	b, err := e.incentives.Withdraw(ctx, second, models.MethodUPI, "shared-key-0001")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.IdempotencyKey, b.IdempotencyKey)
	assert.Equal(t, second, b.UserID)
	require.Len(t, e.payouts.keys, 2)
	assert.NotEqual(t, e.payouts.keys[0], e.payouts.keys[1])
	balance, err := e.incentives.Balance(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestWithdraw_SameKeyRetriesAfterPayoutFailure(t *testing.T) {
	e := newEngine(t, false)
	ctx := context.Background()
	volunteer := uuid.New()
	e.fund(t, volunteer, 20) // 1000
	_, err := e.incentives.SavePayoutDetails(ctx, volunteer, models.PayoutDetails{UPIID: "asha@okaxis"})
	require.NoError(t, err)

	e.payouts.fail = errors.New("provider returned 503")
	_, err = e.incentives.Withdraw(ctx, volunteer, models.MethodUPI, "client-key-9")
	require.ErrorIs(t, err, service.ErrPayoutFailed)
	assert.True(t, service.IsRetryable(err))

	e.payouts.fail = nil
	w, err := e.incentives.Withdraw(ctx, volunteer, models.MethodUPI, "client-key-9")
	require.NoError(t, err)

	assert.Equal(t, models.WithdrawalCompleted, w.Status)
	require.Len(t, e.payouts.keys, 2)
	assert.NotEqual(t, e.payouts.keys[0], e.payouts.keys[1])
	balance, err := e.incentives.Balance(ctx, volunteer)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	// повтор после успеха возвращает ту же заявку без новой выплаты
	again, err := e.incentives.Withdraw(ctx, volunteer, models.MethodUPI, "client-key-9")
	require.NoError(t, err)
	assert.Equal(t, w.ID, again.ID)
	assert.Len(t, e.payouts.keys, 2)
}

func TestBalanceNeverNegative_ConcurrentWithdrawals(t *testing.T) {
	e := newEngine(t, false)
	ctx := context.Background()
	volunteer := uuid.New()
	e.fund(t, volunteer, 20) // 1000
	_, err := e.incentives.SavePayoutDetails(ctx, volunteer, models.PayoutDetails{UPIID: "asha@okaxis"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = e.incentives.Withdraw(ctx, volunteer, models.MethodUPI, "")
		}()
	}
	wg.Wait()

	balance, err := e.incentives.Balance(ctx, volunteer)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
	completed := 0
	for _, w := range e.store.Withdrawals(volunteer) {
		if w.Status == models.WithdrawalCompleted {
			completed++
		}
	}
	assert.Equal(t, 1, completed)
}

func TestReconcile_SettlesStalePending(t *testing.T) {
	e := newEngine(t, false)
	ctx := context.Background()
	volunteer := uuid.New()
	e.fund(t, volunteer, 20) // 1000

	// заявка, оставшаяся в pending после падения процесса между списанием и выплатой
	stale := &models.Withdrawal{
		ID:             uuid.New(),
		UserID:         volunteer,
		Amount:         1000,
		CurrencyAmount: 1000,
		Currency:       "INR",
		Destination:    models.Destination{Method: models.MethodUPI, UPIID: "asha@okaxis"},
		IdempotencyKey: uuid.NewString(),
		Status:         models.WithdrawalPending,
		CreatedAt:      time.Now().Add(-time.Hour),
	}
	require.NoError(t, e.store.Debit(ctx, stale))

	settled, err := e.incentives.ReconcilePendingWithdrawals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, settled)
	assert.Equal(t, []string{stale.IdempotencyKey}, e.payouts.keys)

	withdrawals := e.store.Withdrawals(volunteer)
	require.Len(t, withdrawals, 1)
	assert.Equal(t, models.WithdrawalCompleted, withdrawals[0].Status)
}

func TestNotifications_MarkRead(t *testing.T) {
	e := newEngine(t, false)
	ctx := context.Background()
	reporter := uuid.New()
	incident := e.report(t, reporter, models.SeverityLow)
	_, err := e.incidents.Volunteer(ctx, incident.ID, models.Actor{ID: uuid.New()})
	require.NoError(t, err)

	inbox, err := e.inbox.List(ctx, reporter, 10)
	require.NoError(t, err)
	require.Len(t, inbox, 1)

	_, err = e.inbox.MarkRead(ctx, uuid.New(), inbox[0].ID)
	assert.ErrorIs(t, err, service.ErrNotFound, "чужое уведомление")

	n, err := e.inbox.MarkRead(ctx, reporter, inbox[0].ID)
	require.NoError(t, err)
	assert.True(t, n.Read)

	updated, err := e.inbox.MarkAllRead(ctx, reporter, nil)
	require.NoError(t, err)
	assert.Zero(t, updated)
}
