package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/rescue_chain/internal/config"
	"github.com/shenikar/rescue_chain/internal/models"
	"github.com/shenikar/rescue_chain/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type incidentMocks struct {
	repo       *mocks.MockIncidentRepository
	incentives *mocks.MockIncentiveCrediter
	notifier   *mocks.MockNotifier
	media      *mocks.MockMediaStore
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// newTestIncidentService - вспомогательная функция для создания инстанса сервиса с моками.
func newTestIncidentService(t *testing.T, cfg *config.Config) (*incidentService, incidentMocks) {
	ctrl := gomock.NewController(t)
	m := incidentMocks{
		repo:       mocks.NewMockIncidentRepository(ctrl),
		incentives: mocks.NewMockIncentiveCrediter(ctrl),
		notifier:   mocks.NewMockNotifier(ctrl),
		media:      mocks.NewMockMediaStore(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	if cfg == nil {
		cfg = &config.Config{}
	}

	svc := NewIncidentService(m.repo, m.incentives, m.notifier, m.media, logger, cfg).(*incidentService)
	svc.now = func() time.Time { return fixedNow }
	return svc, m
}

func validDetails() models.ReportDetails {
	return models.ReportDetails{
		Type:        models.TypeFire,
		Severity:    models.SeverityHigh,
		Priority:    models.PriorityHighest,
		Description: "Пожар в подъезде, третий этаж",
		Location:    "Chennai, Anna Nagar",
		Contact:     models.Contact{Phone: "+919876543210"},
	}
}

func pendingIncident(reporter uuid.UUID) *models.Incident {
	return &models.Incident{
		ID:         uuid.New(),
		ReporterID: reporter,
		Type:       models.TypeFire,
		Severity:   models.SeverityHigh,
		Status:     models.StatusPending,
		Version:    1,
		History:    []models.HistoryEntry{{Action: models.ActionReported, ActorID: reporter, Timestamp: fixedNow}},
	}
}

func inProgressIncident(reporter uuid.UUID, volunteers ...uuid.UUID) *models.Incident {
	incident := pendingIncident(reporter)
	incident.Status = models.StatusInProgress
	for _, v := range volunteers {
		incident.Volunteers = append(incident.Volunteers, models.VolunteerAssignment{VolunteerID: v, Status: models.AssignmentAssigned, AssignedAt: fixedNow})
		incident.History = append(incident.History, models.HistoryEntry{Action: models.ActionVolunteered, ActorID: v, Timestamp: fixedNow})
		incident.Version++
	}
	return incident
}

func TestReport_Success(t *testing.T) {
	// Подготовка
	svc, m := newTestIncidentService(t, nil)
	ctx := context.Background()
	reporter := models.Actor{ID: uuid.New(), Role: models.RoleUser}

	// Ожидания
	var saved *models.Incident
	m.repo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, i *models.Incident) error {
			saved = i
			return nil
		}).
		Times(1)

	// Действие
	incident, err := svc.Report(ctx, reporter, validDetails())

	// Проверки
	require.NoError(t, err)
	assert.Same(t, saved, incident)
	assert.NotEqual(t, uuid.Nil, incident.ID)
	assert.Equal(t, models.StatusPending, incident.Status)
	assert.False(t, incident.VictimApproval)
	assert.Empty(t, incident.Volunteers)
	require.Len(t, incident.History, 1)
	assert.Equal(t, models.ActionReported, incident.History[0].Action)
	assert.Equal(t, reporter.ID, incident.History[0].ActorID)
	assert.Equal(t, fixedNow, incident.OccurredAt)
}

func TestReport_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *models.ReportDetails)
	}{
		{name: "missing type", mutate: func(d *models.ReportDetails) { d.Type = "" }},
		{name: "unknown type", mutate: func(d *models.ReportDetails) { d.Type = "Volcano" }},
		{name: "missing severity", mutate: func(d *models.ReportDetails) { d.Severity = "" }},
		{name: "missing priority", mutate: func(d *models.ReportDetails) { d.Priority = "" }},
		{name: "blank description", mutate: func(d *models.ReportDetails) { d.Description = "      " }},
		{name: "no contact", mutate: func(d *models.ReportDetails) { d.Contact = models.Contact{} }},
		{name: "malformed email", mutate: func(d *models.ReportDetails) { d.Contact = models.Contact{Email: "not-an-email"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Подготовка
			svc, m := newTestIncidentService(t, nil)
			details := validDetails()
			tt.mutate(&details)

			// Ожидания
			m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

			// Действие
			incident, err := svc.Report(context.Background(), models.Actor{ID: uuid.New()}, details)

			// Проверки
			require.Error(t, err)
			assert.Nil(t, incident)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestGetIncident_Success_FromCache(t *testing.T) {
	// Подготовка
	svc, m := newTestIncidentService(t, nil)
	ctx := context.Background()
	expected := pendingIncident(uuid.New())

	// Ожидания
	m.repo.EXPECT().GetIncidentFromCache(ctx, expected.ID).Return(expected, nil).Times(1)
	m.repo.EXPECT().GetByID(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	incident, err := svc.GetIncident(ctx, expected.ID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, incident)
}

func TestGetIncident_Success_FromDB(t *testing.T) {
	// Подготовка
	svc, m := newTestIncidentService(t, nil)
	ctx := context.Background()
	expected := pendingIncident(uuid.New())

	// Ожидания
	// 1. Промах кеша
	m.repo.EXPECT().GetIncidentFromCache(ctx, expected.ID).Return(nil, nil).Times(1)
	// 2. Попадание в БД
	m.repo.EXPECT().GetByID(ctx, expected.ID).Return(expected, nil).Times(1)
	// 3. Запись в кеш
	m.repo.EXPECT().SetIncidentCache(ctx, expected).Return(nil).Times(1)

	// Действие
	incident, err := svc.GetIncident(ctx, expected.ID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, incident)
}

func TestGetIncident_NotFound(t *testing.T) {
	// Подготовка
	svc, m := newTestIncidentService(t, nil)
	ctx := context.Background()
	id := uuid.New()

	// Ожидания
	m.repo.EXPECT().GetIncidentFromCache(ctx, id).Return(nil, errors.New("redis down")).Times(1)
	m.repo.EXPECT().GetByID(ctx, id).Return(nil, fmt.Errorf("%w: incident %s", ErrNotFound, id)).Times(1)

	// Действие
	incident, err := svc.GetIncident(ctx, id)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, incident)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorContains(t, err, "could not get incident")
}

func TestVolunteer_Success(t *testing.T) {
	// Подготовка
	svc, m := newTestIncidentService(t, nil)
	ctx := context.Background()
	reporter := uuid.New()
	incident := pendingIncident(reporter)
	volunteer := models.Actor{ID: uuid.New(), Name: "Ravi"}

	// Ожидания
	m.repo.EXPECT().GetByID(ctx, incident.ID).Return(incident, nil).Times(1)
	m.repo.EXPECT().
		ClaimVolunteer(ctx, incident.ID, 1, models.StatusInProgress, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, _ int, _ models.IncidentStatus, a models.VolunteerAssignment, e models.HistoryEntry) error {
			assert.Equal(t, volunteer.ID, a.VolunteerID)
			assert.Equal(t, models.AssignmentAssigned, a.Status)
			assert.Equal(t, models.ActionVolunteered, e.Action)
			return nil
		}).
		Times(1)
	m.repo.EXPECT().InvalidateIncidentCache(ctx, incident.ID).Return(nil).Times(1)
	m.notifier.EXPECT().Notify(ctx, reporter, "Ravi has been assigned to help with your emergency.").Return(nil).Times(1)

	// Действие
	result, err := svc.Volunteer(ctx, incident.ID, volunteer)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, result.Status)
	require.Len(t, result.Volunteers, 1)
	assert.Equal(t, 2, result.Version)
	assert.Equal(t, models.ActionVolunteered, result.History[len(result.History)-1].Action)
}

func TestVolunteer_NotificationFailureDoesNotFailTransition(t *testing.T) {
	// Подготовка
	svc, m := newTestIncidentService(t, nil)
	ctx := context.Background()
	incident := pendingIncident(uuid.New())

	// Ожидания
	m.repo.EXPECT().GetByID(ctx, incident.ID).Return(incident, nil)
	m.repo.EXPECT().ClaimVolunteer(ctx, incident.ID, 1, models.StatusInProgress, gomock.Any(), gomock.Any()).Return(nil)
	m.repo.EXPECT().InvalidateIncidentCache(ctx, incident.ID).Return(errors.New("redis down"))
	m.notifier.EXPECT().Notify(ctx, incident.ReporterID, gomock.Any()).Return(errors.New("queue unavailable"))

	// Действие
	result, err := svc.Volunteer(ctx, incident.ID, models.Actor{ID: uuid.New()})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, result.Status)
}

func TestVolunteer_Rejections(t *testing.T) {
	reporter := uuid.New()
	existing := uuid.New()

	tests := []struct {
		name     string
		incident *models.Incident
		actor    uuid.UUID
		multi    bool
		wantErr  error
	}{
		{name: "reporter volunteers", incident: pendingIncident(reporter), actor: reporter, wantErr: ErrForbidden},
		{name: "already in progress", incident: inProgressIncident(reporter, existing), actor: uuid.New(), wantErr: ErrStateConflict},
		{name: "duplicate volunteer with multi roster", incident: inProgressIncident(reporter, existing), actor: existing, multi: true, wantErr: ErrStateConflict},
		{name: "completed", incident: func() *models.Incident {
			i := inProgressIncident(reporter, existing)
			i.Status = models.StatusCompleted
			return i
		}(), actor: uuid.New(), multi: true, wantErr: ErrStateConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Подготовка
			svc, m := newTestIncidentService(t, &config.Config{MultiVolunteer: tt.multi})
			ctx := context.Background()

			// Ожидания
			m.repo.EXPECT().GetByID(ctx, tt.incident.ID).Return(tt.incident, nil)
			m.repo.EXPECT().ClaimVolunteer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			// Действие
			_, err := svc.Volunteer(ctx, tt.incident.ID, models.Actor{ID: tt.actor})

			// Проверки
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVolunteer_MultiVolunteerJoinsInProgress(t *testing.T) {
	// Подготовка
	svc, m := newTestIncidentService(t, &config.Config{MultiVolunteer: true})
	ctx := context.Background()
	incident := inProgressIncident(uuid.New(), uuid.New())
	second := uuid.New()

	// Ожидания
	m.repo.EXPECT().GetByID(ctx, incident.ID).Return(incident, nil)
	m.repo.EXPECT().ClaimVolunteer(ctx, incident.ID, incident.Version, models.StatusInProgress, gomock.Any(), gomock.Any()).Return(nil)
	m.repo.EXPECT().InvalidateIncidentCache(ctx, incident.ID).Return(nil)
	m.notifier.EXPECT().Notify(ctx, incident.ReporterID, gomock.Any()).Return(nil)

	// Действие
	result, err := svc.Volunteer(ctx, incident.ID, models.Actor{ID: second})

	// Проверки
	require.NoError(t, err)
	require.Len(t, result.Volunteers, 2)
	assert.Equal(t, second, result.Volunteers[1].VolunteerID)
}

func TestVolunteer_LostRace(t *testing.T) {
	// Подготовка
	svc, m := newTestIncidentService(t, nil)
	ctx := context.Background()
	incident := pendingIncident(uuid.New())

	// Ожидания
	m.repo.EXPECT().GetByID(ctx, incident.ID).Return(incident, nil)
	m.repo.EXPECT().
		ClaimVolunteer(ctx, incident.ID, 1, models.StatusInProgress, gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("%w: incident modified concurrently", ErrStateConflict))
	m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	_, err := svc.Volunteer(ctx, incident.ID, models.Actor{ID: uuid.New()})

	// Проверки
	assert.ErrorIs(t, err, ErrStateConflict)
	assert.True(t, IsRetryable(err))
}

func TestMarkVolunteerCompleted_Success(t *testing.T) {
	// Подготовка
	svc, m := newTestIncidentService(t, nil)
	ctx := context.Background()
	volunteer := uuid.New()
	incident := inProgressIncident(uuid.New(), volunteer)

	// Ожидания
	m.repo.EXPECT().GetByID(ctx, incident.ID).Return(incident, nil)
	m.repo.EXPECT().
		UpdateAssignment(ctx, incident.ID, incident.Version, gomock.Any(), gomock.Not(gomock.Nil())).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, _ int, a models.VolunteerAssignment, e *models.HistoryEntry) error {
			assert.Equal(t, models.AssignmentCompleted, a.Status)
			require.NotNil(t, a.CompletedAt)
			assert.Equal(t, fixedNow, *a.CompletedAt)
			assert.Equal(t, models.ActionCompleted, e.Action)
			return nil
		})
	m.repo.EXPECT().InvalidateIncidentCache(ctx, incident.ID).Return(nil)
	m.notifier.EXPECT().
		Notify(ctx, incident.ReporterID, gomock.Cond(func(msg string) bool { return strings.Contains(msg, "Please review and approve") })).
		Return(nil)

	// Действие
	result, err := svc.MarkVolunteerCompleted(ctx, incident.ID, models.Actor{ID: volunteer})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, result.Status, "статус инцидента не меняется до подтверждения")
	a, ok := result.Assignment(volunteer)
	require.True(t, ok)
	assert.Equal(t, models.AssignmentCompleted, a.Status)
}

func TestMarkVolunteerCompleted_NotOnRoster(t *testing.T) {
	// Подготовка
	svc, m := newTestIncidentService(t, nil)
	ctx := context.Background()
	incident := inProgressIncident(uuid.New(), uuid.New())

	// Ожидания
	m.repo.EXPECT().GetByID(ctx, incident.ID).Return(incident, nil)
	m.repo.EXPECT().UpdateAssignment(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	_, err := svc.MarkVolunteerCompleted(ctx, incident.ID, models.Actor{ID: uuid.New()})

	// Проверки
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMarkVolunteerCompleted_AlreadyCompleted(t *testing.T) {
	// Подготовка
	svc, m := newTestIncidentService(t, nil)
	ctx := context.Background()
	volunteer := uuid.New()
	incident := inProgressIncident(uuid.New(), volunteer)
	incident.Volunteers[0].Status = models.AssignmentCompleted

	// Ожидания
	m.repo.EXPECT().GetByID(ctx, incident.ID).Return(incident, nil)

	// Действие
	_, err := svc.MarkVolunteerCompleted(ctx, incident.ID, models.Actor{ID: volunteer})

	// Проверки
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestSetVolunteerStatus(t *testing.T) {
	// Подготовка
	svc, m := newTestIncidentService(t, nil)
	ctx := context.Background()
	volunteer := uuid.New()
	incident := inProgressIncident(uuid.New(), volunteer)

	// Ожидания
	m.repo.EXPECT().GetByID(ctx, incident.ID).Return(incident, nil)
	m.repo.EXPECT().UpdateAssignment(ctx, incident.ID, incident.Version, gomock.Any(), nil).Return(nil)
	m.repo.EXPECT().InvalidateIncidentCache(ctx, incident.ID).Return(nil)

	// Действие
	result, err := svc.SetVolunteerStatus(ctx, incident.ID, models.Actor{ID: volunteer}, models.AssignmentCompleted)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, result.Status)
	assert.Len(t, result.History, 2, "смена статуса участия не пишет в журнал")

	_, err = svc.SetVolunteerStatus(ctx, incident.ID, models.Actor{ID: volunteer}, "Cancelled")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestApproveCompletion_CreditsEveryVolunteerInRosterOrder(t *testing.T) {
	// Подготовка
	svc, m := newTestIncidentService(t, nil)
	ctx := context.Background()
	reporter := uuid.New()
	first, second := uuid.New(), uuid.New()
	incident := inProgressIncident(reporter, first, second)
	version := incident.Version

	// Ожидания
	m.repo.EXPECT().GetByID(ctx, incident.ID).Return(incident, nil)
	gomock.InOrder(
		m.incentives.EXPECT().CreditForApproval(ctx, incident, first).Return(int64(30), nil),
		m.incentives.EXPECT().CreditForApproval(ctx, incident, second).Return(int64(30), nil),
		m.repo.EXPECT().Approve(ctx, incident.ID, version, gomock.Any()).Return(nil),
	)
	m.repo.EXPECT().InvalidateIncidentCache(ctx, incident.ID).Return(nil)
	for _, v := range []uuid.UUID{first, second} {
		m.notifier.EXPECT().Notify(ctx, v, "The reporter has approved your help for the emergency.").Return(nil)
		m.notifier.EXPECT().Notify(ctx, v, "You have been credited with 30 incentives for your help.").Return(nil)
	}

	// Действие
	result, err := svc.ApproveCompletion(ctx, incident.ID, models.Actor{ID: reporter})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, result.Status)
	assert.True(t, result.VictimApproval)
	last := result.History[len(result.History)-1]
	assert.Equal(t, models.ActionApproved, last.Action)
	assert.Equal(t, reporter, last.ActorID)
}

func TestApproveCompletion_CreditFailureLeavesIncidentOpen(t *testing.T) {
	// Подготовка
	svc, m := newTestIncidentService(t, nil)
	ctx := context.Background()
	reporter := uuid.New()
	first, second := uuid.New(), uuid.New()
	incident := inProgressIncident(reporter, first, second)

	// Ожидания
	m.repo.EXPECT().GetByID(ctx, incident.ID).Return(incident, nil)
	m.incentives.EXPECT().CreditForApproval(ctx, incident, first).Return(int64(30), nil)
	m.incentives.EXPECT().CreditForApproval(ctx, incident, second).Return(int64(0), errors.New("connection reset"))
	m.repo.EXPECT().Approve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	result, err := svc.ApproveCompletion(ctx, incident.ID, models.Actor{ID: reporter})

	// Проверки
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, models.StatusInProgress, incident.Status)
}

func TestApproveCompletion_Rejections(t *testing.T) {
	reporter := uuid.New()

	completed := inProgressIncident(reporter, uuid.New())
	completed.Status = models.StatusCompleted
	completed.VictimApproval = true

	tests := []struct {
		name     string
		incident *models.Incident
		approver uuid.UUID
		wantErr  error
	}{
		{name: "not the reporter", incident: inProgressIncident(reporter, uuid.New()), approver: uuid.New(), wantErr: ErrForbidden},
		{name: "already completed", incident: completed, approver: reporter, wantErr: ErrStateConflict},
		{name: "still pending", incident: pendingIncident(reporter), approver: reporter, wantErr: ErrStateConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Подготовка
			svc, m := newTestIncidentService(t, nil)
			ctx := context.Background()

			// Ожидания
			m.repo.EXPECT().GetByID(ctx, tt.incident.ID).Return(tt.incident, nil)
			m.incentives.EXPECT().CreditForApproval(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			m.repo.EXPECT().Approve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			// Действие
			_, err := svc.ApproveCompletion(ctx, tt.incident.ID, models.Actor{ID: tt.approver})

			// Проверки
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAttachMedia(t *testing.T) {
	// Подготовка
	svc, m := newTestIncidentService(t, nil)
	ctx := context.Background()
	reporter := uuid.New()
	incident := pendingIncident(reporter)
	uploads := []models.Upload{
		{FileName: "fire.jpg", ContentType: "image/jpeg", Body: strings.NewReader("jpeg")},
	}

	// Ожидания
	m.repo.EXPECT().GetByID(ctx, incident.ID).Return(incident, nil)
	m.media.EXPECT().Save(ctx, "fire.jpg", "image/jpeg", gomock.Any()).Return("/media/abc-fire.jpg", nil)
	m.repo.EXPECT().AddMedia(ctx, incident.ID, []models.MediaFile{{FileName: "fire.jpg", FileType: "image/jpeg", FileURL: "/media/abc-fire.jpg"}}, maxMediaFiles).Return(nil)
	m.repo.EXPECT().InvalidateIncidentCache(ctx, incident.ID).Return(nil)

	// Действие
	result, err := svc.AttachMedia(ctx, incident.ID, models.Actor{ID: reporter}, uploads)

	// Проверки
	require.NoError(t, err)
	require.Len(t, result.Media, 1)
	assert.Equal(t, "/media/abc-fire.jpg", result.Media[0].FileURL)

	_, err = svc.AttachMedia(ctx, incident.ID, models.Actor{ID: reporter}, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAttachMedia_LimitReachedConcurrently(t *testing.T) {
	// Подготовка
	svc, m := newTestIncidentService(t, nil)
	ctx := context.Background()
	reporter := uuid.New()
	incident := pendingIncident(reporter)

	// Ожидания
	m.repo.EXPECT().GetByID(ctx, incident.ID).Return(incident, nil)
	m.media.EXPECT().Save(ctx, "flood.jpg", "image/jpeg", gomock.Any()).Return("/media/def-flood.jpg", nil)
	m.repo.EXPECT().
		AddMedia(ctx, incident.ID, gomock.Any(), maxMediaFiles).
		Return(fmt.Errorf("%w: incident %s can hold at most 5 files", ErrValidation, incident.ID))
	m.repo.EXPECT().InvalidateIncidentCache(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	_, err := svc.AttachMedia(ctx, incident.ID, models.Actor{ID: reporter},
		[]models.Upload{{FileName: "flood.jpg", ContentType: "image/jpeg", Body: strings.NewReader("jpeg")}})

	// Проверки
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAttachMedia_OnlyReporter(t *testing.T) {
	// Подготовка
	svc, m := newTestIncidentService(t, nil)
	ctx := context.Background()
	incident := pendingIncident(uuid.New())

	// Ожидания
	m.repo.EXPECT().GetByID(ctx, incident.ID).Return(incident, nil)
	m.media.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	_, err := svc.AttachMedia(ctx, incident.ID, models.Actor{ID: uuid.New()}, []models.Upload{{FileName: "a.png", Body: strings.NewReader("")}})

	// Проверки
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListIncidents_NormalizesFilter(t *testing.T) {
	// Подготовка
	svc, m := newTestIncidentService(t, nil)
	ctx := context.Background()

	// Ожидания
	m.repo.EXPECT().
		ListIncidents(ctx, models.IncidentFilter{Page: 1, PageSize: 20, Resources: []string{"medicalAid"}}).
		Return([]*models.Incident{}, nil)

	// Действие
	_, err := svc.ListIncidents(ctx, models.IncidentFilter{Resources: []string{"medicalAid"}})
	require.NoError(t, err)

	_, err = svc.ListIncidents(ctx, models.IncidentFilter{Resources: []string{"helicopter"}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.ListIncidents(ctx, models.IncidentFilter{SortBy: "distance"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDashboardStats(t *testing.T) {
	// Подготовка
	svc, m := newTestIncidentService(t, nil)
	ctx := context.Background()
	expected := models.DashboardStats{ActiveEmergencies: 3, ResolvedEmergencies: 7, TotalContributors: 4}

	// Ожидания
	m.repo.EXPECT().GetStats(ctx).Return(expected, nil)

	// Действие
	stats, err := svc.DashboardStats(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, stats)
}
