package service

//go:generate mockgen -source=incident.go -destination=mocks/mock_incident_service.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/rescue_chain/internal/config"
	"github.com/shenikar/rescue_chain/internal/models"
	"github.com/sirupsen/logrus"
)

// IncidentService определяет контракт жизненного цикла инцидента и запросов к нему
type IncidentService interface {
	Report(ctx context.Context, reporter models.Actor, details models.ReportDetails) (*models.Incident, error)
	GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	Volunteer(ctx context.Context, id uuid.UUID, volunteer models.Actor) (*models.Incident, error)
	SetVolunteerStatus(ctx context.Context, id uuid.UUID, volunteer models.Actor, status models.AssignmentStatus) (*models.Incident, error)
	MarkVolunteerCompleted(ctx context.Context, id uuid.UUID, volunteer models.Actor) (*models.Incident, error)
	ApproveCompletion(ctx context.Context, id uuid.UUID, approver models.Actor) (*models.Incident, error)
	AttachMedia(ctx context.Context, id uuid.UUID, reporter models.Actor, uploads []models.Upload) (*models.Incident, error)
	ListIncidents(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error)
	VolunteerHistory(ctx context.Context, volunteerID uuid.UUID) ([]models.VolunteerHistoryItem, error)
	DashboardStats(ctx context.Context) (models.DashboardStats, error)
}

// IncentiveCrediter - часть движка вознаграждений, нужная при подтверждении
type IncentiveCrediter interface {
	CreditForApproval(ctx context.Context, incident *models.Incident, volunteerID uuid.UUID) (int64, error)
}

const maxMediaFiles = 5

type incidentService struct {
	repo       IncidentRepository
	incentives IncentiveCrediter
	notifier   Notifier
	media      MediaStore
	logger     *logrus.Logger
	cfg        *config.Config
	validate   *validator.Validate
	now        func() time.Time
}

func NewIncidentService(repo IncidentRepository, incentives IncentiveCrediter, notifier Notifier, media MediaStore, logger *logrus.Logger, cfg *config.Config) IncidentService {
	return &incidentService{
		repo:       repo,
		incentives: incentives,
		notifier:   notifier,
		media:      media,
		logger:     logger,
		cfg:        cfg,
		validate:   validator.New(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Report регистрирует новый инцидент в статусе Pending
func (s *incidentService) Report(ctx context.Context, reporter models.Actor, details models.ReportDetails) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "incident",
		"method":   "Report",
		"reporter": reporter.ID,
		"type":     details.Type,
	})
	log.Info("Attempting to report a new incident")

	if err := s.validateReport(details); err != nil {
		log.WithError(err).Warn("Incident report rejected")
		return nil, err
	}

	now := s.now()
	occurredAt := details.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}
	incident := &models.Incident{
		ID:               uuid.New(),
		ReporterID:       reporter.ID,
		Type:             details.Type,
		CustomType:       details.CustomType,
		Severity:         details.Severity,
		Priority:         details.Priority,
		Status:           models.StatusPending,
		Description:      strings.TrimSpace(details.Description),
		Location:         strings.TrimSpace(details.Location),
		OccurredAt:       occurredAt,
		Tags:             details.Tags,
		Needs:            details.Needs,
		Contact:          details.Contact,
		EmergencyContact: details.EmergencyContact,
		History:          []models.HistoryEntry{{Action: models.ActionReported, ActorID: reporter.ID, Timestamp: now}},
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return nil, fmt.Errorf("service: could not create incident: %w", err)
	}

	log.WithField("incident_id", incident.ID).Info("Incident reported successfully")
	return incident, nil
}

func (s *incidentService) validateReport(details models.ReportDetails) error {
	if err := s.validate.Struct(details); err != nil {
		return newError(ErrValidation, "%s", err.Error())
	}
	if strings.TrimSpace(details.Description) == "" {
		return newError(ErrValidation, "description is required")
	}
	if !details.HasContact() {
		return newError(ErrValidation, "contact phone or email is required")
	}
	return nil
}

// GetIncident получает инцидент по ID, сначала из кеша
func (s *incidentService) GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
	})
	log.Debug("Fetching incident by ID")

	cached, err := s.repo.GetIncidentFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read incident cache")
	}
	if cached != nil {
		return cached, nil
	}

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.WithError(err).Error("Failed to get incident in repository")
		}
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}

	if err := s.repo.SetIncidentCache(ctx, incident); err != nil {
		log.WithError(err).Warn("Failed to cache incident")
	}
	return incident, nil
}

// load всегда читает из бд: переходы состояния не должны опираться на кеш
func (s *incidentService) load(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}
	return incident, nil
}

// Volunteer закрепляет волонтера за инцидентом
func (s *incidentService) Volunteer(ctx context.Context, id uuid.UUID, volunteer models.Actor) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "incident",
		"method":       "Volunteer",
		"incident_id":  id,
		"volunteer_id": volunteer.ID,
	})
	log.Info("Attempting to volunteer for incident")

	incident, err := s.load(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to load incident for volunteering")
		return nil, err
	}

	if incident.ReporterID == volunteer.ID {
		return nil, newError(ErrForbidden, "reporter cannot volunteer for own incident")
	}
	if incident.HasVolunteer(volunteer.ID) {
		return nil, newError(ErrStateConflict, "volunteer %s already assigned to incident %s", volunteer.ID, id)
	}

	nextStatus := incident.Status
	switch {
	case incident.Status == models.StatusPending:
		nextStatus = models.StatusInProgress
	case incident.Status == models.StatusInProgress && s.cfg.MultiVolunteer:
		// к инциденту в работе присоединяется еще один волонтер, статус не меняется
	default:
		log.WithField("status", incident.Status).Warn("Incident is not open for volunteering")
		return nil, newError(ErrStateConflict, "incident %s is %s", id, incident.Status)
	}

	now := s.now()
	assignment := models.VolunteerAssignment{
		VolunteerID: volunteer.ID,
		Status:      models.AssignmentAssigned,
		AssignedAt:  now,
		UpdatedAt:   now,
	}
	entry := models.HistoryEntry{Action: models.ActionVolunteered, ActorID: volunteer.ID, Timestamp: now}

	if err := s.repo.ClaimVolunteer(ctx, id, incident.Version, nextStatus, assignment, entry); err != nil {
		if errors.Is(err, ErrStateConflict) {
			log.WithError(err).Warn("Lost volunteering race")
		} else {
			log.WithError(err).Error("Failed to save volunteer claim")
		}
		return nil, fmt.Errorf("service: could not volunteer: %w", err)
	}

	incident.Status = nextStatus
	incident.Volunteers = append(incident.Volunteers, assignment)
	incident.History = append(incident.History, entry)
	incident.Version++
	incident.UpdatedAt = now
	s.invalidate(ctx, log, id)

	s.notify(ctx, log, incident.ReporterID, fmt.Sprintf("%s has been assigned to help with your emergency.", volunteer.DisplayName()))

	log.Info("Volunteer assigned successfully")
	return incident, nil
}

// SetVolunteerStatus меняет статус участия волонтера, статус инцидента не меняется
func (s *incidentService) SetVolunteerStatus(ctx context.Context, id uuid.UUID, volunteer models.Actor, status models.AssignmentStatus) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "incident",
		"method":       "SetVolunteerStatus",
		"incident_id":  id,
		"volunteer_id": volunteer.ID,
		"status":       status,
	})

	if status != models.AssignmentAssigned && status != models.AssignmentCompleted {
		return nil, newError(ErrValidation, "unknown volunteer status %q", status)
	}

	incident, assignment, err := s.loadAssignment(ctx, id, volunteer.ID)
	if err != nil {
		log.WithError(err).Warn("Volunteer status update rejected")
		return nil, err
	}

	now := s.now()
	assignment.Status = status
	assignment.UpdatedAt = now
	if status == models.AssignmentCompleted && assignment.CompletedAt == nil {
		assignment.CompletedAt = &now
	}
	if status == models.AssignmentAssigned {
		assignment.CompletedAt = nil
	}

	if err := s.repo.UpdateAssignment(ctx, id, incident.Version, *assignment, nil); err != nil {
		log.WithError(err).Warn("Failed to update volunteer status")
		return nil, fmt.Errorf("service: could not update volunteer status: %w", err)
	}
	incident.Version++
	incident.UpdatedAt = now
	s.invalidate(ctx, log, id)

	log.Info("Volunteer status updated")
	return incident, nil
}

// MarkVolunteerCompleted отмечает, что волонтер закончил работу и ждет подтверждения
func (s *incidentService) MarkVolunteerCompleted(ctx context.Context, id uuid.UUID, volunteer models.Actor) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "incident",
		"method":       "MarkVolunteerCompleted",
		"incident_id":  id,
		"volunteer_id": volunteer.ID,
	})
	log.Info("Attempting to mark volunteer work completed")

	incident, assignment, err := s.loadAssignment(ctx, id, volunteer.ID)
	if err != nil {
		log.WithError(err).Warn("Completion rejected")
		return nil, err
	}
	if assignment.Status == models.AssignmentCompleted {
		return nil, newError(ErrStateConflict, "volunteer %s already completed incident %s", volunteer.ID, id)
	}

	now := s.now()
	assignment.Status = models.AssignmentCompleted
	assignment.UpdatedAt = now
	assignment.CompletedAt = &now
	entry := models.HistoryEntry{Action: models.ActionCompleted, ActorID: volunteer.ID, Timestamp: now}

	if err := s.repo.UpdateAssignment(ctx, id, incident.Version, *assignment, &entry); err != nil {
		log.WithError(err).Warn("Failed to save volunteer completion")
		return nil, fmt.Errorf("service: could not mark completed: %w", err)
	}
	incident.History = append(incident.History, entry)
	incident.Version++
	incident.UpdatedAt = now
	s.invalidate(ctx, log, id)

	s.notify(ctx, log, incident.ReporterID, fmt.Sprintf("%s has completed the task for your emergency. Please review and approve.", volunteer.DisplayName()))

	log.Info("Volunteer work marked completed")
	return incident, nil
}

// loadAssignment проверяет, что вызывающий есть в ростере и что ростер еще можно менять
func (s *incidentService) loadAssignment(ctx context.Context, id, volunteerID uuid.UUID) (*models.Incident, *models.VolunteerAssignment, error) {
	incident, err := s.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	assignment, ok := incident.Assignment(volunteerID)
	if !ok {
		return nil, nil, newError(ErrForbidden, "volunteer %s is not assigned to incident %s", volunteerID, id)
	}
	if incident.Status.IsTerminal() {
		return nil, nil, newError(ErrStateConflict, "incident %s is already completed", id)
	}
	return incident, assignment, nil
}

// ApproveCompletion подтверждает выполнение и начисляет вознаграждение каждому волонтеру ростера.
// Начисления идемпотентны и выполняются до фиксации перехода: при сбое инцидент остается In Progress,
// а повторный вызов доначисляет только недостающее.
func (s *incidentService) ApproveCompletion(ctx context.Context, id uuid.UUID, approver models.Actor) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "ApproveCompletion",
		"incident_id": id,
		"approver_id": approver.ID,
	})
	log.Info("Attempting to approve incident completion")

	incident, err := s.load(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to load incident for approval")
		return nil, err
	}
	if incident.ReporterID != approver.ID {
		return nil, newError(ErrForbidden, "only the reporter can approve completion")
	}
	if incident.Status == models.StatusCompleted {
		return nil, newError(ErrStateConflict, "incident %s already completed", id)
	}
	if !incident.Status.CanTransitionTo(models.StatusCompleted) {
		return nil, newError(ErrStateConflict, "incident %s is %s and has no volunteers to approve", id, incident.Status)
	}

	credited := make([]int64, len(incident.Volunteers))
	for i, a := range incident.Volunteers {
		amount, err := s.incentives.CreditForApproval(ctx, incident, a.VolunteerID)
		if err != nil {
			log.WithError(err).WithField("volunteer_id", a.VolunteerID).Error("Failed to credit volunteer, approval can be retried")
			return nil, fmt.Errorf("service: could not credit volunteer %s: %w", a.VolunteerID, err)
		}
		credited[i] = amount
	}

	now := s.now()
	entry := models.HistoryEntry{Action: models.ActionApproved, ActorID: approver.ID, Timestamp: now}
	if err := s.repo.Approve(ctx, id, incident.Version, entry); err != nil {
		log.WithError(err).Warn("Failed to save approval")
		return nil, fmt.Errorf("service: could not approve incident: %w", err)
	}

	incident.Status = models.StatusCompleted
	incident.VictimApproval = true
	incident.History = append(incident.History, entry)
	incident.Version++
	incident.UpdatedAt = now
	s.invalidate(ctx, log, id)

	for i, a := range incident.Volunteers {
		s.notify(ctx, log, a.VolunteerID, "The reporter has approved your help for the emergency.")
		s.notify(ctx, log, a.VolunteerID, fmt.Sprintf("You have been credited with %d incentives for your help.", credited[i]))
	}

	log.WithField("volunteers", len(incident.Volunteers)).Info("Incident approved and incentives awarded")
	return incident, nil
}

// AttachMedia сохраняет файлы в хранилище и добавляет ссылки к инциденту
func (s *incidentService) AttachMedia(ctx context.Context, id uuid.UUID, reporter models.Actor, uploads []models.Upload) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "AttachMedia",
		"incident_id": id,
		"files":       len(uploads),
	})

	if len(uploads) == 0 || len(uploads) > maxMediaFiles {
		return nil, newError(ErrValidation, "between 1 and %d files are required", maxMediaFiles)
	}

	incident, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if incident.ReporterID != reporter.ID {
		return nil, newError(ErrForbidden, "only the reporter can attach media")
	}
	if len(incident.Media)+len(uploads) > maxMediaFiles {
		return nil, newError(ErrValidation, "incident can hold at most %d files", maxMediaFiles)
	}

	files := make([]models.MediaFile, 0, len(uploads))
	for _, u := range uploads {
		url, err := s.media.Save(ctx, u.FileName, u.ContentType, u.Body)
		if err != nil {
			log.WithError(err).Error("Failed to store media file")
			return nil, fmt.Errorf("service: could not store media: %w", err)
		}
		files = append(files, models.MediaFile{FileName: u.FileName, FileType: u.ContentType, FileURL: url})
	}

	if err := s.repo.AddMedia(ctx, id, files, maxMediaFiles); err != nil {
		if errors.Is(err, ErrValidation) {
			log.WithError(err).Warn("Media limit reached by a concurrent upload")
		} else {
			log.WithError(err).Error("Failed to attach media to incident")
		}
		return nil, fmt.Errorf("service: could not attach media: %w", err)
	}
	incident.Media = append(incident.Media, files...)
	s.invalidate(ctx, log, id)

	log.Info("Media attached successfully")
	return incident, nil
}

// ListIncidents возвращает инциденты по фильтру с пагинацией
func (s *incidentService) ListIncidents(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	for _, r := range filter.Resources {
		if _, ok := models.NeedColumns[r]; !ok {
			return nil, newError(ErrValidation, "unknown resource %q", r)
		}
	}
	switch filter.SortBy {
	case "", models.SortBySeverity, models.SortByType, models.SortByTime:
	default:
		return nil, newError(ErrValidation, "unknown sort field %q", filter.SortBy)
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "incident",
		"method":    "ListIncidents",
		"page":      filter.Page,
		"page_size": filter.PageSize,
	})
	log.Debug("Listing incidents")

	incidents, err := s.repo.ListIncidents(ctx, filter)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}
	return incidents, nil
}

// VolunteerHistory возвращает историю участия волонтера
func (s *incidentService) VolunteerHistory(ctx context.Context, volunteerID uuid.UUID) ([]models.VolunteerHistoryItem, error) {
	items, err := s.repo.ListVolunteerHistory(ctx, volunteerID)
	if err != nil {
		s.logger.WithError(err).WithField("volunteer_id", volunteerID).Error("Failed to list volunteer history")
		return nil, fmt.Errorf("service: could not list volunteer history: %w", err)
	}
	return items, nil
}

func (s *incidentService) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	stats, err := s.repo.GetStats(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get dashboard stats")
		return models.DashboardStats{}, fmt.Errorf("service: could not get stats: %w", err)
	}
	return stats, nil
}

func (s *incidentService) invalidate(ctx context.Context, log *logrus.Entry, id uuid.UUID) {
	if err := s.repo.InvalidateIncidentCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}
}

// notify отправляет уведомление; ошибка только логируется
func (s *incidentService) notify(ctx context.Context, log *logrus.Entry, userID uuid.UUID, message string) {
	if err := s.notifier.Notify(ctx, userID, message); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Failed to deliver notification")
	}
}
