package v1

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/rescue_chain/internal/authz"
	"github.com/shenikar/rescue_chain/internal/config"
	"github.com/shenikar/rescue_chain/internal/models"
	"github.com/shenikar/rescue_chain/internal/ratelimit"
	"github.com/shenikar/rescue_chain/internal/service"
	"github.com/sirupsen/logrus"
)

const maxUploadFiles = 5

func init() {
	// Тела запросов с неизвестными полями отклоняются
	binding.EnableDecoderDisallowUnknownFields = true
}

type Handler struct {
	incidentService     service.IncidentService
	incentiveService    service.IncentiveService
	notificationService service.NotificationService
	authorizer          *authz.Authorizer
	limiter             ratelimit.Limiter
	logger              *logrus.Logger
	validate            *validator.Validate
	cfg                 *config.Config
}

func NewHandler(
	incidentService service.IncidentService,
	incentiveService service.IncentiveService,
	notificationService service.NotificationService,
	authorizer *authz.Authorizer,
	limiter ratelimit.Limiter,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		incidentService:     incidentService,
		incentiveService:    incentiveService,
		notificationService: notificationService,
		authorizer:          authorizer,
		limiter:             limiter,
		logger:              logger,
		validate:            validator.New(),
		cfg:                 cfg,
	}
}

// requestLog возвращает логгер запроса с пользователем; ok=false, если пользователь не аутентифицирован
func (h *Handler) requestLog(c *gin.Context, method string) (*logrus.Entry, models.Actor, bool) {
	log := h.logger.WithField("method", method)
	actor, ok := actorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
		return log, models.Actor{}, false
	}
	return log.WithField("user_id", actor.ID), actor, true
}

func (h *Handler) incidentID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON читает и проверяет тело запроса
func (h *Handler) bindJSON(c *gin.Context, log *logrus.Entry, input any) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary Report a new incident
// @Description Report an emergency. The incident starts in Pending status.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param incident body ReportIncidentRequest true "Incident report"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) reportIncident(c *gin.Context) {
	log, actor, ok := h.requestLog(c, "reportIncident")
	if !ok {
		return
	}

	var input ReportIncidentRequest
	if !h.bindJSON(c, log, &input) {
		return
	}

	incident, err := h.incidentService.Report(c.Request.Context(), actor, DTOToReportDetails(input))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(incident))
}

// @Summary Get a list of all incidents
// @Description Get a paginated list of all incidents. Admin only.
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {array} IncidentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	h.list(c, "listIncidents", models.IncidentFilter{})
}

// @Summary Get active incidents
// @Description Pending and In Progress incidents filtered by location, type, severity and needed resources.
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param location query string false "Location substring"
// @Param type query string false "Incident type"
// @Param severity query string false "Severity"
// @Param resources query string false "Comma separated needs, e.g. medicalAid,food"
// @Param sortBy query string false "severity, type or time"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {array} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/active [get]
func (h *Handler) listActiveIncidents(c *gin.Context) {
	filter := models.IncidentFilter{
		Statuses: []models.IncidentStatus{models.StatusPending, models.StatusInProgress},
		Location: strings.TrimSpace(c.Query("location")),
		Type:     models.IncidentType(c.Query("type")),
		Severity: models.Severity(c.Query("severity")),
		SortBy:   c.Query("sortBy"),
	}
	if resources := c.Query("resources"); resources != "" {
		for _, r := range strings.Split(resources, ",") {
			if r = strings.TrimSpace(r); r != "" {
				filter.Resources = append(filter.Resources, r)
			}
		}
	}
	h.list(c, "listActiveIncidents", filter)
}

// @Summary Get pending incidents
// @Description Incidents waiting for a volunteer, newest first.
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {array} IncidentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/pending [get]
func (h *Handler) listPendingIncidents(c *gin.Context) {
	h.list(c, "listPendingIncidents", models.IncidentFilter{
		Statuses: []models.IncidentStatus{models.StatusPending},
	})
}

// @Summary Get my reported incidents
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {array} IncidentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/mine [get]
func (h *Handler) listMyIncidents(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
		return
	}
	h.list(c, "listMyIncidents", models.IncidentFilter{ReporterID: &actor.ID})
}

func (h *Handler) list(c *gin.Context, method string, filter models.IncidentFilter) {
	log := h.logger.WithField("method", method)
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	incidents, err := h.incidentService.ListIncidents(c.Request.Context(), filter)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Get incident by ID
// @Description Get a single incident with its volunteer roster and history.
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, ok := h.incidentID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Attach media to an incident
// @Description Reporter uploads up to 5 files (field "files").
// @Tags Incidents
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param files formData file true "Media files"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid upload"
// @Failure 403 {object} map[string]string "Not the reporter"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/media [post]
func (h *Handler) attachMedia(c *gin.Context) {
	id, ok := h.incidentID(c)
	if !ok {
		return
	}
	log, actor, ok := h.requestLog(c, "attachMedia")
	if !ok {
		return
	}
	log = log.WithField("id", id)

	form, err := c.MultipartForm()
	if err != nil {
		log.WithError(err).Warn("Failed to parse multipart form")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 || len(headers) > maxUploadFiles {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("between 1 and %d files are required", maxUploadFiles)})
		return
	}

	uploads := make([]models.Upload, 0, len(headers))
	files := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range files {
			_ = f.Close()
		}
	}()
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			log.WithError(err).Warn("Failed to open uploaded file")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uploaded file"})
			return
		}
		files = append(files, f)
		uploads = append(uploads, models.Upload{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		})
	}

	incident, err := h.incidentService.AttachMedia(c.Request.Context(), id, actor, uploads)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Volunteer for an incident
// @Description Join the incident roster. A Pending incident moves to In Progress.
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 403 {object} map[string]string "Reporter cannot volunteer"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Incident already taken"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/volunteer [post]
func (h *Handler) volunteer(c *gin.Context) {
	h.transition(c, "volunteer", h.incidentService.Volunteer)
}

// @Summary Update volunteer status
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param status body VolunteerStatusRequest true "New assignment status"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 403 {object} map[string]string "Not on the roster"
// @Failure 409 {object} map[string]string "Incident is completed"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/volunteer/status [put]
func (h *Handler) setVolunteerStatus(c *gin.Context) {
	id, ok := h.incidentID(c)
	if !ok {
		return
	}
	log, actor, ok := h.requestLog(c, "setVolunteerStatus")
	if !ok {
		return
	}
	log = log.WithField("id", id)

	var input VolunteerStatusRequest
	if !h.bindJSON(c, log, &input) {
		return
	}

	incident, err := h.incidentService.SetVolunteerStatus(c.Request.Context(), id, actor, models.AssignmentStatus(input.Status))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Mark own work completed
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 403 {object} map[string]string "Not on the roster"
// @Failure 409 {object} map[string]string "Already completed"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/complete [put]
func (h *Handler) markCompleted(c *gin.Context) {
	h.transition(c, "markCompleted", h.incidentService.MarkVolunteerCompleted)
}

// @Summary Approve completion
// @Description Reporter confirms the help. Every volunteer on the roster is credited.
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 403 {object} map[string]string "Not the reporter"
// @Failure 409 {object} map[string]string "Incident is not In Progress"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/approve [put]
func (h *Handler) approve(c *gin.Context) {
	h.transition(c, "approve", h.incidentService.ApproveCompletion)
}

// transition выполняет переход, которому кроме инцидента и пользователя ничего не нужно
func (h *Handler) transition(c *gin.Context, method string, fn func(ctx context.Context, id uuid.UUID, actor models.Actor) (*models.Incident, error)) {
	id, ok := h.incidentID(c)
	if !ok {
		return
	}
	log, actor, ok := h.requestLog(c, method)
	if !ok {
		return
	}
	log = log.WithField("id", id)

	incident, err := fn(c.Request.Context(), id, actor)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Get volunteer history
// @Description Incidents the current user volunteered for, with incentives earned.
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.VolunteerHistoryItem
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/volunteer/history [get]
func (h *Handler) volunteerHistory(c *gin.Context) {
	log, actor, ok := h.requestLog(c, "volunteerHistory")
	if !ok {
		return
	}

	items, err := h.incidentService.VolunteerHistory(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Get dashboard statistics
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	stats, err := h.incidentService.DashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, StatsResponse(stats))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
