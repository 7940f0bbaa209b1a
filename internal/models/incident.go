package models

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// IncidentType - тип чрезвычайной ситуации
type IncidentType string

const (
	TypeFire             IncidentType = "Fire"
	TypeFlood            IncidentType = "Flood"
	TypeEarthquake       IncidentType = "Earthquake"
	TypeAccident         IncidentType = "Accident"
	TypeMedicalEmergency IncidentType = "Medical Emergency"
	TypeCrime            IncidentType = "Crime"
	TypeOther            IncidentType = "Other"
)

// Severity - тяжесть инцидента, определяет размер вознаграждения
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

// Priority - приоритет реагирования
type Priority string

const (
	PriorityHighest Priority = "Highest"
	PriorityHigh    Priority = "High"
	PriorityNormal  Priority = "Normal"
)

// IncidentStatus - состояние жизненного цикла инцидента
type IncidentStatus string

const (
	StatusPending    IncidentStatus = "Pending"
	StatusInProgress IncidentStatus = "In Progress"
	StatusCompleted  IncidentStatus = "Completed"
)

var statusRank = map[IncidentStatus]int{
	StatusPending:    0,
	StatusInProgress: 1,
	StatusCompleted:  2,
}

// Valid сообщает, известен ли статус
func (s IncidentStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransitionTo разрешает только переход на следующий шаг: Pending -> In Progress -> Completed
func (s IncidentStatus) CanTransitionTo(next IncidentStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to == from+1
}

// IsTerminal сообщает, что инцидент больше не меняет состояние
func (s IncidentStatus) IsTerminal() bool {
	return s == StatusCompleted
}

// AssignmentStatus - статус участия конкретного волонтера
type AssignmentStatus string

const (
	AssignmentAssigned  AssignmentStatus = "Assigned"
	AssignmentCompleted AssignmentStatus = "Completed"
)

// HistoryAction - тег записи журнала инцидента
type HistoryAction string

const (
	ActionReported    HistoryAction = "Reported"
	ActionVolunteered HistoryAction = "Volunteered"
	ActionCompleted   HistoryAction = "Completed"
	ActionApproved    HistoryAction = "Approved"
)

// Needs - набор потребностей пострадавшего
type Needs struct {
	MedicalAid      bool `json:"medical_aid"`
	Food            bool `json:"food"`
	Shelter         bool `json:"shelter"`
	Clothes         bool `json:"clothes"`
	DailyEssentials bool `json:"daily_essentials"`
	RescueTeam      bool `json:"rescue_team"`
	Firefighters    bool `json:"firefighters"`
	Ambulance       bool `json:"ambulance"`
	LawEnforcement  bool `json:"law_enforcement"`
}

// NeedColumns сопоставляет имя ресурса из фильтра ключу в JSON потребностей
var NeedColumns = map[string]string{
	"medicalAid":      "medical_aid",
	"food":            "food",
	"shelter":         "shelter",
	"clothes":         "clothes",
	"dailyEssentials": "daily_essentials",
	"rescueTeam":      "rescue_team",
	"firefighters":    "firefighters",
	"ambulance":       "ambulance",
	"lawEnforcement":  "law_enforcement",
}

// Has проверяет флаг потребности по ключу из NeedColumns
func (n Needs) Has(key string) bool {
	switch key {
	case "medical_aid":
		return n.MedicalAid
	case "food":
		return n.Food
	case "shelter":
		return n.Shelter
	case "clothes":
		return n.Clothes
	case "daily_essentials":
		return n.DailyEssentials
	case "rescue_team":
		return n.RescueTeam
	case "firefighters":
		return n.Firefighters
	case "ambulance":
		return n.Ambulance
	case "law_enforcement":
		return n.LawEnforcement
	}
	return false
}

type Contact struct {
	Phone string `json:"phone" validate:"omitempty,min=5,max=20"`
	Email string `json:"email" validate:"omitempty,email"`
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// MediaFile - ссылка на файл в хранилище медиа
type MediaFile struct {
	FileName string `json:"file_name"`
	FileType string `json:"file_type"`
	FileURL  string `json:"file_url"`
}

// VolunteerAssignment - запись ростера инцидента
type VolunteerAssignment struct {
	VolunteerID uuid.UUID        `json:"volunteer_id"`
	Status      AssignmentStatus `json:"status"`
	AssignedAt  time.Time        `json:"assigned_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
}

// HistoryEntry - неизменяемая запись журнала
type HistoryEntry struct {
	Action    HistoryAction `json:"action"`
	ActorID   uuid.UUID     `json:"actor_id"`
	Timestamp time.Time     `json:"timestamp"`
}

type Incident struct {
	ID               uuid.UUID             `json:"id"`
	ReporterID       uuid.UUID             `json:"reporter_id"`
	Type             IncidentType          `json:"type"`
	CustomType       string                `json:"custom_type,omitempty"`
	Severity         Severity              `json:"severity"`
	Priority         Priority              `json:"priority"`
	Status           IncidentStatus        `json:"status"`
	Description      string                `json:"description"`
	Location         string                `json:"location"`
	OccurredAt       time.Time             `json:"occurred_at"`
	Tags             []string              `json:"tags"`
	Needs            Needs                 `json:"needs"`
	Contact          Contact               `json:"contact"`
	EmergencyContact EmergencyContact      `json:"emergency_contact"`
	Media            []MediaFile           `json:"media"`
	VictimApproval   bool                  `json:"victim_approval"`
	Volunteers       []VolunteerAssignment `json:"volunteers"`
	History          []HistoryEntry        `json:"history"`
	Version          int                   `json:"version"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// Assignment возвращает указатель на запись ростера волонтера
func (i *Incident) Assignment(volunteerID uuid.UUID) (*VolunteerAssignment, bool) {
	for idx := range i.Volunteers {
		if i.Volunteers[idx].VolunteerID == volunteerID {
			return &i.Volunteers[idx], true
		}
	}
	return nil, false
}

func (i *Incident) HasVolunteer(volunteerID uuid.UUID) bool {
	_, ok := i.Assignment(volunteerID)
	return ok
}

// Clone возвращает глубокую копию, чтобы хранилища не делили срезы с вызывающим кодом
func (i *Incident) Clone() *Incident {
	c := *i
	c.Tags = append([]string(nil), i.Tags...)
	c.Media = append([]MediaFile(nil), i.Media...)
	c.History = append([]HistoryEntry(nil), i.History...)
	c.Volunteers = make([]VolunteerAssignment, len(i.Volunteers))
	for idx, a := range i.Volunteers {
		if a.CompletedAt != nil {
			at := *a.CompletedAt
			a.CompletedAt = &at
		}
		c.Volunteers[idx] = a
	}
	return &c
}

// ReportDetails - проверенные данные нового сообщения об инциденте
type ReportDetails struct {
	Type             IncidentType `validate:"required,oneof=Fire Flood Earthquake Accident 'Medical Emergency' Crime Other"`
	CustomType       string       `validate:"max=100"`
	Severity         Severity     `validate:"required,oneof=Critical High Medium Low"`
	Priority         Priority     `validate:"required,oneof=Highest High Normal"`
	Description      string       `validate:"required,min=5,max=5000"`
	Location         string       `validate:"required,max=500"`
	OccurredAt       time.Time
	Tags             []string `validate:"max=20,dive,max=50"`
	Needs            Needs
	Contact          Contact
	EmergencyContact EmergencyContact
}

// HasContact - хотя бы один способ связи обязателен
func (d ReportDetails) HasContact() bool {
	return d.Contact.Phone != "" || d.Contact.Email != ""
}

// IncidentFilter - параметры выборки для слоя запросов
type IncidentFilter struct {
	Statuses   []IncidentStatus
	ReporterID *uuid.UUID
	Location   string
	Type       IncidentType
	Severity   Severity
	Resources  []string
	SortBy     string
	Page       int
	PageSize   int
}

const (
	SortBySeverity = "severity"
	SortByType     = "type"
	SortByTime     = "time"
)

// VolunteerHistoryItem - строка истории участия волонтера
type VolunteerHistoryItem struct {
	IncidentID       uuid.UUID        `json:"incident_id"`
	Type             IncidentType     `json:"type"`
	Status           IncidentStatus   `json:"status"`
	AssignmentStatus AssignmentStatus `json:"assignment_status"`
	Role             string           `json:"role"`
	AssignedAt       time.Time        `json:"assigned_at"`
	CompletedAt      *time.Time       `json:"completed_at,omitempty"`
	IncentivesEarned int64            `json:"incentives_earned"`
}

// DashboardStats - сводка для главной страницы
type DashboardStats struct {
	ActiveEmergencies   int `json:"active_emergencies"`
	ResolvedEmergencies int `json:"resolved_emergencies"`
	TotalContributors   int `json:"total_contributors"`
}

// Upload - файл, полученный от пострадавшего
type Upload struct {
	FileName    string
	ContentType string
	Body        io.Reader
}
