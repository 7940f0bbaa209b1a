package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/rescue_chain/internal/models"
)

// ReportIncidentRequest DTO для сообщения об инциденте
// @Description DTO для сообщения об инциденте
type ReportIncidentRequest struct {
	Type             string              `json:"type" validate:"required,oneof=Fire Flood Earthquake Accident 'Medical Emergency' Crime Other"`
	CustomType       string              `json:"custom_type,omitempty" validate:"max=100"`
	Severity         string              `json:"severity" validate:"required,oneof=Critical High Medium Low"`
	Priority         string              `json:"priority" validate:"required,oneof=Highest High Normal"`
	Description      string              `json:"description" validate:"required,min=5,max=5000"`
	Location         string              `json:"location" validate:"required,max=500"`
	OccurredAt       *time.Time          `json:"occurred_at,omitempty"`
	Tags             []string            `json:"tags,omitempty" validate:"max=20,dive,max=50"`
	Needs            NeedsDTO            `json:"needs"`
	Contact          ContactDTO          `json:"contact"`
	EmergencyContact EmergencyContactDTO `json:"emergency_contact"`
}

// NeedsDTO - потребности пострадавшего
type NeedsDTO struct {
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

type ContactDTO struct {
	Phone string `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

type EmergencyContactDTO struct {
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

// VolunteerStatusRequest DTO для смены статуса участия
// @Description DTO для смены статуса участия
type VolunteerStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Assigned Completed"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID               uuid.UUID           `json:"id"`
	ReporterID       uuid.UUID           `json:"reporter_id"`
	Type             string              `json:"type"`
	CustomType       string              `json:"custom_type,omitempty"`
	Severity         string              `json:"severity"`
	Priority         string              `json:"priority"`
	Status           string              `json:"status"`
	Description      string              `json:"description"`
	Location         string              `json:"location"`
	OccurredAt       time.Time           `json:"occurred_at"`
	Tags             []string            `json:"tags"`
	Needs            NeedsDTO            `json:"needs"`
	Contact          ContactDTO          `json:"contact"`
	EmergencyContact EmergencyContactDTO `json:"emergency_contact"`
	Media            []MediaResponse     `json:"media"`
	VictimApproval   bool                `json:"victim_approval"`
	Volunteers       []VolunteerResponse `json:"volunteers"`
	History          []HistoryResponse   `json:"history"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

type MediaResponse struct {
	FileName string `json:"file_name"`
	FileType string `json:"file_type"`
	FileURL  string `json:"file_url"`
}

type VolunteerResponse struct {
	VolunteerID uuid.UUID  `json:"volunteer_id"`
	Status      string     `json:"status"`
	AssignedAt  time.Time  `json:"assigned_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type HistoryResponse struct {
	Action    string    `json:"action"`
	ActorID   uuid.UUID `json:"actor_id"`
	Timestamp time.Time `json:"timestamp"`
}

// StatsResponse DTO для ответа со статистикой
// @Description DTO для ответа со статистикой
type StatsResponse struct {
	ActiveEmergencies   int `json:"active_emergencies"`
	ResolvedEmergencies int `json:"resolved_emergencies"`
	TotalContributors   int `json:"total_contributors"`
}

// BalanceResponse DTO для ответа с балансом
// @Description DTO для ответа с балансом
type BalanceResponse struct {
	Balance       int64 `json:"balance"`
	Withdrawable  int64 `json:"withdrawable"`
	MinWithdrawal int64 `json:"min_withdrawal"`
}

// PayoutDetailsRequest DTO для сохранения реквизитов, пустые поля не меняют сохраненные
// @Description DTO для сохранения реквизитов
type PayoutDetailsRequest struct {
	AccountNumber string `json:"account_number,omitempty" validate:"omitempty,numeric,min=6,max=20"`
	IFSCCode      string `json:"ifsc_code,omitempty" validate:"omitempty,alphanum,len=11"`
	BankName      string `json:"bank_name,omitempty" validate:"max=100"`
	UPIID         string `json:"upi_id,omitempty" validate:"omitempty,contains=@,max=100"`
	WalletAddress string `json:"wallet_address,omitempty" validate:"max=200"`
}

// WithdrawRequest DTO для вывода средств
// @Description DTO для вывода средств
type WithdrawRequest struct {
	Method string `json:"method" validate:"required,oneof=bank upi wallet"`
}

// WithdrawalResponse DTO для ответа с заявкой на вывод
// @Description DTO для ответа с заявкой на вывод
type WithdrawalResponse struct {
	ID             uuid.UUID          `json:"id"`
	Amount         int64              `json:"amount"`
	CurrencyAmount int64              `json:"currency_amount"`
	Currency       string             `json:"currency"`
	Destination    models.Destination `json:"destination"`
	PayoutID       string             `json:"payout_id,omitempty"`
	Status         string             `json:"status"`
	CreatedAt      time.Time          `json:"created_at"`
}

// MarkReadRequest DTO для пометки уведомлений; пустой список помечает все
// @Description DTO для пометки уведомлений
type MarkReadRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"max=100"`
}
