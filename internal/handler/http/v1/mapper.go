package v1

import (
	"strings"
	"time"

	"github.com/shenikar/rescue_chain/internal/models"
)

// DTOToReportDetails преобразует DTO сообщения в доменную модель
func DTOToReportDetails(dto ReportIncidentRequest) models.ReportDetails {
	var occurredAt time.Time
	if dto.OccurredAt != nil {
		occurredAt = *dto.OccurredAt
	}
	return models.ReportDetails{
		Type:        models.IncidentType(dto.Type),
		CustomType:  strings.TrimSpace(dto.CustomType),
		Severity:    models.Severity(dto.Severity),
		Priority:    models.Priority(dto.Priority),
		Description: dto.Description,
		Location:    strings.TrimSpace(dto.Location),
		OccurredAt:  occurredAt,
		Tags:        dto.Tags,
		Needs:       models.Needs(dto.Needs),
		Contact: models.Contact{
			Phone: dto.Contact.Phone,
			Email: dto.Contact.Email,
		},
		EmergencyContact: models.EmergencyContact(dto.EmergencyContact),
	}
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	resp := &IncidentResponse{
		ID:               model.ID,
		ReporterID:       model.ReporterID,
		Type:             string(model.Type),
		CustomType:       model.CustomType,
		Severity:         string(model.Severity),
		Priority:         string(model.Priority),
		Status:           string(model.Status),
		Description:      model.Description,
		Location:         model.Location,
		OccurredAt:       model.OccurredAt,
		Tags:             model.Tags,
		Needs:            NeedsDTO(model.Needs),
		Contact:          ContactDTO{Phone: model.Contact.Phone, Email: model.Contact.Email},
		EmergencyContact: EmergencyContactDTO(model.EmergencyContact),
		Media:            make([]MediaResponse, len(model.Media)),
		VictimApproval:   model.VictimApproval,
		Volunteers:       make([]VolunteerResponse, len(model.Volunteers)),
		History:          make([]HistoryResponse, len(model.History)),
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	for i, m := range model.Media {
		resp.Media[i] = MediaResponse(m)
	}
	for i, v := range model.Volunteers {
		resp.Volunteers[i] = VolunteerResponse{
			VolunteerID: v.VolunteerID,
			Status:      string(v.Status),
			AssignedAt:  v.AssignedAt,
			CompletedAt: v.CompletedAt,
		}
	}
	for i, h := range model.History {
		resp.History[i] = HistoryResponse{
			Action:    string(h.Action),
			ActorID:   h.ActorID,
			Timestamp: h.Timestamp,
		}
	}
	return resp
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

func ModelToWithdrawalResponse(w *models.Withdrawal) *WithdrawalResponse {
	return &WithdrawalResponse{
		ID:             w.ID,
		Amount:         w.Amount,
		CurrencyAmount: w.CurrencyAmount,
		Currency:       w.Currency,
		Destination:    w.Destination,
		PayoutID:       w.PayoutID,
		Status:         string(w.Status),
		CreatedAt:      w.CreatedAt,
	}
}

func DTOToPayoutDetails(dto PayoutDetailsRequest) models.PayoutDetails {
	return models.PayoutDetails(dto)
}
