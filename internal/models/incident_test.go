package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncidentStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to IncidentStatus
		allowed  bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusPending, StatusCompleted, false},
		{StatusInProgress, StatusPending, false},
		{StatusCompleted, StatusInProgress, false},
		{StatusCompleted, StatusCompleted, false},
		{StatusPending, IncidentStatus("Closed"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
	assert.True(t, StatusCompleted.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
}

func TestIncident_Assignment(t *testing.T) {
	volunteerID := uuid.New()
	incident := &Incident{
		Volunteers: []VolunteerAssignment{{VolunteerID: volunteerID, Status: AssignmentAssigned}},
	}

	a, ok := incident.Assignment(volunteerID)
	require.True(t, ok)
	a.Status = AssignmentCompleted

	assert.Equal(t, AssignmentCompleted, incident.Volunteers[0].Status)
	assert.False(t, incident.HasVolunteer(uuid.New()))
}

func TestIncident_CloneDoesNotShareRoster(t *testing.T) {
	completedAt := time.Now()
	incident := &Incident{
		Tags:       []string{"flood"},
		Volunteers: []VolunteerAssignment{{VolunteerID: uuid.New(), CompletedAt: &completedAt}},
		History:    []HistoryEntry{{Action: ActionReported}},
	}

	clone := incident.Clone()
	clone.Volunteers[0].Status = AssignmentCompleted
	*clone.Volunteers[0].CompletedAt = completedAt.Add(time.Hour)
	clone.History = append(clone.History, HistoryEntry{Action: ActionApproved})

	assert.Empty(t, incident.Volunteers[0].Status)
	assert.Equal(t, completedAt, *incident.Volunteers[0].CompletedAt)
	assert.Len(t, incident.History, 1)
}

func TestPayoutDetails_Destination(t *testing.T) {
	details := PayoutDetails{AccountNumber: "1234567890", IFSCCode: "HDFC0001", UPIID: "user@upi"}

	bank, ok := details.Destination(MethodBank)
	require.True(t, ok)
	assert.Equal(t, "1234567890", bank.AccountNumber)

	upi, ok := details.Destination(MethodUPI)
	require.True(t, ok)
	assert.Equal(t, "user@upi", upi.UPIID)

	_, ok = details.Destination(MethodWallet)
	assert.False(t, ok)

	_, ok = PayoutDetails{AccountNumber: "1234567890"}.Destination(MethodBank)
	assert.False(t, ok, "bank payout needs IFSC code")
}

func TestPayoutDetails_Merge(t *testing.T) {
	current := PayoutDetails{AccountNumber: "111", IFSCCode: "IFSC1", BankName: "Old Bank"}

	merged := current.Merge(PayoutDetails{BankName: "New Bank", UPIID: "me@upi"})

	assert.Equal(t, "111", merged.AccountNumber)
	assert.Equal(t, "New Bank", merged.BankName)
	assert.Equal(t, "me@upi", merged.UPIID)
	assert.False(t, merged.IsEmpty())
	assert.True(t, PayoutDetails{}.IsEmpty())
}
