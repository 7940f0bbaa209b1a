package repository

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/rescue_chain/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildListQuery_NoFilter(t *testing.T) {
	query, args := buildListQuery(models.IncidentFilter{})

	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "ORDER BY created_at DESC")
	assert.NotContains(t, query, "LIMIT")
	assert.Empty(t, args)
}

func TestBuildListQuery_ActiveWithFilters(t *testing.T) {
	reporter := uuid.New()
	filter := models.IncidentFilter{
		Statuses:   []models.IncidentStatus{models.StatusPending, models.StatusInProgress},
		ReporterID: &reporter,
		Location:   "anna_nagar",
		Type:       models.TypeFire,
		Severity:   models.SeverityHigh,
		Resources:  []string{"medicalAid", "rescueTeam", "unknown"},
		SortBy:     models.SortBySeverity,
		Page:       3,
		PageSize:   10,
	}

	query, args := buildListQuery(filter)

	assert.Contains(t, query, "status = ANY($1)")
	assert.Contains(t, query, "reporter_id = $2")
	assert.Contains(t, query, "location ILIKE $3")
	assert.Contains(t, query, "type = $4")
	assert.Contains(t, query, "severity = $5")
	assert.Contains(t, query, "(needs->>$6::text)::boolean IS TRUE")
	assert.Contains(t, query, "(needs->>$7::text)::boolean IS TRUE")
	assert.Contains(t, query, "LIMIT $8 OFFSET $9")
	assert.Equal(t, 1, strings.Count(query, "WHERE"))
	assert.True(t, strings.Index(query, "ORDER BY CASE severity") > strings.Index(query, "WHERE"))

	assert.Equal(t, []any{
		[]string{"Pending", "In Progress"},
		reporter,
		`%anna\_nagar%`,
		"Fire",
		"High",
		"medical_aid",
		"rescue_team",
		10,
		20,
	}, args)
}

func TestBuildListQuery_Sorts(t *testing.T) {
	tests := map[string]string{
		models.SortByType: "ORDER BY type ASC",
		models.SortByTime: "ORDER BY occurred_at DESC",
		"bogus":           "ORDER BY created_at DESC",
	}
	for sortBy, want := range tests {
		t.Run(sortBy, func(t *testing.T) {
			query, _ := buildListQuery(models.IncidentFilter{SortBy: sortBy})
			assert.Contains(t, query, want)
		})
	}
}
