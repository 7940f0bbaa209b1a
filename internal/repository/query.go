package repository

import (
	"fmt"
	"strings"

	"github.com/shenikar/rescue_chain/internal/models"
)

const incidentColumns = `
	id, reporter_id, type, custom_type, severity, priority, status, description, location,
	occurred_at, tags, needs, contact, emergency_contact, media, victim_approval, version,
	created_at, updated_at`

// orderClauses - сортировка выборки; тяжесть сортируется по рангу, а не по алфавиту
var orderClauses = map[string]string{
	"": "created_at DESC",
	models.SortBySeverity: `CASE severity
		WHEN 'Critical' THEN 0 WHEN 'High' THEN 1 WHEN 'Medium' THEN 2 ELSE 3 END, created_at DESC`,
	models.SortByType: "type ASC, created_at DESC",
	models.SortByTime: "occurred_at DESC, created_at DESC",
}

// buildListQuery собирает запрос выборки инцидентов с позиционными параметрами
func buildListQuery(filter models.IncidentFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		where = append(where, "status = ANY("+arg(statuses)+")")
	}
	if filter.ReporterID != nil {
		where = append(where, "reporter_id = "+arg(*filter.ReporterID))
	}
	if filter.Location != "" {
		where = append(where, "location ILIKE "+arg("%"+escapeLike(filter.Location)+"%"))
	}
	if filter.Type != "" {
		where = append(where, "type = "+arg(string(filter.Type)))
	}
	if filter.Severity != "" {
		where = append(where, "severity = "+arg(string(filter.Severity)))
	}
	for _, r := range filter.Resources {
		if key, ok := models.NeedColumns[r]; ok {
			where = append(where, "(needs->>"+arg(key)+"::text)::boolean IS TRUE")
		}
	}

	var b strings.Builder
	b.WriteString("SELECT")
	b.WriteString(incidentColumns)
	b.WriteString("\nFROM incidents")
	if len(where) > 0 {
		b.WriteString("\nWHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}

	order, ok := orderClauses[filter.SortBy]
	if !ok {
		order = orderClauses[""]
	}
	b.WriteString("\nORDER BY ")
	b.WriteString(order)

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		b.WriteString("\nLIMIT " + arg(filter.PageSize))
		b.WriteString(" OFFSET " + arg((page-1)*filter.PageSize))
	}
	return b.String(), args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
