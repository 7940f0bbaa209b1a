package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/rescue_chain/internal/models"
	"github.com/shenikar/rescue_chain/internal/service"
)

type IncidentRepository struct {
	db    *pgxpool.Pool
	cache *incidentCache
}

func NewIncidentRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.IncidentRepository {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &IncidentRepository{
		db:    db,
		cache: newIncidentCache(redisClient, cacheTTL),
	}
}

// withTx выполняет fn в транзакции; при ошибке транзакция откатывается
func withTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Create создает новую запись об инциденте и первую запись журнала
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	query := `
		INSERT INTO incidents (id, reporter_id, type, custom_type, severity, priority, status, description, location,
			occurred_at, tags, needs, contact, emergency_contact, media, victim_approval, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query,
			incident.ID,
			incident.ReporterID,
			incident.Type,
			incident.CustomType,
			incident.Severity,
			incident.Priority,
			incident.Status,
			incident.Description,
			incident.Location,
			incident.OccurredAt,
			emptyIfNil(incident.Tags),
			incident.Needs,
			incident.Contact,
			incident.EmergencyContact,
			emptyIfNil(incident.Media),
			incident.VictimApproval,
			incident.Version,
			incident.CreatedAt,
			incident.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: incident %s already exists", service.ErrStateConflict, incident.ID)
			}
			return fmt.Errorf("failed to create incident: %w", err)
		}
		for _, h := range incident.History {
			if err := insertHistory(ctx, tx, incident.ID, h); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertHistory(ctx context.Context, tx pgx.Tx, incidentID uuid.UUID, h models.HistoryEntry) error {
	query := `INSERT INTO incident_history (incident_id, action, actor_id, created_at) VALUES ($1, $2, $3, $4);`
	if _, err := tx.Exec(ctx, query, incidentID, h.Action, h.ActorID, h.Timestamp); err != nil {
		return fmt.Errorf("failed to append incident history: %w", err)
	}
	return nil
}

// bumpVersion увеличивает версию, если она совпадает с ожидаемой, иначе возвращает ErrStateConflict
func bumpVersion(ctx context.Context, tx pgx.Tx, incidentID uuid.UUID, expectedVersion int, set string, args ...any) error {
	query := fmt.Sprintf(`
		UPDATE incidents SET %s version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2;
	`, set)
	cmdTag, err := tx.Exec(ctx, query, append([]any{incidentID, expectedVersion}, args...)...)
	if err != nil {
		return fmt.Errorf("failed to update incident: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM incidents WHERE id = $1)`, incidentID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check incident existence: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: incident %s", service.ErrNotFound, incidentID)
		}
		return fmt.Errorf("%w: incident %s was modified concurrently", service.ErrStateConflict, incidentID)
	}
	return nil
}

// GetByID возвращает инцидент с ростером и журналом
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	query := `SELECT` + incidentColumns + ` FROM incidents WHERE id = $1;`

	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: incident %s", service.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}

	if err := r.attachRelations(ctx, []*models.Incident{incident}); err != nil {
		return nil, err
	}
	return incident, nil
}

func scanIncident(row pgx.Row) (*models.Incident, error) {
	incident := &models.Incident{}
	err := row.Scan(
		&incident.ID,
		&incident.ReporterID,
		&incident.Type,
		&incident.CustomType,
		&incident.Severity,
		&incident.Priority,
		&incident.Status,
		&incident.Description,
		&incident.Location,
		&incident.OccurredAt,
		&incident.Tags,
		&incident.Needs,
		&incident.Contact,
		&incident.EmergencyContact,
		&incident.Media,
		&incident.VictimApproval,
		&incident.Version,
		&incident.CreatedAt,
		&incident.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return incident, nil
}

// attachRelations загружает ростер и журнал для набора инцидентов двумя запросами
func (r *IncidentRepository) attachRelations(ctx context.Context, incidents []*models.Incident) error {
	if len(incidents) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*models.Incident, len(incidents))
	ids := make([]uuid.UUID, 0, len(incidents))
	for _, i := range incidents {
		i.Volunteers = []models.VolunteerAssignment{}
		i.History = []models.HistoryEntry{}
		byID[i.ID] = i
		ids = append(ids, i.ID)
	}

	rows, err := r.db.Query(ctx, `
		SELECT incident_id, volunteer_id, status, assigned_at, updated_at, completed_at
		FROM incident_volunteers
		WHERE incident_id = ANY($1)
		ORDER BY incident_id, position;
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load incident volunteers: %w", err)
	}
	for rows.Next() {
		var (
			incidentID uuid.UUID
			a          models.VolunteerAssignment
		)
		if err := rows.Scan(&incidentID, &a.VolunteerID, &a.Status, &a.AssignedAt, &a.UpdatedAt, &a.CompletedAt); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan volunteer row: %w", err)
		}
		byID[incidentID].Volunteers = append(byID[incidentID].Volunteers, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error volunteers iteration: %w", err)
	}

	rows, err = r.db.Query(ctx, `
		SELECT incident_id, action, actor_id, created_at
		FROM incident_history
		WHERE incident_id = ANY($1)
		ORDER BY incident_id, id;
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load incident history: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			incidentID uuid.UUID
			h          models.HistoryEntry
		)
		if err := rows.Scan(&incidentID, &h.Action, &h.ActorID, &h.Timestamp); err != nil {
			return fmt.Errorf("failed to scan history row: %w", err)
		}
		byID[incidentID].History = append(byID[incidentID].History, h)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error history iteration: %w", err)
	}
	return nil
}

// ClaimVolunteer добавляет волонтера в ростер и переводит инцидент в status одной транзакцией
func (r *IncidentRepository) ClaimVolunteer(ctx context.Context, incidentID uuid.UUID, expectedVersion int, status models.IncidentStatus, assignment models.VolunteerAssignment, entry models.HistoryEntry) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := bumpVersion(ctx, tx, incidentID, expectedVersion, "status = $3,", status); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO incident_volunteers (incident_id, volunteer_id, position, status, assigned_at, updated_at)
			VALUES ($1, $2, (SELECT COALESCE(MAX(position), 0) + 1 FROM incident_volunteers WHERE incident_id = $1), $3, $4, $5);
		`, incidentID, assignment.VolunteerID, assignment.Status, assignment.AssignedAt, assignment.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: volunteer %s already assigned", service.ErrStateConflict, assignment.VolunteerID)
			}
			return fmt.Errorf("failed to add volunteer: %w", err)
		}
		return insertHistory(ctx, tx, incidentID, entry)
	})
}

// UpdateAssignment меняет запись ростера; entry пишется в журнал, если задан
func (r *IncidentRepository) UpdateAssignment(ctx context.Context, incidentID uuid.UUID, expectedVersion int, assignment models.VolunteerAssignment, entry *models.HistoryEntry) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := bumpVersion(ctx, tx, incidentID, expectedVersion, ""); err != nil {
			return err
		}
		cmdTag, err := tx.Exec(ctx, `
			UPDATE incident_volunteers SET status = $3, updated_at = $4, completed_at = $5
			WHERE incident_id = $1 AND volunteer_id = $2;
		`, incidentID, assignment.VolunteerID, assignment.Status, assignment.UpdatedAt, assignment.CompletedAt)
		if err != nil {
			return fmt.Errorf("failed to update volunteer assignment: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%w: volunteer %s is not assigned", service.ErrNotFound, assignment.VolunteerID)
		}
		if entry != nil {
			return insertHistory(ctx, tx, incidentID, *entry)
		}
		return nil
	})
}

// Approve фиксирует подтверждение пострадавшего
func (r *IncidentRepository) Approve(ctx context.Context, incidentID uuid.UUID, expectedVersion int, entry models.HistoryEntry) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := bumpVersion(ctx, tx, incidentID, expectedVersion, "status = $3, victim_approval = TRUE,", models.StatusCompleted); err != nil {
			return err
		}
		return insertHistory(ctx, tx, incidentID, entry)
	})
}

// AddMedia дописывает ссылки на файлы; версию не меняет, так как состояние жизненного цикла не затронуто
func (r *IncidentRepository) AddMedia(ctx context.Context, incidentID uuid.UUID, media []models.MediaFile, maxFiles int) error {
	// лимит проверяется в том же UPDATE, параллельные загрузки не могут его превысить
	query := `
		UPDATE incidents SET media = media || $2::jsonb, updated_at = NOW()
		WHERE id = $1 AND jsonb_array_length(media) + jsonb_array_length($2::jsonb) <= $3;
	`
	payload, err := json.Marshal(emptyIfNil(media))
	if err != nil {
		return fmt.Errorf("failed to marshal media: %w", err)
	}
	cmdTag, err := r.db.Exec(ctx, query, incidentID, string(payload), maxFiles)
	if err != nil {
		return fmt.Errorf("failed to attach media: %w", err)
	}
	if cmdTag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM incidents WHERE id = $1)`, incidentID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check incident existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: incident %s", service.ErrNotFound, incidentID)
	}
	return fmt.Errorf("%w: incident %s can hold at most %d files", service.ErrValidation, incidentID, maxFiles)
}

// ListIncidents возвращает инциденты по фильтру с пагинацией
func (r *IncidentRepository) ListIncidents(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error) {
	query, args := buildListQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	rows.Close()

	if err := r.attachRelations(ctx, incidents); err != nil {
		return nil, err
	}
	return incidents, nil
}

// ListVolunteerHistory объединяет ростер с начислениями волонтера
func (r *IncidentRepository) ListVolunteerHistory(ctx context.Context, volunteerID uuid.UUID) ([]models.VolunteerHistoryItem, error) {
	query := `
		SELECT
			i.id,
			i.type,
			i.status,
			v.status,
			COALESCE(c.role, $2),
			v.assigned_at,
			v.completed_at,
			COALESCE(c.incentives_earned, 0)
		FROM incident_volunteers v
		JOIN incidents i ON i.id = v.incident_id
		LEFT JOIN contributions c ON c.incident_id = v.incident_id AND c.user_id = v.volunteer_id
		WHERE v.volunteer_id = $1
		ORDER BY v.assigned_at DESC;
	`
	rows, err := r.db.Query(ctx, query, volunteerID, models.RoleVolunteer)
	if err != nil {
		return nil, fmt.Errorf("failed to list volunteer history: %w", err)
	}
	defer rows.Close()

	items := make([]models.VolunteerHistoryItem, 0)
	for rows.Next() {
		var item models.VolunteerHistoryItem
		if err := rows.Scan(
			&item.IncidentID,
			&item.Type,
			&item.Status,
			&item.AssignmentStatus,
			&item.Role,
			&item.AssignedAt,
			&item.CompletedAt,
			&item.IncentivesEarned,
		); err != nil {
			return nil, fmt.Errorf("failed to scan volunteer history row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error volunteer history iteration: %w", err)
	}
	return items, nil
}

// GetStats возвращает сводку для главной страницы
func (r *IncidentRepository) GetStats(ctx context.Context) (models.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM incidents WHERE status = 'Pending'),
			(SELECT COUNT(*) FROM incidents WHERE status = 'Completed'),
			(SELECT COUNT(DISTINCT volunteer_id) FROM incident_volunteers);
	`
	var stats models.DashboardStats
	if err := r.db.QueryRow(ctx, query).Scan(&stats.ActiveEmergencies, &stats.ResolvedEmergencies, &stats.TotalContributors); err != nil {
		return models.DashboardStats{}, fmt.Errorf("failed to get dashboard stats: %w", err)
	}
	return stats, nil
}

// currentVersion читает версию инцидента из бд
func (r *IncidentRepository) currentVersion(ctx context.Context, id uuid.UUID) (int, error) {
	var version int
	err := r.db.QueryRow(ctx, `SELECT version FROM incidents WHERE id = $1`, id).Scan(&version)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%w: incident %s", service.ErrNotFound, id)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get incident version: %w", err)
	}
	return version, nil
}

// GetIncidentFromCache пытается получить инцидент из Redis
func (r *IncidentRepository) GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	return r.cache.get(ctx, id)
}

// SetIncidentCache сохраняет инцидент в Redis, если снимок совпадает с текущей версией в бд
func (r *IncidentRepository) SetIncidentCache(ctx context.Context, incident *models.Incident) error {
	return r.cache.set(ctx, incident, func(ctx context.Context) (int, error) {
		return r.currentVersion(ctx, incident.ID)
	})
}

// InvalidateIncidentCache помечает инцидент в Redis кэше как устаревший
func (r *IncidentRepository) InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error {
	return r.cache.invalidate(ctx, id)
}
