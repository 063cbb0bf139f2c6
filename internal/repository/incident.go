package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/service"
)

const incidentColumns = `
	id,
	description,
	contact,
	severity,
	ST_X(location::geometry) AS longitude,
	ST_Y(location::geometry) AS latitude,
	tracking_token,
	status,
	assigned_ambulance_id,
	assigned_hospital_id,
	eta,
	ai_summary,
	priority,
	force_assigned,
	held_capacity,
	extra,
	created_at,
	updated_at`

type IncidentRepository struct {
	db *pgxpool.Pool
}

func NewIncidentRepository(db *pgxpool.Pool) service.IncidentRepository {
	return &IncidentRepository{db: db}
}

// Create создает новую запись об инциденте в бд
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	if incident.ID == uuid.Nil {
		incident.ID = uuid.New()
	}
	query := `
		INSERT INTO incidents (
			id, description, contact, severity, location, tracking_token, status,
			assigned_ambulance_id, assigned_hospital_id, eta, ai_summary, priority, force_assigned, held_capacity, extra
		)
		VALUES ($1, $2, $3, $4, ST_SetSRID(ST_MakePoint($5, $6), 4326), $7, $8, $9, $10, $11, $12, $13, $14, $15, COALESCE($16::jsonb, '{}'::jsonb))
		RETURNING created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		incident.ID,
		incident.Description,
		incident.Contact,
		string(incident.Severity),
		incident.Location.Longitude,
		incident.Location.Latitude,
		incident.TrackingToken,
		string(incident.Status),
		refID(incident.AssignedAmbulance.ID),
		refID(incident.AssignedHospital.ID),
		incident.ETA,
		incident.AISummary,
		incident.Priority,
		incident.ForceAssigned,
		string(incident.HeldCapacity),
		incident.Extra,
	).Scan(&incident.CreatedAt, &incident.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}
	return nil
}

// GetByID возвращает инцидент по его UUID
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1;`
	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}
	return incident, nil
}

// GetByTrackingToken ищет инцидент по токену отслеживания
func (r *IncidentRepository) GetByTrackingToken(ctx context.Context, token string) (*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE tracking_token = $1;`
	incident, err := scanIncident(r.db.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with tracking token: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get incident by tracking token: %w", err)
	}
	return incident, nil
}

// Update сохраняет изменяемые поля. Токен отслеживания и дата создания не меняются.
func (r *IncidentRepository) Update(ctx context.Context, incident *models.Incident) error {
	query := `
		UPDATE incidents SET
			description = $1,
			contact = $2,
			severity = $3,
			location = ST_SetSRID(ST_MakePoint($4, $5), 4326),
			status = $6,
			assigned_ambulance_id = $7,
			assigned_hospital_id = $8,
			eta = $9,
			ai_summary = $10,
			priority = $11,
			force_assigned = $12,
			held_capacity = $13,
			extra = COALESCE($14::jsonb, '{}'::jsonb),
			updated_at = $15
		WHERE id = $16;
	`
	updatedAt := incident.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	cmdTag, err := r.db.Exec(ctx, query,
		incident.Description,
		incident.Contact,
		string(incident.Severity),
		incident.Location.Longitude,
		incident.Location.Latitude,
		string(incident.Status),
		refID(incident.AssignedAmbulance.ID),
		refID(incident.AssignedHospital.ID),
		incident.ETA,
		incident.AISummary,
		incident.Priority,
		incident.ForceAssigned,
		string(incident.HeldCapacity),
		incident.Extra,
		updatedAt,
		incident.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update incident: %w", err)
	}

	// RowsAffected() == 0 - инцидента с таким id нет
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("incident with id %s not found for update: %w", incident.ID, models.ErrNotFound)
	}
	return nil
}

// ListIncidents возвращает инциденты по фильтру, новые первыми. pageSize <= 0 - без ограничения.
func (r *IncidentRepository) ListIncidents(ctx context.Context, filter models.IncidentFilter, page, pageSize int) ([]*models.Incident, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(filter.Statuses) > 0 {
		conds = append(conds, "status = ANY("+arg(statusStrings(filter.Statuses))+")")
	}
	if len(filter.ExcludeStatuses) > 0 {
		conds = append(conds, "NOT (status = ANY("+arg(statusStrings(filter.ExcludeStatuses))+"))")
	}
	if filter.HospitalID != uuid.Nil {
		conds = append(conds, "assigned_hospital_id = "+arg(filter.HospitalID))
	}
	if filter.AmbulanceID != uuid.Nil {
		conds = append(conds, "assigned_ambulance_id = "+arg(filter.AmbulanceID))
	}

	query := `SELECT ` + incidentColumns + ` FROM incidents`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id"
	if pageSize > 0 {
		if page < 1 {
			page = 1
		}
		query += " LIMIT " + arg(pageSize) + " OFFSET " + arg((page-1)*pageSize)
	}

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
	return incidents, nil
}

func scanIncident(row pgx.Row) (*models.Incident, error) {
	var (
		inc                        models.Incident
		severity, status, capacity string
		ambulanceID, hospital      *uuid.UUID
	)
	err := row.Scan(
		&inc.ID,
		&inc.Description,
		&inc.Contact,
		&severity,
		&inc.Location.Longitude,
		&inc.Location.Latitude,
		&inc.TrackingToken,
		&status,
		&ambulanceID,
		&hospital,
		&inc.ETA,
		&inc.AISummary,
		&inc.Priority,
		&inc.ForceAssigned,
		&capacity,
		&inc.Extra,
		&inc.CreatedAt,
		&inc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inc.Severity = normalizeSeverity(severity)
	inc.Status = normalizeIncidentStatus(status)
	inc.HeldCapacity = models.CapacityUnit(capacity)
	if ambulanceID != nil {
		inc.AssignedAmbulance = models.RefTo[models.Ambulance](*ambulanceID)
	}
	if hospital != nil {
		inc.AssignedHospital = models.RefTo[models.Hospital](*hospital)
	}
	if len(inc.Extra) == 0 {
		inc.Extra = nil
	}
	return &inc, nil
}

// refID - NULL для пустой ссылки
func refID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func statusStrings(statuses []models.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
