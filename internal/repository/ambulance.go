package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/service"
)

const ambulanceColumns = `
	a.id,
	a.vehicle_number,
	a.driver_name,
	a.driver_phone,
	ST_X(a.location::geometry) AS longitude,
	ST_Y(a.location::geometry) AS latitude,
	a.status,
	a.online,
	a.assigned_incident_id,
	a.location_updated_at,
	a.updated_at`

type AmbulanceRepository struct {
	db *pgxpool.Pool
}

func NewAmbulanceRepository(db *pgxpool.Pool) service.AmbulanceRepository {
	return &AmbulanceRepository{db: db}
}

// GetByID возвращает машину по UUID
func (r *AmbulanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Ambulance, error) {
	query := `SELECT ` + ambulanceColumns + ` FROM ambulances a WHERE a.id = $1;`
	a, err := scanAmbulance(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ambulance with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get ambulance by id: %w", err)
	}
	return a, nil
}

// NearbyAmbulances возвращает машины в радиусе от точки, ближайшие первыми
func (r *AmbulanceRepository) NearbyAmbulances(ctx context.Context, point models.GeoPoint, radiusKm float64) ([]*models.Ambulance, error) {
	query := `
		SELECT ` + ambulanceColumns + `
		FROM ambulances a
		WHERE ST_DWithin(
			a.location,
			ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
			$3
		)
		ORDER BY ST_Distance(a.location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography), a.id;
	`
	return r.query(ctx, query, point.Longitude, point.Latitude, radiusKm*1000)
}

// ListAmbulances возвращает все машины
func (r *AmbulanceRepository) ListAmbulances(ctx context.Context) ([]*models.Ambulance, error) {
	return r.query(ctx, `SELECT `+ambulanceColumns+` FROM ambulances a ORDER BY a.id;`)
}

// Claim занимает машину в транзакции. Строка машины блокируется FOR UPDATE, статус
// инцидента-владельца читается уже после блокировки, поэтому два Claim одной машины
// не пройдут одновременно.
func (r *AmbulanceRepository) Claim(ctx context.Context, ambulanceID, incidentID uuid.UUID) (*models.Ambulance, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin claim transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var assigned *uuid.UUID
	err = tx.QueryRow(ctx, `SELECT assigned_incident_id FROM ambulances WHERE id = $1 FOR UPDATE;`, ambulanceID).Scan(&assigned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ambulance with id %s: %w", ambulanceID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock ambulance: %w", err)
	}

	var owner *models.Status
	if assigned != nil && *assigned != incidentID {
		var status string
		err = tx.QueryRow(ctx, `SELECT status FROM incidents WHERE id = $1 FOR SHARE;`, *assigned).Scan(&status)
		switch {
		case err == nil:
			st := models.Status(status)
			owner = &st
		case !errors.Is(err, pgx.ErrNoRows):
			return nil, fmt.Errorf("failed to check ambulance owner: %w", err)
		}
	}
	if !claimable(assigned, owner, incidentID) {
		return nil, fmt.Errorf("ambulance %s: %w", ambulanceID, models.ErrAmbulanceUnavailable)
	}

	query := `
		UPDATE ambulances a SET
			status = 'busy',
			assigned_incident_id = $2,
			updated_at = NOW()
		WHERE a.id = $1
		RETURNING ` + ambulanceColumns + `;
	`
	a, err := scanAmbulance(tx.QueryRow(ctx, query, ambulanceID, incidentID))
	if err != nil {
		return nil, fmt.Errorf("failed to claim ambulance: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit ambulance claim: %w", err)
	}
	return a, nil
}

// claimable решает, можно ли отдать машину инциденту incidentID. owner - статус
// инцидента, за которым машина сейчас закреплена, nil если его записи нет.
func claimable(assigned *uuid.UUID, owner *models.Status, incidentID uuid.UUID) bool {
	if assigned == nil || *assigned == incidentID || owner == nil {
		return true
	}
	return owner.IsTerminal()
}

// Release возвращает машину в доступные, если она все еще закреплена за incidentID
func (r *AmbulanceRepository) Release(ctx context.Context, ambulanceID, incidentID uuid.UUID) error {
	query := `
		UPDATE ambulances SET
			status = 'available',
			assigned_incident_id = NULL,
			updated_at = NOW()
		WHERE id = $1 AND assigned_incident_id = $2;
	`
	if _, err := r.db.Exec(ctx, query, ambulanceID, incidentID); err != nil {
		return fmt.Errorf("failed to release ambulance: %w", err)
	}
	return nil
}

// UpdateLocation обновляет телеметрию машины
func (r *AmbulanceRepository) UpdateLocation(ctx context.Context, id uuid.UUID, point models.GeoPoint, at time.Time) error {
	query := `
		UPDATE ambulances SET
			location = ST_SetSRID(ST_MakePoint($1, $2), 4326),
			location_updated_at = $3,
			updated_at = NOW()
		WHERE id = $4;
	`
	cmdTag, err := r.db.Exec(ctx, query, point.Longitude, point.Latitude, at, id)
	if err != nil {
		return fmt.Errorf("failed to update ambulance location: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("ambulance with id %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func (r *AmbulanceRepository) query(ctx context.Context, query string, args ...any) ([]*models.Ambulance, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ambulances: %w", err)
	}
	defer rows.Close()

	ambulances := make([]*models.Ambulance, 0)
	for rows.Next() {
		a, err := scanAmbulance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ambulance row: %w", err)
		}
		ambulances = append(ambulances, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error ambulance iteration: %w", err)
	}
	return ambulances, nil
}

func scanAmbulance(row pgx.Row) (*models.Ambulance, error) {
	var r ambulanceRow
	err := row.Scan(
		&r.ID,
		&r.VehicleNumber,
		&r.DriverName,
		&r.DriverPhone,
		&r.Longitude,
		&r.Latitude,
		&r.Status,
		&r.Online,
		&r.AssignedIncidentID,
		&r.LocationUpdatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r.toModel(), nil
}
