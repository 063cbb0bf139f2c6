package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/service"
)

const hospitalColumns = `
	h.id,
	h.name,
	h.address,
	h.contact_number,
	ST_X(h.location::geometry) AS longitude,
	ST_Y(h.location::geometry) AS latitude,
	h.status,
	h.available_beds,
	h.max_ambulance_capacity,
	h.currently_assigned_ambulances,
	h.attributes,
	h.updated_at`

// legacyBeds - число коек из колонки или из старых полей attributes
const legacyBeds = `COALESCE(
	h.available_beds,
	NULLIF(regexp_replace(h.attributes->>'bedAvailability', '[^0-9]', '', 'g'), '')::int,
	NULLIF(regexp_replace(h.attributes->>'availableBeds', '[^0-9]', '', 'g'), '')::int,
	0)`

// legacyAssigned - счетчик назначенных машин из колонки или из attributes
const legacyAssigned = `COALESCE(
	h.currently_assigned_ambulances,
	NULLIF(regexp_replace(h.attributes->>'currentlyAssignedAmbulances', '[^0-9]', '', 'g'), '')::int)`

// legacyMaxCapacity - потолок назначений из колонки или из attributes
const legacyMaxCapacity = `COALESCE(
	h.max_ambulance_capacity,
	NULLIF(regexp_replace(h.attributes->>'maxAmbulanceCapacity', '[^0-9]', '', 'g'), '')::int)`

type HospitalRepository struct {
	db *pgxpool.Pool
}

func NewHospitalRepository(db *pgxpool.Pool) service.HospitalRepository {
	return &HospitalRepository{db: db}
}

// GetByID возвращает больницу по UUID
func (r *HospitalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Hospital, error) {
	query := `SELECT ` + hospitalColumns + ` FROM hospitals h WHERE h.id = $1;`
	h, err := scanHospital(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("hospital with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get hospital by id: %w", err)
	}
	return h, nil
}

// NearbyHospitals возвращает больницы в радиусе от точки
func (r *HospitalRepository) NearbyHospitals(ctx context.Context, point models.GeoPoint, radiusKm float64) ([]*models.Hospital, error) {
	query := `
		SELECT ` + hospitalColumns + `
		FROM hospitals h
		WHERE ST_DWithin(
			h.location,
			ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
			$3
		)
		ORDER BY ST_Distance(h.location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography), h.id;
	`
	return r.query(ctx, query, point.Longitude, point.Latitude, radiusKm*1000)
}

// ListHospitals возвращает все больницы
func (r *HospitalRepository) ListHospitals(ctx context.Context) ([]*models.Hospital, error) {
	return r.query(ctx, `SELECT `+hospitalColumns+` FROM hospitals h ORDER BY h.id;`)
}

// ReserveCapacity под строкой FOR UPDATE занимает койку, а если коек нет и ведется
// счетчик назначений, то место в нем. Число коек не уходит в минус.
func (r *HospitalRepository) ReserveCapacity(ctx context.Context, id uuid.UUID) (*models.Hospital, models.CapacityUnit, error) {
	query := `
		WITH prev AS (
			SELECT
				h.id,
				` + legacyBeds + ` AS beds,
				` + legacyAssigned + ` AS assigned,
				` + legacyMaxCapacity + ` AS max_capacity
			FROM hospitals h
			WHERE h.id = $1
			FOR UPDATE
		), pick AS (
			SELECT
				prev.*,
				CASE
					WHEN prev.beds > 0 THEN 'bed'
					WHEN prev.assigned IS NOT NULL AND prev.max_capacity IS NOT NULL THEN 'assignment'
					ELSE ''
				END AS unit
			FROM prev
		)
		UPDATE hospitals h SET
			available_beds = CASE WHEN pick.unit = 'bed' THEN pick.beds - 1 ELSE GREATEST(pick.beds, 0) END,
			currently_assigned_ambulances = CASE
				WHEN pick.unit = 'assignment' THEN pick.assigned + 1
				ELSE h.currently_assigned_ambulances
			END,
			updated_at = NOW()
		FROM pick
		WHERE h.id = pick.id
		RETURNING ` + hospitalColumns + `, pick.unit;
	`
	var (
		row  hospitalRow
		unit string
	)
	err := r.db.QueryRow(ctx, query, id).Scan(append(row.scanTargets(), &unit)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.CapacityNone, fmt.Errorf("hospital with id %s: %w", id, models.ErrNotFound)
		}
		return nil, models.CapacityNone, fmt.Errorf("failed to reserve hospital capacity: %w", err)
	}
	return row.toModel(), models.CapacityUnit(unit), nil
}

// ReleaseCapacity возвращает единицу, занятую при назначении, когда инцидент уходит из больницы
func (r *HospitalRepository) ReleaseCapacity(ctx context.Context, id uuid.UUID, unit models.CapacityUnit) error {
	var query string
	switch unit {
	case models.CapacityNone:
		return nil
	case models.CapacityBed:
		query = `
			UPDATE hospitals h SET
				available_beds = ` + legacyBeds + ` + 1,
				updated_at = NOW()
			WHERE h.id = $1;
		`
	case models.CapacityAssignment:
		query = `
			UPDATE hospitals h SET
				currently_assigned_ambulances = GREATEST(` + legacyAssigned + ` - 1, 0),
				updated_at = NOW()
			WHERE h.id = $1;
		`
	default:
		return fmt.Errorf("unknown capacity unit %q: %w", unit, models.ErrInvalidInput)
	}

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to release hospital capacity: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("hospital with id %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// UpdateBeds выставляет число свободных коек, сообщенное больницей
func (r *HospitalRepository) UpdateBeds(ctx context.Context, id uuid.UUID, beds int) (*models.Hospital, error) {
	if beds < 0 {
		return nil, fmt.Errorf("negative bed count %d: %w", beds, models.ErrInvalidInput)
	}
	query := `
		UPDATE hospitals h SET
			available_beds = $1,
			updated_at = NOW()
		WHERE h.id = $2
		RETURNING ` + hospitalColumns + `;
	`
	h, err := scanHospital(r.db.QueryRow(ctx, query, beds, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("hospital with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update hospital beds: %w", err)
	}
	return h, nil
}

func (r *HospitalRepository) query(ctx context.Context, query string, args ...any) ([]*models.Hospital, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query hospitals: %w", err)
	}
	defer rows.Close()

	hospitals := make([]*models.Hospital, 0)
	for rows.Next() {
		h, err := scanHospital(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hospital row: %w", err)
		}
		hospitals = append(hospitals, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error hospital iteration: %w", err)
	}
	return hospitals, nil
}

func (r *hospitalRow) scanTargets() []any {
	return []any{
		&r.ID,
		&r.Name,
		&r.Address,
		&r.ContactNumber,
		&r.Longitude,
		&r.Latitude,
		&r.Status,
		&r.AvailableBeds,
		&r.MaxAmbulanceCapacity,
		&r.CurrentlyAssignedAmbulances,
		&r.Attributes,
		&r.UpdatedAt,
	}
}

func scanHospital(row pgx.Row) (*models.Hospital, error) {
	var r hospitalRow
	if err := row.Scan(r.scanTargets()...); err != nil {
		return nil, err
	}
	return r.toModel(), nil
}
