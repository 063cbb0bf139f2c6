package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/matcher"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// IncidentRepository определяет контракт для хранения инцидентов
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	GetByTrackingToken(ctx context.Context, token string) (*models.Incident, error)
	Update(ctx context.Context, incident *models.Incident) error
	ListIncidents(ctx context.Context, filter models.IncidentFilter, page, pageSize int) ([]*models.Incident, error)
}

// AmbulanceRepository - машины скорой помощи
type AmbulanceRepository interface {
	matcher.AmbulanceSource
	GetByID(ctx context.Context, id uuid.UUID) (*models.Ambulance, error)
	// Claim атомарно занимает машину под инцидент. Удается, только если машина
	// свободна, уже закреплена за этим инцидентом или ее прошлый инцидент завершен.
	// Иначе models.ErrAmbulanceUnavailable.
	Claim(ctx context.Context, ambulanceID, incidentID uuid.UUID) (*models.Ambulance, error)
	// Release освобождает машину, только если она закреплена за incidentID
	Release(ctx context.Context, ambulanceID, incidentID uuid.UUID) error
	UpdateLocation(ctx context.Context, id uuid.UUID, point models.GeoPoint, at time.Time) error
}

// HospitalRepository - больницы
type HospitalRepository interface {
	matcher.HospitalSource
	GetByID(ctx context.Context, id uuid.UUID) (*models.Hospital, error)
	// ReserveCapacity занимает одну единицу: свободную койку, а если коек нет и ведется
	// счетчик назначений, то место в счетчике. CapacityNone - занять было нечего,
	// число коек осталось на нуле.
	ReserveCapacity(ctx context.Context, id uuid.UUID) (*models.Hospital, models.CapacityUnit, error)
	// ReleaseCapacity возвращает ровно ту единицу, что была занята. CapacityNone - ничего не делает.
	ReleaseCapacity(ctx context.Context, id uuid.UUID, unit models.CapacityUnit) error
	UpdateBeds(ctx context.Context, id uuid.UUID, beds int) (*models.Hospital, error)
}

// IncidentCache - кэш инцидентов. Get возвращает nil, nil при промахе.
type IncidentCache interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	Set(ctx context.Context, incident *models.Incident) error
	Invalidate(ctx context.Context, id uuid.UUID) error
}

// ResourceMatcher - подбор машин и больниц
type ResourceMatcher interface {
	FindAmbulance(ctx context.Context, loc models.GeoPoint, q matcher.AmbulanceQuery) (*models.Ambulance, matcher.Tier, error)
	FindHospital(ctx context.Context, loc models.GeoPoint, exclude ...uuid.UUID) (*models.Hospital, matcher.Tier, error)
}

// EventEmitter - рассылка событий по комнатам. Вызывается только после сохранения.
type EventEmitter interface {
	Broadcast(ctx context.Context, room, event string, payload any)
	BroadcastStatusUpdate(ctx context.Context, incident *models.Incident)
	BroadcastLocation(ctx context.Context, incident *models.Incident, point models.GeoPoint)
}

// DispatchObserver - метрики диспетчеризации
type DispatchObserver interface {
	ObserveMatch(resource, tier string)
	ObserveReassignment(reason string, reassigned bool)
	SetPending(n int)
}

// DispatchService определяет операции диспетчеризации для транспорта
type DispatchService interface {
	CreateIncident(ctx context.Context, in CreateIncidentInput) (*models.Incident, error)
	Dispatch(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	TrackIncident(ctx context.Context, token string) (*models.Incident, error)
	ListIncidents(ctx context.Context, filter models.IncidentFilter, page, pageSize int) ([]*models.Incident, error)
	HandleHospitalAction(ctx context.Context, incidentID, hospitalID uuid.UUID, action HospitalAction) (*models.Incident, error)
	UpdateStatus(ctx context.Context, incidentID uuid.UUID, status models.Status) (*models.Incident, error)
	UpdateLocation(ctx context.Context, incidentID uuid.UUID, point models.GeoPoint) error
	AdminReassign(ctx context.Context, incidentID uuid.UUID, in ReassignInput) (*models.Incident, error)
	UpdateSummary(ctx context.Context, incidentID uuid.UUID, aiSummary, priority *string) (*models.Incident, error)
	UpdateHospitalBeds(ctx context.Context, hospitalID uuid.UUID, beds int) (*models.Hospital, error)
	ActiveIncidentsForHospital(ctx context.Context, hospitalID uuid.UUID) ([]*models.Incident, error)
	ActiveIncidentsForAmbulance(ctx context.Context, ambulanceID uuid.UUID) ([]*models.Incident, error)
	DashboardSnapshot(ctx context.Context) (*Dashboard, error)
}

var _ DispatchService = (*Coordinator)(nil)
