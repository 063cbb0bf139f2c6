// Package memory - хранилище в памяти процесса с теми же контрактами, что и PostGIS.
// Используется в режиме STORAGE_DRIVER=memory и в тестах.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/service"
)

// Store хранит инциденты, машины и больницы под одним мьютексом,
// поэтому Claim и ReserveCapacity атомарны.
type Store struct {
	mu         sync.RWMutex
	incidents  map[uuid.UUID]*models.Incident
	tokens     map[string]uuid.UUID
	ambulances map[uuid.UUID]*models.Ambulance
	hospitals  map[uuid.UUID]*models.Hospital
	now        func() time.Time
}

func NewStore() *Store {
	return &Store{
		incidents:  make(map[uuid.UUID]*models.Incident),
		tokens:     make(map[string]uuid.UUID),
		ambulances: make(map[uuid.UUID]*models.Ambulance),
		hospitals:  make(map[uuid.UUID]*models.Hospital),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Incidents, Ambulances и Hospitals - представления хранилища под контракты сервиса
func (s *Store) Incidents() service.IncidentRepository   { return incidentView{s} }
func (s *Store) Ambulances() service.AmbulanceRepository { return ambulanceView{s} }
func (s *Store) Hospitals() service.HospitalRepository   { return hospitalView{s} }

// PutAmbulance регистрирует или заменяет машину
func (s *Store) PutAmbulance(a *models.Ambulance) *models.Ambulance {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := cloneAmbulance(a)
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = s.now()
	}
	s.ambulances[c.ID] = c
	return cloneAmbulance(c)
}

// PutHospital регистрирует или заменяет больницу
func (s *Store) PutHospital(h *models.Hospital) *models.Hospital {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := cloneHospital(h)
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = s.now()
	}
	s.hospitals[c.ID] = c
	return cloneHospital(c)
}

type incidentView struct{ s *Store }

func (v incidentView) Create(_ context.Context, incident *models.Incident) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if incident.ID == uuid.Nil {
		incident.ID = uuid.New()
	}
	if _, ok := s.incidents[incident.ID]; ok {
		return fmt.Errorf("incident %s already exists: %w", incident.ID, models.ErrInvalidInput)
	}
	if _, ok := s.tokens[incident.TrackingToken]; ok {
		return fmt.Errorf("tracking token already in use: %w", models.ErrInvalidInput)
	}
	now := s.now()
	incident.CreatedAt = now
	incident.UpdatedAt = now

	stored := storedIncident(incident)
	s.incidents[stored.ID] = stored
	s.tokens[stored.TrackingToken] = stored.ID
	return nil
}

func (v incidentView) GetByID(_ context.Context, id uuid.UUID) (*models.Incident, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	inc, ok := v.s.incidents[id]
	if !ok {
		return nil, fmt.Errorf("incident with id %s: %w", id, models.ErrNotFound)
	}
	return inc.Clone(), nil
}

func (v incidentView) GetByTrackingToken(_ context.Context, token string) (*models.Incident, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	id, ok := v.s.tokens[token]
	if !ok {
		return nil, fmt.Errorf("incident with tracking token: %w", models.ErrNotFound)
	}
	return v.s.incidents[id].Clone(), nil
}

func (v incidentView) Update(_ context.Context, incident *models.Incident) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.incidents[incident.ID]
	if !ok {
		return fmt.Errorf("incident with id %s not found for update: %w", incident.ID, models.ErrNotFound)
	}
	stored := storedIncident(incident)
	stored.TrackingToken = prev.TrackingToken
	stored.CreatedAt = prev.CreatedAt
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = s.now()
	}
	s.incidents[stored.ID] = stored
	return nil
}

func (v incidentView) ListIncidents(_ context.Context, filter models.IncidentFilter, page, pageSize int) ([]*models.Incident, error) {
	v.s.mu.RLock()
	out := make([]*models.Incident, 0, len(v.s.incidents))
	for _, inc := range v.s.incidents {
		if filter.Matches(inc) {
			out = append(out, inc.Clone())
		}
	}
	v.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})

	if pageSize <= 0 {
		return out, nil
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(out) {
		return []*models.Incident{}, nil
	}
	return out[start:min(start+pageSize, len(out))], nil
}

type ambulanceView struct{ s *Store }

func (v ambulanceView) GetByID(_ context.Context, id uuid.UUID) (*models.Ambulance, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	a, ok := v.s.ambulances[id]
	if !ok {
		return nil, fmt.Errorf("ambulance with id %s: %w", id, models.ErrNotFound)
	}
	return cloneAmbulance(a), nil
}

func (v ambulanceView) NearbyAmbulances(_ context.Context, point models.GeoPoint, radiusKm float64) ([]*models.Ambulance, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := make([]*models.Ambulance, 0)
	for _, a := range v.s.ambulances {
		if point.DistanceKm(a.Location) <= radiusKm {
			out = append(out, cloneAmbulance(a))
		}
	}
	return out, nil
}

func (v ambulanceView) ListAmbulances(_ context.Context) ([]*models.Ambulance, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := make([]*models.Ambulance, 0, len(v.s.ambulances))
	for _, a := range v.s.ambulances {
		out = append(out, cloneAmbulance(a))
	}
	slices.SortFunc(out, func(a, b *models.Ambulance) int { return strings.Compare(a.ID.String(), b.ID.String()) })
	return out, nil
}

func (v ambulanceView) Claim(_ context.Context, ambulanceID, incidentID uuid.UUID) (*models.Ambulance, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.ambulances[ambulanceID]
	if !ok {
		return nil, fmt.Errorf("ambulance with id %s: %w", ambulanceID, models.ErrNotFound)
	}
	if cur := a.AssignedIncidentID; cur != nil && *cur != incidentID {
		if other, ok := s.incidents[*cur]; ok && !other.Status.IsTerminal() {
			return nil, fmt.Errorf("ambulance %s: %w", ambulanceID, models.ErrAmbulanceUnavailable)
		}
	}
	id := incidentID
	a.State = models.AmbulanceBusy
	a.AssignedIncidentID = &id
	a.UpdatedAt = s.now()
	return cloneAmbulance(a), nil
}

func (v ambulanceView) Release(_ context.Context, ambulanceID, incidentID uuid.UUID) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.ambulances[ambulanceID]
	if !ok || a.AssignedIncidentID == nil || *a.AssignedIncidentID != incidentID {
		return nil
	}
	a.State = models.AmbulanceAvailable
	a.AssignedIncidentID = nil
	a.UpdatedAt = s.now()
	return nil
}

func (v ambulanceView) UpdateLocation(_ context.Context, id uuid.UUID, point models.GeoPoint, at time.Time) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.ambulances[id]
	if !ok {
		return fmt.Errorf("ambulance with id %s: %w", id, models.ErrNotFound)
	}
	a.Location = point
	a.LocationUpdatedAt = at
	a.UpdatedAt = s.now()
	return nil
}

type hospitalView struct{ s *Store }

func (v hospitalView) GetByID(_ context.Context, id uuid.UUID) (*models.Hospital, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	h, ok := v.s.hospitals[id]
	if !ok {
		return nil, fmt.Errorf("hospital with id %s: %w", id, models.ErrNotFound)
	}
	return cloneHospital(h), nil
}

func (v hospitalView) NearbyHospitals(_ context.Context, point models.GeoPoint, radiusKm float64) ([]*models.Hospital, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := make([]*models.Hospital, 0)
	for _, h := range v.s.hospitals {
		if point.DistanceKm(h.Location) <= radiusKm {
			out = append(out, cloneHospital(h))
		}
	}
	return out, nil
}

func (v hospitalView) ListHospitals(_ context.Context) ([]*models.Hospital, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := make([]*models.Hospital, 0, len(v.s.hospitals))
	for _, h := range v.s.hospitals {
		out = append(out, cloneHospital(h))
	}
	slices.SortFunc(out, func(a, b *models.Hospital) int { return strings.Compare(a.ID.String(), b.ID.String()) })
	return out, nil
}

func (v hospitalView) ReserveCapacity(_ context.Context, id uuid.UUID) (*models.Hospital, models.CapacityUnit, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hospitals[id]
	if !ok {
		return nil, models.CapacityNone, fmt.Errorf("hospital with id %s: %w", id, models.ErrNotFound)
	}
	unit := models.CapacityNone
	switch {
	case h.AvailableBeds > 0:
		h.AvailableBeds--
		unit = models.CapacityBed
	case h.TracksAssignments():
		n := *h.CurrentlyAssignedAmbulances + 1
		h.CurrentlyAssignedAmbulances = &n
		unit = models.CapacityAssignment
	default:
		h.AvailableBeds = 0
	}
	h.UpdatedAt = s.now()
	return cloneHospital(h), unit, nil
}

func (v hospitalView) ReleaseCapacity(_ context.Context, id uuid.UUID, unit models.CapacityUnit) error {
	if unit == models.CapacityNone {
		return nil
	}
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hospitals[id]
	if !ok {
		return fmt.Errorf("hospital with id %s: %w", id, models.ErrNotFound)
	}
	switch unit {
	case models.CapacityBed:
		h.AvailableBeds++
	case models.CapacityAssignment:
		if h.CurrentlyAssignedAmbulances != nil {
			n := max(*h.CurrentlyAssignedAmbulances-1, 0)
			h.CurrentlyAssignedAmbulances = &n
		}
	default:
		return fmt.Errorf("unknown capacity unit %q: %w", unit, models.ErrInvalidInput)
	}
	h.UpdatedAt = s.now()
	return nil
}

func (v hospitalView) UpdateBeds(_ context.Context, id uuid.UUID, beds int) (*models.Hospital, error) {
	if beds < 0 {
		return nil, fmt.Errorf("negative bed count %d: %w", beds, models.ErrInvalidInput)
	}
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hospitals[id]
	if !ok {
		return nil, fmt.Errorf("hospital with id %s: %w", id, models.ErrNotFound)
	}
	h.AvailableBeds = beds
	h.UpdatedAt = s.now()
	return cloneHospital(h), nil
}

// storedIncident - копия без загруженных записей ссылок
func storedIncident(inc *models.Incident) *models.Incident {
	c := inc.Clone()
	c.AssignedAmbulance = c.AssignedAmbulance.Unresolved()
	c.AssignedHospital = c.AssignedHospital.Unresolved()
	return c
}

func cloneAmbulance(a *models.Ambulance) *models.Ambulance {
	c := *a
	if a.AssignedIncidentID != nil {
		id := *a.AssignedIncidentID
		c.AssignedIncidentID = &id
	}
	return &c
}

func cloneHospital(h *models.Hospital) *models.Hospital {
	c := *h
	if h.MaxAmbulanceCapacity != nil {
		v := *h.MaxAmbulanceCapacity
		c.MaxAmbulanceCapacity = &v
	}
	if h.CurrentlyAssignedAmbulances != nil {
		v := *h.CurrentlyAssignedAmbulances
		c.CurrentlyAssignedAmbulances = &v
	}
	return &c
}
