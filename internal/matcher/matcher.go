// Package matcher выбирает ближайшую подходящую машину скорой помощи и больницу
// с постепенным ослаблением ограничений.
package matcher

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
)

const (
	DefaultAmbulanceRadiusKm = 30.0
	DefaultHospitalRadiusKm  = 50.0
)

// Tier - ступень поиска, на которой найден ресурс
type Tier int

const (
	TierNone Tier = iota
	TierNearbyEligible
	TierAnyEligible
	TierNearbyAny
	TierAny
)

func (t Tier) String() string {
	switch t {
	case TierNearbyEligible:
		return "nearby_eligible"
	case TierAnyEligible:
		return "any_eligible"
	case TierNearbyAny:
		return "nearby_any"
	case TierAny:
		return "any"
	}
	return "none"
}

// AmbulanceSource - чтение машин из хранилища
type AmbulanceSource interface {
	NearbyAmbulances(ctx context.Context, point models.GeoPoint, radiusKm float64) ([]*models.Ambulance, error)
	ListAmbulances(ctx context.Context) ([]*models.Ambulance, error)
}

// HospitalSource - чтение больниц из хранилища
type HospitalSource interface {
	NearbyHospitals(ctx context.Context, point models.GeoPoint, radiusKm float64) ([]*models.Hospital, error)
	ListHospitals(ctx context.Context) ([]*models.Hospital, error)
}

// Config - радиусы поиска
type Config struct {
	AmbulanceRadiusKm float64
	HospitalRadiusKm  float64
}

// Matcher только читает хранилище и никогда не меняет ресурсы
type Matcher struct {
	ambulances AmbulanceSource
	hospitals  HospitalSource
	cfg        Config
}

func New(ambulances AmbulanceSource, hospitals HospitalSource, cfg Config) *Matcher {
	if cfg.AmbulanceRadiusKm <= 0 {
		cfg.AmbulanceRadiusKm = DefaultAmbulanceRadiusKm
	}
	if cfg.HospitalRadiusKm <= 0 {
		cfg.HospitalRadiusKm = DefaultHospitalRadiusKm
	}
	return &Matcher{ambulances: ambulances, hospitals: hospitals, cfg: cfg}
}

// AmbulanceQuery - параметры поиска машины
type AmbulanceQuery struct {
	// ExcludeOffline исключает явно отключенные машины и на резервных ступенях
	ExcludeOffline bool
	// Exclude - машины, которые уже пробовали занять
	Exclude []uuid.UUID
}

// FindAmbulance возвращает ближайшую машину по четырем ступеням.
// nil без ошибки означает, что подходящих машин нет вовсе.
func (m *Matcher) FindAmbulance(ctx context.Context, loc models.GeoPoint, q AmbulanceQuery) (*models.Ambulance, Tier, error) {
	excluded := toSet(q.Exclude)
	usable := func(a *models.Ambulance) bool {
		if _, skip := excluded[a.ID]; skip {
			return false
		}
		return !q.ExcludeOffline || !AmbulanceOffline(a)
	}

	nearby, err := m.ambulances.NearbyAmbulances(ctx, loc, m.cfg.AmbulanceRadiusKm)
	if err != nil {
		return nil, TierNone, fmt.Errorf("matcher: nearby ambulances: %w", err)
	}
	nearby = withinRadius(nearby, loc, m.cfg.AmbulanceRadiusKm, ambulancePoint)
	sortNearest(nearby, loc, ambulancePoint, ambulanceID)

	if a := first(nearby, func(a *models.Ambulance) bool { return usable(a) && AmbulanceEligible(a) }); a != nil {
		return a, TierNearbyEligible, nil
	}

	all, err := m.ambulances.ListAmbulances(ctx)
	if err != nil {
		return nil, TierNone, fmt.Errorf("matcher: list ambulances: %w", err)
	}
	sortNearest(all, loc, ambulancePoint, ambulanceID)

	if a := first(all, func(a *models.Ambulance) bool { return usable(a) && AmbulanceEligible(a) }); a != nil {
		return a, TierAnyEligible, nil
	}
	if a := first(nearby, usable); a != nil {
		return a, TierNearbyAny, nil
	}
	if a := first(all, usable); a != nil {
		return a, TierAny, nil
	}
	return nil, TierNone, nil
}

// FindHospital возвращает ближайшую больницу со свободной вместимостью.
// Для больниц ослабляется только радиус.
func (m *Matcher) FindHospital(ctx context.Context, loc models.GeoPoint, exclude ...uuid.UUID) (*models.Hospital, Tier, error) {
	excluded := toSet(exclude)
	eligible := func(h *models.Hospital) bool {
		_, skip := excluded[h.ID]
		return !skip && HospitalEligible(h)
	}

	nearby, err := m.hospitals.NearbyHospitals(ctx, loc, m.cfg.HospitalRadiusKm)
	if err != nil {
		return nil, TierNone, fmt.Errorf("matcher: nearby hospitals: %w", err)
	}
	nearby = withinRadius(nearby, loc, m.cfg.HospitalRadiusKm, hospitalPoint)
	sortNearest(nearby, loc, hospitalPoint, hospitalID)
	if h := first(nearby, eligible); h != nil {
		return h, TierNearbyEligible, nil
	}

	all, err := m.hospitals.ListHospitals(ctx)
	if err != nil {
		return nil, TierNone, fmt.Errorf("matcher: list hospitals: %w", err)
	}
	sortNearest(all, loc, hospitalPoint, hospitalID)
	if h := first(all, eligible); h != nil {
		return h, TierAnyEligible, nil
	}
	return nil, TierNone, nil
}

// AmbulanceEligible - машина свободна и не отключена
func AmbulanceEligible(a *models.Ambulance) bool {
	return a.State == models.AmbulanceAvailable && a.Online && a.AssignedIncidentID == nil
}

// AmbulanceOffline - машина явно помечена как отключенная
func AmbulanceOffline(a *models.Ambulance) bool {
	return a.State == models.AmbulanceOffline || !a.Online
}

// HospitalEligible - больница в сети, есть свободные койки и не достигнут потолок назначений
func HospitalEligible(h *models.Hospital) bool {
	if h.Status != models.HospitalOnline || h.AvailableBeds <= 0 {
		return false
	}
	if h.TracksAssignments() {
		return *h.CurrentlyAssignedAmbulances < *h.MaxAmbulanceCapacity
	}
	return true
}

func ambulancePoint(a *models.Ambulance) models.GeoPoint { return a.Location }
func ambulanceID(a *models.Ambulance) uuid.UUID         { return a.ID }
func hospitalPoint(h *models.Hospital) models.GeoPoint   { return h.Location }
func hospitalID(h *models.Hospital) uuid.UUID           { return h.ID }

func withinRadius[T any](items []T, loc models.GeoPoint, radiusKm float64, point func(T) models.GeoPoint) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if loc.DistanceKm(point(it)) <= radiusKm {
			out = append(out, it)
		}
	}
	return out
}

// sortNearest упорядочивает по расстоянию, при равенстве - по идентификатору
func sortNearest[T any](items []T, loc models.GeoPoint, point func(T) models.GeoPoint, id func(T) uuid.UUID) {
	dist := make(map[uuid.UUID]float64, len(items))
	for _, it := range items {
		dist[id(it)] = loc.DistanceKm(point(it))
	}
	sort.SliceStable(items, func(i, j int) bool {
		di, dj := dist[id(items[i])], dist[id(items[j])]
		if di != dj {
			return di < dj
		}
		return id(items[i]).String() < id(items[j]).String()
	})
}

func first[T any](items []T, ok func(T) bool) T {
	var zero T
	for _, it := range items {
		if ok(it) {
			return it
		}
	}
	return zero
}

func toSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
