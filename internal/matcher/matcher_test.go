package matcher

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticSource отдает фиксированные списки ресурсов
type staticSource struct {
	ambulances []*models.Ambulance
	hospitals  []*models.Hospital
	err        error
}

func (s *staticSource) NearbyAmbulances(_ context.Context, p models.GeoPoint, r float64) ([]*models.Ambulance, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*models.Ambulance
	for _, a := range s.ambulances {
		if p.DistanceKm(a.Location) <= r {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *staticSource) ListAmbulances(context.Context) ([]*models.Ambulance, error) {
	return append([]*models.Ambulance(nil), s.ambulances...), s.err
}

func (s *staticSource) NearbyHospitals(_ context.Context, p models.GeoPoint, r float64) ([]*models.Hospital, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*models.Hospital
	for _, h := range s.hospitals {
		if p.DistanceKm(h.Location) <= r {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *staticSource) ListHospitals(context.Context) ([]*models.Hospital, error) {
	return append([]*models.Hospital(nil), s.hospitals...), s.err
}

var origin = models.GeoPoint{Latitude: 15.86, Longitude: 74.52}

// at сдвигает точку на север примерно на km километров
func at(km float64) models.GeoPoint {
	return models.GeoPoint{Latitude: origin.Latitude + km/111.19, Longitude: origin.Longitude}
}

func ambulance(km float64, state models.AmbulanceState) *models.Ambulance {
	a := &models.Ambulance{ID: uuid.New(), Location: at(km), State: state, Online: state != models.AmbulanceOffline}
	if state == models.AmbulanceBusy {
		id := uuid.New()
		a.AssignedIncidentID = &id
	}
	return a
}

func hospital(km float64, beds int) *models.Hospital {
	return &models.Hospital{ID: uuid.New(), Location: at(km), Status: models.HospitalOnline, AvailableBeds: beds}
}

func newMatcher(src *staticSource) *Matcher {
	return New(src, src, Config{})
}

func TestFindAmbulance_NearestEligibleWithinRadius(t *testing.T) {
	near := ambulance(2, models.AmbulanceAvailable)
	far := ambulance(10, models.AmbulanceAvailable)
	m := newMatcher(&staticSource{ambulances: []*models.Ambulance{far, near}})

	got, tier, err := m.FindAmbulance(context.Background(), origin, AmbulanceQuery{ExcludeOffline: true})

	require.NoError(t, err)
	assert.Equal(t, near.ID, got.ID)
	assert.Equal(t, TierNearbyEligible, tier)
}

func TestFindAmbulance_BusyNearestFallsBackToAvailableOutsideRadius(t *testing.T) {
	busy := ambulance(1, models.AmbulanceBusy)
	distant := ambulance(80, models.AmbulanceAvailable)
	m := newMatcher(&staticSource{ambulances: []*models.Ambulance{busy, distant}})

	got, tier, err := m.FindAmbulance(context.Background(), origin, AmbulanceQuery{ExcludeOffline: true})

	require.NoError(t, err)
	assert.Equal(t, distant.ID, got.ID)
	assert.Equal(t, TierAnyEligible, tier)
}

func TestFindAmbulance_DegradesToNearbyRegardlessOfState(t *testing.T) {
	busy := ambulance(5, models.AmbulanceBusy)
	farBusy := ambulance(100, models.AmbulanceBusy)
	m := newMatcher(&staticSource{ambulances: []*models.Ambulance{farBusy, busy}})

	got, tier, err := m.FindAmbulance(context.Background(), origin, AmbulanceQuery{ExcludeOffline: true})

	require.NoError(t, err)
	assert.Equal(t, busy.ID, got.ID)
	assert.Equal(t, TierNearbyAny, tier)
}

func TestFindAmbulance_LastResortAnyAmbulance(t *testing.T) {
	farBusy := ambulance(100, models.AmbulanceBusy)
	m := newMatcher(&staticSource{ambulances: []*models.Ambulance{farBusy}})

	got, tier, err := m.FindAmbulance(context.Background(), origin, AmbulanceQuery{})

	require.NoError(t, err)
	assert.Equal(t, farBusy.ID, got.ID)
	assert.Equal(t, TierAny, tier)
}

func TestFindAmbulance_ExcludeOffline(t *testing.T) {
	offline := ambulance(1, models.AmbulanceOffline)
	m := newMatcher(&staticSource{ambulances: []*models.Ambulance{offline}})

	got, _, err := m.FindAmbulance(context.Background(), origin, AmbulanceQuery{ExcludeOffline: true})
	require.NoError(t, err)
	assert.Nil(t, got)

	got, tier, err := m.FindAmbulance(context.Background(), origin, AmbulanceQuery{})
	require.NoError(t, err)
	assert.Equal(t, offline.ID, got.ID)
	assert.Equal(t, TierNearbyAny, tier)
}

func TestFindAmbulance_ExcludeList(t *testing.T) {
	a := ambulance(1, models.AmbulanceAvailable)
	b := ambulance(3, models.AmbulanceAvailable)
	m := newMatcher(&staticSource{ambulances: []*models.Ambulance{a, b}})

	got, _, err := m.FindAmbulance(context.Background(), origin, AmbulanceQuery{Exclude: []uuid.UUID{a.ID}})

	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}

func TestFindAmbulance_NoneRegistered(t *testing.T) {
	m := newMatcher(&staticSource{})

	got, tier, err := m.FindAmbulance(context.Background(), origin, AmbulanceQuery{ExcludeOffline: true})

	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, TierNone, tier)
}

func TestFindAmbulance_TieBrokenByID(t *testing.T) {
	a := ambulance(4, models.AmbulanceAvailable)
	b := ambulance(4, models.AmbulanceAvailable)
	want := a
	if b.ID.String() < a.ID.String() {
		want = b
	}
	m := newMatcher(&staticSource{ambulances: []*models.Ambulance{a, b}})

	for i := 0; i < 5; i++ {
		got, _, err := m.FindAmbulance(context.Background(), origin, AmbulanceQuery{})
		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)
	}
}

func TestFindAmbulance_SourceError(t *testing.T) {
	m := newMatcher(&staticSource{err: errors.New("db down")})

	_, _, err := m.FindAmbulance(context.Background(), origin, AmbulanceQuery{})

	require.Error(t, err)
	assert.ErrorContains(t, err, "db down")
}

func TestFindHospital_SkipsFullAndOffline(t *testing.T) {
	full := hospital(1, 0)
	offline := hospital(2, 5)
	offline.Status = models.HospitalOffline
	capped := hospital(3, 5)
	max, cur := 2, 2
	capped.MaxAmbulanceCapacity, capped.CurrentlyAssignedAmbulances = &max, &cur
	ok := hospital(20, 1)
	m := newMatcher(&staticSource{hospitals: []*models.Hospital{full, offline, capped, ok}})

	got, tier, err := m.FindHospital(context.Background(), origin)

	require.NoError(t, err)
	assert.Equal(t, ok.ID, got.ID)
	assert.Equal(t, TierNearbyEligible, tier)
}

func TestFindHospital_DropsRadiusButNeverCapacity(t *testing.T) {
	distant := hospital(300, 3)
	fullNear := hospital(1, 0)
	m := newMatcher(&staticSource{hospitals: []*models.Hospital{fullNear, distant}})

	got, tier, err := m.FindHospital(context.Background(), origin)
	require.NoError(t, err)
	assert.Equal(t, distant.ID, got.ID)
	assert.Equal(t, TierAnyEligible, tier)

	got, _, err = m.FindHospital(context.Background(), origin, distant.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestHospitalEligible_CeilingOnlyWhenBothFieldsPresent(t *testing.T) {
	h := hospital(1, 2)
	max := 1
	h.MaxAmbulanceCapacity = &max
	assert.True(t, HospitalEligible(h))

	cur := 1
	h.CurrentlyAssignedAmbulances = &cur
	assert.False(t, HospitalEligible(h))
}
