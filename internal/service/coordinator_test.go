package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/matcher"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/notifier"
	"github.com/shenikar/emergency_dispatch_system/internal/service"
	"github.com/shenikar/emergency_dispatch_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type mockDeps struct {
	incidents  *mocks.MockIncidentRepository
	ambulances *mocks.MockAmbulanceRepository
	hospitals  *mocks.MockHospitalRepository
	matcher    *mocks.MockResourceMatcher
	events     *mocks.MockEventEmitter
	cache      *mocks.MockIncidentCache
	observer   *mocks.MockDispatchObserver
	logBuf     *bytes.Buffer
}

func newTestCoordinator(t *testing.T, withCache, withObserver bool) (*service.Coordinator, *mockDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)

	logger := logrus.New()
	var logBuf bytes.Buffer
	logger.SetOutput(&logBuf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	m := &mockDeps{
		incidents:  mocks.NewMockIncidentRepository(ctrl),
		ambulances: mocks.NewMockAmbulanceRepository(ctrl),
		hospitals:  mocks.NewMockHospitalRepository(ctrl),
		matcher:    mocks.NewMockResourceMatcher(ctrl),
		events:     mocks.NewMockEventEmitter(ctrl),
		cache:      mocks.NewMockIncidentCache(ctrl),
		observer:   mocks.NewMockDispatchObserver(ctrl),
		logBuf:     &logBuf,
	}
	deps := service.Deps{
		Incidents:  m.incidents,
		Ambulances: m.ambulances,
		Hospitals:  m.hospitals,
		Matcher:    m.matcher,
		Events:     m.events,
		Logger:     logger,
	}
	if withCache {
		deps.Cache = m.cache
	}
	if withObserver {
		deps.Observer = m.observer
	}
	return service.NewCoordinator(deps, service.Config{}), m
}

func TestCreateIncident_DispatchesAndAnnounces(t *testing.T) {
	// Подготовка
	coord, m := newTestCoordinator(t, false, true)
	ctx := context.Background()
	amb := &models.Ambulance{ID: uuid.New(), Location: north(2), State: models.AmbulanceBusy, Online: true}
	hosp := &models.Hospital{ID: uuid.New(), Location: north(3), Status: models.HospitalOnline, AvailableBeds: 2}

	// Ожидания
	m.incidents.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	m.matcher.EXPECT().FindAmbulance(ctx, origin, matcher.AmbulanceQuery{ExcludeOffline: true}).
		Return(amb, matcher.TierNearbyEligible, nil)
	m.ambulances.EXPECT().Claim(ctx, amb.ID, gomock.Any()).Return(amb, nil)
	m.observer.EXPECT().ObserveMatch("ambulance", "nearby_eligible")
	m.matcher.EXPECT().FindHospital(ctx, origin).Return(hosp, matcher.TierNearbyEligible, nil)
	m.observer.EXPECT().ObserveMatch("hospital", "nearby_eligible")
	m.hospitals.EXPECT().ReserveCapacity(ctx, hosp.ID).Return(hosp, models.CapacityBed, nil)
	m.incidents.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, inc *models.Incident) error {
		assert.Equal(t, models.StatusDispatched, inc.Status)
		assert.Equal(t, amb.ID, inc.AssignedAmbulance.ID)
		assert.Equal(t, hosp.ID, inc.AssignedHospital.ID)
		return nil
	})
	m.observer.EXPECT().SetPending(1)
	m.events.EXPECT().Broadcast(ctx, notifier.ControlCenterRoom, notifier.EventNewEmergency, gomock.Any())
	m.events.EXPECT().Broadcast(ctx, hosp.ID.String(), notifier.EventNewAlert, gomock.Any())
	m.events.EXPECT().Broadcast(ctx, amb.ID.String(), notifier.EventNewDispatch, gomock.Any())
	m.events.EXPECT().BroadcastStatusUpdate(ctx, gomock.Any())

	// Действие
	inc, err := coord.CreateIncident(ctx, service.CreateIncidentInput{Description: "Боль в груди", Location: origin})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusDispatched, inc.Status)
	assert.True(t, inc.AssignedAmbulance.IsResolved())
	assert.True(t, inc.AssignedHospital.IsResolved())
	assert.Equal(t, models.SeverityMedium, inc.Severity)
	assert.Len(t, inc.TrackingToken, 32)
	assert.Equal(t, 1, coord.Pending().Len())
}

func TestCreateIncident_PersistFailureReleasesResources(t *testing.T) {
	// Подготовка
	coord, m := newTestCoordinator(t, false, false)
	ctx := context.Background()
	amb := &models.Ambulance{ID: uuid.New(), Location: north(2)}
	hosp := &models.Hospital{ID: uuid.New(), Location: north(3)}
	dbErr := errors.New("connection reset")

	// Ожидания
	m.incidents.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	m.matcher.EXPECT().FindAmbulance(ctx, origin, gomock.Any()).Return(amb, matcher.TierNearbyEligible, nil)
	m.ambulances.EXPECT().Claim(ctx, amb.ID, gomock.Any()).Return(amb, nil)
	m.matcher.EXPECT().FindHospital(ctx, origin).Return(hosp, matcher.TierNearbyEligible, nil)
	m.hospitals.EXPECT().ReserveCapacity(ctx, hosp.ID).Return(hosp, models.CapacityBed, nil)
	m.incidents.EXPECT().Update(ctx, gomock.Any()).Return(dbErr)
	m.ambulances.EXPECT().Release(ctx, amb.ID, gomock.Any()).Return(nil)
	m.hospitals.EXPECT().ReleaseCapacity(ctx, hosp.ID, models.CapacityBed).Return(nil)
	m.events.EXPECT().Broadcast(ctx, notifier.ControlCenterRoom, notifier.EventNewEmergency, gomock.Any())
	m.events.EXPECT().BroadcastStatusUpdate(ctx, gomock.Any())

	// Действие
	inc, err := coord.CreateIncident(ctx, service.CreateIncidentInput{Description: "Падение с высоты", Location: origin})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, inc.Status)
	assert.False(t, inc.AssignedAmbulance.IsSet())
	assert.Equal(t, 0, coord.Pending().Len())
	assert.Contains(t, m.logBuf.String(), "Failed to dispatch incident, keeping it pending")
}

func TestCreateIncident_RetriesWhenAmbulanceTakenConcurrently(t *testing.T) {
	// Подготовка
	coord, m := newTestCoordinator(t, false, false)
	ctx := context.Background()
	taken := &models.Ambulance{ID: uuid.New(), Location: north(1)}
	free := &models.Ambulance{ID: uuid.New(), Location: north(4)}

	// Ожидания
	m.incidents.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	gomock.InOrder(
		m.matcher.EXPECT().FindAmbulance(ctx, origin, matcher.AmbulanceQuery{ExcludeOffline: true}).
			Return(taken, matcher.TierNearbyEligible, nil),
		m.ambulances.EXPECT().Claim(ctx, taken.ID, gomock.Any()).Return(nil, models.ErrAmbulanceUnavailable),
		m.matcher.EXPECT().FindAmbulance(ctx, origin, gomock.Cond(func(q matcher.AmbulanceQuery) bool {
			return len(q.Exclude) == 1 && q.Exclude[0] == taken.ID
		})).Return(free, matcher.TierNearbyEligible, nil),
		m.ambulances.EXPECT().Claim(ctx, free.ID, gomock.Any()).Return(free, nil),
	)
	m.matcher.EXPECT().FindHospital(ctx, origin).Return(nil, matcher.TierNone, nil)
	m.incidents.EXPECT().Update(ctx, gomock.Any()).Return(nil)
	m.events.EXPECT().Broadcast(ctx, notifier.ControlCenterRoom, notifier.EventNewEmergency, gomock.Any())
	m.events.EXPECT().Broadcast(ctx, free.ID.String(), notifier.EventNewDispatch, gomock.Any())
	m.events.EXPECT().BroadcastStatusUpdate(ctx, gomock.Any())

	// Действие
	inc, err := coord.CreateIncident(ctx, service.CreateIncidentInput{Description: "Ожог", Location: origin})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusDispatched, inc.Status)
	assert.Equal(t, free.ID, inc.AssignedAmbulance.ID)
	assert.False(t, inc.AssignedHospital.IsSet())
	assert.Equal(t, 0, coord.Pending().Len())
}

func TestCreateIncident_InvalidInput(t *testing.T) {
	coord, _ := newTestCoordinator(t, false, false)

	_, err := coord.CreateIncident(context.Background(), service.CreateIncidentInput{Description: "  ", Location: origin})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = coord.CreateIncident(context.Background(), service.CreateIncidentInput{
		Description: "Травма",
		Location:    models.GeoPoint{Latitude: 91, Longitude: 0},
	})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestAcceptIncident_NotFound(t *testing.T) {
	// Подготовка
	coord, m := newTestCoordinator(t, false, false)
	ctx := context.Background()
	id := uuid.New()

	// Ожидания
	m.incidents.EXPECT().GetByID(ctx, id).Return(nil, models.ErrNotFound)

	// Действие
	_, err := coord.AcceptIncident(ctx, id, uuid.Nil)

	// Проверки
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Contains(t, m.logBuf.String(), "Failed to get incident")
}

func TestAcceptIncident_WrongHospital(t *testing.T) {
	// Подготовка
	coord, m := newTestCoordinator(t, false, false)
	ctx := context.Background()
	inc := &models.Incident{
		ID:               uuid.New(),
		Status:           models.StatusDispatched,
		AssignedHospital: models.RefTo[models.Hospital](uuid.New()),
	}

	// Ожидания
	m.incidents.EXPECT().GetByID(ctx, inc.ID).Return(inc, nil)

	// Действие
	_, err := coord.AcceptIncident(ctx, inc.ID, uuid.New())

	// Проверки
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestHandleHospitalAction_UnknownAction(t *testing.T) {
	coord, _ := newTestCoordinator(t, false, false)

	_, err := coord.HandleHospitalAction(context.Background(), uuid.New(), uuid.Nil, service.HospitalAction("maybe"))

	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestParseHospitalAction(t *testing.T) {
	tests := []struct {
		raw  string
		want service.HospitalAction
		ok   bool
	}{
		{"accept", service.HospitalAccept, true},
		{"Accepted", service.HospitalAccept, true},
		{" REJECT ", service.HospitalReject, true},
		{"rejected", service.HospitalReject, true},
		{"later", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := service.ParseHospitalAction(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdminReassign_BusyAmbulanceConflict(t *testing.T) {
	// Подготовка
	coord, m := newTestCoordinator(t, false, false)
	ctx := context.Background()
	inc := &models.Incident{
		ID:                uuid.New(),
		Status:            models.StatusDispatched,
		AssignedAmbulance: models.RefTo[models.Ambulance](uuid.New()),
		AssignedHospital:  models.RefTo[models.Hospital](uuid.New()),
	}
	requested := uuid.New()

	// Ожидания
	m.incidents.EXPECT().GetByID(ctx, inc.ID).Return(inc, nil)
	m.ambulances.EXPECT().Claim(ctx, requested, inc.ID).Return(nil, models.ErrAmbulanceUnavailable)

	// Действие
	_, err := coord.AdminReassign(ctx, inc.ID, service.ReassignInput{AmbulanceID: requested})

	// Проверки
	assert.ErrorIs(t, err, models.ErrAmbulanceUnavailable)
	assert.Contains(t, m.logBuf.String(), "Requested ambulance cannot be assigned")
}

func TestGetIncident_ServedFromCache(t *testing.T) {
	// Подготовка
	coord, m := newTestCoordinator(t, true, false)
	ctx := context.Background()
	cached := &models.Incident{ID: uuid.New(), Status: models.StatusPending}

	// Ожидания
	m.cache.EXPECT().Get(ctx, cached.ID).Return(cached, nil)

	// Действие
	got, err := coord.GetIncident(ctx, cached.ID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, cached.ID, got.ID)
}

func TestGetIncident_CacheMissLoadsAndStores(t *testing.T) {
	// Подготовка
	coord, m := newTestCoordinator(t, true, false)
	ctx := context.Background()
	hosp := &models.Hospital{ID: uuid.New(), Name: "City"}
	stored := &models.Incident{
		ID:               uuid.New(),
		Status:           models.StatusOnRoute,
		AssignedHospital: models.RefTo[models.Hospital](hosp.ID),
	}

	// Ожидания
	m.cache.EXPECT().Get(ctx, stored.ID).Return(nil, nil)
	m.incidents.EXPECT().GetByID(ctx, stored.ID).Return(stored, nil)
	m.hospitals.EXPECT().GetByID(ctx, hosp.ID).Return(hosp, nil)
	m.cache.EXPECT().Set(ctx, stored).Return(errors.New("redis down"))

	// Действие
	got, err := coord.GetIncident(ctx, stored.ID)

	// Проверки
	require.NoError(t, err)
	require.True(t, got.AssignedHospital.IsResolved())
	assert.Equal(t, "City", got.AssignedHospital.Record.Name)
	assert.Contains(t, m.logBuf.String(), "Failed to cache incident")
}

func TestUpdateHospitalBeds_NegativeRejected(t *testing.T) {
	coord, _ := newTestCoordinator(t, false, false)

	_, err := coord.UpdateHospitalBeds(context.Background(), uuid.New(), -1)

	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestUpdateLocation_WithoutAmbulance(t *testing.T) {
	// Подготовка
	coord, m := newTestCoordinator(t, false, false)
	ctx := context.Background()
	inc := &models.Incident{ID: uuid.New(), Status: models.StatusPending}

	// Ожидания
	m.incidents.EXPECT().GetByID(ctx, inc.ID).Return(inc, nil)

	// Действие
	err := coord.UpdateLocation(ctx, inc.ID, north(1))

	// Проверки
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestListIncidents_ClampsPaging(t *testing.T) {
	// Подготовка
	coord, m := newTestCoordinator(t, false, false)
	ctx := context.Background()
	filter := models.IncidentFilter{Statuses: []models.Status{models.StatusPending}}

	// Ожидания
	m.incidents.EXPECT().ListIncidents(ctx, filter, 1, 100).Return(nil, nil)

	// Действие
	_, err := coord.ListIncidents(ctx, filter, 0, 500)

	// Проверки
	require.NoError(t, err)
}
