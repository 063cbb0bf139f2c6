package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/matcher"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/notifier"
	"github.com/shenikar/emergency_dispatch_system/internal/pending"
	"github.com/shenikar/emergency_dispatch_system/internal/repository/memory"
	"github.com/shenikar/emergency_dispatch_system/internal/scheduler"
	"github.com/shenikar/emergency_dispatch_system/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var origin = models.GeoPoint{Latitude: 15.86, Longitude: 74.52}

// north - точка в km километрах к северу от origin
func north(km float64) models.GeoPoint {
	return models.GeoPoint{Latitude: origin.Latitude + km/111.19, Longitude: origin.Longitude}
}

type recordingSink struct {
	mu   sync.Mutex
	envs []notifier.Envelope
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Deliver(_ context.Context, env notifier.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.envs = append(s.envs, env)
	return nil
}

func (s *recordingSink) Close() error { return nil }

func (s *recordingSink) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.envs = nil
}

func (s *recordingSink) rooms(event string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rooms []string
	for _, e := range s.envs {
		if e.Event == event {
			rooms = append(rooms, e.Room)
		}
	}
	return rooms
}

func (s *recordingSink) find(room, event string) (notifier.Envelope, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.envs {
		if e.Room == room && e.Event == event {
			return e, true
		}
	}
	return notifier.Envelope{}, false
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

type testEnv struct {
	store    *memory.Store
	coord    *service.Coordinator
	sink     *recordingSink
	registry *pending.Registry
	clock    *fakeClock
	logger   *logrus.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	store := memory.NewStore()
	sink := &recordingSink{}
	registry := pending.NewRegistry()
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}

	coord := service.NewCoordinator(service.Deps{
		Incidents:  store.Incidents(),
		Ambulances: store.Ambulances(),
		Hospitals:  store.Hospitals(),
		Matcher:    matcher.New(store.Ambulances(), store.Hospitals(), matcher.Config{}),
		Events:     notifier.New(logger, nil, sink),
		Pending:    registry,
		Logger:     logger,
		Clock:      clock.Now,
	}, service.Config{})

	return &testEnv{store: store, coord: coord, sink: sink, registry: registry, clock: clock, logger: logger}
}

func (e *testEnv) addAmbulance(km float64, state models.AmbulanceState) *models.Ambulance {
	return e.store.PutAmbulance(&models.Ambulance{
		VehicleNumber: "KA-" + uuid.NewString()[:4],
		Location:      north(km),
		State:         state,
		Online:        state != models.AmbulanceOffline,
	})
}

func (e *testEnv) addHospital(km float64, beds int) *models.Hospital {
	return e.store.PutHospital(&models.Hospital{
		Name:          "Hospital " + uuid.NewString()[:4],
		Location:      north(km),
		Status:        models.HospitalOnline,
		AvailableBeds: beds,
	})
}

func (e *testEnv) create(t *testing.T) *models.Incident {
	t.Helper()
	inc, err := e.coord.CreateIncident(context.Background(), service.CreateIncidentInput{
		Description: "Человеку плохо на остановке",
		Contact:     "+7 900 000-00-00",
		Location:    origin,
	})
	require.NoError(t, err)
	return inc
}

func (e *testEnv) beds(t *testing.T, id uuid.UUID) int {
	t.Helper()
	h, err := e.store.Hospitals().GetByID(context.Background(), id)
	require.NoError(t, err)
	return h.AvailableBeds
}

func TestScenarioA_NoAmbulancesKeepsIncidentPending(t *testing.T) {
	env := newTestEnv(t)
	env.addHospital(3, 5)

	inc := env.create(t)

	assert.Equal(t, models.StatusPending, inc.Status)
	assert.False(t, inc.AssignedAmbulance.IsSet())
	assert.False(t, inc.AssignedHospital.IsSet())
	assert.NotEmpty(t, inc.TrackingToken)

	stored, err := env.store.Incidents().GetByID(context.Background(), inc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
	assert.Equal(t, 0, env.registry.Len())
	assert.Contains(t, env.sink.rooms(notifier.EventNewEmergency), notifier.ControlCenterRoom)
}

func TestScenarioB_BusyNearestFallsBackToFartherAvailable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	hospital := env.addHospital(3, 5)

	// Ближайшая машина уже обслуживает активный вызов
	busy := env.addAmbulance(1, models.AmbulanceAvailable)
	other := env.create(t)
	require.Equal(t, busy.ID, other.AssignedAmbulance.ID)

	far := env.addAmbulance(45, models.AmbulanceAvailable)
	inc := env.create(t)

	assert.Equal(t, models.StatusDispatched, inc.Status)
	assert.Equal(t, far.ID, inc.AssignedAmbulance.ID)
	require.True(t, inc.AssignedAmbulance.IsResolved())
	assert.Equal(t, hospital.ID, inc.AssignedHospital.ID)
	require.NotNil(t, inc.ETA)

	claimed, err := env.store.Ambulances().GetByID(ctx, far.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AmbulanceBusy, claimed.State)
	require.NotNil(t, claimed.AssignedIncidentID)
	assert.Equal(t, inc.ID, *claimed.AssignedIncidentID)
}

func TestScenarioC_RejectionRedispatchesToAnotherHospital(t *testing.T) {
	env := newTestEnv(t)
	env.addAmbulance(2, models.AmbulanceAvailable)
	first := env.addHospital(3, 4)
	second := env.addHospital(10, 4)

	inc := env.create(t)
	require.Equal(t, first.ID, inc.AssignedHospital.ID)
	entry, ok := env.registry.Get(inc.ID)
	require.True(t, ok)
	assert.Equal(t, 3, env.beds(t, first.ID))

	env.clock.Advance(20 * time.Second)
	env.sink.reset()

	got, err := env.coord.RejectIncident(context.Background(), inc.ID, first.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusDispatched, got.Status)
	assert.Equal(t, second.ID, got.AssignedHospital.ID)

	fresh, ok := env.registry.Get(inc.ID)
	require.True(t, ok)
	assert.Equal(t, second.ID, fresh.HospitalID)
	assert.True(t, fresh.DispatchedAt.After(entry.DispatchedAt))

	assert.Equal(t, 4, env.beds(t, first.ID))
	assert.Equal(t, 3, env.beds(t, second.ID))
	assert.Equal(t, []string{second.ID.String()}, env.sink.rooms(notifier.EventNewAlert))
}

func TestScenarioC_NoOtherHospitalLeavesRejected(t *testing.T) {
	env := newTestEnv(t)
	env.addAmbulance(2, models.AmbulanceAvailable)
	only := env.addHospital(3, 4)

	inc := env.create(t)
	got, err := env.coord.RejectIncident(context.Background(), inc.ID, uuid.Nil)
	require.NoError(t, err)

	assert.Equal(t, models.StatusRejected, got.Status)
	assert.Equal(t, 0, env.registry.Len())
	assert.Equal(t, 4, env.beds(t, only.ID))
}

func TestScenarioD_WatchdogReassignsExactlyOnce(t *testing.T) {
	env := newTestEnv(t)
	env.addAmbulance(2, models.AmbulanceAvailable)
	first := env.addHospital(3, 4)
	second := env.addHospital(10, 4)

	inc := env.create(t)
	require.Equal(t, first.ID, inc.AssignedHospital.ID)

	watchdog := scheduler.NewWatchdog(env.registry, env.coord, env.logger, 10*time.Second, 60*time.Second)
	ctx := context.Background()

	// 50 секунд - еще рано
	assert.Equal(t, 0, watchdog.Tick(ctx, env.clock.Advance(50*time.Second)))
	assert.Equal(t, 1, env.registry.Len())

	now := env.clock.Advance(11 * time.Second)
	assert.Equal(t, 1, watchdog.Tick(ctx, now))

	got, err := env.store.Incidents().GetByID(ctx, inc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDispatched, got.Status)
	assert.Equal(t, second.ID, got.AssignedHospital.ID)

	entry, ok := env.registry.Get(inc.ID)
	require.True(t, ok)
	assert.Equal(t, second.ID, entry.HospitalID)
	assert.Equal(t, now, entry.DispatchedAt)

	// Повторный проход сразу после - пустой
	assert.Equal(t, 0, watchdog.Tick(ctx, now))
	again, err := env.store.Incidents().GetByID(ctx, inc.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, again.AssignedHospital.ID)
}

func TestScenarioD_TimeoutSkipsIncidentThatMovedOn(t *testing.T) {
	env := newTestEnv(t)
	env.addAmbulance(2, models.AmbulanceAvailable)
	first := env.addHospital(3, 4)
	env.addHospital(10, 4)
	ctx := context.Background()

	inc := env.create(t)
	// Больница приняла вызов, а сторож получил устаревшую запись
	_, err := env.coord.AcceptIncident(ctx, inc.ID, first.ID)
	require.NoError(t, err)

	got, done, err := env.coord.ReassignAfterTimeout(ctx, inc.ID, first.ID)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, models.StatusOnRoute, got.Status)
	assert.Equal(t, first.ID, got.AssignedHospital.ID)
}

func TestScenarioE_AdminReassignForcesDispatchAndNotifiesAllRooms(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	amb := env.addAmbulance(2, models.AmbulanceAvailable)
	first := env.addHospital(3, 4)
	second := env.addHospital(10, 4)

	inc := env.create(t)
	_, err := env.coord.AcceptIncident(ctx, inc.ID, first.ID)
	require.NoError(t, err)
	_, err = env.coord.UpdateStatus(ctx, inc.ID, models.StatusArrived)
	require.NoError(t, err)

	env.sink.reset()
	got, err := env.coord.AdminReassign(ctx, inc.ID, service.ReassignInput{HospitalID: second.ID})
	require.NoError(t, err)

	assert.Equal(t, models.StatusDispatched, got.Status)
	assert.True(t, got.ForceAssigned)
	assert.Equal(t, second.ID, got.AssignedHospital.ID)
	assert.Equal(t, amb.ID, got.AssignedAmbulance.ID)

	rooms := env.sink.rooms(notifier.EventStatusUpdate)
	assert.ElementsMatch(t, []string{
		notifier.ControlCenterRoom,
		second.ID.String(),
		amb.ID.String(),
		inc.TrackingToken,
	}, rooms)

	for _, room := range rooms {
		envl, ok := env.sink.find(room, notifier.EventStatusUpdate)
		require.True(t, ok)
		var payload notifier.StatusPayload
		require.NoError(t, json.Unmarshal(envl.Data, &payload))
		assert.Equal(t, models.StatusDispatched, payload.Status)
	}

	assert.Equal(t, []string{notifier.ControlCenterRoom}, env.sink.rooms(notifier.EventAdminReassign))
	assert.Equal(t, 4, env.beds(t, first.ID))
	assert.Equal(t, 3, env.beds(t, second.ID))
}

func TestStatusTransitions_InvalidIsRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.addAmbulance(2, models.AmbulanceAvailable)
	env.addHospital(3, 4)
	inc := env.create(t)

	_, err := env.coord.UpdateStatus(ctx, inc.ID, models.StatusAdmitted)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	_, err = env.coord.UpdateStatus(ctx, inc.ID, models.StatusDispatched)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	stored, err := env.store.Incidents().GetByID(ctx, inc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDispatched, stored.Status)
}

func TestCompletion_ReleasesAmbulance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	amb := env.addAmbulance(2, models.AmbulanceAvailable)
	env.addHospital(3, 4)
	inc := env.create(t)

	got, err := env.coord.UpdateStatus(ctx, inc.ID, models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, 0, env.registry.Len())

	a, err := env.store.Ambulances().GetByID(ctx, amb.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AmbulanceAvailable, a.State)
	assert.Nil(t, a.AssignedIncidentID)

	// Освобожденная машина уходит на следующий вызов
	next := env.create(t)
	assert.Equal(t, amb.ID, next.AssignedAmbulance.ID)
}

func TestLocationUpdate_BroadcastsToThreeRooms(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	amb := env.addAmbulance(2, models.AmbulanceAvailable)
	hospital := env.addHospital(3, 4)
	inc := env.create(t)

	env.sink.reset()
	point := north(1)
	require.NoError(t, env.coord.UpdateLocation(ctx, inc.ID, point))

	assert.ElementsMatch(t, []string{
		notifier.ControlCenterRoom,
		hospital.ID.String(),
		inc.TrackingToken,
	}, env.sink.rooms(notifier.EventAmbulanceLocation))
	assert.Empty(t, env.sink.rooms(notifier.EventStatusUpdate))

	a, err := env.store.Ambulances().GetByID(ctx, amb.ID)
	require.NoError(t, err)
	assert.Equal(t, point, a.Location)
}

func TestConcurrentCreates_NeverShareAnAmbulance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		env.addAmbulance(float64(i+1), models.AmbulanceAvailable)
	}
	env.addHospital(3, 100)

	const n = 40
	results := make(chan *models.Incident, n)
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inc, err := env.coord.CreateIncident(ctx, service.CreateIncidentInput{
				Description: "Массовое ДТП",
				Location:    origin,
			})
			if err != nil {
				errs <- err
				return
			}
			results <- inc
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	owners := make(map[uuid.UUID]uuid.UUID)
	for inc := range results {
		if !inc.AssignedAmbulance.IsSet() {
			assert.Equal(t, models.StatusPending, inc.Status)
			continue
		}
		prev, dup := owners[inc.AssignedAmbulance.ID]
		assert.False(t, dup, "ambulance %s assigned to %s and %s", inc.AssignedAmbulance.ID, prev, inc.ID)
		owners[inc.AssignedAmbulance.ID] = inc.ID
	}
	assert.NotEmpty(t, owners)
	assert.LessOrEqual(t, len(owners), 10)

	for ambID, incID := range owners {
		a, err := env.store.Ambulances().GetByID(ctx, ambID)
		require.NoError(t, err)
		require.NotNil(t, a.AssignedIncidentID)
		assert.Equal(t, incID, *a.AssignedIncidentID)
	}
}

func TestHospitalBeds_NeverNegative(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 3; i++ {
		env.addAmbulance(float64(i+1), models.AmbulanceAvailable)
	}
	h := env.addHospital(3, 1)

	for i := 0; i < 3; i++ {
		inc := env.create(t)
		assert.Equal(t, models.StatusDispatched, inc.Status)
		assert.GreaterOrEqual(t, env.beds(t, h.ID), 0)
	}
	assert.Equal(t, 0, env.beds(t, h.ID))
}

func TestAdminReassign_FullHospitalDoesNotGainBedOnRejection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.addAmbulance(2, models.AmbulanceAvailable)
	nearest := env.addHospital(3, 1)
	full := env.addHospital(10, 0)

	inc := env.create(t)
	require.Equal(t, nearest.ID, inc.AssignedHospital.ID)
	assert.Equal(t, models.CapacityBed, inc.HeldCapacity)
	assert.Equal(t, 0, env.beds(t, nearest.ID))

	// У принудительно назначенной больницы коек нет, занимать нечего
	got, err := env.coord.AdminReassign(ctx, inc.ID, service.ReassignInput{HospitalID: full.ID})
	require.NoError(t, err)
	assert.Equal(t, full.ID, got.AssignedHospital.ID)
	assert.Equal(t, models.CapacityNone, got.HeldCapacity)
	assert.Equal(t, 0, env.beds(t, full.ID))
	assert.Equal(t, 1, env.beds(t, nearest.ID))

	got, err = env.coord.RejectIncident(ctx, inc.ID, full.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusDispatched, got.Status)
	assert.Equal(t, nearest.ID, got.AssignedHospital.ID)
	assert.Equal(t, 0, env.beds(t, full.ID))
	assert.Equal(t, 0, env.beds(t, nearest.ID))
}

func TestDispatch_TakesBedBeforeAssignmentSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.addAmbulance(2, models.AmbulanceAvailable)
	ceiling, assigned := 3, 0
	h := env.store.PutHospital(&models.Hospital{
		Name:                        "City Hospital",
		Location:                    north(3),
		Status:                      models.HospitalOnline,
		AvailableBeds:               5,
		MaxAmbulanceCapacity:        &ceiling,
		CurrentlyAssignedAmbulances: &assigned,
	})

	inc := env.create(t)
	require.Equal(t, h.ID, inc.AssignedHospital.ID)
	assert.Equal(t, models.CapacityBed, inc.HeldCapacity)

	stored, err := env.store.Hospitals().GetByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.AvailableBeds)
	require.NotNil(t, stored.CurrentlyAssignedAmbulances)
	assert.Equal(t, 0, *stored.CurrentlyAssignedAmbulances)

	// Отказ возвращает ровно занятую койку, счетчик не трогается
	_, err = env.coord.RejectIncident(ctx, inc.ID, h.ID)
	require.NoError(t, err)
	stored, err = env.store.Hospitals().GetByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.AvailableBeds)
	assert.Equal(t, 0, *stored.CurrentlyAssignedAmbulances)
}

func TestAdminReassign_AmbulanceOnlyKeepsAdmittedHospital(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.addAmbulance(2, models.AmbulanceAvailable)
	hospital := env.addHospital(3, 4)
	other := env.addHospital(5, 4)

	inc := env.create(t)
	require.Equal(t, hospital.ID, inc.AssignedHospital.ID)
	_, err := env.coord.AcceptIncident(ctx, inc.ID, hospital.ID)
	require.NoError(t, err)
	_, err = env.coord.UpdateStatus(ctx, inc.ID, models.StatusArrived)
	require.NoError(t, err)
	_, err = env.coord.UpdateStatus(ctx, inc.ID, models.StatusAdmitted)
	require.NoError(t, err)
	assert.Equal(t, 3, env.beds(t, hospital.ID))

	replacement := env.addAmbulance(4, models.AmbulanceAvailable)
	got, err := env.coord.AdminReassign(ctx, inc.ID, service.ReassignInput{AmbulanceID: replacement.ID})
	require.NoError(t, err)

	assert.Equal(t, models.StatusDispatched, got.Status)
	assert.Equal(t, replacement.ID, got.AssignedAmbulance.ID)
	assert.Equal(t, hospital.ID, got.AssignedHospital.ID)
	assert.Equal(t, models.CapacityBed, got.HeldCapacity)
	assert.Equal(t, 2, env.beds(t, hospital.ID))
	assert.Equal(t, 4, env.beds(t, other.ID))
}

func TestTrackingTokens_Unique(t *testing.T) {
	env := newTestEnv(t)
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		inc := env.create(t)
		seen[inc.TrackingToken] = struct{}{}
	}
	assert.Len(t, seen, 10000)
}

func TestETA_RecomputedIdenticallyOnReassignment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.store.PutAmbulance(&models.Ambulance{
		Location: models.GeoPoint{Latitude: 15.88, Longitude: 74.53},
		State:    models.AmbulanceAvailable,
		Online:   true,
	})
	first := env.addHospital(3, 4)
	second := env.addHospital(10, 4)

	inc := env.create(t)
	require.NotNil(t, inc.ETA)
	assert.Equal(t, "4 min", *inc.ETA)

	got, err := env.coord.AdminReassign(ctx, inc.ID, service.ReassignInput{HospitalID: second.ID})
	require.NoError(t, err)
	assert.Equal(t, "4 min", *got.ETA)

	got, err = env.coord.AdminReassign(ctx, inc.ID, service.ReassignInput{HospitalID: first.ID})
	require.NoError(t, err)
	assert.Equal(t, "4 min", *got.ETA)
}

func TestQueries_ActiveIncidentsAndDashboard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	amb := env.addAmbulance(2, models.AmbulanceAvailable)
	hospital := env.addHospital(3, 4)
	inc := env.create(t)

	forHospital, err := env.coord.ActiveIncidentsForHospital(ctx, hospital.ID)
	require.NoError(t, err)
	require.Len(t, forHospital, 1)
	assert.Equal(t, inc.ID, forHospital[0].ID)

	forAmbulance, err := env.coord.ActiveIncidentsForAmbulance(ctx, amb.ID)
	require.NoError(t, err)
	assert.Len(t, forAmbulance, 1)

	_, err = env.coord.ActiveIncidentsForHospital(ctx, uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)

	tracked, err := env.coord.TrackIncident(ctx, inc.TrackingToken)
	require.NoError(t, err)
	assert.Equal(t, inc.ID, tracked.ID)
	assert.True(t, tracked.AssignedHospital.IsResolved())

	dash, err := env.coord.DashboardSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, dash.Incidents, 1)
	assert.Len(t, dash.Hospitals, 1)
	assert.Len(t, dash.Ambulances, 1)
	assert.Equal(t, 1, dash.ByStatus[models.StatusDispatched])
	assert.Equal(t, 1, dash.Pending)

	_, err = env.coord.UpdateStatus(ctx, inc.ID, models.StatusCompleted)
	require.NoError(t, err)
	forAmbulance, err = env.coord.ActiveIncidentsForAmbulance(ctx, amb.ID)
	require.NoError(t, err)
	assert.Empty(t, forAmbulance)
}
