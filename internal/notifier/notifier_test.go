package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu       sync.Mutex
	name     string
	failRoom string
	got      []Envelope
	closed   bool
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Deliver(_ context.Context, env Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if env.Room == s.failRoom {
		return errors.New("connection reset")
	}
	s.got = append(s.got, env)
	return nil
}

func (s *recordingSink) Close() error {
	s.closed = true
	return nil
}

func (s *recordingSink) rooms() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.got))
	for _, env := range s.got {
		out = append(out, env.Room)
	}
	return out
}

type countingObserver struct {
	ok, failed int
}

func (o *countingObserver) ObserveDelivery(_, _ string, err error) {
	if err != nil {
		o.failed++
		return
	}
	o.ok++
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

func assignedIncident() *models.Incident {
	eta := "4 min"
	return &models.Incident{
		ID:                uuid.New(),
		Status:            models.StatusDispatched,
		TrackingToken:     "3f9a1c",
		AssignedHospital:  models.RefTo[models.Hospital](uuid.New()),
		AssignedAmbulance: models.RefTo[models.Ambulance](uuid.New()),
		ETA:               &eta,
		UpdatedAt:         time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestBroadcastStatusUpdate_AllFourRooms(t *testing.T) {
	sink := &recordingSink{name: "rec"}
	n := New(quietLogger(), nil, sink)
	inc := assignedIncident()

	n.BroadcastStatusUpdate(context.Background(), inc)

	assert.Equal(t, []string{
		ControlCenterRoom,
		inc.AssignedHospital.ID.String(),
		inc.AssignedAmbulance.ID.String(),
		inc.TrackingToken,
	}, sink.rooms())

	var payload map[string]any
	require.NoError(t, json.Unmarshal(sink.got[0].Data, &payload))
	assert.Equal(t, inc.ID.String(), payload["incidentId"])
	assert.Equal(t, "Dispatched", payload["status"])
	assert.Equal(t, "4 min", payload["eta"])
	assert.Equal(t, "2024-05-01T10:00:00Z", payload["updatedAt"])
	assert.Equal(t, EventStatusUpdate, sink.got[0].Event)
}

func TestBroadcastStatusUpdate_SkipsUnassignedRooms(t *testing.T) {
	sink := &recordingSink{name: "rec"}
	n := New(quietLogger(), nil, sink)
	inc := &models.Incident{ID: uuid.New(), Status: models.StatusPending, TrackingToken: "tok"}

	n.BroadcastStatusUpdate(context.Background(), inc)

	assert.Equal(t, []string{ControlCenterRoom, "tok"}, sink.rooms())
}

func TestBroadcast_FailureInOneRoomDoesNotBlockOthers(t *testing.T) {
	inc := assignedIncident()
	failing := &recordingSink{name: "flaky", failRoom: inc.AssignedHospital.ID.String()}
	healthy := &recordingSink{name: "ok"}
	observer := &countingObserver{}
	n := New(quietLogger(), observer, failing, healthy)

	n.BroadcastStatusUpdate(context.Background(), inc)

	assert.Len(t, failing.rooms(), 3)
	assert.Len(t, healthy.rooms(), 4)
	assert.Equal(t, 1, observer.failed)
	assert.Equal(t, 7, observer.ok)
}

func TestBroadcast_EmptyRoomIsSkipped(t *testing.T) {
	sink := &recordingSink{name: "rec"}
	n := New(quietLogger(), nil, sink)

	n.Broadcast(context.Background(), "", EventNewAlert, map[string]string{"a": "b"})

	assert.Empty(t, sink.rooms())
}

func TestBroadcastLocation(t *testing.T) {
	sink := &recordingSink{name: "rec"}
	n := New(quietLogger(), nil, sink)
	inc := assignedIncident()

	n.BroadcastLocation(context.Background(), inc, models.GeoPoint{Latitude: 15.9, Longitude: 74.5})

	assert.Equal(t, []string{ControlCenterRoom, inc.AssignedHospital.ID.String(), inc.TrackingToken}, sink.rooms())
	assert.Equal(t, EventAmbulanceLocation, sink.got[0].Event)
	assert.JSONEq(t,
		`{"incidentId":"`+inc.ID.String()+`","coordinates":{"lat":15.9,"lng":74.5}}`,
		string(sink.got[0].Data))
}

func TestClose_ClosesSinks(t *testing.T) {
	a, b := &recordingSink{name: "a"}, &recordingSink{name: "b"}
	New(quietLogger(), nil, a, b).Close()
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}
