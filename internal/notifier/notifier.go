// Package notifier рассылает события инцидентов по комнатам подписчиков.
// Доставка выполняется по принципу "best effort": ошибка одного получателя
// не мешает остальным, повторных попыток нет.
package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/sirupsen/logrus"
)

// ControlCenterRoom - комната диспетчерского центра
const ControlCenterRoom = "control-center"

// Имена событий
const (
	EventNewEmergency      = "new-emergency"
	EventNewAlert          = "new-alert"
	EventNewDispatch       = "new-dispatch"
	EventAdminReassign     = "admin-reassign"
	EventStatusUpdate      = "status-update"
	EventAmbulanceLocation = "ambulance-location-update"
)

// Envelope - сообщение, адресованное одной комнате
type Envelope struct {
	Room   string          `json:"room"`
	Event  string          `json:"event"`
	Data   json.RawMessage `json:"data"`
	SentAt time.Time       `json:"sent_at"`
}

// Sink - транспорт доставки (websocket, очередь вебхуков, шина сообщений).
// Deliver не должен блокировать вызывающего надолго.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, env Envelope) error
	Close() error
}

// DeliveryObserver получает исход каждой доставки
type DeliveryObserver interface {
	ObserveDelivery(sink, event string, err error)
}

// StatusPayload - нормализованное обновление статуса
type StatusPayload struct {
	IncidentID uuid.UUID     `json:"incidentId"`
	Status     models.Status `json:"status"`
	ETA        *string       `json:"eta"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// Coordinates - координаты в формате клиентской карты
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LocationPayload - телеметрия машины по инциденту
type LocationPayload struct {
	IncidentID  uuid.UUID   `json:"incidentId"`
	Coordinates Coordinates `json:"coordinates"`
}

// Notifier не меняет состояние, он только сериализует и рассылает снимки
type Notifier struct {
	sinks    []Sink
	logger   *logrus.Logger
	observer DeliveryObserver
	now      func() time.Time
}

func New(logger *logrus.Logger, observer DeliveryObserver, sinks ...Sink) *Notifier {
	return &Notifier{
		sinks:    sinks,
		logger:   logger,
		observer: observer,
		now:      time.Now,
	}
}

// Broadcast отправляет событие в одну комнату через все транспорты
func (n *Notifier) Broadcast(ctx context.Context, room, event string, payload any) {
	log := n.logger.WithFields(logrus.Fields{
		"component": "notifier",
		"room":      room,
		"event":     event,
	})
	if room == "" {
		log.Warn("Missing room in broadcast, skipping")
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).Error("Failed to marshal broadcast payload")
		return
	}
	env := Envelope{Room: room, Event: event, Data: data, SentAt: n.now().UTC()}

	for _, sink := range n.sinks {
		err := sink.Deliver(ctx, env)
		if n.observer != nil {
			n.observer.ObserveDelivery(sink.Name(), event, err)
		}
		if err != nil {
			log.WithError(err).WithField("sink", sink.Name()).Warn("Failed to deliver event")
		}
	}
}

// BroadcastStatusUpdate рассылает нормализованный статус диспетчерам,
// назначенной больнице, назначенной машине и по токену отслеживания
func (n *Notifier) BroadcastStatusUpdate(ctx context.Context, inc *models.Incident) {
	if inc == nil {
		return
	}
	payload := BuildStatusPayload(inc)
	for _, room := range StatusRooms(inc) {
		n.Broadcast(ctx, room, EventStatusUpdate, payload)
	}
}

// BroadcastLocation рассылает положение машины диспетчерам, больнице и гражданину
func (n *Notifier) BroadcastLocation(ctx context.Context, inc *models.Incident, point models.GeoPoint) {
	payload := LocationPayload{
		IncidentID:  inc.ID,
		Coordinates: Coordinates{Lat: point.Latitude, Lng: point.Longitude},
	}
	rooms := []string{ControlCenterRoom}
	if inc.AssignedHospital.IsSet() {
		rooms = append(rooms, inc.AssignedHospital.ID.String())
	}
	if inc.TrackingToken != "" {
		rooms = append(rooms, inc.TrackingToken)
	}
	for _, room := range rooms {
		n.Broadcast(ctx, room, EventAmbulanceLocation, payload)
	}
}

// Close закрывает все транспорты
func (n *Notifier) Close() {
	for _, sink := range n.sinks {
		if err := sink.Close(); err != nil {
			n.logger.WithError(err).WithField("sink", sink.Name()).Warn("Failed to close sink")
		}
	}
}

// BuildStatusPayload строит нормализованный статус инцидента
func BuildStatusPayload(inc *models.Incident) StatusPayload {
	updatedAt := inc.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	return StatusPayload{
		IncidentID: inc.ID,
		Status:     inc.Status,
		ETA:        inc.ETA,
		UpdatedAt:  updatedAt,
	}
}

// StatusRooms - комнаты, получающие обновление статуса инцидента
func StatusRooms(inc *models.Incident) []string {
	rooms := []string{ControlCenterRoom}
	if inc.AssignedHospital.IsSet() {
		rooms = append(rooms, inc.AssignedHospital.ID.String())
	}
	if inc.AssignedAmbulance.IsSet() {
		rooms = append(rooms, inc.AssignedAmbulance.ID.String())
	}
	if inc.TrackingToken != "" {
		rooms = append(rooms, inc.TrackingToken)
	}
	return rooms
}
