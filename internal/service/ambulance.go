package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/lifecycle"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/sirupsen/logrus"
)

// reportable - статусы, которые машина или больница сообщают напрямую.
// Dispatched и Rejected проходят только через распределение.
var reportable = map[models.Status]bool{
	models.StatusOnRoute:   true,
	models.StatusArrived:   true,
	models.StatusAdmitted:  true,
	models.StatusCompleted: true,
	models.StatusResolved:  true,
}

// UpdateStatus применяет статус, сообщенный машиной. При завершении машина освобождается.
func (c *Coordinator) UpdateStatus(ctx context.Context, incidentID uuid.UUID, status models.Status) (*models.Incident, error) {
	log := c.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "UpdateStatus",
		"incident_id": incidentID,
		"status":      status,
	})

	if !reportable[status] {
		return nil, wrap("update status", fmt.Errorf("%w: status %q cannot be reported directly", models.ErrInvalidInput, status))
	}

	unlock := c.lockIncident(incidentID)
	defer unlock()

	inc, err := c.load(ctx, incidentID)
	if err != nil {
		log.WithError(err).Error("Failed to get incident")
		return nil, wrap("update status", err)
	}

	if err := lifecycle.Apply(inc, lifecycle.Transition{To: status}, c.now()); err != nil {
		log.WithError(err).Warn("Status transition rejected")
		return nil, wrap("update status", err)
	}
	if err := c.persist(ctx, inc); err != nil {
		log.WithError(err).Error("Failed to update incident")
		return nil, wrap("update status", err)
	}

	c.unwatch(inc.ID)
	if status.IsTerminal() {
		c.releaseAmbulance(ctx, inc.AssignedAmbulance.ID, inc.ID, log)
	}
	log.Info("Incident status updated")

	snap := c.resolve(ctx, inc, nil, nil)
	c.events.BroadcastStatusUpdate(ctx, snap)
	return snap, nil
}

// UpdateLocation сохраняет положение назначенной машины и рассылает его.
// Статус инцидента не меняется.
func (c *Coordinator) UpdateLocation(ctx context.Context, incidentID uuid.UUID, point models.GeoPoint) error {
	log := c.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "UpdateLocation",
		"incident_id": incidentID,
	})

	if math.IsNaN(point.Latitude) || math.IsNaN(point.Longitude) ||
		point.Latitude < -90 || point.Latitude > 90 || point.Longitude < -180 || point.Longitude > 180 {
		return wrap("update location", fmt.Errorf("%w: coordinates out of range", models.ErrInvalidInput))
	}

	inc, err := c.load(ctx, incidentID)
	if err != nil {
		log.WithError(err).Error("Failed to get incident")
		return wrap("update location", err)
	}
	if !inc.AssignedAmbulance.IsSet() {
		return wrap("update location", fmt.Errorf("%w: incident has no assigned ambulance", models.ErrInvalidInput))
	}

	if err := c.ambulances.UpdateLocation(ctx, inc.AssignedAmbulance.ID, point, c.now()); err != nil {
		log.WithError(err).Error("Failed to update ambulance location")
		return wrap("update location", err)
	}
	log.WithField("ambulance_id", inc.AssignedAmbulance.ID).Debug("Ambulance location updated")

	c.events.BroadcastLocation(ctx, inc, point)
	return nil
}
