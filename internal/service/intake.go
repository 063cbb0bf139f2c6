package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/lifecycle"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/notifier"
	"github.com/sirupsen/logrus"
)

// CreateIncidentInput - данные вызова от гражданина
type CreateIncidentInput struct {
	Description string
	Contact     string
	Severity    models.Severity
	Location    models.GeoPoint
	AISummary   *string
	Priority    *string
	Extra       map[string]any
}

func (in CreateIncidentInput) validate() error {
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: description is required", models.ErrInvalidInput)
	}
	lat, lon := in.Location.Latitude, in.Location.Longitude
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return fmt.Errorf("%w: coordinates out of range", models.ErrInvalidInput)
	}
	return nil
}

// CreateIncident сохраняет вызов и сразу пытается его распределить.
// Вызов сохраняется даже тогда, когда машин нет: он остается в Pending.
func (c *Coordinator) CreateIncident(ctx context.Context, in CreateIncidentInput) (*models.Incident, error) {
	log := c.logger.WithFields(logrus.Fields{
		"service": "dispatch",
		"method":  "CreateIncident",
	})
	log.Info("Attempting to create a new incident")

	if err := in.validate(); err != nil {
		return nil, wrap("create incident", err)
	}
	severity := in.Severity
	if severity == "" {
		severity = models.SeverityMedium
	}

	token, err := NewTrackingToken()
	if err != nil {
		return nil, wrap("create incident", err)
	}

	inc := &models.Incident{
		ID:            uuid.New(),
		Description:   strings.TrimSpace(in.Description),
		Contact:       strings.TrimSpace(in.Contact),
		Severity:      severity,
		Location:      in.Location,
		TrackingToken: token,
		Status:        models.StatusPending,
		AISummary:     in.AISummary,
		Priority:      in.Priority,
		Extra:         in.Extra,
	}
	if err := c.incidents.Create(ctx, inc); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return nil, wrap("create incident", err)
	}
	log = log.WithField("incident_id", inc.ID)
	log.Info("Incident created")

	unlock := c.lockIncident(inc.ID)
	defer unlock()

	snap, err := c.dispatch(ctx, inc, log)
	if err != nil {
		// Вызов уже сохранен, поэтому гражданин получает его в Pending
		log.WithError(err).Error("Failed to dispatch incident, keeping it pending")
		snap = inc.Clone()
		c.events.Broadcast(ctx, notifier.ControlCenterRoom, notifier.EventNewEmergency, snap)
		c.events.BroadcastStatusUpdate(ctx, snap)
	}
	return snap, nil
}

// Dispatch повторяет первичное распределение для инцидента в Pending
func (c *Coordinator) Dispatch(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	log := c.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "Dispatch",
		"incident_id": id,
	})

	unlock := c.lockIncident(id)
	defer unlock()

	inc, err := c.load(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to get incident")
		return nil, wrap("dispatch incident", err)
	}
	if inc.Status != models.StatusPending {
		return nil, wrap("dispatch incident", fmt.Errorf("%w: incident is %s, not Pending", models.ErrInvalidTransition, inc.Status))
	}

	snap, err := c.dispatch(ctx, inc, log)
	if err != nil {
		log.WithError(err).Error("Failed to dispatch incident")
		return nil, wrap("dispatch incident", err)
	}
	return snap, nil
}

// dispatch - первичное распределение: машина, затем больница, затем переход
// Pending -> Dispatched, сохранение и рассылка. Вызывается под блокировкой инцидента.
func (c *Coordinator) dispatch(ctx context.Context, inc *models.Incident, log *logrus.Entry) (*models.Incident, error) {
	ambulance, err := c.claimAmbulance(ctx, inc, log)
	if err != nil {
		return nil, err
	}
	if ambulance == nil {
		log.Warn("No ambulance available at any tier, incident stays pending")
		snap := inc.Clone()
		c.events.Broadcast(ctx, notifier.ControlCenterRoom, notifier.EventNewEmergency, snap)
		c.events.BroadcastStatusUpdate(ctx, snap)
		return snap, nil
	}

	hospital, unit, err := c.reserveHospital(ctx, inc.Location, log)
	if err != nil {
		c.releaseAmbulance(ctx, ambulance.ID, inc.ID, log)
		return nil, err
	}
	if hospital == nil {
		log.Warn("No hospital found at any tier, dispatching ambulance without hospital")
	}

	next := inc.Clone()
	ambRef := models.RefTo[models.Ambulance](ambulance.ID)
	t := lifecycle.Transition{
		To:        models.StatusDispatched,
		Ambulance: &ambRef,
		ETA:       c.estimateETA(inc, ambulance),
	}
	if hospital != nil {
		hospRef := models.RefTo[models.Hospital](hospital.ID)
		t.Hospital = &hospRef
		t.Capacity = &unit
	}

	if err := lifecycle.Apply(next, t, c.now()); err != nil {
		c.compensate(ctx, inc.ID, ambulance, hospital, unit, log)
		return nil, err
	}
	if err := c.persist(ctx, next); err != nil {
		c.compensate(ctx, inc.ID, ambulance, hospital, unit, log)
		return nil, err
	}
	c.watch(next)

	log.WithFields(logrus.Fields{
		"ambulance_id": ambulance.ID,
		"eta":          *next.ETA,
	}).Info("Incident dispatched")

	snap := c.resolve(ctx, next, ambulance, hospital)
	c.announceAssignment(ctx, snap, notifier.EventNewEmergency, true)
	return snap, nil
}

// compensate откатывает захват ресурсов, если инцидент не удалось сохранить
func (c *Coordinator) compensate(ctx context.Context, incidentID uuid.UUID, ambulance *models.Ambulance, hospital *models.Hospital, unit models.CapacityUnit, log *logrus.Entry) {
	if ambulance != nil {
		c.releaseAmbulance(ctx, ambulance.ID, incidentID, log)
	}
	if hospital != nil {
		c.releaseHospital(ctx, hospital.ID, unit, log)
	}
}
