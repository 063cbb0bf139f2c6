package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/lifecycle"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/sirupsen/logrus"
)

// HospitalAction - ответ больницы на направленный вызов
type HospitalAction string

const (
	HospitalAccept HospitalAction = "accept"
	HospitalReject HospitalAction = "reject"
)

// ParseHospitalAction принимает accept/accepted и reject/rejected в любом регистре
func ParseHospitalAction(raw string) (HospitalAction, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "accept", "accepted":
		return HospitalAccept, true
	case "reject", "rejected":
		return HospitalReject, true
	}
	return "", false
}

// HandleHospitalAction применяет решение больницы. hospitalID может быть пустым;
// если задан, он должен совпадать с назначенной больницей.
func (c *Coordinator) HandleHospitalAction(ctx context.Context, incidentID, hospitalID uuid.UUID, action HospitalAction) (*models.Incident, error) {
	switch action {
	case HospitalAccept:
		return c.AcceptIncident(ctx, incidentID, hospitalID)
	case HospitalReject:
		return c.RejectIncident(ctx, incidentID, hospitalID)
	}
	return nil, wrap("handle hospital action", fmt.Errorf("%w: unknown action %q", models.ErrInvalidInput, action))
}

// AcceptIncident - больница приняла вызов: Dispatched -> OnRoute
func (c *Coordinator) AcceptIncident(ctx context.Context, incidentID, hospitalID uuid.UUID) (*models.Incident, error) {
	log := c.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "AcceptIncident",
		"incident_id": incidentID,
	})

	unlock := c.lockIncident(incidentID)
	defer unlock()

	inc, err := c.load(ctx, incidentID)
	if err != nil {
		log.WithError(err).Error("Failed to get incident")
		return nil, wrap("accept incident", err)
	}
	if err := checkHospital(inc, hospitalID); err != nil {
		return nil, wrap("accept incident", err)
	}

	if err := lifecycle.Apply(inc, lifecycle.Transition{To: models.StatusOnRoute}, c.now()); err != nil {
		log.WithError(err).Warn("Rejected hospital acceptance")
		return nil, wrap("accept incident", err)
	}
	if err := c.persist(ctx, inc); err != nil {
		log.WithError(err).Error("Failed to update incident")
		return nil, wrap("accept incident", err)
	}
	c.unwatch(inc.ID)
	log.Info("Hospital accepted incident")

	snap := c.resolve(ctx, inc, nil, nil)
	c.events.BroadcastStatusUpdate(ctx, snap)
	return snap, nil
}

// RejectIncident - больница отказалась: Rejected и сразу поиск другой больницы
func (c *Coordinator) RejectIncident(ctx context.Context, incidentID, hospitalID uuid.UUID) (*models.Incident, error) {
	log := c.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "RejectIncident",
		"incident_id": incidentID,
	})

	unlock := c.lockIncident(incidentID)
	defer unlock()

	inc, err := c.load(ctx, incidentID)
	if err != nil {
		log.WithError(err).Error("Failed to get incident")
		return nil, wrap("reject incident", err)
	}
	if err := checkHospital(inc, hospitalID); err != nil {
		return nil, wrap("reject incident", err)
	}

	snap, err := c.redispatch(ctx, inc, reasonRejected, log)
	if err != nil {
		return nil, wrap("reject incident", err)
	}
	return snap, nil
}

// ReassignAfterTimeout вызывается сторожем, когда больница не ответила вовремя.
// Если инцидент уже ушел из Dispatched или назначен другой больнице, ничего не делает
// и возвращает false.
func (c *Coordinator) ReassignAfterTimeout(ctx context.Context, incidentID, hospitalID uuid.UUID) (*models.Incident, bool, error) {
	log := c.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "ReassignAfterTimeout",
		"incident_id": incidentID,
		"hospital_id": hospitalID,
	})

	unlock := c.lockIncident(incidentID)
	defer unlock()
	// запись уже изъята сторожем из реестра
	defer c.observePending()

	inc, err := c.load(ctx, incidentID)
	if err != nil {
		log.WithError(err).Error("Failed to get incident")
		return nil, false, wrap("reassign incident after timeout", err)
	}
	if inc.Status != models.StatusDispatched || inc.AssignedHospital.ID != hospitalID {
		log.WithField("status", inc.Status).Debug("Incident moved on since dispatch, skipping timeout reassignment")
		return inc, false, nil
	}

	log.Warn("Hospital did not confirm in time, reassigning")
	snap, err := c.redispatch(ctx, inc, reasonTimeout, log)
	if err != nil {
		return nil, false, wrap("reassign incident after timeout", err)
	}
	return snap, true, nil
}

// redispatch - общий путь отказа и таймаута: Rejected, затем Dispatched в другую
// больницу, если она нашлась. Иначе инцидент остается в Rejected до ручного вмешательства.
func (c *Coordinator) redispatch(ctx context.Context, inc *models.Incident, reason string, log *logrus.Entry) (*models.Incident, error) {
	previous := inc.AssignedHospital.ID
	previousUnit := heldUnit(inc)

	next := inc.Clone()
	released := models.CapacityNone
	if err := lifecycle.Apply(next, lifecycle.Transition{To: models.StatusRejected, Capacity: &released}, c.now()); err != nil {
		log.WithError(err).Warn("Hospital rejection not allowed in current state")
		return nil, err
	}
	c.unwatch(inc.ID)

	var exclude []uuid.UUID
	if previous != uuid.Nil {
		exclude = append(exclude, previous)
	}
	hospital, unit, err := c.reserveHospital(ctx, inc.Location, log, exclude...)
	if err != nil {
		log.WithError(err).Error("Failed to find replacement hospital")
		hospital, unit = nil, models.CapacityNone
	}

	var ambulance *models.Ambulance
	if hospital != nil {
		if next.AssignedAmbulance.IsSet() {
			ambulance, _ = c.ambulances.GetByID(ctx, next.AssignedAmbulance.ID)
		}
		hospRef := models.RefTo[models.Hospital](hospital.ID)
		t := lifecycle.Transition{
			To:       models.StatusDispatched,
			Hospital: &hospRef,
			ETA:      c.estimateETA(next, ambulance),
			Capacity: &unit,
		}
		if err := lifecycle.Apply(next, t, c.now()); err != nil {
			c.releaseHospital(ctx, hospital.ID, unit, log)
			return nil, err
		}
	}

	if err := c.persist(ctx, next); err != nil {
		log.WithError(err).Error("Failed to update incident")
		if hospital != nil {
			c.releaseHospital(ctx, hospital.ID, unit, log)
		}
		// Ожидание восстанавливаем: сторож повторит попытку
		c.watch(inc)
		return nil, err
	}
	c.releaseHospital(ctx, previous, previousUnit, log)

	snap := c.resolve(ctx, next, ambulance, hospital)
	if hospital == nil {
		c.observeReassignment(reason, false)
		log.Warn("No other hospital available, incident stays rejected")
		c.events.BroadcastStatusUpdate(ctx, snap)
		return snap, nil
	}

	c.watch(next)
	c.observeReassignment(reason, true)
	log.WithFields(logrus.Fields{
		"previous_hospital_id": previous,
		"hospital_id":          hospital.ID,
	}).Info("Incident re-dispatched to another hospital")
	c.announceAssignment(ctx, snap, "", false)
	return snap, nil
}

func checkHospital(inc *models.Incident, hospitalID uuid.UUID) error {
	if hospitalID != uuid.Nil && inc.AssignedHospital.ID != hospitalID {
		return fmt.Errorf("%w: incident is not assigned to hospital %s", models.ErrInvalidTransition, hospitalID)
	}
	return nil
}
