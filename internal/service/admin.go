package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/lifecycle"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/notifier"
	"github.com/sirupsen/logrus"
)

// ReassignInput - ручное переназначение. Пустые поля означают "оставить текущее".
type ReassignInput struct {
	HospitalID  uuid.UUID
	AmbulanceID uuid.UUID
}

// AdminReassign переводит инцидент в Dispatched из любого статуса. Явно указанные
// ресурсы не проверяются на пригодность, но машину, занятую другим активным
// инцидентом, отдать нельзя.
func (c *Coordinator) AdminReassign(ctx context.Context, incidentID uuid.UUID, in ReassignInput) (*models.Incident, error) {
	log := c.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "AdminReassign",
		"incident_id": incidentID,
	})
	log.Info("Admin reassignment requested")

	unlock := c.lockIncident(incidentID)
	defer unlock()

	inc, err := c.load(ctx, incidentID)
	if err != nil {
		log.WithError(err).Error("Failed to get incident")
		return nil, wrap("reassign incident", err)
	}

	prevAmbulance := inc.AssignedAmbulance.ID
	prevHospital := inc.AssignedHospital.ID
	prevUnit := heldUnit(inc)

	ambulance, claimedNew, err := c.adminAmbulance(ctx, inc, in.AmbulanceID, log)
	if err != nil {
		return nil, wrap("reassign incident", err)
	}
	rollbackAmbulance := func() {
		if claimedNew && ambulance != nil {
			c.releaseAmbulance(ctx, ambulance.ID, inc.ID, log)
		}
	}

	hospital, reservedNew, unit, err := c.adminHospital(ctx, inc, in.HospitalID, log)
	if err != nil {
		rollbackAmbulance()
		return nil, wrap("reassign incident", err)
	}
	rollback := func() {
		rollbackAmbulance()
		if reservedNew && hospital != nil {
			c.releaseHospital(ctx, hospital.ID, unit, log)
		}
	}

	t := lifecycle.Transition{To: models.StatusDispatched, Force: true}
	switch {
	case ambulance != nil:
		ref := models.RefTo[models.Ambulance](ambulance.ID)
		t.Ambulance = &ref
		t.ETA = c.estimateETA(inc, ambulance)
	case inc.AssignedAmbulance.IsSet():
		t.Ambulance = &models.Ref[models.Ambulance]{}
	}
	switch {
	case hospital != nil:
		ref := models.RefTo[models.Hospital](hospital.ID)
		t.Hospital = &ref
		t.Capacity = &unit
	case inc.AssignedHospital.IsSet():
		// Прежняя больница недоступна и другой не нашлось: ссылку на нее не оставляем
		t.Hospital = &models.Ref[models.Hospital]{}
	}

	next := inc.Clone()
	if err := lifecycle.Apply(next, t, c.now()); err != nil {
		rollback()
		return nil, wrap("reassign incident", err)
	}
	if err := c.persist(ctx, next); err != nil {
		log.WithError(err).Error("Failed to update incident")
		rollback()
		return nil, wrap("reassign incident", err)
	}

	// Старые ресурсы освобождаются только после сохранения
	if claimedNew && prevAmbulance != uuid.Nil && prevAmbulance != next.AssignedAmbulance.ID {
		c.releaseAmbulance(ctx, prevAmbulance, inc.ID, log)
	}
	if reservedNew {
		c.releaseHospital(ctx, prevHospital, prevUnit, log)
	}

	c.unwatch(inc.ID)
	c.watch(next)
	c.observeReassignment(reasonAdmin, true)
	log.WithFields(logrus.Fields{
		"ambulance_id": next.AssignedAmbulance.ID,
		"hospital_id":  next.AssignedHospital.ID,
	}).Info("Incident reassigned by admin")

	snap := c.resolve(ctx, next, ambulance, hospital)
	c.announceAssignment(ctx, snap, notifier.EventAdminReassign, true)
	return snap, nil
}

// adminAmbulance возвращает машину для ручного назначения и признак нового захвата
func (c *Coordinator) adminAmbulance(ctx context.Context, inc *models.Incident, requested uuid.UUID, log *logrus.Entry) (*models.Ambulance, bool, error) {
	switch {
	case requested != uuid.Nil:
		a, err := c.ambulances.Claim(ctx, requested, inc.ID)
		if err != nil {
			log.WithError(err).WithField("ambulance_id", requested).Warn("Requested ambulance cannot be assigned")
			return nil, false, err
		}
		return a, requested != inc.AssignedAmbulance.ID || inc.Status.IsTerminal(), nil
	case inc.AssignedAmbulance.IsSet():
		// Текущая машина могла освободиться при завершении инцидента и уйти на другой вызов
		a, err := c.ambulances.Claim(ctx, inc.AssignedAmbulance.ID, inc.ID)
		if err == nil {
			return a, inc.Status.IsTerminal(), nil
		}
		if !errors.Is(err, models.ErrAmbulanceUnavailable) && !errors.Is(err, models.ErrNotFound) {
			return nil, false, err
		}
		log.WithError(err).Warn("Current ambulance cannot be kept, matching a new one")
		a, err = c.claimAmbulance(ctx, inc, log)
		if err != nil {
			return nil, false, err
		}
		return a, a != nil, nil
	default:
		a, err := c.claimAmbulance(ctx, inc, log)
		if err != nil {
			return nil, false, err
		}
		return a, a != nil, nil
	}
}

// adminHospital возвращает больницу для ручного назначения, признак новой брони
// и занятую единицу. Без явного hospitalId текущая больница сохраняется, в том числе
// у завершенного инцидента. Новая больница подбирается, только если текущей нет
// или она отказала.
func (c *Coordinator) adminHospital(ctx context.Context, inc *models.Incident, requested uuid.UUID, log *logrus.Entry) (*models.Hospital, bool, models.CapacityUnit, error) {
	active := holdsCapacity(inc.Status)
	current := inc.AssignedHospital.ID

	switch {
	case requested != uuid.Nil && (requested != current || !active):
		h, unit, err := c.reserve(ctx, requested, log)
		if err != nil {
			return nil, false, models.CapacityNone, err
		}
		return h, true, unit, nil
	case current != uuid.Nil && active:
		h, err := c.hospitals.GetByID(ctx, current)
		if err != nil {
			return nil, false, models.CapacityNone, err
		}
		return h, false, inc.HeldCapacity, nil
	case current != uuid.Nil && inc.Status.IsTerminal():
		// Инцидент снова в работе у той же больницы: место занимается заново
		h, unit, err := c.reserve(ctx, current, log)
		if err == nil {
			return h, true, unit, nil
		}
		if !errors.Is(err, models.ErrNotFound) {
			return nil, false, models.CapacityNone, err
		}
		log.WithError(err).Warn("Current hospital no longer exists, matching a new one")
	}

	var exclude []uuid.UUID
	if current != uuid.Nil {
		exclude = append(exclude, current)
	}
	h, unit, err := c.reserveHospital(ctx, inc.Location, log, exclude...)
	if err != nil {
		return nil, false, models.CapacityNone, err
	}
	return h, h != nil, unit, nil
}

// UpdateSummary меняет аннотации вызова, не трогая статус и назначения
func (c *Coordinator) UpdateSummary(ctx context.Context, incidentID uuid.UUID, aiSummary, priority *string) (*models.Incident, error) {
	log := c.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "UpdateSummary",
		"incident_id": incidentID,
	})

	unlock := c.lockIncident(incidentID)
	defer unlock()

	inc, err := c.load(ctx, incidentID)
	if err != nil {
		log.WithError(err).Error("Failed to get incident")
		return nil, wrap("update summary", err)
	}
	if aiSummary != nil {
		s := *aiSummary
		inc.AISummary = &s
	}
	if priority != nil {
		p := *priority
		inc.Priority = &p
	}
	inc.UpdatedAt = c.now()

	if err := c.persist(ctx, inc); err != nil {
		log.WithError(err).Error("Failed to update incident")
		return nil, wrap("update summary", err)
	}
	log.Info("Incident summary updated")
	return c.resolve(ctx, inc, nil, nil), nil
}

// UpdateHospitalBeds - больница сообщила число свободных коек
func (c *Coordinator) UpdateHospitalBeds(ctx context.Context, hospitalID uuid.UUID, beds int) (*models.Hospital, error) {
	log := c.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "UpdateHospitalBeds",
		"hospital_id": hospitalID,
		"beds":        beds,
	})
	if beds < 0 {
		return nil, wrap("update hospital beds", fmt.Errorf("%w: bed count must be non-negative", models.ErrInvalidInput))
	}
	h, err := c.hospitals.UpdateBeds(ctx, hospitalID, beds)
	if err != nil {
		log.WithError(err).Error("Failed to update hospital beds")
		return nil, wrap("update hospital beds", err)
	}
	log.Info("Hospital beds updated")
	return h, nil
}
