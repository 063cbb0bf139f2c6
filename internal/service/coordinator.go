package service

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/lifecycle"
	"github.com/shenikar/emergency_dispatch_system/internal/matcher"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/notifier"
	"github.com/shenikar/emergency_dispatch_system/internal/pending"
	"github.com/sirupsen/logrus"
)

const (
	// maxClaimAttempts - сколько машин пробуем занять, если конкурент успел раньше
	maxClaimAttempts = 5

	// incidentLockStripes - число мьютексов, между которыми делятся инциденты
	incidentLockStripes = 64

	reasonRejected = "rejected"
	reasonTimeout  = "timeout"
	reasonAdmin    = "admin"
)

// Config - параметры диспетчеризации
type Config struct {
	IncludeOffline  bool
	AverageSpeedKmh float64
}

// Deps - зависимости координатора
type Deps struct {
	Incidents  IncidentRepository
	Ambulances AmbulanceRepository
	Hospitals  HospitalRepository
	Matcher    ResourceMatcher
	Events     EventEmitter
	Pending    *pending.Registry
	Cache      IncidentCache    // может быть nil
	Observer   DispatchObserver // может быть nil
	Logger     *logrus.Logger
	Clock      func() time.Time // по умолчанию time.Now в UTC
}

// Coordinator - единственный, кто меняет статусы и назначения инцидентов,
// доступность машин и вместимость больниц
type Coordinator struct {
	incidents  IncidentRepository
	ambulances AmbulanceRepository
	hospitals  HospitalRepository
	matcher    ResourceMatcher
	events     EventEmitter
	pending    *pending.Registry
	cache      IncidentCache
	observer   DispatchObserver
	logger     *logrus.Logger
	cfg        Config
	now        func() time.Time

	opMu [incidentLockStripes]sync.Mutex
}

func NewCoordinator(deps Deps, cfg Config) *Coordinator {
	if cfg.AverageSpeedKmh <= 0 {
		cfg.AverageSpeedKmh = lifecycle.DefaultAverageSpeedKmh
	}
	if deps.Pending == nil {
		deps.Pending = pending.NewRegistry()
	}
	if deps.Clock == nil {
		deps.Clock = func() time.Time { return time.Now().UTC() }
	}
	return &Coordinator{
		incidents:  deps.Incidents,
		ambulances: deps.Ambulances,
		hospitals:  deps.Hospitals,
		matcher:    deps.Matcher,
		events:     deps.Events,
		pending:    deps.Pending,
		cache:      deps.Cache,
		observer:   deps.Observer,
		logger:     deps.Logger,
		cfg:        cfg,
		now:        deps.Clock,
	}
}

// Pending - реестр ожидающих подтверждения больницы
func (c *Coordinator) Pending() *pending.Registry {
	return c.pending
}

// lockIncident сериализует операции над одним инцидентом. Мьютексов фиксированное
// число, память не растет с числом инцидентов. Операция держит не больше одного.
func (c *Coordinator) lockIncident(id uuid.UUID) func() {
	mtx := &c.opMu[incidentStripe(id)]
	mtx.Lock()
	return mtx.Unlock
}

func incidentStripe(id uuid.UUID) int {
	return int(binary.BigEndian.Uint64(id[8:]) % incidentLockStripes)
}

// load читает инцидент из хранилища. Кэш здесь не используется:
// решения о переходах принимаются только по актуальной записи.
func (c *Coordinator) load(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	inc, err := c.incidents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return inc, nil
}

// persist сохраняет инцидент и сбрасывает кэш
func (c *Coordinator) persist(ctx context.Context, inc *models.Incident) error {
	if err := c.incidents.Update(ctx, inc); err != nil {
		return err
	}
	c.invalidate(ctx, inc.ID)
	return nil
}

func (c *Coordinator) invalidate(ctx context.Context, id uuid.UUID) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Invalidate(ctx, id); err != nil {
		c.logger.WithError(err).WithField("incident_id", id).Warn("Failed to invalidate incident cache")
	}
}

// claimAmbulance подбирает и атомарно занимает машину. Если выбранную машину
// успел занять другой инцидент, она исключается и подбор повторяется.
func (c *Coordinator) claimAmbulance(ctx context.Context, inc *models.Incident, log *logrus.Entry) (*models.Ambulance, error) {
	query := matcher.AmbulanceQuery{ExcludeOffline: !c.cfg.IncludeOffline}
	for attempt := 0; attempt < maxClaimAttempts; attempt++ {
		candidate, tier, err := c.matcher.FindAmbulance(ctx, inc.Location, query)
		if err != nil {
			return nil, err
		}
		if candidate == nil {
			c.observeMatch("ambulance", matcher.TierNone)
			return nil, nil
		}

		claimed, err := c.ambulances.Claim(ctx, candidate.ID, inc.ID)
		if err == nil {
			c.observeMatch("ambulance", tier)
			log.WithFields(logrus.Fields{
				"ambulance_id": claimed.ID,
				"tier":         tier.String(),
			}).Info("Ambulance claimed")
			return claimed, nil
		}
		if !errors.Is(err, models.ErrAmbulanceUnavailable) {
			return nil, err
		}
		log.WithField("ambulance_id", candidate.ID).Debug("Ambulance taken concurrently, trying next")
		query.Exclude = append(query.Exclude, candidate.ID)
	}
	c.observeMatch("ambulance", matcher.TierNone)
	return nil, nil
}

// reserveHospital подбирает больницу и занимает у нее койку
func (c *Coordinator) reserveHospital(ctx context.Context, loc models.GeoPoint, log *logrus.Entry, exclude ...uuid.UUID) (*models.Hospital, models.CapacityUnit, error) {
	candidate, tier, err := c.matcher.FindHospital(ctx, loc, exclude...)
	if err != nil {
		return nil, models.CapacityNone, err
	}
	c.observeMatch("hospital", tier)
	if candidate == nil {
		return nil, models.CapacityNone, nil
	}
	return c.reserve(ctx, candidate.ID, log)
}

// reserve занимает единицу вместимости в конкретной больнице. Если занять нечего,
// это не ошибка: назначение проходит, в логе предупреждение.
func (c *Coordinator) reserve(ctx context.Context, hospitalID uuid.UUID, log *logrus.Entry) (*models.Hospital, models.CapacityUnit, error) {
	hospital, unit, err := c.hospitals.ReserveCapacity(ctx, hospitalID)
	if err != nil {
		return nil, models.CapacityNone, err
	}
	if unit == models.CapacityNone {
		log.WithField("hospital_id", hospitalID).Warn("Hospital has no free capacity, assigned without a reservation")
	}
	return hospital, unit, nil
}

// releaseHospital возвращает больнице занятую единицу. CapacityNone - возвращать нечего.
func (c *Coordinator) releaseHospital(ctx context.Context, hospitalID uuid.UUID, unit models.CapacityUnit, log *logrus.Entry) {
	if hospitalID == uuid.Nil || unit == models.CapacityNone {
		return
	}
	if err := c.hospitals.ReleaseCapacity(ctx, hospitalID, unit); err != nil {
		log.WithError(err).WithField("hospital_id", hospitalID).Error("Failed to release hospital capacity")
	}
}

func (c *Coordinator) releaseAmbulance(ctx context.Context, ambulanceID, incidentID uuid.UUID, log *logrus.Entry) {
	if ambulanceID == uuid.Nil {
		return
	}
	if err := c.ambulances.Release(ctx, ambulanceID, incidentID); err != nil {
		log.WithError(err).WithField("ambulance_id", ambulanceID).Error("Failed to release ambulance")
	}
}

// estimateETA считает ETA по текущему положению машины
func (c *Coordinator) estimateETA(inc *models.Incident, ambulance *models.Ambulance) *string {
	if ambulance == nil {
		return nil
	}
	eta := lifecycle.EstimateETA(inc.Location, ambulance.Location, c.cfg.AverageSpeedKmh)
	return &eta
}

// watch ставит инцидент в ожидание подтверждения больницы
func (c *Coordinator) watch(inc *models.Incident) {
	if inc.Status != models.StatusDispatched || !inc.AssignedHospital.IsSet() {
		return
	}
	c.pending.Add(inc.ID, inc.AssignedHospital.ID, inc.UpdatedAt)
	c.observePending()
}

func (c *Coordinator) unwatch(id uuid.UUID) {
	if c.pending.Remove(id) {
		c.observePending()
	}
}

// resolve подставляет записи машины и больницы для рассылки снимка
func (c *Coordinator) resolve(ctx context.Context, inc *models.Incident, ambulance *models.Ambulance, hospital *models.Hospital) *models.Incident {
	snap := inc.Clone()
	if snap.AssignedAmbulance.IsSet() {
		if ambulance == nil || ambulance.ID != snap.AssignedAmbulance.ID {
			ambulance, _ = c.ambulances.GetByID(ctx, snap.AssignedAmbulance.ID)
		}
		if ambulance != nil {
			snap.AssignedAmbulance = snap.AssignedAmbulance.Resolve(ambulance)
		}
	}
	if snap.AssignedHospital.IsSet() {
		if hospital == nil || hospital.ID != snap.AssignedHospital.ID {
			hospital, _ = c.hospitals.GetByID(ctx, snap.AssignedHospital.ID)
		}
		if hospital != nil {
			snap.AssignedHospital = snap.AssignedHospital.Resolve(hospital)
		}
	}
	return snap
}

// announceAssignment рассылает события назначения и общий статус
func (c *Coordinator) announceAssignment(ctx context.Context, snap *models.Incident, controlEvent string, notifyAmbulance bool) {
	if controlEvent != "" {
		c.events.Broadcast(ctx, notifier.ControlCenterRoom, controlEvent, snap)
	}
	if snap.AssignedHospital.IsSet() {
		c.events.Broadcast(ctx, snap.AssignedHospital.ID.String(), notifier.EventNewAlert, snap)
	}
	if notifyAmbulance && snap.AssignedAmbulance.IsSet() {
		c.events.Broadcast(ctx, snap.AssignedAmbulance.ID.String(), notifier.EventNewDispatch, snap)
	}
	c.events.BroadcastStatusUpdate(ctx, snap)
}

func (c *Coordinator) observeMatch(resource string, tier matcher.Tier) {
	if c.observer != nil {
		c.observer.ObserveMatch(resource, tier.String())
	}
}

func (c *Coordinator) observeReassignment(reason string, reassigned bool) {
	if c.observer != nil {
		c.observer.ObserveReassignment(reason, reassigned)
	}
}

func (c *Coordinator) observePending() {
	if c.observer != nil {
		c.observer.SetPending(c.pending.Len())
	}
}

// holdsCapacity - статусы, в которых назначение больницы действует
func holdsCapacity(s models.Status) bool {
	switch s {
	case models.StatusDispatched, models.StatusOnRoute, models.StatusArrived:
		return true
	}
	return false
}

// heldUnit - единица, которую инцидент сейчас держит у назначенной больницы
func heldUnit(inc *models.Incident) models.CapacityUnit {
	if !inc.AssignedHospital.IsSet() || !holdsCapacity(inc.Status) {
		return models.CapacityNone
	}
	return inc.HeldCapacity
}

func wrap(op string, err error) error {
	return fmt.Errorf("service: could not %s: %w", op, err)
}
