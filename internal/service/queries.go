package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// activeForHospital - статусы, которые больница видит в своей очереди
var activeForHospital = []models.Status{
	models.StatusPending,
	models.StatusDispatched,
	models.StatusOnRoute,
	models.StatusArrived,
}

// Dashboard - сводка для диспетчерского центра
type Dashboard struct {
	Incidents  []*models.Incident    `json:"incidents"`
	Hospitals  []*models.Hospital    `json:"hospitals"`
	Ambulances []*models.Ambulance   `json:"ambulances"`
	ByStatus   map[models.Status]int `json:"by_status"`
	Pending    int                   `json:"pending_confirmations"`
}

// GetIncident получает инцидент по ID, сначала из кэша
func (c *Coordinator) GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	log := c.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "GetIncident",
		"incident_id": id,
	})

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, id)
		if err != nil {
			log.WithError(err).Warn("Failed to read incident cache")
		}
		if cached != nil {
			log.Debug("Incident served from cache")
			return c.resolve(ctx, cached, nil, nil), nil
		}
	}

	inc, err := c.incidents.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to get incident in repository")
		return nil, wrap("get incident", err)
	}
	snap := c.resolve(ctx, inc, nil, nil)

	if c.cache != nil {
		if err := c.cache.Set(ctx, inc); err != nil {
			log.WithError(err).Warn("Failed to cache incident")
		}
	}
	return snap, nil
}

// TrackIncident - поиск по токену отслеживания для гражданина
func (c *Coordinator) TrackIncident(ctx context.Context, token string) (*models.Incident, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, wrap("track incident", models.ErrInvalidInput)
	}
	inc, err := c.incidents.GetByTrackingToken(ctx, token)
	if err != nil {
		return nil, wrap("track incident", err)
	}
	return c.resolve(ctx, inc, nil, nil), nil
}

// ListIncidents возвращает страницу инцидентов, новые первыми
func (c *Coordinator) ListIncidents(ctx context.Context, filter models.IncidentFilter, page, pageSize int) ([]*models.Incident, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	pageSize = min(pageSize, maxPageSize)

	incidents, err := c.incidents.ListIncidents(ctx, filter, page, pageSize)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"service": "dispatch",
			"method":  "ListIncidents",
		}).WithError(err).Error("Failed to list incidents")
		return nil, wrap("list incidents", err)
	}
	return incidents, nil
}

// ActiveIncidentsForHospital - вызовы, которые еще ждут больницу или едут в нее
func (c *Coordinator) ActiveIncidentsForHospital(ctx context.Context, hospitalID uuid.UUID) ([]*models.Incident, error) {
	if _, err := c.hospitals.GetByID(ctx, hospitalID); err != nil {
		return nil, wrap("list hospital incidents", err)
	}
	incidents, err := c.incidents.ListIncidents(ctx, models.IncidentFilter{
		HospitalID: hospitalID,
		Statuses:   activeForHospital,
	}, 0, 0)
	if err != nil {
		return nil, wrap("list hospital incidents", err)
	}
	return incidents, nil
}

// ActiveIncidentsForAmbulance - незавершенные вызовы машины
func (c *Coordinator) ActiveIncidentsForAmbulance(ctx context.Context, ambulanceID uuid.UUID) ([]*models.Incident, error) {
	if _, err := c.ambulances.GetByID(ctx, ambulanceID); err != nil {
		return nil, wrap("list ambulance incidents", err)
	}
	incidents, err := c.incidents.ListIncidents(ctx, models.IncidentFilter{
		AmbulanceID:     ambulanceID,
		ExcludeStatuses: []models.Status{models.StatusCompleted},
	}, 0, 0)
	if err != nil {
		return nil, wrap("list ambulance incidents", err)
	}
	return incidents, nil
}

// DashboardSnapshot собирает все инциденты, больницы и машины
func (c *Coordinator) DashboardSnapshot(ctx context.Context) (*Dashboard, error) {
	incidents, err := c.incidents.ListIncidents(ctx, models.IncidentFilter{}, 0, 0)
	if err != nil {
		return nil, wrap("build dashboard", err)
	}
	hospitals, err := c.hospitals.ListHospitals(ctx)
	if err != nil {
		return nil, wrap("build dashboard", err)
	}
	ambulances, err := c.ambulances.ListAmbulances(ctx)
	if err != nil {
		return nil, wrap("build dashboard", err)
	}

	byStatus := make(map[models.Status]int)
	for _, inc := range incidents {
		byStatus[inc.Status]++
	}
	return &Dashboard{
		Incidents:  incidents,
		Hospitals:  hospitals,
		Ambulances: ambulances,
		ByStatus:   byStatus,
		Pending:    c.pending.Len(),
	}, nil
}
