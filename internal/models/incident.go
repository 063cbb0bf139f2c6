package models

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Incident - экстренный вызов, проходящий через диспетчеризацию.
// Статус и назначения меняются только через lifecycle.Apply.
type Incident struct {
	ID                uuid.UUID      `json:"id"`
	Description       string         `json:"description"`
	Contact           string         `json:"contact"`
	Severity          Severity       `json:"severity"`
	Location          GeoPoint       `json:"location"`
	TrackingToken     string         `json:"tracking_token"`
	Status            Status         `json:"status"`
	AssignedAmbulance Ref[Ambulance] `json:"assigned_ambulance"`
	AssignedHospital  Ref[Hospital]  `json:"assigned_hospital"`
	ETA               *string        `json:"eta"`
	AISummary         *string        `json:"ai_summary,omitempty"`
	Priority          *string        `json:"priority,omitempty"`
	ForceAssigned     bool           `json:"force_assigned"`
	HeldCapacity      CapacityUnit   `json:"held_capacity,omitempty"`
	Extra             map[string]any `json:"extra,omitempty"` // поля внешних сервисов (медиа, верификация, отзывы)
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// Clone возвращает копию инцидента, безопасную для передачи наружу
func (i *Incident) Clone() *Incident {
	if i == nil {
		return nil
	}
	c := *i
	if i.ETA != nil {
		eta := *i.ETA
		c.ETA = &eta
	}
	if i.AISummary != nil {
		s := *i.AISummary
		c.AISummary = &s
	}
	if i.Priority != nil {
		p := *i.Priority
		c.Priority = &p
	}
	c.Extra = maps.Clone(i.Extra)
	return &c
}

// IncidentFilter - фильтр для списка инцидентов
type IncidentFilter struct {
	Statuses    []Status
	HospitalID  uuid.UUID
	AmbulanceID uuid.UUID
	// ExcludeStatuses исключает перечисленные статусы
	ExcludeStatuses []Status
}

// Matches проверяет инцидент на соответствие фильтру
func (f IncidentFilter) Matches(inc *Incident) bool {
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, inc.Status) {
		return false
	}
	if containsStatus(f.ExcludeStatuses, inc.Status) {
		return false
	}
	if f.HospitalID != uuid.Nil && inc.AssignedHospital.ID != f.HospitalID {
		return false
	}
	if f.AmbulanceID != uuid.Nil && inc.AssignedAmbulance.ID != f.AmbulanceID {
		return false
	}
	return true
}

func containsStatus(list []Status, s Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
