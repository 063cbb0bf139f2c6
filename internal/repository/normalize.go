package repository

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
)

// Исторические данные хранят статусы в разном регистре и формате, а число коек
// встречается под несколькими именами. Все варианты сводятся к каноническим
// записям здесь, до того как запись попадет в бизнес-логику.

// ambulanceRow - строка таблицы ambulances как она лежит в базе
type ambulanceRow struct {
	ID                 uuid.UUID
	VehicleNumber      string
	DriverName         string
	DriverPhone        string
	Longitude          float64
	Latitude           float64
	Status             string
	Online             *bool
	AssignedIncidentID *uuid.UUID
	LocationUpdatedAt  *time.Time
	UpdatedAt          time.Time
}

// hospitalRow - строка таблицы hospitals
type hospitalRow struct {
	ID                          uuid.UUID
	Name                        string
	Address                     string
	ContactNumber               string
	Longitude                   float64
	Latitude                    float64
	Status                      string
	AvailableBeds               *int
	MaxAmbulanceCapacity        *int
	CurrentlyAssignedAmbulances *int
	Attributes                  map[string]any
	UpdatedAt                   time.Time
}

func foldStatus(raw string) string {
	return strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.TrimSpace(raw)))
}

// NormalizeAmbulanceState сводит строковый статус машины к AmbulanceState
func NormalizeAmbulanceState(raw string) models.AmbulanceState {
	s := foldStatus(raw)
	switch {
	case s == "":
		return models.AmbulanceOffline
	case strings.Contains(s, "unavail"), strings.Contains(s, "busy"), strings.Contains(s, "assigned"),
		strings.Contains(s, "dispatch"), strings.Contains(s, "onroute"), strings.Contains(s, "enroute"):
		return models.AmbulanceBusy
	case strings.Contains(s, "offline"), strings.Contains(s, "inactive"), strings.Contains(s, "outofservice"):
		return models.AmbulanceOffline
	case strings.Contains(s, "avail"), s == "free", s == "idle":
		return models.AmbulanceAvailable
	}
	return models.AmbulanceBusy
}

// NormalizeHospitalStatus: active/online/available/open - онлайн, остальное - офлайн
func NormalizeHospitalStatus(raw string) models.HospitalStatus {
	switch foldStatus(raw) {
	case "active", "online", "available", "open":
		return models.HospitalOnline
	}
	return models.HospitalOffline
}

func (r ambulanceRow) toModel() *models.Ambulance {
	a := &models.Ambulance{
		ID:                 r.ID,
		VehicleNumber:      r.VehicleNumber,
		DriverName:         r.DriverName,
		DriverPhone:        r.DriverPhone,
		Location:           models.GeoPoint{Longitude: r.Longitude, Latitude: r.Latitude},
		State:              NormalizeAmbulanceState(r.Status),
		AssignedIncidentID: r.AssignedIncidentID,
		UpdatedAt:          r.UpdatedAt,
	}
	if r.Online != nil {
		a.Online = *r.Online
	} else {
		a.Online = a.State != models.AmbulanceOffline
	}
	if r.LocationUpdatedAt != nil {
		a.LocationUpdatedAt = *r.LocationUpdatedAt
	}
	// Свободная машина с закрепленным инцидентом считается занятой
	if a.AssignedIncidentID != nil && a.State == models.AmbulanceAvailable {
		a.State = models.AmbulanceBusy
	}
	return a
}

func (r hospitalRow) toModel() *models.Hospital {
	h := &models.Hospital{
		ID:            r.ID,
		Name:          r.Name,
		Address:       r.Address,
		ContactNumber: r.ContactNumber,
		Location:      models.GeoPoint{Longitude: r.Longitude, Latitude: r.Latitude},
		Status:        NormalizeHospitalStatus(r.Status),
		UpdatedAt:     r.UpdatedAt,
	}

	beds := r.AvailableBeds
	if beds == nil {
		beds = attrInt(r.Attributes, "bedAvailability", "availableBeds", "beds")
	}
	if beds != nil && *beds > 0 {
		h.AvailableBeds = *beds
	}

	h.MaxAmbulanceCapacity = r.MaxAmbulanceCapacity
	if h.MaxAmbulanceCapacity == nil {
		h.MaxAmbulanceCapacity = attrInt(r.Attributes, "maxAmbulanceCapacity")
	}
	h.CurrentlyAssignedAmbulances = r.CurrentlyAssignedAmbulances
	if h.CurrentlyAssignedAmbulances == nil {
		h.CurrentlyAssignedAmbulances = attrInt(r.Attributes, "currentlyAssignedAmbulances")
	}
	if c := h.CurrentlyAssignedAmbulances; c != nil && *c < 0 {
		zero := 0
		h.CurrentlyAssignedAmbulances = &zero
	}
	return h
}

// attrInt возвращает первое целое значение среди перечисленных ключей
func attrInt(attrs map[string]any, keys ...string) *int {
	for _, key := range keys {
		v, ok := attrs[key]
		if !ok || v == nil {
			continue
		}
		var n int
		switch val := v.(type) {
		case float64:
			n = int(math.Round(val))
		case int:
			n = val
		case int64:
			n = int(val)
		case json.Number:
			i, err := val.Int64()
			if err != nil {
				continue
			}
			n = int(i)
		case string:
			i, err := strconv.Atoi(strings.TrimSpace(val))
			if err != nil {
				continue
			}
			n = i
		default:
			continue
		}
		return &n
	}
	return nil
}

// normalizeIncidentStatus приводит исторические варианты написания к Status
func normalizeIncidentStatus(raw string) models.Status {
	if s, ok := models.ParseStatus(raw); ok {
		return s
	}
	return models.Status(raw)
}

func normalizeSeverity(raw string) models.Severity {
	if s, ok := models.ParseSeverity(raw); ok {
		return s
	}
	return models.SeverityMedium
}
