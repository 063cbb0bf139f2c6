package models

import (
	"time"

	"github.com/google/uuid"
)

// AmbulanceState - доступность машины скорой помощи
type AmbulanceState string

const (
	AmbulanceAvailable AmbulanceState = "available"
	AmbulanceBusy      AmbulanceState = "busy"
	AmbulanceOffline   AmbulanceState = "offline"
)

// Ambulance - машина скорой помощи в каноническом виде.
// Инвариант: AssignedIncidentID != nil тогда и только тогда, когда State == busy.
type Ambulance struct {
	ID                 uuid.UUID      `json:"id"`
	VehicleNumber      string         `json:"vehicle_number"`
	DriverName         string         `json:"driver_name"`
	DriverPhone        string         `json:"driver_phone"`
	Location           GeoPoint       `json:"location"`
	State              AmbulanceState `json:"status"`
	Online             bool           `json:"online"`
	AssignedIncidentID *uuid.UUID     `json:"assigned_incident_id"`
	LocationUpdatedAt  time.Time      `json:"location_updated_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// HospitalStatus - доступность больницы
type HospitalStatus string

const (
	HospitalOnline  HospitalStatus = "online"
	HospitalOffline HospitalStatus = "offline"
)

// Hospital - больница в каноническом виде
type Hospital struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	Address       string         `json:"address"`
	ContactNumber string         `json:"contact_number"`
	Location      GeoPoint       `json:"location"`
	Status        HospitalStatus `json:"status"`
	AvailableBeds int            `json:"available_beds"`
	// Потолок и счетчик назначенных машин заполнены только у части больниц
	MaxAmbulanceCapacity        *int      `json:"max_ambulance_capacity,omitempty"`
	CurrentlyAssignedAmbulances *int      `json:"currently_assigned_ambulances,omitempty"`
	UpdatedAt                   time.Time `json:"updated_at"`
}

// CapacityUnit - единица вместимости, которую больница отдала под инцидент
type CapacityUnit string

const (
	// CapacityNone - ничего не занято: коек не было, счетчик не ведется
	CapacityNone       CapacityUnit = ""
	CapacityBed        CapacityUnit = "bed"
	CapacityAssignment CapacityUnit = "assignment"
)

// TracksAssignments сообщает, заполнены ли поля потолка назначений
func (h *Hospital) TracksAssignments() bool {
	return h.MaxAmbulanceCapacity != nil && h.CurrentlyAssignedAmbulances != nil
}
