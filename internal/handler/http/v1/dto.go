package v1

import (
	"time"

	"github.com/google/uuid"
)

// CreateIncidentRequest DTO для приема вызова от гражданина
// @Description DTO для приема вызова от гражданина
type CreateIncidentRequest struct {
	Description string         `json:"description" validate:"required,min=3,max=2000"`
	Contact     string         `json:"contact,omitempty" validate:"max=64"`
	Severity    string         `json:"severity,omitempty" validate:"omitempty,oneof=low medium moderate high critical"`
	Latitude    *float64       `json:"latitude" validate:"required,latitude"`
	Longitude   *float64       `json:"longitude" validate:"required,longitude"`
	Extra       map[string]any `json:"extra,omitempty"`
}

// HospitalActionRequest DTO для ответа больницы
// @Description DTO для ответа больницы: accept или reject
type HospitalActionRequest struct {
	Action     string `json:"action" validate:"required"`
	HospitalID string `json:"hospital_id,omitempty" validate:"omitempty,uuid"`
}

// StatusUpdateRequest DTO для статуса, сообщенного машиной
// @Description DTO для статуса, сообщенного машиной
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

// LocationUpdateRequest DTO для телеметрии машины
// @Description DTO для телеметрии машины
type LocationUpdateRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// ReassignRequest DTO для ручного переназначения
// @Description DTO для ручного переназначения; пустые поля оставляют текущий ресурс
type ReassignRequest struct {
	HospitalID  string `json:"hospital_id,omitempty" validate:"omitempty,uuid"`
	AmbulanceID string `json:"ambulance_id,omitempty" validate:"omitempty,uuid"`
}

// SummaryRequest DTO для аннотаций вызова
// @Description DTO для аннотаций вызова
type SummaryRequest struct {
	AISummary *string `json:"ai_summary,omitempty" validate:"omitempty,max=4000"`
	Priority  *string `json:"priority,omitempty" validate:"omitempty,max=32"`
}

// BedsRequest DTO для числа свободных коек
// @Description DTO для числа свободных коек
type BedsRequest struct {
	AvailableBeds *int `json:"available_beds" validate:"required,gte=0"`
}

// AmbulanceResponse DTO машины скорой помощи
// @Description DTO машины скорой помощи
type AmbulanceResponse struct {
	ID                 uuid.UUID  `json:"id"`
	VehicleNumber      string     `json:"vehicle_number"`
	DriverName         string     `json:"driver_name,omitempty"`
	DriverPhone        string     `json:"driver_phone,omitempty"`
	Latitude           float64    `json:"latitude"`
	Longitude          float64    `json:"longitude"`
	Status             string     `json:"status"`
	Online             bool       `json:"online"`
	AssignedIncidentID *uuid.UUID `json:"assigned_incident_id,omitempty"`
}

// HospitalResponse DTO больницы
// @Description DTO больницы
type HospitalResponse struct {
	ID                          uuid.UUID `json:"id"`
	Name                        string    `json:"name"`
	Address                     string    `json:"address,omitempty"`
	ContactNumber               string    `json:"contact_number,omitempty"`
	Latitude                    float64   `json:"latitude"`
	Longitude                   float64   `json:"longitude"`
	Status                      string    `json:"status"`
	AvailableBeds               int       `json:"available_beds"`
	MaxAmbulanceCapacity        *int      `json:"max_ambulance_capacity,omitempty"`
	CurrentlyAssignedAmbulances *int      `json:"currently_assigned_ambulances,omitempty"`
}

// IncidentResponse DTO инцидента для персонала
// @Description DTO инцидента с назначенными ресурсами
type IncidentResponse struct {
	ID                  uuid.UUID          `json:"id"`
	Description         string             `json:"description"`
	Contact             string             `json:"contact,omitempty"`
	Severity            string             `json:"severity"`
	Latitude            float64            `json:"latitude"`
	Longitude           float64            `json:"longitude"`
	TrackingToken       string             `json:"tracking_token"`
	Status              string             `json:"status"`
	AssignedAmbulanceID *uuid.UUID         `json:"assigned_ambulance_id"`
	AssignedHospitalID  *uuid.UUID         `json:"assigned_hospital_id"`
	AssignedAmbulance   *AmbulanceResponse `json:"assigned_ambulance,omitempty"`
	AssignedHospital    *HospitalResponse  `json:"assigned_hospital,omitempty"`
	ETA                 *string            `json:"eta"`
	AISummary           *string            `json:"ai_summary,omitempty"`
	Priority            *string            `json:"priority,omitempty"`
	ForceAssigned       bool               `json:"force_assigned"`
	Extra               map[string]any     `json:"extra,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// TrackingResponse DTO для гражданина: без контактов и служебных полей
// @Description DTO для отслеживания вызова по токену
type TrackingResponse struct {
	IncidentID      uuid.UUID `json:"incident_id"`
	Status          string    `json:"status"`
	ETA             *string   `json:"eta"`
	HospitalName    string    `json:"hospital_name,omitempty"`
	AmbulanceNumber string    `json:"ambulance_number,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DashboardResponse DTO сводки диспетчерского центра
// @Description DTO сводки диспетчерского центра
type DashboardResponse struct {
	Incidents            []*IncidentResponse  `json:"incidents"`
	Hospitals            []*HospitalResponse  `json:"hospitals"`
	Ambulances           []*AmbulanceResponse `json:"ambulances"`
	ByStatus             map[string]int       `json:"by_status"`
	PendingConfirmations int                  `json:"pending_confirmations"`
}
