package v1

import (
	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/service"
)

// CreateRequestToInput преобразует DTO приема вызова во входные данные сервиса
func CreateRequestToInput(dto CreateIncidentRequest) service.CreateIncidentInput {
	severity, _ := models.ParseSeverity(dto.Severity)
	return service.CreateIncidentInput{
		Description: dto.Description,
		Contact:     dto.Contact,
		Severity:    severity,
		Location:    models.GeoPoint{Latitude: *dto.Latitude, Longitude: *dto.Longitude},
		Extra:       dto.Extra,
	}
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа.
// Загруженные записи ресурсов раскрываются, иначе остаются только идентификаторы.
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	resp := &IncidentResponse{
		ID:                  model.ID,
		Description:         model.Description,
		Contact:             model.Contact,
		Severity:            string(model.Severity),
		Latitude:            model.Location.Latitude,
		Longitude:           model.Location.Longitude,
		TrackingToken:       model.TrackingToken,
		Status:              string(model.Status),
		AssignedAmbulanceID: optionalID(model.AssignedAmbulance.ID),
		AssignedHospitalID:  optionalID(model.AssignedHospital.ID),
		ETA:                 model.ETA,
		AISummary:           model.AISummary,
		Priority:            model.Priority,
		ForceAssigned:       model.ForceAssigned,
		Extra:               model.Extra,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
	if model.AssignedAmbulance.IsResolved() {
		resp.AssignedAmbulance = ModelToAmbulanceResponse(model.AssignedAmbulance.Record)
	}
	if model.AssignedHospital.IsResolved() {
		resp.AssignedHospital = ModelToHospitalResponse(model.AssignedHospital.Record)
	}
	return resp
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(incidents []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(incidents))
	for i, model := range incidents {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

// ModelToTrackingResponse оставляет только то, что можно показать гражданину
func ModelToTrackingResponse(model *models.Incident) *TrackingResponse {
	resp := &TrackingResponse{
		IncidentID: model.ID,
		Status:     string(model.Status),
		ETA:        model.ETA,
		UpdatedAt:  model.UpdatedAt,
	}
	if model.AssignedHospital.IsResolved() {
		resp.HospitalName = model.AssignedHospital.Record.Name
	}
	if model.AssignedAmbulance.IsResolved() {
		resp.AmbulanceNumber = model.AssignedAmbulance.Record.VehicleNumber
	}
	return resp
}

func ModelToAmbulanceResponse(a *models.Ambulance) *AmbulanceResponse {
	return &AmbulanceResponse{
		ID:                 a.ID,
		VehicleNumber:      a.VehicleNumber,
		DriverName:         a.DriverName,
		DriverPhone:        a.DriverPhone,
		Latitude:           a.Location.Latitude,
		Longitude:          a.Location.Longitude,
		Status:             string(a.State),
		Online:             a.Online,
		AssignedIncidentID: a.AssignedIncidentID,
	}
}

func ModelToHospitalResponse(h *models.Hospital) *HospitalResponse {
	return &HospitalResponse{
		ID:                          h.ID,
		Name:                        h.Name,
		Address:                     h.Address,
		ContactNumber:               h.ContactNumber,
		Latitude:                    h.Location.Latitude,
		Longitude:                   h.Location.Longitude,
		Status:                      string(h.Status),
		AvailableBeds:               h.AvailableBeds,
		MaxAmbulanceCapacity:        h.MaxAmbulanceCapacity,
		CurrentlyAssignedAmbulances: h.CurrentlyAssignedAmbulances,
	}
}

// DashboardToResponse преобразует сводку сервиса в DTO
func DashboardToResponse(d *service.Dashboard) *DashboardResponse {
	resp := &DashboardResponse{
		Incidents:            ModelsToIncidentResponses(d.Incidents),
		Hospitals:            make([]*HospitalResponse, len(d.Hospitals)),
		Ambulances:           make([]*AmbulanceResponse, len(d.Ambulances)),
		ByStatus:             make(map[string]int, len(d.ByStatus)),
		PendingConfirmations: d.Pending,
	}
	for i, h := range d.Hospitals {
		resp.Hospitals[i] = ModelToHospitalResponse(h)
	}
	for i, a := range d.Ambulances {
		resp.Ambulances[i] = ModelToAmbulanceResponse(a)
	}
	for status, n := range d.ByStatus {
		resp.ByStatus[string(status)] = n
	}
	return resp
}

// parseOptionalID разбирает необязательный идентификатор; валидатор уже проверил формат
func parseOptionalID(raw string) uuid.UUID {
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func optionalID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
