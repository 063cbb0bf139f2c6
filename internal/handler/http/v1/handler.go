package v1

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/config"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/service"
	"github.com/sirupsen/logrus"
)

// Subscriber поднимает websocket-подписку на комнаты
type Subscriber interface {
	ServeWS(w http.ResponseWriter, r *http.Request)
}

type Handler struct {
	dispatchService service.DispatchService
	subscriber      Subscriber
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(dispatchService service.DispatchService, subscriber Subscriber, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		dispatchService: dispatchService,
		subscriber:      subscriber,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// bind разбирает тело запроса и проверяет его. При ошибке ответ уже записан.
func (h *Handler) bind(c *gin.Context, log *logrus.Entry, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// pathID разбирает идентификатор из пути. При ошибке ответ уже записан.
func pathID(c *gin.Context, name, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + what + " ID"})
		return uuid.Nil, false
	}
	return id, true
}

// respondError переводит доменные ошибки в HTTP-статусы
func respondError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		log.WithError(err).Warn("Resource not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, models.ErrInvalidTransition), errors.Is(err, models.ErrAmbulanceUnavailable):
		log.WithError(err).Warn("Request conflicts with current state")
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidInput):
		log.WithError(err).Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("Service call failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Report an emergency
// @Description Create an incident and dispatch the nearest ambulance and hospital. The incident is stored even when nothing is available.
// @Tags Incidents
// @Accept json
// @Produce json
// @Param incident body CreateIncidentRequest true "Emergency report"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) createIncident(c *gin.Context) {
	var input CreateIncidentRequest
	log := h.logger.WithField("method", "createIncident")
	if !h.bind(c, log, &input) {
		return
	}

	incident, err := h.dispatchService.CreateIncident(c.Request.Context(), CreateRequestToInput(input))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(incident))
}

// @Summary Track an incident
// @Description Public incident status lookup by tracking token
// @Tags Incidents
// @Produce json
// @Param token path string true "Tracking token"
// @Success 200 {object} TrackingResponse
// @Failure 404 {object} map[string]string "Incident not found"
// @Router /incidents/track/{token} [get]
func (h *Handler) trackIncident(c *gin.Context) {
	log := h.logger.WithField("method", "trackIncident")

	incident, err := h.dispatchService.TrackIncident(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToTrackingResponse(incident))
}

// @Summary Get a list of incidents
// @Description Get a paginated list of incidents, newest first. Requires API key.
// @Tags Incidents
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Param status query string false "Comma-separated statuses"
// @Success 200 {array} IncidentResponse
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	var filter models.IncidentFilter
	if raw := c.Query("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			status, ok := models.ParseStatus(part)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status " + strconv.Quote(part)})
				return
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}

	incidents, err := h.dispatchService.ListIncidents(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Get incident by ID
// @Description Get a single incident with its assigned ambulance and hospital. Requires API key.
// @Tags Incidents
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, ok := pathID(c, "id", "incident")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.dispatchService.GetIncident(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Retry dispatch
// @Description Run the initial dispatch again for an incident left Pending. Requires API key.
// @Tags Incidents
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Incident is not Pending"
// @Router /incidents/{id}/dispatch [post]
func (h *Handler) dispatchIncident(c *gin.Context) {
	id, ok := pathID(c, "id", "incident")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "dispatchIncident").WithField("id", id)

	incident, err := h.dispatchService.Dispatch(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Hospital decision
// @Description Accept or reject a dispatched incident. Rejection re-dispatches to another hospital. Requires API key.
// @Tags Hospitals
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param action body HospitalActionRequest true "Hospital action"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Action not allowed in current state"
// @Router /incidents/{id}/hospital-action [post]
func (h *Handler) hospitalAction(c *gin.Context) {
	id, ok := pathID(c, "id", "incident")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "hospitalAction").WithField("id", id)

	var input HospitalActionRequest
	if !h.bind(c, log, &input) {
		return
	}
	action, ok := service.ParseHospitalAction(input.Action)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be accept or reject"})
		return
	}

	incident, err := h.dispatchService.HandleHospitalAction(c.Request.Context(), id, parseOptionalID(input.HospitalID), action)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Ambulance status update
// @Description Report OnRoute, Arrived, Admitted, Completed or Resolved. Requires API key.
// @Tags Ambulances
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param status body StatusUpdateRequest true "New status"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Router /incidents/{id}/status [post]
func (h *Handler) updateStatus(c *gin.Context) {
	id, ok := pathID(c, "id", "incident")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateStatus").WithField("id", id)

	var input StatusUpdateRequest
	if !h.bind(c, log, &input) {
		return
	}
	status, ok := models.ParseStatus(input.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status " + strconv.Quote(input.Status)})
		return
	}

	incident, err := h.dispatchService.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Ambulance location update
// @Description Store the assigned ambulance position and broadcast it. Does not change the incident status. Requires API key.
// @Tags Ambulances
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param location body LocationUpdateRequest true "Coordinates"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Incident not found"
// @Router /incidents/{id}/location [post]
func (h *Handler) updateLocation(c *gin.Context) {
	id, ok := pathID(c, "id", "incident")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateLocation").WithField("id", id)

	var input LocationUpdateRequest
	if !h.bind(c, log, &input) {
		return
	}

	point := models.GeoPoint{Latitude: *input.Latitude, Longitude: *input.Longitude}
	if err := h.dispatchService.UpdateLocation(c.Request.Context(), id, point); err != nil {
		respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Admin reassignment
// @Description Force the incident to Dispatched with the given (or current, or matched) ambulance and hospital. Requires API key.
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param reassign body ReassignRequest true "Resources to assign"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Incident or resource not found"
// @Failure 409 {object} map[string]string "Ambulance is busy"
// @Router /incidents/{id}/reassign [post]
func (h *Handler) reassignIncident(c *gin.Context) {
	id, ok := pathID(c, "id", "incident")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "reassignIncident").WithField("id", id)

	var input ReassignRequest
	if !h.bind(c, log, &input) {
		return
	}

	incident, err := h.dispatchService.AdminReassign(c.Request.Context(), id, service.ReassignInput{
		HospitalID:  parseOptionalID(input.HospitalID),
		AmbulanceID: parseOptionalID(input.AmbulanceID),
	})
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Update incident annotations
// @Description Set the AI summary and priority. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param summary body SummaryRequest true "Annotations"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Incident not found"
// @Router /incidents/{id}/summary [patch]
func (h *Handler) updateSummary(c *gin.Context) {
	id, ok := pathID(c, "id", "incident")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateSummary").WithField("id", id)

	var input SummaryRequest
	if !h.bind(c, log, &input) {
		return
	}

	incident, err := h.dispatchService.UpdateSummary(c.Request.Context(), id, input.AISummary, input.Priority)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Update hospital beds
// @Description Hospital reports its available bed count. Requires API key.
// @Tags Hospitals
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Hospital ID"
// @Param beds body BedsRequest true "Available beds"
// @Success 200 {object} HospitalResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Hospital not found"
// @Router /hospitals/{id}/beds [put]
func (h *Handler) updateBeds(c *gin.Context) {
	id, ok := pathID(c, "id", "hospital")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateBeds").WithField("id", id)

	var input BedsRequest
	if !h.bind(c, log, &input) {
		return
	}

	hospital, err := h.dispatchService.UpdateHospitalBeds(c.Request.Context(), id, *input.AvailableBeds)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToHospitalResponse(hospital))
}

// @Summary Hospital queue
// @Description Incidents assigned to the hospital that are not yet closed. Requires API key.
// @Tags Hospitals
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Hospital ID"
// @Success 200 {array} IncidentResponse
// @Failure 404 {object} map[string]string "Hospital not found"
// @Router /hospitals/{id}/incidents [get]
func (h *Handler) hospitalIncidents(c *gin.Context) {
	id, ok := pathID(c, "id", "hospital")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "hospitalIncidents").WithField("id", id)

	incidents, err := h.dispatchService.ActiveIncidentsForHospital(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Ambulance assignments
// @Description Incidents assigned to the ambulance that are not completed. Requires API key.
// @Tags Ambulances
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Ambulance ID"
// @Success 200 {array} IncidentResponse
// @Failure 404 {object} map[string]string "Ambulance not found"
// @Router /ambulances/{id}/incidents [get]
func (h *Handler) ambulanceIncidents(c *gin.Context) {
	id, ok := pathID(c, "id", "ambulance")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "ambulanceIncidents").WithField("id", id)

	incidents, err := h.dispatchService.ActiveIncidentsForAmbulance(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Control-center dashboard
// @Description All incidents, hospitals and ambulances with status counts. Requires API key.
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} DashboardResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /dashboard [get]
func (h *Handler) dashboard(c *gin.Context) {
	log := h.logger.WithField("method", "dashboard")

	snapshot, err := h.dispatchService.DashboardSnapshot(c.Request.Context())
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, DashboardToResponse(snapshot))
}

// @Summary Subscribe to rooms
// @Description Websocket subscription. Rooms: control-center, a hospital id, an ambulance id or a tracking token.
// @Tags Realtime
// @Param room query []string false "Rooms to join" collectionFormat(multi)
// @Success 101 "Switching Protocols"
// @Router /ws [get]
func (h *Handler) subscribe(c *gin.Context) {
	h.subscriber.ServeWS(c.Writer, c.Request)
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
