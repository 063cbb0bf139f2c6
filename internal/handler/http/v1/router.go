package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Публичные маршруты: прием вызова, отслеживание и подписка
	api.POST("/incidents", h.createIncident)
	api.GET("/incidents/track/:token", h.trackIncident)
	api.GET("/ws", h.subscribe)
	api.GET("/system/health", h.healthCheck)

	// Маршруты персонала требуют API-ключ
	staff := api.Group("", APIKeyAuthMiddleware(h.cfg, h.logger))
	incidents := staff.Group("/incidents")
	{
		incidents.GET("", h.listIncidents)
		incidents.GET("/:id", h.getIncident)
		incidents.POST("/:id/dispatch", h.dispatchIncident)
		incidents.POST("/:id/hospital-action", h.hospitalAction)
		incidents.POST("/:id/status", h.updateStatus)
		incidents.POST("/:id/location", h.updateLocation)
		incidents.POST("/:id/reassign", h.reassignIncident)
		incidents.PATCH("/:id/summary", h.updateSummary)
	}

	hospitals := staff.Group("/hospitals")
	{
		hospitals.PUT("/:id/beds", h.updateBeds)
		hospitals.GET("/:id/incidents", h.hospitalIncidents)
	}

	staff.GET("/ambulances/:id/incidents", h.ambulanceIncidents)
	staff.GET("/dashboard", h.dashboard)
}
