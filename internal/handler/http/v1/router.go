package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Представления консоли: админ, выездная группа, публичная карта
	views := api.Group("/views")
	{
		views.POST("", h.mountView)
		views.GET("/:id", h.getView)
		views.DELETE("/:id", h.unmountView)
		views.POST("/:id/refresh", h.refreshView)
		views.POST("/:id/select", h.selectIncident)
		views.POST("/:id/recenter", h.recenter)
		views.GET("/:id/events", h.streamEvents)
	}

	// Заявки от публичного интерфейса
	api.POST("/reports", h.submitReport)
	api.GET("/geocode/reverse", h.reverseGeocode)

	// Действия операторов - только с API-ключом
	protected := api.Group("", APIKeyAuthMiddleware(h.cfg, h.logger))
	{
		protected.PATCH("/incidents/:id/workers", h.updateWorkerStatus)
		protected.POST("/incidents/:id/assign", h.assignWorkers)
		protected.GET("/journal", h.listJournal)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
