package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Публичные маршруты инцидентов
	incidents := api.Group("/incidents")
	{
		incidents.POST("", h.submitReport)
		incidents.GET("/nearby", h.nearbyIncidents)
		incidents.GET("/heatmap", h.heatmap)
		incidents.GET("/:id", h.getIncident)
		incidents.POST("/:id/vote", h.voteIncident)
		// Подтверждение - только для модераторов с API-ключом
		incidents.PATCH("/:id/verify", APIKeyAuthMiddleware(h.cfg, h.logger), h.verifyIncident)
	}

	// Маршруты районов
	neighborhoods := api.Group("/neighborhoods")
	{
		neighborhoods.GET("", h.listNeighborhoods)
		neighborhoods.GET("/by-location", h.neighborhoodByLocation)
		// Пересчет скоров - административная операция
		neighborhoods.POST("/update-scores", APIKeyAuthMiddleware(h.cfg, h.logger), h.updateScores)
	}

	// Маршрут статистики
	api.GET("/stats/overview", h.statsOverview)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
