package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all API v1 routes.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	authed := api.Group("")
	authed.Use(APIKeyAuthMiddleware(h.cfg, h.logger), ActorMiddleware(h.logger))

	alerts := authed.Group("/alerts/pinchazo")
	{
		alerts.POST("", h.createAlert)
		alerts.GET("/active", h.listActiveAlerts)
		alerts.GET("/history", h.listAlertHistory)
		alerts.GET("/:id", h.getAlert)
		alerts.POST("/:id/accept", h.acceptAlert)
		alerts.POST("/:id/reject", h.rejectAlert)
		alerts.POST("/:id/on_way", h.markOnWay)
		alerts.POST("/:id/arrived", h.markArrived)
		alerts.POST("/:id/completed", h.markCompleted)
		alerts.POST("/:id/cancel", h.cancelAlert)
	}

	notifications := authed.Group("/notifications")
	{
		notifications.POST("/register", h.registerToken)
		notifications.POST("/unregister", h.unregisterToken)
		notifications.POST("/test", h.sendTestNotification)
	}

	// Health stays open for load balancer probes
	api.GET("/system/health", h.healthCheck)
}
