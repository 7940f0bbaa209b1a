package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)

	protected := api.Group("")
	protected.Use(JWTAuthMiddleware(h.cfg.JWTSecret, h.logger), AuthorizeMiddleware(h.authorizer, h.logger))

	// Изменяющие запросы ограничены по частоте
	limited := RateLimitMiddleware(h.limiter, h.logger)

	incidents := protected.Group("/incidents")
	{
		incidents.POST("", limited, h.reportIncident)
		incidents.GET("", h.listIncidents)
		incidents.GET("/active", h.listActiveIncidents)
		incidents.GET("/pending", h.listPendingIncidents)
		incidents.GET("/mine", h.listMyIncidents)
		incidents.GET("/stats", h.getStats)
		incidents.GET("/volunteer/history", h.volunteerHistory)
		incidents.GET("/:id", h.getIncident)
		incidents.POST("/:id/media", limited, h.attachMedia)
		incidents.POST("/:id/volunteer", limited, h.volunteer)
		incidents.PUT("/:id/volunteer/status", limited, h.setVolunteerStatus)
		incidents.PUT("/:id/complete", limited, h.markCompleted)
		incidents.PUT("/:id/approve", limited, h.approve)
	}

	coins := protected.Group("/coins")
	{
		coins.GET("/balance", h.getBalance)
		coins.GET("/payout-details", h.getPayoutDetails)
		coins.PUT("/payout-details", limited, h.savePayoutDetails)
		coins.GET("/contributions", h.getContributions)
		coins.POST("/withdraw", limited, h.withdraw)
	}

	notifications := protected.Group("/notifications")
	{
		notifications.GET("", h.listNotifications)
		notifications.PATCH("/read", h.markNotificationsRead)
		notifications.PATCH("/:id/read", h.markNotificationRead)
	}
}
