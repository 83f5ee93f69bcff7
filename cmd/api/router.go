package api

import (
	"net/http"

	authDelivery "dealflow-backend/internal/auth/delivery"
	authRepo "dealflow-backend/internal/auth/repository"
	authUsecase "dealflow-backend/internal/auth/usecase"
	calendarDelivery "dealflow-backend/internal/calendar/delivery"
	calendarUsecase "dealflow-backend/internal/calendar/usecase"
	crmDelivery "dealflow-backend/internal/crm/delivery"
	crmUsecase "dealflow-backend/internal/crm/usecase"
	insightDelivery "dealflow-backend/internal/insight/delivery"
	insightUsecase "dealflow-backend/internal/insight/usecase"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	authUc authUsecase.AuthUsecase,
	crmUc crmUsecase.CRMUsecase,
	syncUc calendarUsecase.SyncUsecase,
	ingestUc insightUsecase.IngestUsecase,
	deviceRepo authRepo.DeviceTokenRepository,
) {
	authHandler := authDelivery.NewAuthHandler(authUc, deviceRepo)
	crmHandler := crmDelivery.NewCRMHandler(crmUc)
	calendarHandler := calendarDelivery.NewCalendarHandler(syncUc)
	insightHandler := insightDelivery.NewInsightHandler(ingestUc)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
			auth.POST("/google", authHandler.GoogleSignIn)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authDelivery.AuthMiddleware(authUc), authHandler.Me)
			auth.PUT("/org-domain", authDelivery.AuthMiddleware(authUc), authHandler.UpdateOrgDomain)
		}

		// Device token routes (protected)
		devices := api.Group("/devices")
		devices.Use(authDelivery.AuthMiddleware(authUc))
		{
			devices.POST("/register", authHandler.RegisterDevice)
			devices.DELETE("/:token", authHandler.UnregisterDevice)
		}

		// Account routes (protected)
		accounts := api.Group("/accounts")
		accounts.Use(authDelivery.AuthMiddleware(authUc))
		{
			accounts.POST("", crmHandler.CreateAccount)
			accounts.GET("", crmHandler.GetAccounts)
			accounts.GET("/:id", crmHandler.GetAccountByID)
			accounts.PUT("/:id", crmHandler.UpdateAccount)
			accounts.DELETE("/:id", crmHandler.DeleteAccount)
		}

		// Contact routes (protected)
		contacts := api.Group("/contacts")
		contacts.Use(authDelivery.AuthMiddleware(authUc))
		{
			contacts.POST("", crmHandler.CreateContact)
			contacts.GET("", crmHandler.GetContacts)
			contacts.GET("/:id", crmHandler.GetContactByID)
			contacts.PUT("/:id", crmHandler.UpdateContact)
			contacts.DELETE("/:id", crmHandler.DeleteContact)
		}

		// Opportunity routes (protected)
		opportunities := api.Group("/opportunities")
		opportunities.Use(authDelivery.AuthMiddleware(authUc))
		{
			opportunities.POST("", crmHandler.CreateOpportunity)
			opportunities.GET("", crmHandler.GetOpportunities)
			opportunities.GET("/:id", crmHandler.GetOpportunityByID)
			opportunities.PUT("/:id", crmHandler.UpdateOpportunity)
			opportunities.DELETE("/:id", crmHandler.DeleteOpportunity)
			opportunities.GET("/:id/insights", insightHandler.GetOpportunityInsights)
			opportunities.POST("/:id/insights/consolidate", insightHandler.TriggerConsolidation)
		}

		// Calendar routes (protected)
		cal := api.Group("/calendar")
		cal.Use(authDelivery.AuthMiddleware(authUc))
		{
			cal.GET("/events", calendarHandler.GetEvents)
			cal.POST("/sync", calendarHandler.TriggerSync)
			cal.GET("/sync/status", calendarHandler.GetSyncStatus)
		}

		// Transcript webhooks (no auth: called by the parsing pipeline)
		transcripts := api.Group("/transcripts")
		{
			transcripts.POST("/gong", insightHandler.IngestGong)
			transcripts.POST("/granola", insightHandler.IngestGranola)
		}
	}
}
