package api

import (
	authRepo "dealflow-backend/internal/auth/repository"
	authUsecase "dealflow-backend/internal/auth/usecase"
	calendarUsecase "dealflow-backend/internal/calendar/usecase"
	crmUsecase "dealflow-backend/internal/crm/usecase"
	insightUsecase "dealflow-backend/internal/insight/usecase"
	"dealflow-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase authUsecase.AuthUsecase
	crmUsecase  crmUsecase.CRMUsecase
	syncUsecase calendarUsecase.SyncUsecase
	ingestUc    insightUsecase.IngestUsecase
	deviceRepo  authRepo.DeviceTokenRepository
	config      *config.Config
}

func NewHandler(
	authUc authUsecase.AuthUsecase,
	crmUc crmUsecase.CRMUsecase,
	syncUc calendarUsecase.SyncUsecase,
	ingestUc insightUsecase.IngestUsecase,
	deviceRepo authRepo.DeviceTokenRepository,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authUsecase: authUc,
		crmUsecase:  crmUc,
		syncUsecase: syncUc,
		ingestUc:    ingestUc,
		deviceRepo:  deviceRepo,
		config:      cfg,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.crmUsecase, h.syncUsecase, h.ingestUc, h.deviceRepo)

	return r.Run(addr)
}
