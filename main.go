package main

import (
	"context"
	"strings"

	api "dealflow-backend/cmd/api"
	authdomain "dealflow-backend/internal/auth/domain"
	authRepo "dealflow-backend/internal/auth/repository"
	authUsecase "dealflow-backend/internal/auth/usecase"
	caldomain "dealflow-backend/internal/calendar/domain"
	calRepo "dealflow-backend/internal/calendar/repository"
	calScheduler "dealflow-backend/internal/calendar/scheduler"
	calUsecase "dealflow-backend/internal/calendar/usecase"
	crmdomain "dealflow-backend/internal/crm/domain"
	crmRepo "dealflow-backend/internal/crm/repository"
	crmUsecase "dealflow-backend/internal/crm/usecase"
	insightdomain "dealflow-backend/internal/insight/domain"
	insightRepo "dealflow-backend/internal/insight/repository"
	insightUsecase "dealflow-backend/internal/insight/usecase"
	"dealflow-backend/internal/notification"
	"dealflow-backend/pkg/ai"
	"dealflow-backend/pkg/config"
	"dealflow-backend/pkg/database"
	"dealflow-backend/pkg/fcm"
	"dealflow-backend/pkg/gcal"

	log "github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&authdomain.DeviceToken{},
		&crmdomain.Account{},
		&crmdomain.Contact{},
		&crmdomain.Opportunity{},
		&caldomain.CalendarSyncState{},
		&caldomain.CalendarEvent{},
		&insightdomain.ParsedMeetingInsight{},
		&insightdomain.ConsolidatedInsight{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	deviceRepo := authRepo.NewDeviceTokenRepository(db)
	accountRepo := crmRepo.NewAccountRepository(db)
	contactRepo := crmRepo.NewContactRepository(db)
	opportunityRepo := crmRepo.NewOpportunityRepository(db)
	syncStateRepo := calRepo.NewSyncStateRepository(db)
	eventRepo := calRepo.NewEventRepository(db)
	insightRepository := insightRepo.NewInsightRepository(db)
	consolidatedRepo := insightRepo.NewConsolidatedRepository(db)

	// Initialize Google Calendar provider
	gcalService := gcal.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret)

	// Initialize AI consolidator
	consolidator, err := ai.NewConsolidatorService(ai.Config{
		Provider:      ai.ProviderType(cfg.AIProvider),
		GeminiAPIKey:  cfg.GeminiApiKey,
		OllamaBaseURL: cfg.OllamaBaseURL,
		OllamaModel:   cfg.OllamaModel,
	})
	if err != nil {
		log.Fatal("Failed to initialize AI service:", err)
	}
	log.Printf("AI service initialized with provider: %s", cfg.AIProvider)

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, cfg)
	crmUsecaseInstance := crmUsecase.NewCRMUsecase(accountRepo, contactRepo, opportunityRepo)
	syncUsecaseInstance := calUsecase.NewSyncUsecase(userRepo, contactRepo, accountRepo, opportunityRepo, syncStateRepo, eventRepo, gcalService)

	// Start consolidation workers
	consolidationWorker := insightUsecase.NewConsolidationWorkerService(opportunityRepo, insightRepository, consolidatedRepo, consolidator, 3)
	consolidationWorker.Start()
	defer consolidationWorker.Stop()

	ingestUsecaseInstance := insightUsecase.NewIngestUsecase(opportunityRepo, insightRepository, consolidatedRepo, consolidationWorker)

	// Initialize FCM client (optional, notifications disabled without it)
	var fcmClient *fcm.Client
	if cfg.FirebaseCredentials != "" {
		fcmClient, err = fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (push notifications disabled): %v", err)
		}
	}

	// Initialize notification service (Pub/Sub) when a project is configured
	if cfg.GoogleProjectID != "" {
		// Accept full resource names like projects/p/topics/t
		topicName := cfg.TranscriptTopic
		if parts := strings.Split(topicName, "/"); len(parts) > 1 {
			topicName = parts[len(parts)-1]
		}

		notifService, err := notification.NewService(cfg.GoogleProjectID, topicName, opportunityRepo, deviceRepo, fcmClient, consolidationWorker, cfg.GoogleCredentials)
		if err != nil {
			log.Printf("[ERROR] Failed to initialize notification service: %v", err)
		} else {
			consolidationWorker.SetNotifier(notifService)
			go notifService.Start(context.Background())
		}
	} else {
		log.Printf("[WARN] GOOGLE_PROJECT_ID not configured, notification service disabled")
	}

	// Start the periodic calendar sync
	syncScheduler := calScheduler.NewCalendarSyncScheduler(syncUsecaseInstance, cfg.SyncInterval)
	syncScheduler.Start()
	defer syncScheduler.Stop()

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, crmUsecaseInstance, syncUsecaseInstance, ingestUsecaseInstance, deviceRepo, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
