package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	authrepo "dealflow-backend/internal/auth/repository"
	crmrepo "dealflow-backend/internal/crm/repository"
	insightusecase "dealflow-backend/internal/insight/usecase"
	"dealflow-backend/pkg/fcm"

	"cloud.google.com/go/pubsub"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// TranscriptParsedMessage is published by the transcript parsing pipeline
// once a Gong call or Granola note has been processed
type TranscriptParsedMessage struct {
	OpportunityID string `json:"opportunityId"`
	Source        string `json:"source"`
	SourceRef     string `json:"sourceRef"`
}

// Service subscribes to transcript-parsed events and pushes consolidation
// outcomes to the deal owner's devices
type Service struct {
	pubsubClient    *pubsub.Client
	opportunityRepo crmrepo.OpportunityRepository
	deviceRepo      authrepo.DeviceTokenRepository
	fcmClient       *fcm.Client
	worker          *insightusecase.ConsolidationWorkerService
	projectID       string
	topicName       string
	subName         string
}

func NewService(projectID, topicName string, opportunityRepo crmrepo.OpportunityRepository, deviceRepo authrepo.DeviceTokenRepository, fcmClient *fcm.Client, worker *insightusecase.ConsolidationWorkerService, credentialsFile string) (*Service, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %v", err)
	}

	return &Service{
		pubsubClient:    client,
		opportunityRepo: opportunityRepo,
		deviceRepo:      deviceRepo,
		fcmClient:       fcmClient,
		worker:          worker,
		projectID:       projectID,
		topicName:       topicName,
		subName:         topicName + "-sub", // Convention: topic-sub
	}, nil
}

func (s *Service) Start(ctx context.Context) {
	log.Printf("[PubSub] Starting notification service with topic: %s, subscription: %s", s.topicName, s.subName)

	// Ensure subscription exists
	sub := s.pubsubClient.Subscription(s.subName)
	exists, err := sub.Exists(ctx)
	if err != nil {
		log.Printf("[PubSub] Error checking subscription existence: %v", err)
		return
	}

	if !exists {
		topic := s.pubsubClient.Topic(s.topicName)
		topicExists, err := topic.Exists(ctx)
		if err != nil {
			log.Printf("[PubSub] Error checking topic existence: %v", err)
			return
		}

		if !topicExists {
			log.Printf("[PubSub] Topic %s does not exist, cannot create subscription", s.topicName)
			return
		}

		sub, err = s.pubsubClient.CreateSubscription(ctx, s.subName, pubsub.SubscriptionConfig{
			Topic:       topic,
			AckDeadline: 10 * time.Second,
		})
		if err != nil {
			log.Printf("[PubSub] Failed to create subscription: %v", err)
			return
		}
		log.Printf("[PubSub] Created subscription: %s", s.subName)
	}

	log.Printf("[PubSub] Listening for messages on subscription: %s", s.subName)
	err = sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		s.handleMessage(msg)
		msg.Ack()
	})
	if err != nil {
		log.Printf("[PubSub] Error receiving messages: %v", err)
	}
}

func (s *Service) handleMessage(msg *pubsub.Message) {
	var parsed TranscriptParsedMessage
	if err := json.Unmarshal(msg.Data, &parsed); err != nil {
		log.Printf("[PubSub] Failed to unmarshal message: %v", err)
		return
	}

	log.Printf("[PubSub] Transcript parsed for opportunity %s (source: %s)", parsed.OpportunityID, parsed.Source)

	opp, err := s.opportunityRepo.FindByID("", parsed.OpportunityID)
	if err != nil {
		log.Printf("[PubSub] Error loading opportunity %s: %v", parsed.OpportunityID, err)
		return
	}
	if opp == nil {
		log.Printf("[PubSub] Opportunity not found: %s", parsed.OpportunityID)
		return
	}

	queued := s.worker.QueueJob(insightusecase.ConsolidationJob{
		OpportunityID: opp.ID,
		OwnerID:       opp.OwnerID,
	})
	if !queued {
		log.Printf("[PubSub] Consolidation queue full, dropping run for %s", opp.ID)
	}
}

// NotifyConsolidationComplete pushes the outcome to the deal owner's devices
func (s *Service) NotifyConsolidationComplete(opportunityID, ownerID string, meetingCount int) {
	if s.fcmClient == nil || s.deviceRepo == nil {
		return
	}

	go func() {
		tokens, err := s.deviceRepo.GetTokensByUserID(ownerID)
		if err != nil {
			log.Printf("[FCM] Error getting tokens for user %s: %v", ownerID, err)
			return
		}
		if len(tokens) == 0 {
			return
		}

		var tokenStrings []string
		for _, t := range tokens {
			tokenStrings = append(tokenStrings, t.Token)
		}

		failedTokens, err := s.fcmClient.SendToDevices(context.Background(), tokenStrings, fcm.NotificationData{
			Title: "Deal insights updated",
			Body:  fmt.Sprintf("Consolidated insights from %d meetings are ready", meetingCount),
			Data: map[string]string{
				"type":          "insight_update",
				"opportunityId": opportunityID,
			},
		})
		if err != nil {
			log.Printf("[FCM] Error sending notifications: %v", err)
			return
		}

		// Cleanup failed tokens
		for _, token := range failedTokens {
			if err := s.deviceRepo.DeleteToken(token); err != nil {
				log.Printf("[FCM] Error deleting stale token: %v", err)
			}
		}
	}()
}
