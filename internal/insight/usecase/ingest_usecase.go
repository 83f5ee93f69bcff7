package usecase

import (
	"errors"

	crmrepository "dealflow-backend/internal/crm/repository"
	insightdomain "dealflow-backend/internal/insight/domain"
	"dealflow-backend/internal/insight/dto"
	"dealflow-backend/internal/insight/repository"

	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

var ErrOpportunityNotFound = errors.New("opportunity not found")

type ingestUsecase struct {
	opportunityRepo  crmrepository.OpportunityRepository
	insightRepo      repository.InsightRepository
	consolidatedRepo repository.ConsolidatedRepository
	worker           *ConsolidationWorkerService
}

// NewIngestUsecase creates the transcript ingestion usecase
func NewIngestUsecase(
	opportunityRepo crmrepository.OpportunityRepository,
	insightRepo repository.InsightRepository,
	consolidatedRepo repository.ConsolidatedRepository,
	worker *ConsolidationWorkerService,
) IngestUsecase {
	return &ingestUsecase{
		opportunityRepo:  opportunityRepo,
		insightRepo:      insightRepo,
		consolidatedRepo: consolidatedRepo,
		worker:           worker,
	}
}

func (u *ingestUsecase) IngestTranscript(source insightdomain.TranscriptSource, req *dto.IngestTranscriptRequest) (*dto.IngestTranscriptResponse, error) {
	opp, err := u.opportunityRepo.FindByID("", req.OpportunityID)
	if err != nil {
		return nil, err
	}
	if opp == nil {
		return nil, ErrOpportunityNotFound
	}

	insight := &insightdomain.ParsedMeetingInsight{
		OpportunityID:   req.OpportunityID,
		Source:          source,
		SourceRef:       req.SourceRef,
		MeetingTime:     req.MeetingTime,
		CalendarEventID: req.CalendarEventID,
		PainPoints:      datatypes.NewJSONSlice(req.PainPoints),
		Goals:           datatypes.NewJSONSlice(req.Goals),
		RiskAssessment:  req.RiskAssessment,
	}
	if err := u.insightRepo.Create(insight); err != nil {
		return nil, err
	}

	queued := u.worker.QueueJob(ConsolidationJob{
		OpportunityID: req.OpportunityID,
		OwnerID:       opp.OwnerID,
	})
	if !queued {
		log.Printf("[Ingest] Consolidation queue full, skipping run for %s", req.OpportunityID)
	}

	return &dto.IngestTranscriptResponse{Insight: insight, Queued: queued}, nil
}

func (u *ingestUsecase) GetOpportunityInsights(ownerID, opportunityID string) (*dto.OpportunityInsightsResponse, error) {
	opp, err := u.opportunityRepo.FindByID(ownerID, opportunityID)
	if err != nil {
		return nil, err
	}
	if opp == nil {
		return nil, ErrOpportunityNotFound
	}

	consolidated, err := u.consolidatedRepo.FindByOpportunity(opportunityID)
	if err != nil {
		return nil, err
	}

	meetings, err := u.insightRepo.FindByOpportunity(opportunityID)
	if err != nil {
		return nil, err
	}

	return &dto.OpportunityInsightsResponse{
		ConsolidationStatus: string(opp.ConsolidationStatus),
		Consolidated:        consolidated,
		Meetings:            meetings,
	}, nil
}

func (u *ingestUsecase) TriggerConsolidation(ownerID, opportunityID string) error {
	opp, err := u.opportunityRepo.FindByID(ownerID, opportunityID)
	if err != nil {
		return err
	}
	if opp == nil {
		return ErrOpportunityNotFound
	}

	if !u.worker.QueueJob(ConsolidationJob{OpportunityID: opportunityID, OwnerID: opp.OwnerID}) {
		return errors.New("consolidation queue is full, try again later")
	}
	return nil
}
