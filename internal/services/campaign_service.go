package services

import (
	"context"
	"fmt"

	"github.com/campaign-studio/backend/internal/models"
	"github.com/campaign-studio/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CampaignService struct {
	campaignRepo *repositories.CampaignRepo
	creativeRepo *repositories.CreativeRepo
	assetRepo    *repositories.AssetRepo
	auditRepo    *repositories.AuditRepo
	log          *zap.Logger
}

func NewCampaignService(
	campaignRepo *repositories.CampaignRepo,
	creativeRepo *repositories.CreativeRepo,
	assetRepo *repositories.AssetRepo,
	auditRepo *repositories.AuditRepo,
	log *zap.Logger,
) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		creativeRepo: creativeRepo,
		assetRepo:    assetRepo,
		auditRepo:    auditRepo,
		log:          log,
	}
}

func (s *CampaignService) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Campaign, error) {
	c, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.OwnerUserID != userID {
		return nil, fmt.Errorf("campaign not found")
	}
	return c, nil
}

func (s *CampaignService) List(ctx context.Context, userID uuid.UUID, f repositories.CampaignFilter) ([]models.Campaign, error) {
	f.OwnerUserID = &userID
	return s.campaignRepo.List(ctx, f)
}

// UpdateStatus moves a campaign along the status lifecycle, rejecting
// transitions the lifecycle does not allow.
func (s *CampaignService) UpdateStatus(ctx context.Context, id, userID uuid.UUID, status string) (*models.Campaign, error) {
	c, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if !models.IsValidStatusTransition(c.Status, status) {
		return nil, fmt.Errorf("invalid status transition %s -> %s", c.Status, status)
	}

	if err := s.campaignRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "user",
		Action:      "campaign_status_changed",
		EntityType:  "campaign",
		EntityID:    &id,
		Metadata:    map[string]string{"from": c.Status, "to": status},
	})

	c.Status = status
	return c, nil
}

func (s *CampaignService) ListCreatives(ctx context.Context, campaignID, userID uuid.UUID) ([]models.Creative, error) {
	if _, err := s.GetByID(ctx, campaignID, userID); err != nil {
		return nil, err
	}
	return s.creativeRepo.ListByCampaign(ctx, campaignID)
}

func (s *CampaignService) ListAssets(ctx context.Context, campaignID, userID uuid.UUID) ([]models.Asset, error) {
	if _, err := s.GetByID(ctx, campaignID, userID); err != nil {
		return nil, err
	}
	return s.assetRepo.ListByCampaign(ctx, campaignID)
}

// LibraryCreatives returns the user's creatives across all campaigns,
// newest first.
func (s *CampaignService) LibraryCreatives(ctx context.Context, userID uuid.UUID, limit int) ([]models.Creative, error) {
	return s.creativeRepo.ListByOwner(ctx, userID, limit)
}

// LibraryAssets returns the user's generated assets across all campaigns,
// newest first.
func (s *CampaignService) LibraryAssets(ctx context.Context, userID uuid.UUID, limit int) ([]models.Asset, error) {
	return s.assetRepo.ListByOwner(ctx, userID, limit)
}

// AnalyticsOverview is the aggregate block behind the dashboard and
// analytics views.
type AnalyticsOverview struct {
	Campaigns      *repositories.CampaignOverview `json:"campaigns"`
	AvgPerformance float64                        `json:"avg_creative_performance"`
	HighPerformers int                            `json:"high_performing_creatives"`
}

// Narrowed repo views so the overview assembly is testable.
type campaignOverviewSource interface {
	Overview(ctx context.Context, ownerID uuid.UUID) (*repositories.CampaignOverview, error)
}

type creativeStatsSource interface {
	PerformanceStatsByOwner(ctx context.Context, ownerID uuid.UUID) (*repositories.CreativeStats, error)
}

func (s *CampaignService) Overview(ctx context.Context, userID uuid.UUID) (*AnalyticsOverview, error) {
	return buildOverview(ctx, userID, s.campaignRepo, s.creativeRepo)
}

func buildOverview(ctx context.Context, userID uuid.UUID, campaigns campaignOverviewSource, creatives creativeStatsSource) (*AnalyticsOverview, error) {
	co, err := campaigns.Overview(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats, err := creatives.PerformanceStatsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &AnalyticsOverview{
		Campaigns:      co,
		AvgPerformance: stats.AvgScore,
		HighPerformers: stats.HighPerformers,
	}, nil
}
