package services

import (
	"context"
	"fmt"

	"github.com/campaign-studio/backend/internal/models"
	"github.com/campaign-studio/backend/internal/repositories"
	"github.com/campaign-studio/backend/internal/siteparser"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BrandService struct {
	brandRepo *repositories.BrandRepo
	auditRepo *repositories.AuditRepo
	parser    *siteparser.Parser
	log       *zap.Logger
}

func NewBrandService(
	brandRepo *repositories.BrandRepo,
	auditRepo *repositories.AuditRepo,
	parser *siteparser.Parser,
	log *zap.Logger,
) *BrandService {
	return &BrandService{
		brandRepo: brandRepo,
		auditRepo: auditRepo,
		parser:    parser,
		log:       log,
	}
}

func (s *BrandService) Create(ctx context.Context, userID uuid.UUID, b *models.Brand) error {
	b.OwnerUserID = userID
	if b.BrandVoice == "" {
		b.BrandVoice = "professional"
	}

	if err := s.brandRepo.Create(ctx, b); err != nil {
		return err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "user",
		Action:      "brand_created",
		EntityType:  "brand",
		EntityID:    &b.ID,
	})
	return nil
}

func (s *BrandService) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Brand, error) {
	b, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.OwnerUserID != userID {
		return nil, fmt.Errorf("brand not found")
	}
	return b, nil
}

func (s *BrandService) List(ctx context.Context, userID uuid.UUID) ([]models.Brand, error) {
	return s.brandRepo.ListByOwner(ctx, userID)
}

func (s *BrandService) Update(ctx context.Context, id, userID uuid.UUID, b *models.Brand) error {
	existing, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("brand not found")
	}
	if existing.OwnerUserID != userID {
		return fmt.Errorf("brand not found")
	}

	b.ID = id
	b.OwnerUserID = existing.OwnerUserID
	if b.BrandVoice == "" {
		b.BrandVoice = existing.BrandVoice
	}
	return s.brandRepo.Update(ctx, b)
}

// ImportSite scrapes a brand website and returns a pre-filled brand
// suggestion. Nothing is persisted; the caller reviews and creates.
func (s *BrandService) ImportSite(ctx context.Context, url string) (*siteparser.SiteProfile, error) {
	profile, err := s.parser.FetchAndParse(ctx, url)
	if err != nil {
		s.log.Warn("site import failed", zap.String("url", url), zap.Error(err))
		return nil, err
	}
	return profile, nil
}
