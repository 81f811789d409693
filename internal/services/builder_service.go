package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/campaign-studio/backend/internal/builder"
	"github.com/campaign-studio/backend/internal/events"
	"github.com/campaign-studio/backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("builder session not found")
	ErrWrongStep       = errors.New("operation not available at current step")
	ErrDeployInFlight  = errors.New("deploy already in progress")
	ErrDeployPending   = errors.New("partial deploy pending, retry deploy or discard the session")
	ErrNothingToDeploy = errors.New("draft has no creatives or posters")
)

// Storage interfaces the deploy saga writes through. Satisfied by the pgx
// repositories; narrowed so the saga is testable.
type CampaignStore interface {
	Create(ctx context.Context, c *models.Campaign) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error)
}

type CreativeStore interface {
	Create(ctx context.Context, c *models.Creative) error
}

type AssetStore interface {
	Create(ctx context.Context, a *models.Asset) error
}

type BrandStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Brand, error)
}

type AuditSink interface {
	Log(ctx context.Context, entry models.AuditLog) error
}

// BuilderService owns all live wizard sessions. Sessions are in-memory only,
// a restart loses in-progress drafts.
type BuilderService struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*builder.Session

	campaigns CampaignStore
	creatives CreativeStore
	assets    AssetStore
	brands    BrandStore
	audit     AuditSink

	strategyGen *builder.StrategyGenerator
	creativeGen *builder.CreativeGenerator
	posterGen   *builder.PosterGenerator

	publisher events.Publisher
	log       *zap.Logger
}

func NewBuilderService(
	campaigns CampaignStore,
	creatives CreativeStore,
	assets AssetStore,
	brands BrandStore,
	audit AuditSink,
	strategyGen *builder.StrategyGenerator,
	creativeGen *builder.CreativeGenerator,
	posterGen *builder.PosterGenerator,
	publisher events.Publisher,
	log *zap.Logger,
) *BuilderService {
	return &BuilderService{
		sessions:    make(map[uuid.UUID]*builder.Session),
		campaigns:   campaigns,
		creatives:   creatives,
		assets:      assets,
		brands:      brands,
		audit:       audit,
		strategyGen: strategyGen,
		creativeGen: creativeGen,
		posterGen:   posterGen,
		publisher:   publisher,
		log:         log,
	}
}

func (s *BuilderService) CreateSession(userID uuid.UUID) *builder.Session {
	sess := builder.NewSession(userID)

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.log.Info("builder session created",
		zap.String("session_id", sess.ID.String()),
		zap.String("user_id", userID.String()))
	return sess
}

func (s *BuilderService) GetSession(id, userID uuid.UUID) (*builder.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || sess.OwnerUserID != userID {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *BuilderService) DiscardSession(id, userID uuid.UUID) error {
	sess, err := s.GetSession(id, userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.sessions, sess.ID)
	s.mu.Unlock()
	return nil
}

// UpdateDraft merges a partial update into the session draft. No validation
// of field values happens here, per the aggregator contract. Once a deploy
// has partially run the draft is frozen: the resume counters are positional
// indices into the creative and poster lists, and a mutated list would make
// a retry skip or mix records.
func (s *BuilderService) UpdateDraft(id, userID uuid.UUID, patch builder.Patch) (*builder.Session, error) {
	sess, err := s.GetSession(id, userID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()
	if sess.Deploy.CampaignID != nil {
		return nil, ErrDeployPending
	}
	sess.Draft.Apply(patch)
	return sess, nil
}

// Next advances the wizard one step. advanced=false means the current
// step's completion predicate failed and nothing changed.
func (s *BuilderService) Next(id, userID uuid.UUID) (sess *builder.Session, advanced bool, err error) {
	sess, err = s.GetSession(id, userID)
	if err != nil {
		return nil, false, err
	}

	sess.Lock()
	defer sess.Unlock()
	return sess, sess.Next(), nil
}

// Back retreats one step. Blocked after a partial deploy: retreating would
// reopen the regenerate operations, and the resume counters only stay valid
// while the creative and poster lists are unchanged.
func (s *BuilderService) Back(id, userID uuid.UUID) (*builder.Session, error) {
	sess, err := s.GetSession(id, userID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()
	if sess.Deploy.CampaignID != nil {
		return nil, ErrDeployPending
	}
	sess.Back()
	return sess, nil
}

// GenerateStrategy runs the strategy generator and replaces the draft's
// strategy wholesale. On failure the draft is left unchanged.
func (s *BuilderService) GenerateStrategy(ctx context.Context, id, userID uuid.UUID, instructions string) (*builder.Session, error) {
	sess, err := s.GetSession(id, userID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.CurrentStep != builder.StepStrategy {
		return nil, ErrWrongStep
	}
	if len(sess.Draft.Platforms) == 0 {
		return nil, fmt.Errorf("draft has no platforms selected")
	}

	var brand *models.Brand
	if sess.Draft.BrandID != uuid.Nil {
		brand, err = s.brands.GetByID(ctx, sess.Draft.BrandID)
		if err != nil {
			s.log.Warn("brand lookup failed, generating without brand context",
				zap.String("brand_id", sess.Draft.BrandID.String()), zap.Error(err))
			brand = nil
		}
	}

	strategy, err := s.strategyGen.Generate(ctx, sess.Draft, brand, instructions)
	if err != nil {
		return nil, err
	}

	sess.Draft.Apply(builder.Patch{Strategy: strategy})
	return sess, nil
}

// GenerateCreatives fills the draft with all creative categories.
func (s *BuilderService) GenerateCreatives(ctx context.Context, id, userID uuid.UUID) (*builder.Session, error) {
	sess, err := s.GetSession(id, userID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.CurrentStep != builder.StepCreatives {
		return nil, ErrWrongStep
	}
	if sess.Draft.Strategy == nil {
		return nil, fmt.Errorf("strategy must be generated before creatives")
	}

	creatives, err := s.creativeGen.GenerateAll(ctx, sess.Draft)
	if err != nil {
		return nil, err
	}

	sess.Draft.Apply(builder.Patch{Creatives: creatives})
	return sess, nil
}

// RegenerateCreatives replaces only ctype's entries, all other categories
// are untouched.
func (s *BuilderService) RegenerateCreatives(ctx context.Context, id, userID uuid.UUID, ctype string) (*builder.Session, error) {
	sess, err := s.GetSession(id, userID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.CurrentStep != builder.StepCreatives {
		return nil, ErrWrongStep
	}

	creatives, err := s.creativeGen.RegenerateType(ctx, sess.Draft, ctype)
	if err != nil {
		return nil, err
	}

	sess.Draft.Apply(builder.Patch{Creatives: creatives})
	return sess, nil
}

func (s *BuilderService) GeneratePosters(ctx context.Context, id, userID uuid.UUID) (*builder.Session, error) {
	return s.withPosterStep(id, userID, func(sess *builder.Session) error {
		posters, err := s.posterGen.Generate(ctx, sess.Draft)
		if err != nil {
			return err
		}
		sess.Draft.Apply(builder.Patch{Posters: posters})
		return nil
	})
}

func (s *BuilderService) GenerateMorePosters(ctx context.Context, id, userID uuid.UUID) (*builder.Session, error) {
	return s.withPosterStep(id, userID, func(sess *builder.Session) error {
		posters, err := s.posterGen.GenerateMore(ctx, sess.Draft)
		if err != nil {
			return err
		}
		sess.Draft.Apply(builder.Patch{Posters: posters})
		return nil
	})
}

func (s *BuilderService) RegeneratePoster(ctx context.Context, id, userID uuid.UUID, index int) (*builder.Session, error) {
	return s.withPosterStep(id, userID, func(sess *builder.Session) error {
		posters, err := s.posterGen.Regenerate(ctx, sess.Draft, index)
		if err != nil {
			return err
		}
		sess.Draft.Apply(builder.Patch{Posters: posters})
		return nil
	})
}

func (s *BuilderService) withPosterStep(id, userID uuid.UUID, fn func(*builder.Session) error) (*builder.Session, error) {
	sess, err := s.GetSession(id, userID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.CurrentStep != builder.StepPosters {
		return nil, ErrWrongStep
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Deploy persists the draft as one Campaign plus its Creative and Asset
// records, sequentially. There is no rollback: a mid-sequence failure keeps
// everything already written, records how far we got on the session, and a
// retry resumes from there instead of duplicating records.
func (s *BuilderService) Deploy(ctx context.Context, id, userID uuid.UUID) (*models.Campaign, error) {
	sess, err := s.GetSession(id, userID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.CurrentStep != builder.StepPreview {
		return nil, ErrWrongStep
	}
	if len(sess.Draft.Creatives) == 0 || len(sess.Draft.Posters) == 0 {
		return nil, ErrNothingToDeploy
	}
	if sess.Deploy.InFlight {
		return nil, ErrDeployInFlight
	}
	sess.Deploy.InFlight = true
	defer func() { sess.Deploy.InFlight = false }()

	d := sess.Draft

	var campaign *models.Campaign
	if sess.Deploy.CampaignID == nil {
		campaign = &models.Campaign{
			OwnerUserID:    userID,
			BrandID:        uuidPtrOrNil(d.BrandID),
			Name:           d.Name,
			ProductService: d.ProductService,
			Objective:      d.Objective,
			TargetSegment:  d.TargetSegment,
			Budget:         d.Budget,
			DurationDays:   d.DurationDays,
			Platforms:      d.Platforms,
			Strategy:       d.Strategy,
			Status:         models.CampaignStatusPlanning,
		}
		if err := s.campaigns.Create(ctx, campaign); err != nil {
			s.log.Error("deploy: campaign create failed", zap.Error(err))
			return nil, fmt.Errorf("create campaign: %w", err)
		}
		cid := campaign.ID
		sess.Deploy.CampaignID = &cid
	} else {
		campaign, err = s.campaigns.GetByID(ctx, *sess.Deploy.CampaignID)
		if err != nil {
			s.log.Error("deploy: resume lookup failed", zap.Error(err))
			return nil, fmt.Errorf("resume deploy: %w", err)
		}
		s.log.Info("deploy: resuming partial deploy",
			zap.String("campaign_id", campaign.ID.String()),
			zap.Int("creatives_persisted", sess.Deploy.CreativesPersisted),
			zap.Int("assets_persisted", sess.Deploy.AssetsPersisted))
	}

	campaignID := campaign.ID

	for i := sess.Deploy.CreativesPersisted; i < len(d.Creatives); i++ {
		dc := d.Creatives[i]
		rec := &models.Creative{
			CampaignID:       campaignID,
			Type:             dc.Type,
			Platform:         dc.Platform,
			Content:          dc.Content,
			Variant:          strPtrOrNil(dc.Variant),
			Hooks:            dc.Hooks,
			PerformanceScore: dc.PerformanceScore,
			Tone:             strPtrOrNil(dc.Tone),
		}
		if err := s.creatives.Create(ctx, rec); err != nil {
			s.log.Error("deploy: creative create failed",
				zap.Int("index", i), zap.Error(err))
			return nil, fmt.Errorf("create creative %d: %w", i, err)
		}
		sess.Deploy.CreativesPersisted++
	}

	for i := sess.Deploy.AssetsPersisted; i < len(d.Posters); i++ {
		dp := d.Posters[i]
		rating := dp.PerformanceRating
		rec := &models.Asset{
			CampaignID:        campaignID,
			Type:              dp.Type,
			Platform:          dp.Platform,
			FileURL:           dp.FileURL,
			GenerationPrompt:  strPtrOrNil(dp.GenerationPrompt),
			Dimensions:        strPtrOrNil(dp.Dimensions),
			PerformanceRating: &rating,
		}
		if err := s.assets.Create(ctx, rec); err != nil {
			s.log.Error("deploy: asset create failed",
				zap.Int("index", i), zap.Error(err))
			return nil, fmt.Errorf("create asset %d: %w", i, err)
		}
		sess.Deploy.AssetsPersisted++
	}

	_ = s.audit.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "user",
		Action:      "campaign_deployed",
		EntityType:  "campaign",
		EntityID:    &campaignID,
	})

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, events.StreamCampaign, events.Event{
			Type: events.EventCampaignDeployed,
			Payload: map[string]any{
				"campaign_id": campaignID.String(),
				"creatives":   len(d.Creatives),
				"assets":      len(d.Posters),
			},
		})
	}

	s.mu.Lock()
	delete(s.sessions, sess.ID)
	s.mu.Unlock()

	s.log.Info("campaign deployed",
		zap.String("campaign_id", campaignID.String()),
		zap.Int("creatives", len(d.Creatives)),
		zap.Int("assets", len(d.Posters)))
	return campaign, nil
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func uuidPtrOrNil(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
