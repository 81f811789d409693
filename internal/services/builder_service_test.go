package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/campaign-studio/backend/internal/builder"
	"github.com/campaign-studio/backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeCampaignStore struct {
	creates int
	lookups int
	byID    map[uuid.UUID]*models.Campaign
}

func (f *fakeCampaignStore) Create(ctx context.Context, c *models.Campaign) error {
	f.creates++
	c.ID = uuid.New()
	if f.byID == nil {
		f.byID = make(map[uuid.UUID]*models.Campaign)
	}
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCampaignStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	f.lookups++
	c, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("campaign %s not found", id)
	}
	return c, nil
}

type fakeCreativeStore struct {
	created []*models.Creative
	failOn  int // 1-based call number, 0 means never fail
	calls   int
}

func (f *fakeCreativeStore) Create(ctx context.Context, c *models.Creative) error {
	f.calls++
	if f.failOn != 0 && f.calls == f.failOn {
		return fmt.Errorf("insert failed")
	}
	c.ID = uuid.New()
	f.created = append(f.created, c)
	return nil
}

type fakeAssetStore struct {
	created []*models.Asset
}

func (f *fakeAssetStore) Create(ctx context.Context, a *models.Asset) error {
	a.ID = uuid.New()
	f.created = append(f.created, a)
	return nil
}

type fakeBrandStore struct{}

func (f *fakeBrandStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	return nil, fmt.Errorf("no brands in this test")
}

type fakeAuditSink struct {
	entries []models.AuditLog
}

func (f *fakeAuditSink) Log(ctx context.Context, entry models.AuditLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

type deployFixture struct {
	svc       *BuilderService
	campaigns *fakeCampaignStore
	creatives *fakeCreativeStore
	assets    *fakeAssetStore
	audit     *fakeAuditSink
	userID    uuid.UUID
	sess      *builder.Session
}

func newDeployFixture(t *testing.T) *deployFixture {
	t.Helper()

	f := &deployFixture{
		campaigns: &fakeCampaignStore{},
		creatives: &fakeCreativeStore{},
		assets:    &fakeAssetStore{},
		audit:     &fakeAuditSink{},
		userID:    uuid.New(),
	}
	f.svc = NewBuilderService(f.campaigns, f.creatives, f.assets, &fakeBrandStore{}, f.audit,
		nil, nil, nil, nil, zap.NewNop())

	f.sess = f.svc.CreateSession(f.userID)
	f.sess.CurrentStep = builder.StepPreview
	f.sess.Draft.Name = "Launch"
	f.sess.Draft.ProductService = "App"
	f.sess.Draft.Objective = models.ObjectiveLaunch
	f.sess.Draft.TargetSegment = "Everyone"
	f.sess.Draft.Platforms = []string{"instagram"}
	f.sess.Draft.Strategy = &models.Strategy{KeyMessage: "go", Tone: "bold"}
	f.sess.Draft.Creatives = []models.DraftCreative{
		{Type: models.CreativeTypeAdCopy, Platform: "universal", Content: "Buy it", Variant: "A", Hooks: []string{"h1"}, PerformanceScore: 75, Tone: "bold"},
		{Type: models.CreativeTypeCaption, Platform: "universal", Content: "Love it", Variant: "B", Hooks: []string{"h2"}, PerformanceScore: 80, Tone: "bold"},
	}
	f.sess.Draft.Posters = []models.DraftPoster{
		{Type: models.AssetTypeSocialPost, Platform: "instagram", FileURL: "http://cdn/1.png", GenerationPrompt: "p", Dimensions: "1080x1080", PerformanceRating: 9},
	}
	return f
}

func TestDeploy_PersistsCampaignCreativesAndAssets(t *testing.T) {
	f := newDeployFixture(t)

	campaign, err := f.svc.Deploy(context.Background(), f.sess.ID, f.userID)
	if err != nil {
		t.Fatalf("Deploy: %v", err)
	}

	if f.campaigns.creates != 1 {
		t.Errorf("campaign creates = %d, want 1", f.campaigns.creates)
	}
	if campaign.Status != models.CampaignStatusPlanning {
		t.Errorf("Status = %q, want planning", campaign.Status)
	}
	if len(f.creatives.created) != 2 {
		t.Fatalf("creatives created = %d, want 2", len(f.creatives.created))
	}
	if len(f.assets.created) != 1 {
		t.Fatalf("assets created = %d, want 1", len(f.assets.created))
	}
	for _, c := range f.creatives.created {
		if c.CampaignID != campaign.ID {
			t.Errorf("creative campaign_id = %v, want %v", c.CampaignID, campaign.ID)
		}
	}
	if f.assets.created[0].CampaignID != campaign.ID {
		t.Errorf("asset campaign_id = %v, want %v", f.assets.created[0].CampaignID, campaign.ID)
	}

	if len(f.audit.entries) != 1 || f.audit.entries[0].Action != "campaign_deployed" {
		t.Errorf("audit entries = %+v", f.audit.entries)
	}

	// session is gone after a successful deploy
	if _, err := f.svc.GetSession(f.sess.ID, f.userID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("GetSession after deploy = %v, want ErrSessionNotFound", err)
	}
}

func TestDeploy_RetryResumesWithoutDuplicating(t *testing.T) {
	f := newDeployFixture(t)
	f.creatives.failOn = 2

	if _, err := f.svc.Deploy(context.Background(), f.sess.ID, f.userID); err == nil {
		t.Fatal("expected first deploy to fail")
	}

	// partial progress recorded, nothing rolled back
	if f.campaigns.creates != 1 {
		t.Fatalf("campaign creates = %d, want 1", f.campaigns.creates)
	}
	if len(f.creatives.created) != 1 {
		t.Fatalf("creatives created = %d, want 1", len(f.creatives.created))
	}
	if f.sess.Deploy.CampaignID == nil {
		t.Fatal("campaign id not recorded for resume")
	}
	if f.sess.Deploy.CreativesPersisted != 1 {
		t.Fatalf("CreativesPersisted = %d, want 1", f.sess.Deploy.CreativesPersisted)
	}

	// session survives the failure so the user can retry
	if _, err := f.svc.GetSession(f.sess.ID, f.userID); err != nil {
		t.Fatalf("session dropped after failed deploy: %v", err)
	}

	f.creatives.failOn = 0
	campaign, err := f.svc.Deploy(context.Background(), f.sess.ID, f.userID)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}

	// resume: no second campaign, only the missing creative written
	if f.campaigns.creates != 1 {
		t.Errorf("campaign creates = %d, want still 1", f.campaigns.creates)
	}
	if len(f.creatives.created) != 2 {
		t.Errorf("creatives created = %d, want 2 total", len(f.creatives.created))
	}
	if len(f.assets.created) != 1 {
		t.Errorf("assets created = %d, want 1", len(f.assets.created))
	}
	if campaign.ID != *f.sess.Deploy.CampaignID {
		t.Errorf("resumed campaign id mismatch")
	}
	if f.creatives.created[1].Content != "Love it" {
		t.Errorf("resumed from wrong index, wrote %q", f.creatives.created[1].Content)
	}
}

func TestDeploy_PartialFailureFreezesDraft(t *testing.T) {
	f := newDeployFixture(t)
	f.creatives.failOn = 2

	if _, err := f.svc.Deploy(context.Background(), f.sess.ID, f.userID); err == nil {
		t.Fatal("expected first deploy to fail")
	}

	// swapping the creative list out from under the resume counters would
	// make the retry skip the new first entry and keep the stale record
	patch := builder.Patch{Creatives: []models.DraftCreative{
		{Type: models.CreativeTypeAdCopy, Platform: "universal", Content: "NEW-1", PerformanceScore: 75},
		{Type: models.CreativeTypeCaption, Platform: "universal", Content: "NEW-2", PerformanceScore: 75},
	}}
	if _, err := f.svc.UpdateDraft(f.sess.ID, f.userID, patch); !errors.Is(err, ErrDeployPending) {
		t.Fatalf("UpdateDraft err = %v, want ErrDeployPending", err)
	}
	if f.sess.Draft.Creatives[0].Content != "Buy it" {
		t.Fatalf("draft mutated despite pending deploy: %q", f.sess.Draft.Creatives[0].Content)
	}

	// retreating would reopen the regenerate operations
	if _, err := f.svc.Back(f.sess.ID, f.userID); !errors.Is(err, ErrDeployPending) {
		t.Fatalf("Back err = %v, want ErrDeployPending", err)
	}
	if f.sess.CurrentStep != builder.StepPreview {
		t.Fatalf("CurrentStep = %v, want preview", f.sess.CurrentStep)
	}

	f.creatives.failOn = 0
	if _, err := f.svc.Deploy(context.Background(), f.sess.ID, f.userID); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if len(f.creatives.created) != 2 || f.creatives.created[1].Content != "Love it" {
		t.Errorf("retry persisted wrong creatives: %+v", f.creatives.created)
	}
}

func TestDeploy_RequiresPreviewStep(t *testing.T) {
	f := newDeployFixture(t)
	f.sess.CurrentStep = builder.StepPosters

	if _, err := f.svc.Deploy(context.Background(), f.sess.ID, f.userID); !errors.Is(err, ErrWrongStep) {
		t.Errorf("err = %v, want ErrWrongStep", err)
	}
	if f.campaigns.creates != 0 {
		t.Errorf("campaign created despite wrong step")
	}
}

func TestDeploy_RequiresContent(t *testing.T) {
	f := newDeployFixture(t)
	f.sess.Draft.Posters = nil

	if _, err := f.svc.Deploy(context.Background(), f.sess.ID, f.userID); !errors.Is(err, ErrNothingToDeploy) {
		t.Errorf("err = %v, want ErrNothingToDeploy", err)
	}
}

func TestDeploy_InFlightGuard(t *testing.T) {
	f := newDeployFixture(t)
	f.sess.Deploy.InFlight = true

	if _, err := f.svc.Deploy(context.Background(), f.sess.ID, f.userID); !errors.Is(err, ErrDeployInFlight) {
		t.Errorf("err = %v, want ErrDeployInFlight", err)
	}
}

func TestGetSession_OwnershipEnforced(t *testing.T) {
	f := newDeployFixture(t)

	if _, err := f.svc.GetSession(f.sess.ID, uuid.New()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound for foreign user", err)
	}
	if _, err := f.svc.Deploy(context.Background(), f.sess.ID, uuid.New()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("deploy err = %v, want ErrSessionNotFound for foreign user", err)
	}
}

func TestUpdateDraft_MergesIntoSession(t *testing.T) {
	f := newDeployFixture(t)

	name := "Renamed"
	sess, err := f.svc.UpdateDraft(f.sess.ID, f.userID, builder.Patch{Name: &name})
	if err != nil {
		t.Fatalf("UpdateDraft: %v", err)
	}
	if sess.Draft.Name != "Renamed" {
		t.Errorf("Name = %q", sess.Draft.Name)
	}
	// untouched fields survive
	if sess.Draft.TargetSegment != "Everyone" {
		t.Errorf("TargetSegment = %q", sess.Draft.TargetSegment)
	}
}
