package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/campaign-studio/backend/internal/repositories"
	"github.com/google/uuid"
)

type fakeOverviewSource struct {
	overview *repositories.CampaignOverview
	err      error
}

func (f *fakeOverviewSource) Overview(ctx context.Context, ownerID uuid.UUID) (*repositories.CampaignOverview, error) {
	return f.overview, f.err
}

type fakeStatsSource struct {
	stats *repositories.CreativeStats
	err   error
}

func (f *fakeStatsSource) PerformanceStatsByOwner(ctx context.Context, ownerID uuid.UUID) (*repositories.CreativeStats, error) {
	return f.stats, f.err
}

func TestBuildOverview_CombinesCampaignAndCreativeStats(t *testing.T) {
	campaigns := &fakeOverviewSource{overview: &repositories.CampaignOverview{
		TotalCampaigns:  4,
		ActiveCampaigns: 2,
		TotalBudget:     12500,
		ByObjective:     map[string]int{"launch": 3, "awareness": 1},
		ByStatus:        map[string]int{"active": 2, "planning": 2},
	}}
	creatives := &fakeStatsSource{stats: &repositories.CreativeStats{
		AvgScore:       81.5,
		HighPerformers: 7,
	}}

	got, err := buildOverview(context.Background(), uuid.New(), campaigns, creatives)
	if err != nil {
		t.Fatalf("buildOverview: %v", err)
	}

	if got.Campaigns.TotalCampaigns != 4 {
		t.Errorf("TotalCampaigns = %d, want 4", got.Campaigns.TotalCampaigns)
	}
	if got.AvgPerformance != 81.5 {
		t.Errorf("AvgPerformance = %v, want 81.5", got.AvgPerformance)
	}
	if got.HighPerformers != 7 {
		t.Errorf("HighPerformers = %d, want 7", got.HighPerformers)
	}
}

func TestBuildOverview_PropagatesErrors(t *testing.T) {
	userID := uuid.New()

	_, err := buildOverview(context.Background(), userID,
		&fakeOverviewSource{err: fmt.Errorf("query failed")},
		&fakeStatsSource{stats: &repositories.CreativeStats{}})
	if err == nil {
		t.Error("expected campaign overview error to propagate")
	}

	_, err = buildOverview(context.Background(), userID,
		&fakeOverviewSource{overview: &repositories.CampaignOverview{}},
		&fakeStatsSource{err: fmt.Errorf("query failed")})
	if err == nil {
		t.Error("expected creative stats error to propagate")
	}
}
