package builder

import (
	"testing"

	"github.com/campaign-studio/backend/internal/models"
	"github.com/google/uuid"
)

func completeBrief() *Draft {
	d := NewDraft()
	d.Apply(Patch{
		BrandID:        uuidPtr(uuid.New()),
		Name:           strPtr("Launch"),
		ProductService: strPtr("App"),
		Objective:      strPtr(models.ObjectiveLaunch),
		TargetSegment:  strPtr("Gen Z"),
		Platforms:      []string{"instagram"},
	})
	return d
}

func TestCanAdvance_Brief(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Draft)
		expected bool
	}{
		{"complete", func(d *Draft) {}, true},
		{"missing brand", func(d *Draft) { d.BrandID = uuid.Nil }, false},
		{"missing name", func(d *Draft) { d.Name = "" }, false},
		{"missing product", func(d *Draft) { d.ProductService = "" }, false},
		{"invalid objective", func(d *Draft) { d.Objective = "world domination" }, false},
		{"missing segment", func(d *Draft) { d.TargetSegment = "" }, false},
		{"no platforms", func(d *Draft) { d.Platforms = []string{} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := completeBrief()
			tt.mutate(d)
			if got := CanAdvance(StepBrief, d); got != tt.expected {
				t.Errorf("CanAdvance(StepBrief) = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCanAdvance_LaterSteps(t *testing.T) {
	d := completeBrief()

	if CanAdvance(StepStrategy, d) {
		t.Error("strategy step must require a generated strategy")
	}
	d.Strategy = &models.Strategy{KeyMessage: "go"}
	if !CanAdvance(StepStrategy, d) {
		t.Error("strategy present, step must be complete")
	}

	if CanAdvance(StepCreatives, d) {
		t.Error("creatives step must require at least one creative")
	}
	d.Creatives = []models.DraftCreative{{Type: models.CreativeTypeAdCopy, Content: "buy"}}
	if !CanAdvance(StepCreatives, d) {
		t.Error("creative present, step must be complete")
	}

	if CanAdvance(StepPosters, d) {
		t.Error("posters step must require at least one poster")
	}
	d.Posters = []models.DraftPoster{{Platform: "instagram", FileURL: "http://x/1.png"}}
	if !CanAdvance(StepPosters, d) {
		t.Error("poster present, step must be complete")
	}

	// Preview never advances via Next, only Deploy leaves it
	if CanAdvance(StepPreview, d) {
		t.Error("preview must not advance")
	}
}

func TestSessionNext_GatedByPredicate(t *testing.T) {
	s := NewSession(uuid.New())

	if s.Next() {
		t.Fatal("Next on empty brief must not advance")
	}
	if s.CurrentStep != StepBrief {
		t.Fatalf("CurrentStep = %v, want brief", s.CurrentStep)
	}

	s.Draft = completeBrief()
	if !s.Next() {
		t.Fatal("Next on complete brief must advance")
	}
	if s.CurrentStep != StepStrategy {
		t.Fatalf("CurrentStep = %v, want strategy", s.CurrentStep)
	}
}

func TestSessionBack_NoOpAtBrief(t *testing.T) {
	s := NewSession(uuid.New())

	if s.Back() {
		t.Error("Back at brief must be a no-op")
	}
	if s.CurrentStep != StepBrief {
		t.Errorf("CurrentStep = %v", s.CurrentStep)
	}

	s.CurrentStep = StepPosters
	s.Draft.Posters = []models.DraftPoster{{Platform: "instagram"}}
	if !s.Back() {
		t.Error("Back at posters must retreat")
	}
	if s.CurrentStep != StepCreatives {
		t.Errorf("CurrentStep = %v, want creatives", s.CurrentStep)
	}
	// retreat keeps generated data
	if len(s.Draft.Posters) != 1 {
		t.Error("Back must not drop draft data")
	}
}

func TestStepString(t *testing.T) {
	tests := []struct {
		step Step
		want string
	}{
		{StepBrief, "brief"},
		{StepStrategy, "strategy"},
		{StepCreatives, "creatives"},
		{StepPosters, "posters"},
		{StepPreview, "preview"},
		{Step(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.step.String(); got != tt.want {
			t.Errorf("Step(%d).String() = %q, want %q", tt.step, got, tt.want)
		}
	}
}
