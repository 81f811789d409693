package builder

import (
	"testing"

	"github.com/campaign-studio/backend/internal/models"
	"github.com/google/uuid"
)

func strPtr(s string) *string        { return &s }
func floatPtr(f float64) *float64    { return &f }
func intPtr(i int) *int              { return &i }
func uuidPtr(u uuid.UUID) *uuid.UUID { return &u }

func TestDraftApply_SetFieldsOverwrite(t *testing.T) {
	d := NewDraft()
	brandID := uuid.New()

	d.Apply(Patch{
		BrandID:        uuidPtr(brandID),
		Name:           strPtr("Summer Launch"),
		ProductService: strPtr("Cold brew subscription"),
		Objective:      strPtr(models.ObjectiveConversion),
		TargetSegment:  strPtr("Urban professionals 25-40"),
		Budget:         floatPtr(5000),
		DurationDays:   intPtr(14),
		Platforms:      []string{"instagram", "tiktok"},
	})

	if d.BrandID != brandID {
		t.Errorf("BrandID = %v, want %v", d.BrandID, brandID)
	}
	if d.Name != "Summer Launch" {
		t.Errorf("Name = %q", d.Name)
	}
	if d.Objective != models.ObjectiveConversion {
		t.Errorf("Objective = %q", d.Objective)
	}
	if d.Budget != 5000 {
		t.Errorf("Budget = %v", d.Budget)
	}
	if d.DurationDays != 14 {
		t.Errorf("DurationDays = %d", d.DurationDays)
	}
	if len(d.Platforms) != 2 || d.Platforms[0] != "instagram" {
		t.Errorf("Platforms = %v", d.Platforms)
	}
}

func TestDraftApply_AbsentFieldsUntouched(t *testing.T) {
	d := NewDraft()
	d.Apply(Patch{Name: strPtr("First"), Budget: floatPtr(1000)})
	d.Apply(Patch{TargetSegment: strPtr("Students")})

	if d.Name != "First" {
		t.Errorf("Name = %q, want First", d.Name)
	}
	if d.Budget != 1000 {
		t.Errorf("Budget = %v, want 1000", d.Budget)
	}
	if d.TargetSegment != "Students" {
		t.Errorf("TargetSegment = %q", d.TargetSegment)
	}
	// defaults survive patches that never touched them
	if d.Objective != models.ObjectiveAwareness {
		t.Errorf("Objective = %q, want default awareness", d.Objective)
	}
	if d.DurationDays != 30 {
		t.Errorf("DurationDays = %d, want default 30", d.DurationDays)
	}
}

func TestDraftApply_EmptyStringOverwrites(t *testing.T) {
	d := NewDraft()
	d.Apply(Patch{Name: strPtr("Something")})
	d.Apply(Patch{Name: strPtr("")})

	if d.Name != "" {
		t.Errorf("Name = %q, want empty: explicit empty value must win", d.Name)
	}
}

func TestDraftApply_SlicesReplaceWholesale(t *testing.T) {
	d := NewDraft()
	d.Apply(Patch{Platforms: []string{"instagram", "facebook", "linkedin"}})
	d.Apply(Patch{Platforms: []string{"tiktok"}})

	if len(d.Platforms) != 1 || d.Platforms[0] != "tiktok" {
		t.Errorf("Platforms = %v, want [tiktok]", d.Platforms)
	}

	// nil slice means absent, not clear
	d.Apply(Patch{Name: strPtr("x")})
	if len(d.Platforms) != 1 {
		t.Errorf("Platforms = %v, nil patch slice must not clear", d.Platforms)
	}
}

func TestDraftApply_StrategyReplacedAsUnit(t *testing.T) {
	d := NewDraft()
	d.Apply(Patch{Strategy: &models.Strategy{KeyMessage: "old", Tone: "bold"}})
	d.Apply(Patch{Strategy: &models.Strategy{KeyMessage: "new"}})

	if d.Strategy.KeyMessage != "new" {
		t.Errorf("KeyMessage = %q", d.Strategy.KeyMessage)
	}
	if d.Strategy.Tone != "" {
		t.Errorf("Tone = %q, strategy must replace as a unit, not deep-merge", d.Strategy.Tone)
	}
}

func TestCreativesByType(t *testing.T) {
	d := NewDraft()
	d.Creatives = []models.DraftCreative{
		{Type: models.CreativeTypeCaption, Content: "a"},
		{Type: models.CreativeTypeHeadline, Content: "b"},
		{Type: models.CreativeTypeCaption, Content: "c"},
	}

	got := d.CreativesByType(models.CreativeTypeCaption)
	if len(got) != 2 || got[0].Content != "a" || got[1].Content != "c" {
		t.Errorf("CreativesByType = %+v", got)
	}
	if got := d.CreativesByType(models.CreativeTypeCTA); len(got) != 0 {
		t.Errorf("expected no CTAs, got %+v", got)
	}
}
