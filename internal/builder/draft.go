package builder

import (
	"github.com/campaign-studio/backend/internal/models"
	"github.com/google/uuid"
)

// Draft is the in-progress campaign assembled by the wizard. It lives in
// memory only; nothing is persisted until Deploy.
type Draft struct {
	BrandID        uuid.UUID              `json:"brand_id"`
	Name           string                 `json:"name"`
	ProductService string                 `json:"product_service"`
	Objective      string                 `json:"objective"`
	TargetSegment  string                 `json:"target_segment"`
	Budget         float64                `json:"budget"`
	DurationDays   int                    `json:"duration_days"`
	Platforms      []string               `json:"platforms"`
	Strategy       *models.Strategy       `json:"strategy,omitempty"`
	Creatives      []models.DraftCreative `json:"creatives"`
	Posters        []models.DraftPoster   `json:"posters"`
}

func NewDraft() *Draft {
	return &Draft{
		Objective:    models.ObjectiveAwareness,
		DurationDays: 30,
		Platforms:    []string{},
		Creatives:    []models.DraftCreative{},
		Posters:      []models.DraftPoster{},
	}
}

// Patch is a partial draft update. Nil fields are absent; set fields
// overwrite. Slice fields replace wholesale, callers wanting append must
// read-modify-write.
type Patch struct {
	BrandID        *uuid.UUID             `json:"brand_id,omitempty"`
	Name           *string                `json:"name,omitempty"`
	ProductService *string                `json:"product_service,omitempty"`
	Objective      *string                `json:"objective,omitempty"`
	TargetSegment  *string                `json:"target_segment,omitempty"`
	Budget         *float64               `json:"budget,omitempty"`
	DurationDays   *int                   `json:"duration_days,omitempty"`
	Platforms      []string               `json:"platforms,omitempty"`
	Strategy       *models.Strategy       `json:"strategy,omitempty"`
	Creatives      []models.DraftCreative `json:"creatives,omitempty"`
	Posters        []models.DraftPoster   `json:"posters,omitempty"`
}

// Apply performs a right-biased shallow merge of p into d. No validation
// happens here, gating is the sequencer's job at transition time.
func (d *Draft) Apply(p Patch) {
	if p.BrandID != nil {
		d.BrandID = *p.BrandID
	}
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.ProductService != nil {
		d.ProductService = *p.ProductService
	}
	if p.Objective != nil {
		d.Objective = *p.Objective
	}
	if p.TargetSegment != nil {
		d.TargetSegment = *p.TargetSegment
	}
	if p.Budget != nil {
		d.Budget = *p.Budget
	}
	if p.DurationDays != nil {
		d.DurationDays = *p.DurationDays
	}
	if p.Platforms != nil {
		d.Platforms = p.Platforms
	}
	if p.Strategy != nil {
		d.Strategy = p.Strategy
	}
	if p.Creatives != nil {
		d.Creatives = p.Creatives
	}
	if p.Posters != nil {
		d.Posters = p.Posters
	}
}

// CreativesByType returns the draft creatives matching ctype, preserving
// order.
func (d *Draft) CreativesByType(ctype string) []models.DraftCreative {
	var out []models.DraftCreative
	for _, c := range d.Creatives {
		if c.Type == ctype {
			out = append(out, c)
		}
	}
	return out
}
