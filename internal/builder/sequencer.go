package builder

import (
	"github.com/campaign-studio/backend/internal/models"
	"github.com/google/uuid"
)

// Step is one of the five wizard states. Progression is strictly linear.
type Step int

const (
	StepBrief Step = iota + 1
	StepStrategy
	StepCreatives
	StepPosters
	StepPreview
)

func (s Step) String() string {
	switch s {
	case StepBrief:
		return "brief"
	case StepStrategy:
		return "strategy"
	case StepCreatives:
		return "creatives"
	case StepPosters:
		return "posters"
	case StepPreview:
		return "preview"
	default:
		return "unknown"
	}
}

// CanAdvance reports whether the completion predicate for step s holds on d.
// Advancing from Preview is handled by Deploy, not Next.
func CanAdvance(s Step, d *Draft) bool {
	switch s {
	case StepBrief:
		return briefComplete(d)
	case StepStrategy:
		return d.Strategy != nil
	case StepCreatives:
		return len(d.Creatives) > 0
	case StepPosters:
		return len(d.Posters) > 0
	default:
		return false
	}
}

func briefComplete(d *Draft) bool {
	return d.BrandID != uuid.Nil &&
		d.Name != "" &&
		d.ProductService != "" &&
		models.IsValidObjective(d.Objective) &&
		d.TargetSegment != "" &&
		len(d.Platforms) > 0
}
