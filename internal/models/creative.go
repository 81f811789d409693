package models

import (
	"time"

	"github.com/google/uuid"
)

// Creative types. The set is extensible, these are the ones the builder
// generates.
const (
	CreativeTypeAdCopy   = "ad_copy"
	CreativeTypeCaption  = "caption"
	CreativeTypeHeadline = "headline"
	CreativeTypeCTA      = "cta"
	CreativeTypeTagline  = "tagline"
	CreativeTypeScript   = "script"
	CreativeTypeEmail    = "email"
)

// DefaultPerformanceScore is a stub value used when the generator does not
// return a numeric estimate. It is not a real signal.
const DefaultPerformanceScore = 75

// DraftCreative is a not-yet-persisted creative inside a builder draft.
// Identity is positional until Deploy.
type DraftCreative struct {
	Type             string   `json:"type"`
	Platform         string   `json:"platform"`
	Content          string   `json:"content"`
	Variant          string   `json:"variant"`
	Hooks            []string `json:"hooks"`
	PerformanceScore int      `json:"performance_score"`
	Tone             string   `json:"tone"`
}

// Creative is a persisted creative tied to a campaign.
type Creative struct {
	ID               uuid.UUID `json:"id"`
	CampaignID       uuid.UUID `json:"campaign_id"`
	Type             string    `json:"type"`
	Platform         string    `json:"platform"`
	Content          string    `json:"content"`
	Variant          *string   `json:"variant,omitempty"`
	Hooks            []string  `json:"hooks"`
	PerformanceScore int       `json:"performance_score"`
	Tone             *string   `json:"tone,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
