package models

import (
	"time"

	"github.com/google/uuid"
)

// Campaign objectives
const (
	ObjectiveAwareness  = "awareness"
	ObjectiveEngagement = "engagement"
	ObjectiveConversion = "conversion"
	ObjectiveRetention  = "retention"
	ObjectiveLaunch     = "launch"
)

var Objectives = []string{
	ObjectiveAwareness,
	ObjectiveEngagement,
	ObjectiveConversion,
	ObjectiveRetention,
	ObjectiveLaunch,
}

// Platforms a campaign can target. Poster dimensions and prompt wording
// depend on the platform name.
var Platforms = []string{
	"instagram",
	"facebook",
	"twitter",
	"linkedin",
	"tiktok",
	"youtube",
}

func IsValidObjective(s string) bool {
	for _, o := range Objectives {
		if o == s {
			return true
		}
	}
	return false
}

// Campaign statuses. A freshly deployed campaign starts in planning.
const (
	CampaignStatusPlanning  = "planning"
	CampaignStatusActive    = "active"
	CampaignStatusPaused    = "paused"
	CampaignStatusCompleted = "completed"
)

// Valid status transitions: from -> []to
var ValidCampaignTransitions = map[string][]string{
	CampaignStatusPlanning:  {CampaignStatusActive, CampaignStatusCompleted},
	CampaignStatusActive:    {CampaignStatusPaused, CampaignStatusCompleted},
	CampaignStatusPaused:    {CampaignStatusActive, CampaignStatusCompleted},
	CampaignStatusCompleted: {},
}

func IsValidStatusTransition(from, to string) bool {
	allowed, ok := ValidCampaignTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// Strategy is the AI-produced positioning plan. Replaced wholesale on
// regeneration, never merged.
type Strategy struct {
	KeyMessage      string            `json:"key_message"`
	Tone            string            `json:"tone"`
	Channels        []string          `json:"channels,omitempty"`
	ContentPillars  []string          `json:"content_pillars"`
	CTA             string            `json:"cta"`
	PlatformTactics map[string]string `json:"platform_tactics,omitempty"`
	SuccessMetrics  []string          `json:"success_metrics,omitempty"`
}

type Campaign struct {
	ID             uuid.UUID  `json:"id"`
	OwnerUserID    uuid.UUID  `json:"owner_user_id"`
	BrandID        *uuid.UUID `json:"brand_id,omitempty"`
	Name           string     `json:"name"`
	ProductService string     `json:"product_service"`
	Objective      string     `json:"objective"`
	TargetSegment  string     `json:"target_segment"`
	Budget         float64    `json:"budget"`
	DurationDays   int        `json:"duration_days"`
	Platforms      []string   `json:"platforms"`
	Strategy       *Strategy  `json:"strategy,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
