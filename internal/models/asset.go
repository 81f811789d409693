package models

import (
	"time"

	"github.com/google/uuid"
)

const AssetTypeSocialPost = "social_post"

// DraftPoster is a not-yet-persisted generated image inside a builder draft.
type DraftPoster struct {
	Type             string `json:"type"`
	Platform         string `json:"platform"`
	FileURL          string `json:"file_url"`
	GenerationPrompt string `json:"generation_prompt"`
	Dimensions       string `json:"dimensions"`
	// PerformanceRating is a placeholder drawn from 7..10, the image API
	// returns no quality signal.
	PerformanceRating int `json:"performance_rating"`
}

// Asset is a persisted visual tied to a campaign.
type Asset struct {
	ID                uuid.UUID `json:"id"`
	CampaignID        uuid.UUID `json:"campaign_id"`
	Type              string    `json:"type"`
	Platform          string    `json:"platform"`
	FileURL           string    `json:"file_url"`
	GenerationPrompt  *string   `json:"generation_prompt,omitempty"`
	Dimensions        *string   `json:"dimensions,omitempty"`
	PerformanceRating *int      `json:"performance_rating,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
