package models

import (
	"time"

	"github.com/google/uuid"
)

// Brand supplies voice, values and audience context for generation.
type Brand struct {
	ID             uuid.UUID `json:"id"`
	OwnerUserID    uuid.UUID `json:"owner_user_id"`
	Name           string    `json:"name"`
	Industry       *string   `json:"industry,omitempty"`
	TargetAudience *string   `json:"target_audience,omitempty"`
	BrandVoice     string    `json:"brand_voice"`
	CoreValues     []string  `json:"core_values"`
	ColorPalette   []string  `json:"color_palette"`
	LogoURL        *string   `json:"logo_url,omitempty"`
	WebsiteURL     *string   `json:"website_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
