package dto

import "github.com/campaign-studio/backend/internal/builder"

type LoginRequest struct {
	Email string `json:"email"`
}

type CreateBrandRequest struct {
	Name           string   `json:"name"`
	Industry       *string  `json:"industry,omitempty"`
	TargetAudience *string  `json:"target_audience,omitempty"`
	BrandVoice     string   `json:"brand_voice,omitempty"`
	CoreValues     []string `json:"core_values,omitempty"`
	ColorPalette   []string `json:"color_palette,omitempty"`
	LogoURL        *string  `json:"logo_url,omitempty"`
	WebsiteURL     *string  `json:"website_url,omitempty"`
}

type ImportSiteRequest struct {
	URL string `json:"url"`
}

type UpdateCampaignStatusRequest struct {
	Status string `json:"status"`
}

// UpdateDraftRequest is the aggregator's partial-merge payload. Absent
// fields stay untouched, present slice fields replace wholesale.
type UpdateDraftRequest struct {
	builder.Patch
}

type GenerateStrategyRequest struct {
	Instructions string `json:"instructions,omitempty"`
}

type RegenerateCreativesRequest struct {
	Type string `json:"type"`
}

type CreateConversationRequest struct {
	AgentName   string `json:"agent_name,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

type SendMessageRequest struct {
	Content string `json:"content"`
}
