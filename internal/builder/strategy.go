package builder

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/campaign-studio/backend/internal/generation"
	"github.com/campaign-studio/backend/internal/models"
	"go.uber.org/zap"
)

// StrategyGenerator produces the campaign strategy in a single generation
// call. Regeneration replaces the previous strategy wholesale.
type StrategyGenerator struct {
	text generation.TextGenerator
	log  *zap.Logger
}

func NewStrategyGenerator(text generation.TextGenerator, log *zap.Logger) *StrategyGenerator {
	return &StrategyGenerator{text: text, log: log}
}

var strategySchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"key_message": map[string]any{"type": "string"},
		"tone":        map[string]any{"type": "string"},
		"channels": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"content_pillars": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"cta": map[string]any{"type": "string"},
		"platform_tactics": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "string"},
		},
		"success_metrics": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
}

// Generate builds a strategy for the draft. brand may be nil; instructions
// is an optional free-text refinement appended to the prompt on regenerate.
func (g *StrategyGenerator) Generate(ctx context.Context, d *Draft, brand *models.Brand, instructions string) (*models.Strategy, error) {
	prompt := buildStrategyPrompt(d, brand, instructions)

	raw, err := g.text.InvokeText(ctx, prompt, strategySchema)
	if err != nil {
		g.log.Error("strategy generation failed", zap.Error(err))
		return nil, err
	}

	var s models.Strategy
	if err := json.Unmarshal(raw, &s); err != nil {
		g.log.Error("strategy response malformed", zap.Error(err))
		return nil, fmt.Errorf("decode strategy: %w", err)
	}
	return &s, nil
}

func buildStrategyPrompt(d *Draft, brand *models.Brand, instructions string) string {
	brandName := "Unknown"
	brandVoice := "professional"
	brandValues := "N/A"
	brandAudience := "N/A"
	if brand != nil {
		brandName = brand.Name
		if brand.BrandVoice != "" {
			brandVoice = brand.BrandVoice
		}
		if len(brand.CoreValues) > 0 {
			brandValues = strings.Join(brand.CoreValues, ", ")
		}
		if brand.TargetAudience != nil {
			brandAudience = *brand.TargetAudience
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are an expert marketing strategist. Create a comprehensive marketing strategy for this campaign:

Brand: %s (%s voice)
Brand Values: %s
Target Audience: %s

Campaign Details:
- Name: %s
- Product/Service: %s
- Objective: %s
- Target Segment: %s
- Platforms: %s
- Budget: $%.0f
- Duration: %d days
`, brandName, brandVoice, brandValues, brandAudience,
		d.Name, d.ProductService, d.Objective, d.TargetSegment,
		strings.Join(d.Platforms, ", "), d.Budget, d.DurationDays)

	if instructions != "" {
		fmt.Fprintf(&b, "\nAdditional Instructions: %s\n", instructions)
	}

	b.WriteString(`
Create a detailed marketing strategy including:
1. Key message and positioning
2. Tone and communication style
3. Content pillars (3-4 main themes)
4. Call-to-action recommendations
5. Platform-specific tactics

Return as JSON.`)

	return b.String()
}
