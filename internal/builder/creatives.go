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

// CreativeBatch is one generation request: a creative type and how many
// variations to ask for.
type CreativeBatch struct {
	Type  string
	Label string
	Count int
}

// CreativeBatches is the fixed category table the builder generates.
var CreativeBatches = []CreativeBatch{
	{Type: models.CreativeTypeAdCopy, Label: "Ad Copy", Count: 3},
	{Type: models.CreativeTypeCaption, Label: "Social Captions", Count: 5},
	{Type: models.CreativeTypeHeadline, Label: "Headlines", Count: 4},
	{Type: models.CreativeTypeCTA, Label: "CTAs", Count: 3},
}

func batchFor(ctype string) (CreativeBatch, bool) {
	for _, b := range CreativeBatches {
		if b.Type == ctype {
			return b, true
		}
	}
	return CreativeBatch{}, false
}

// CreativeGenerator produces text creatives, one sequential request per
// category.
type CreativeGenerator struct {
	text generation.TextGenerator
	log  *zap.Logger
}

func NewCreativeGenerator(text generation.TextGenerator, log *zap.Logger) *CreativeGenerator {
	return &CreativeGenerator{text: text, log: log}
}

var creativeBatchSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"creatives": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"content":               map[string]any{"type": "string"},
					"variant_name":          map[string]any{"type": "string"},
					"hook":                  map[string]any{"type": "string"},
					"estimated_performance": map[string]any{"type": "number"},
				},
			},
		},
	},
}

type creativeBatchResponse struct {
	Creatives []struct {
		Content              string   `json:"content"`
		VariantName          string   `json:"variant_name"`
		Hook                 string   `json:"hook"`
		EstimatedPerformance *float64 `json:"estimated_performance"`
	} `json:"creatives"`
}

// GenerateAll produces creatives for every category in CreativeBatches, in
// order, one request at a time. Any request failing discards the whole
// batch, leaving the draft for the caller to keep unchanged.
func (g *CreativeGenerator) GenerateAll(ctx context.Context, d *Draft) ([]models.DraftCreative, error) {
	var all []models.DraftCreative
	for _, batch := range CreativeBatches {
		generated, err := g.generateBatch(ctx, d, batch, false)
		if err != nil {
			g.log.Error("creative generation failed",
				zap.String("type", batch.Type), zap.Error(err))
			return nil, err
		}
		all = append(all, generated...)
	}
	return all, nil
}

// RegenerateType reissues only ctype's request and splices the result in
// place of that type's old entries. Entries of every other type are carried
// over untouched.
func (g *CreativeGenerator) RegenerateType(ctx context.Context, d *Draft, ctype string) ([]models.DraftCreative, error) {
	batch, ok := batchFor(ctype)
	if !ok {
		return nil, fmt.Errorf("unknown creative type %q", ctype)
	}

	generated, err := g.generateBatch(ctx, d, batch, true)
	if err != nil {
		g.log.Error("creative regeneration failed",
			zap.String("type", ctype), zap.Error(err))
		return nil, err
	}

	kept := make([]models.DraftCreative, 0, len(d.Creatives))
	for _, c := range d.Creatives {
		if c.Type != ctype {
			kept = append(kept, c)
		}
	}
	return append(kept, generated...), nil
}

func (g *CreativeGenerator) generateBatch(ctx context.Context, d *Draft, batch CreativeBatch, fresh bool) ([]models.DraftCreative, error) {
	prompt := buildCreativePrompt(d, batch, fresh)

	raw, err := g.text.InvokeText(ctx, prompt, creativeBatchSchema)
	if err != nil {
		return nil, err
	}

	var resp creativeBatchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode creative batch: %w", err)
	}

	tone := ""
	if d.Strategy != nil {
		tone = d.Strategy.Tone
	}

	out := make([]models.DraftCreative, 0, len(resp.Creatives))
	for _, c := range resp.Creatives {
		score := models.DefaultPerformanceScore
		if c.EstimatedPerformance != nil {
			score = clampScore(int(*c.EstimatedPerformance))
		}
		out = append(out, models.DraftCreative{
			Type:             batch.Type,
			Platform:         "universal",
			Content:          c.Content,
			Variant:          c.VariantName,
			Hooks:            []string{c.Hook},
			PerformanceScore: score,
			Tone:             tone,
		})
	}
	return out, nil
}

// Scores live on a 0..100 scale; the generation backend occasionally
// reports values outside it.
func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func buildCreativePrompt(d *Draft, batch CreativeBatch, fresh bool) string {
	keyMessage, tone, cta := "", "", ""
	if d.Strategy != nil {
		keyMessage = d.Strategy.KeyMessage
		tone = d.Strategy.Tone
		cta = d.Strategy.CTA
	}

	if fresh {
		return fmt.Sprintf(`Create %d new %s variations for:
Campaign: %s
Message: %s
Tone: %s

Make them fresh, creative, and different from previous versions.`,
			batch.Count, batch.Label, d.Name, keyMessage, tone)
	}

	return fmt.Sprintf(`You are an expert copywriter. Create %d compelling %s for this campaign:

Campaign: %s
Product: %s
Objective: %s
Target: %s
Key Message: %s
Tone: %s
CTA: %s

Create %d variations that are:
- Attention-grabbing and compelling
- Aligned with the %s tone
- Optimized for %s
- Different from each other (test different angles)

Return as JSON array.`,
		batch.Count, batch.Label,
		d.Name, d.ProductService, d.Objective, d.TargetSegment,
		keyMessage, tone, cta,
		batch.Count, tone, strings.Join(d.Platforms, ", "))
}
