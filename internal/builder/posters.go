package builder

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/campaign-studio/backend/internal/generation"
	"github.com/campaign-studio/backend/internal/models"
	"go.uber.org/zap"
)

// PosterGenerator renders one image per platform, sequentially. The quality
// rating is a placeholder drawn from 7..10, the image API gives no real
// signal.
type PosterGenerator struct {
	image       generation.ImageGenerator
	maxPerBatch int
	ratingFn    func() int
	log         *zap.Logger
}

func NewPosterGenerator(image generation.ImageGenerator, maxPerBatch int, log *zap.Logger) *PosterGenerator {
	if maxPerBatch <= 0 {
		maxPerBatch = 3
	}
	return &PosterGenerator{
		image:       image,
		maxPerBatch: maxPerBatch,
		ratingFn:    func() int { return rand.IntN(4) + 7 },
		log:         log,
	}
}

// DimensionsFor maps a platform to its target pixel size, square for
// instagram, wide for everything else.
func DimensionsFor(platform string) string {
	if platform == "instagram" {
		return "1080x1080"
	}
	return "1200x630"
}

// Generate renders posters for the first maxPerBatch selected platforms. A
// failure mid-loop discards the batch.
func (g *PosterGenerator) Generate(ctx context.Context, d *Draft) ([]models.DraftPoster, error) {
	platforms := d.Platforms
	if len(platforms) == 0 {
		platforms = []string{"instagram"}
	}
	if len(platforms) > g.maxPerBatch {
		platforms = platforms[:g.maxPerBatch]
	}
	return g.generateFor(ctx, d, platforms)
}

// GenerateMore extends coverage to selected platforms that do not have a
// poster yet, appending to the existing set.
func (g *PosterGenerator) GenerateMore(ctx context.Context, d *Draft) ([]models.DraftPoster, error) {
	covered := make(map[string]bool, len(d.Posters))
	for _, p := range d.Posters {
		covered[p.Platform] = true
	}

	var remaining []string
	for _, platform := range d.Platforms {
		if !covered[platform] {
			remaining = append(remaining, platform)
		}
	}
	if len(remaining) == 0 {
		return d.Posters, nil
	}

	extra, err := g.generateFor(ctx, d, remaining)
	if err != nil {
		return nil, err
	}
	return append(append([]models.DraftPoster{}, d.Posters...), extra...), nil
}

// Regenerate replaces the poster at index with a new rendering, keeping its
// platform, dimensions and rating.
func (g *PosterGenerator) Regenerate(ctx context.Context, d *Draft, index int) ([]models.DraftPoster, error) {
	if index < 0 || index >= len(d.Posters) {
		return nil, fmt.Errorf("poster index %d out of range", index)
	}

	prev := d.Posters[index]
	prompt := buildPosterRegenPrompt(d, prev.Platform)

	url, err := g.image.GenerateImage(ctx, prompt)
	if err != nil {
		g.log.Error("poster regeneration failed",
			zap.String("platform", prev.Platform), zap.Int("index", index), zap.Error(err))
		return nil, err
	}

	out := append([]models.DraftPoster{}, d.Posters...)
	out[index].FileURL = url
	out[index].GenerationPrompt = prompt
	return out, nil
}

func (g *PosterGenerator) generateFor(ctx context.Context, d *Draft, platforms []string) ([]models.DraftPoster, error) {
	posters := make([]models.DraftPoster, 0, len(platforms))
	for _, platform := range platforms {
		prompt := buildPosterPrompt(d, platform)

		url, err := g.image.GenerateImage(ctx, prompt)
		if err != nil {
			g.log.Error("poster generation failed",
				zap.String("platform", platform), zap.Error(err))
			return nil, err
		}

		posters = append(posters, models.DraftPoster{
			Type:              models.AssetTypeSocialPost,
			Platform:          platform,
			FileURL:           url,
			GenerationPrompt:  prompt,
			Dimensions:        DimensionsFor(platform),
			PerformanceRating: g.ratingFn(),
		})
	}
	return posters, nil
}

func buildPosterPrompt(d *Draft, platform string) string {
	keyMessage, tone := "", ""
	if d.Strategy != nil {
		keyMessage = d.Strategy.KeyMessage
		tone = d.Strategy.Tone
	}

	return fmt.Sprintf(`Create a stunning, professional marketing poster for %s featuring:

Campaign: %s
Product: %s
Key Message: %s
Tone: %s

Visual Style:
- Modern, eye-catching design
- %s aesthetic
- Professional marketing quality
- Include the product/service prominently
- Use vibrant, engaging colors
- Clean, readable typography

Make it look like a real professional advertisement that would perform well on %s.`,
		platform, d.Name, d.ProductService, keyMessage, tone, tone, platform)
}

func buildPosterRegenPrompt(d *Draft, platform string) string {
	keyMessage := ""
	if d.Strategy != nil {
		keyMessage = d.Strategy.KeyMessage
	}

	return fmt.Sprintf(`Create a NEW variation of a professional marketing poster for %s:

Campaign: %s
Key Message: %s

Make it visually different from the previous version but equally compelling.
Use a fresh color scheme and layout approach.
Professional, modern marketing design.`,
		platform, d.Name, keyMessage)
}
