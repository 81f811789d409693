package repositories

import (
	"context"

	"github.com/campaign-studio/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CreativeRepo struct {
	pool *pgxpool.Pool
}

func NewCreativeRepo(pool *pgxpool.Pool) *CreativeRepo {
	return &CreativeRepo{pool: pool}
}

func (r *CreativeRepo) Create(ctx context.Context, c *models.Creative) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO creatives (campaign_id, type, platform, content, variant, hooks,
		                       performance_score, tone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, c.CampaignID, c.Type, c.Platform, c.Content, c.Variant, c.Hooks,
		c.PerformanceScore, c.Tone,
	).Scan(&c.ID, &c.CreatedAt)
}

func (r *CreativeRepo) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]models.Creative, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, campaign_id, type, platform, content, variant, hooks,
		       performance_score, tone, created_at
		FROM creatives WHERE campaign_id = $1
		ORDER BY created_at
	`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCreatives(rows)
}

// Library listings default to 100 rows and never return more than 200,
// whatever the caller asks for.
const (
	defaultLibraryLimit = 100
	maxLibraryLimit     = 200
)

func clampLibraryLimit(limit int) int {
	if limit <= 0 {
		return defaultLibraryLimit
	}
	if limit > maxLibraryLimit {
		return maxLibraryLimit
	}
	return limit
}

// ListByOwner returns the user's creative library, newest first.
func (r *CreativeRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]models.Creative, error) {
	limit = clampLibraryLimit(limit)
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.campaign_id, c.type, c.platform, c.content, c.variant, c.hooks,
		       c.performance_score, c.tone, c.created_at
		FROM creatives c
		JOIN campaigns cm ON cm.id = c.campaign_id
		WHERE cm.owner_user_id = $1
		ORDER BY c.created_at DESC LIMIT $2
	`, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCreatives(rows)
}

// Creatives scoring at or above this count as high performers on the
// analytics overview.
const highPerformerThreshold = 80

// CreativeStats aggregates performance scores across a user's creatives.
type CreativeStats struct {
	AvgScore       float64 `json:"avg_score"`
	HighPerformers int     `json:"high_performers"`
}

func (r *CreativeRepo) PerformanceStatsByOwner(ctx context.Context, ownerID uuid.UUID) (*CreativeStats, error) {
	var stats CreativeStats
	err := r.pool.QueryRow(ctx, `
		SELECT coalesce(avg(c.performance_score), 0),
		       count(*) FILTER (WHERE c.performance_score >= $2)
		FROM creatives c
		JOIN campaigns cm ON cm.id = c.campaign_id
		WHERE cm.owner_user_id = $1
	`, ownerID, highPerformerThreshold).Scan(&stats.AvgScore, &stats.HighPerformers)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func scanCreatives(rows pgx.Rows) ([]models.Creative, error) {
	var creatives []models.Creative
	for rows.Next() {
		var c models.Creative
		if err := rows.Scan(&c.ID, &c.CampaignID, &c.Type, &c.Platform, &c.Content,
			&c.Variant, &c.Hooks, &c.PerformanceScore, &c.Tone, &c.CreatedAt); err != nil {
			return nil, err
		}
		creatives = append(creatives, c)
	}
	return creatives, nil
}
