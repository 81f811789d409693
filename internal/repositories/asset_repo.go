package repositories

import (
	"context"

	"github.com/campaign-studio/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AssetRepo struct {
	pool *pgxpool.Pool
}

func NewAssetRepo(pool *pgxpool.Pool) *AssetRepo {
	return &AssetRepo{pool: pool}
}

func (r *AssetRepo) Create(ctx context.Context, a *models.Asset) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO assets (campaign_id, type, platform, file_url, generation_prompt,
		                    dimensions, performance_rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, a.CampaignID, a.Type, a.Platform, a.FileURL, a.GenerationPrompt,
		a.Dimensions, a.PerformanceRating,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *AssetRepo) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]models.Asset, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, campaign_id, type, platform, file_url, generation_prompt,
		       dimensions, performance_rating, created_at
		FROM assets WHERE campaign_id = $1
		ORDER BY created_at
	`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssets(rows)
}

// ListByOwner returns the user's asset library, newest first.
func (r *AssetRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]models.Asset, error) {
	limit = clampLibraryLimit(limit)
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.campaign_id, a.type, a.platform, a.file_url, a.generation_prompt,
		       a.dimensions, a.performance_rating, a.created_at
		FROM assets a
		JOIN campaigns cm ON cm.id = a.campaign_id
		WHERE cm.owner_user_id = $1
		ORDER BY a.created_at DESC LIMIT $2
	`, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssets(rows)
}

func scanAssets(rows pgx.Rows) ([]models.Asset, error) {
	var assets []models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(&a.ID, &a.CampaignID, &a.Type, &a.Platform, &a.FileURL,
			&a.GenerationPrompt, &a.Dimensions, &a.PerformanceRating, &a.CreatedAt); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, nil
}
