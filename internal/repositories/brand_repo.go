package repositories

import (
	"context"

	"github.com/campaign-studio/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BrandRepo struct {
	pool *pgxpool.Pool
}

func NewBrandRepo(pool *pgxpool.Pool) *BrandRepo {
	return &BrandRepo{pool: pool}
}

func (r *BrandRepo) Create(ctx context.Context, b *models.Brand) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO brands (owner_user_id, name, industry, target_audience, brand_voice,
		                    core_values, color_palette, logo_url, website_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, b.OwnerUserID, b.Name, b.Industry, b.TargetAudience, b.BrandVoice,
		b.CoreValues, b.ColorPalette, b.LogoURL, b.WebsiteURL,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BrandRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	var b models.Brand
	err := r.pool.QueryRow(ctx, `
		SELECT id, owner_user_id, name, industry, target_audience, brand_voice,
		       core_values, color_palette, logo_url, website_url, created_at, updated_at
		FROM brands WHERE id = $1
	`, id).Scan(&b.ID, &b.OwnerUserID, &b.Name, &b.Industry, &b.TargetAudience,
		&b.BrandVoice, &b.CoreValues, &b.ColorPalette, &b.LogoURL, &b.WebsiteURL,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BrandRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Brand, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_user_id, name, industry, target_audience, brand_voice,
		       core_values, color_palette, logo_url, website_url, created_at, updated_at
		FROM brands WHERE owner_user_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []models.Brand
	for rows.Next() {
		var b models.Brand
		if err := rows.Scan(&b.ID, &b.OwnerUserID, &b.Name, &b.Industry, &b.TargetAudience,
			&b.BrandVoice, &b.CoreValues, &b.ColorPalette, &b.LogoURL, &b.WebsiteURL,
			&b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	return brands, nil
}

func (r *BrandRepo) Update(ctx context.Context, b *models.Brand) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE brands SET name = $1, industry = $2, target_audience = $3, brand_voice = $4,
		       core_values = $5, color_palette = $6, logo_url = $7, website_url = $8,
		       updated_at = now()
		WHERE id = $9
	`, b.Name, b.Industry, b.TargetAudience, b.BrandVoice,
		b.CoreValues, b.ColorPalette, b.LogoURL, b.WebsiteURL, b.ID)
	return err
}
