package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/campaign-studio/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CampaignRepo struct {
	pool *pgxpool.Pool
}

func NewCampaignRepo(pool *pgxpool.Pool) *CampaignRepo {
	return &CampaignRepo{pool: pool}
}

func (r *CampaignRepo) Create(ctx context.Context, c *models.Campaign) error {
	strategy, err := marshalStrategy(c.Strategy)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO campaigns (owner_user_id, brand_id, name, product_service, objective,
		                       target_segment, budget, duration_days, platforms, strategy, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`, c.OwnerUserID, c.BrandID, c.Name, c.ProductService, c.Objective,
		c.TargetSegment, c.Budget, c.DurationDays, c.Platforms, strategy, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	var c models.Campaign
	var strategy []byte
	err := r.pool.QueryRow(ctx, `
		SELECT id, owner_user_id, brand_id, name, product_service, objective,
		       target_segment, budget, duration_days, platforms, strategy, status,
		       created_at, updated_at
		FROM campaigns WHERE id = $1
	`, id).Scan(&c.ID, &c.OwnerUserID, &c.BrandID, &c.Name, &c.ProductService,
		&c.Objective, &c.TargetSegment, &c.Budget, &c.DurationDays, &c.Platforms,
		&strategy, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := unmarshalStrategy(strategy, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

type CampaignFilter struct {
	OwnerUserID *uuid.UUID
	Status      *string
	Limit       int
	Offset      int
}

func (r *CampaignRepo) List(ctx context.Context, f CampaignFilter) ([]models.Campaign, error) {
	query := `
		SELECT id, owner_user_id, brand_id, name, product_service, objective,
		       target_segment, budget, duration_days, platforms, strategy, status,
		       created_at, updated_at
		FROM campaigns
	`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.OwnerUserID != nil {
		where = append(where, fmt.Sprintf("owner_user_id = $%d", argIdx))
		args = append(args, *f.OwnerUserID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE "
		for i, w := range where {
			if i > 0 {
				query += " AND "
			}
			query += w
		}
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		var c models.Campaign
		var strategy []byte
		if err := rows.Scan(&c.ID, &c.OwnerUserID, &c.BrandID, &c.Name, &c.ProductService,
			&c.Objective, &c.TargetSegment, &c.Budget, &c.DurationDays, &c.Platforms,
			&strategy, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if err := unmarshalStrategy(strategy, &c); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, nil
}

func (r *CampaignRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE campaigns SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	return err
}

// Overview aggregates for analytics views.
type CampaignOverview struct {
	TotalCampaigns  int            `json:"total_campaigns"`
	ActiveCampaigns int            `json:"active_campaigns"`
	TotalBudget     float64        `json:"total_budget"`
	ByObjective     map[string]int `json:"by_objective"`
	ByStatus        map[string]int `json:"by_status"`
}

func (r *CampaignRepo) Overview(ctx context.Context, ownerID uuid.UUID) (*CampaignOverview, error) {
	o := &CampaignOverview{
		ByObjective: map[string]int{},
		ByStatus:    map[string]int{},
	}

	rows, err := r.pool.Query(ctx, `
		SELECT objective, status, count(*), coalesce(sum(budget), 0)
		FROM campaigns WHERE owner_user_id = $1
		GROUP BY objective, status
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var objective, status string
		var count int
		var budget float64
		if err := rows.Scan(&objective, &status, &count, &budget); err != nil {
			return nil, err
		}
		o.TotalCampaigns += count
		o.TotalBudget += budget
		o.ByObjective[objective] += count
		o.ByStatus[status] += count
		if status == models.CampaignStatusActive {
			o.ActiveCampaigns += count
		}
	}
	return o, nil
}

func marshalStrategy(s *models.Strategy) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func unmarshalStrategy(raw []byte, c *models.Campaign) error {
	if len(raw) == 0 {
		return nil
	}
	c.Strategy = &models.Strategy{}
	return json.Unmarshal(raw, c.Strategy)
}
