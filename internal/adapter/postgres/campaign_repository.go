package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hitpulse/internal/core/domain"
)

const campaignColumns = `id, user_id, website, target_hits, current_hits, duration, hit_type, is_active, start_time, created_at`

// CampaignRepository implements port.CampaignRepository using pgxpool for PostgreSQL.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// GetCampaign returns a campaign by id.
func (r *CampaignRepository) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	c, err := scanCampaign(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCampaignsByUser returns the campaigns of a user, newest first.
func (r *CampaignRepository) ListCampaignsByUser(ctx context.Context, userID string) ([]domain.Campaign, error) {
	return r.list(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE user_id = $1 ORDER BY created_at DESC, id`, userID)
}

// ListActiveCampaigns returns every campaign flagged active.
func (r *CampaignRepository) ListActiveCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	return r.list(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE is_active ORDER BY created_at, id`)
}

// CreateCampaign inserts a new campaign row.
func (r *CampaignRepository) CreateCampaign(ctx context.Context, c *domain.Campaign) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `INSERT INTO campaigns (`+campaignColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		c.ID, c.UserID, c.Website, c.TargetHits, c.CurrentHits, c.Duration, string(c.HitType), c.IsActive, c.StartTime, c.CreatedAt)
	return err
}

// UpdateCampaign merges the non-nil patch fields into the row in a single
// statement. current_hits is clamped to target_hits so the invariant holds
// even when a stale tick writes late.
func (r *CampaignRepository) UpdateCampaign(ctx context.Context, id string, patch domain.CampaignPatch) (*domain.Campaign, error) {
	if patch.Empty() {
		return r.GetCampaign(ctx, id)
	}
	var hitType *string
	if patch.HitType != nil {
		s := string(*patch.HitType)
		hitType = &s
	}
	row := r.pool.QueryRow(ctx, `UPDATE campaigns SET
    website      = COALESCE($2, website),
    target_hits  = COALESCE($3, target_hits),
    current_hits = LEAST(COALESCE($4, current_hits), COALESCE($3, target_hits)),
    duration     = COALESCE($5, duration),
    hit_type     = COALESCE($6, hit_type),
    is_active    = COALESCE($7, is_active),
    start_time   = COALESCE($8, start_time)
WHERE id = $1
RETURNING `+campaignColumns,
		id, patch.Website, patch.TargetHits, patch.CurrentHits, patch.Duration, hitType, patch.IsActive, patch.StartTime)
	c, err := scanCampaign(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCampaign removes a campaign row.
func (r *CampaignRepository) DeleteCampaign(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *CampaignRepository) list(ctx context.Context, query string, args ...any) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		c, err := scanCampaign(row)
		if err != nil {
			return domain.Campaign{}, err
		}
		return *c, nil
	})
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var (
		c       domain.Campaign
		hitType string
	)
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Website,
		&c.TargetHits,
		&c.CurrentHits,
		&c.Duration,
		&hitType,
		&c.IsActive,
		&c.StartTime,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.HitType = domain.HitType(hitType)
	return &c, nil
}
