package repositories

import (
	"context"

	"petshop2/internal/models"

	"github.com/google/uuid"
)

type PromotionRepository interface {
	Create(ctx context.Context, promo *models.Promotion) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Promotion, error)
	Update(ctx context.Context, promo *models.Promotion) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, onlyActive bool, limit, offset int) ([]*models.Promotion, error)
}

type promotionRepo struct {
	db DB
}

func NewPromotionRepo(db DB) PromotionRepository {
	return &promotionRepo{db: db}
}

const promotionColumns = "id, tenant_id, title, discount_percent, starts_at, ends_at, active, created_at, updated_at"

func scanPromotion(row interface{ Scan(dest ...any) error }) (*models.Promotion, error) {
	promo := &models.Promotion{}
	err := row.Scan(&promo.ID, &promo.TenantID, &promo.Title, &promo.DiscountPercent,
		&promo.StartsAt, &promo.EndsAt, &promo.Active, &promo.CreatedAt, &promo.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return promo, nil
}

func (r *promotionRepo) Create(ctx context.Context, promo *models.Promotion) error {
	query := `
		INSERT INTO promotions (id, tenant_id, title, discount_percent, starts_at, ends_at, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, promo.ID, promo.TenantID, promo.Title, promo.DiscountPercent,
		promo.StartsAt, promo.EndsAt, promo.Active)
	return err
}

func (r *promotionRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE tenant_id = $1 AND id = $2`
	return scanPromotion(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *promotionRepo) Update(ctx context.Context, promo *models.Promotion) error {
	query := `
		UPDATE promotions
		SET title = $1, discount_percent = $2, starts_at = $3, ends_at = $4, active = $5, updated_at = NOW()
		WHERE tenant_id = $6 AND id = $7
	`
	_, err := r.db.Exec(ctx, query, promo.Title, promo.DiscountPercent, promo.StartsAt,
		promo.EndsAt, promo.Active, promo.TenantID, promo.ID)
	return err
}

func (r *promotionRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM promotions WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	return err
}

func (r *promotionRepo) List(ctx context.Context, tenantID uuid.UUID, onlyActive bool, limit, offset int) ([]*models.Promotion, error) {
	query := `
		SELECT ` + promotionColumns + `
		FROM promotions
		WHERE tenant_id = $1 AND ($2 = false OR (active AND starts_at <= NOW() AND ends_at > NOW()))
		ORDER BY starts_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, tenantID, onlyActive, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var promos []*models.Promotion
	for rows.Next() {
		promo, err := scanPromotion(rows)
		if err != nil {
			return nil, err
		}
		promos = append(promos, promo)
	}
	return promos, rows.Err()
}
