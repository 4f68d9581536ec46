package repositories

import (
	"context"
	"time"

	"petshop2/internal/models"

	"github.com/google/uuid"
)

type SaleRepository interface {
	Create(ctx context.Context, sale *models.Sale) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Sale, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Sale, error)
	TotalInPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (float64, error)
}

type saleRepo struct {
	db DB
}

func NewSaleRepo(db DB) SaleRepository {
	return &saleRepo{db: db}
}

const saleColumns = "id, tenant_id, client_id, total, payment_method, sold_at, created_at"

func scanSale(row interface{ Scan(dest ...any) error }) (*models.Sale, error) {
	sale := &models.Sale{}
	err := row.Scan(&sale.ID, &sale.TenantID, &sale.ClientID, &sale.Total,
		&sale.PaymentMethod, &sale.SoldAt, &sale.CreatedAt)
	if err != nil {
		return nil, err
	}
	return sale, nil
}

func (r *saleRepo) Create(ctx context.Context, sale *models.Sale) error {
	query := `
		INSERT INTO sales (id, tenant_id, client_id, total, payment_method, sold_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.db.Exec(ctx, query, sale.ID, sale.TenantID, sale.ClientID, sale.Total,
		sale.PaymentMethod, sale.SoldAt)
	return err
}

func (r *saleRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE tenant_id = $1 AND id = $2`
	return scanSale(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *saleRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sales WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	return err
}

func (r *saleRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE tenant_id = $1 ORDER BY sold_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*models.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

func (r *saleRepo) TotalInPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(total), 0)
		FROM sales
		WHERE tenant_id = $1 AND sold_at >= $2 AND sold_at < $3
	`
	var total float64
	err := r.db.QueryRow(ctx, query, tenantID, from, to).Scan(&total)
	return total, err
}
