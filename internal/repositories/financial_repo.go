package repositories

import (
	"context"
	"time"

	"petshop2/internal/models"

	"github.com/google/uuid"
)

type FinancialRepository interface {
	Create(ctx context.Context, entry *models.FinancialEntry) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.FinancialEntry, error)
	Update(ctx context.Context, entry *models.FinancialEntry) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, entryType, status *string, limit, offset int) ([]*models.FinancialEntry, error)
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
	SumByType(ctx context.Context, tenantID uuid.UUID, entryType string, from, to time.Time) (float64, error)
}

type financialRepo struct {
	db DB
}

func NewFinancialRepo(db DB) FinancialRepository {
	return &financialRepo{db: db}
}

const financialColumns = "id, tenant_id, description, amount, type, status, due_date, paid_at, created_at, updated_at"

func scanFinancialEntry(row interface{ Scan(dest ...any) error }) (*models.FinancialEntry, error) {
	entry := &models.FinancialEntry{}
	err := row.Scan(&entry.ID, &entry.TenantID, &entry.Description, &entry.Amount, &entry.Type,
		&entry.Status, &entry.DueDate, &entry.PaidAt, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *financialRepo) Create(ctx context.Context, entry *models.FinancialEntry) error {
	query := `
		INSERT INTO financial_entries (id, tenant_id, description, amount, type, status, due_date, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, entry.ID, entry.TenantID, entry.Description, entry.Amount,
		entry.Type, entry.Status, entry.DueDate, entry.PaidAt)
	return err
}

func (r *financialRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.FinancialEntry, error) {
	query := `SELECT ` + financialColumns + ` FROM financial_entries WHERE tenant_id = $1 AND id = $2`
	return scanFinancialEntry(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *financialRepo) Update(ctx context.Context, entry *models.FinancialEntry) error {
	query := `
		UPDATE financial_entries
		SET description = $1, amount = $2, type = $3, status = $4, due_date = $5, paid_at = $6, updated_at = NOW()
		WHERE tenant_id = $7 AND id = $8
	`
	_, err := r.db.Exec(ctx, query, entry.Description, entry.Amount, entry.Type, entry.Status,
		entry.DueDate, entry.PaidAt, entry.TenantID, entry.ID)
	return err
}

func (r *financialRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM financial_entries WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	return err
}

func (r *financialRepo) List(ctx context.Context, tenantID uuid.UUID, entryType, status *string, limit, offset int) ([]*models.FinancialEntry, error) {
	query := `
		SELECT ` + financialColumns + `
		FROM financial_entries
		WHERE tenant_id = $1
		  AND ($2::text IS NULL OR type = $2)
		  AND ($3::text IS NULL OR status = $3)
		ORDER BY due_date NULLS LAST, created_at DESC
		LIMIT $4 OFFSET $5
	`
	rows, err := r.db.Query(ctx, query, tenantID, entryType, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.FinancialEntry
	for rows.Next() {
		entry, err := scanFinancialEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// MarkOverdue flips pending entries past their due date to vencido. Runs
// across all tenants from the background scheduler.
func (r *financialRepo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE financial_entries
		SET status = 'vencido', updated_at = NOW()
		WHERE status = 'pendente' AND due_date IS NOT NULL AND due_date < $1
	`
	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *financialRepo) SumByType(ctx context.Context, tenantID uuid.UUID, entryType string, from, to time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM financial_entries
		WHERE tenant_id = $1 AND type = $2 AND created_at >= $3 AND created_at < $4
	`
	var total float64
	err := r.db.QueryRow(ctx, query, tenantID, entryType, from, to).Scan(&total)
	return total, err
}
