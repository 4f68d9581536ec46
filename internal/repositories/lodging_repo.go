package repositories

import (
	"context"
	"time"

	"petshop2/internal/models"

	"github.com/google/uuid"
)

type LodgingRepository interface {
	Create(ctx context.Context, lodging *models.Lodging) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Lodging, error)
	Update(ctx context.Context, lodging *models.Lodging) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Lodging, error)
	HasOverlap(ctx context.Context, tenantID, petID uuid.UUID, checkIn, checkOut time.Time, exclude *uuid.UUID) (bool, error)
	ExpireFinished(ctx context.Context, now time.Time) (int64, error)
	CountActiveInPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (int, error)
}

type lodgingRepo struct {
	db DB
}

func NewLodgingRepo(db DB) LodgingRepository {
	return &lodgingRepo{db: db}
}

const lodgingColumns = "id, tenant_id, pet_id, check_in, check_out, daily_rate, status, notes, created_at, updated_at"

func scanLodging(row interface{ Scan(dest ...any) error }) (*models.Lodging, error) {
	lodging := &models.Lodging{}
	err := row.Scan(&lodging.ID, &lodging.TenantID, &lodging.PetID, &lodging.CheckIn,
		&lodging.CheckOut, &lodging.DailyRate, &lodging.Status, &lodging.Notes,
		&lodging.CreatedAt, &lodging.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return lodging, nil
}

func (r *lodgingRepo) Create(ctx context.Context, lodging *models.Lodging) error {
	query := `
		INSERT INTO lodgings (id, tenant_id, pet_id, check_in, check_out, daily_rate, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, lodging.ID, lodging.TenantID, lodging.PetID, lodging.CheckIn,
		lodging.CheckOut, lodging.DailyRate, lodging.Status, lodging.Notes)
	return err
}

func (r *lodgingRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Lodging, error) {
	query := `SELECT ` + lodgingColumns + ` FROM lodgings WHERE tenant_id = $1 AND id = $2`
	return scanLodging(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *lodgingRepo) Update(ctx context.Context, lodging *models.Lodging) error {
	query := `
		UPDATE lodgings
		SET pet_id = $1, check_in = $2, check_out = $3, daily_rate = $4, status = $5, notes = $6, updated_at = NOW()
		WHERE tenant_id = $7 AND id = $8
	`
	_, err := r.db.Exec(ctx, query, lodging.PetID, lodging.CheckIn, lodging.CheckOut,
		lodging.DailyRate, lodging.Status, lodging.Notes, lodging.TenantID, lodging.ID)
	return err
}

func (r *lodgingRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM lodgings WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	return err
}

func (r *lodgingRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Lodging, error) {
	query := `SELECT ` + lodgingColumns + ` FROM lodgings WHERE tenant_id = $1 ORDER BY check_in DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lodgings []*models.Lodging
	for rows.Next() {
		lodging, err := scanLodging(rows)
		if err != nil {
			return nil, err
		}
		lodgings = append(lodgings, lodging)
	}
	return lodgings, rows.Err()
}

// HasOverlap reports whether the pet already has a non-cancelled booking
// intersecting [checkIn, checkOut).
func (r *lodgingRepo) HasOverlap(ctx context.Context, tenantID, petID uuid.UUID, checkIn, checkOut time.Time, exclude *uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM lodgings
			WHERE tenant_id = $1 AND pet_id = $2
			  AND status NOT IN ('cancelado', 'finalizado')
			  AND check_in < $4 AND check_out > $3
			  AND ($5::uuid IS NULL OR id <> $5)
		)
	`
	var exists bool
	err := r.db.QueryRow(ctx, query, tenantID, petID, checkIn, checkOut, exclude).Scan(&exists)
	return exists, err
}

// ExpireFinished moves checked-in bookings whose check-out has passed to the
// finished status. Runs across all tenants from the background scheduler.
func (r *lodgingRepo) ExpireFinished(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE lodgings
		SET status = 'finalizado', updated_at = NOW()
		WHERE status = 'hospedado' AND check_out <= $1
	`
	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *lodgingRepo) CountActiveInPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM lodgings
		WHERE tenant_id = $1 AND status <> 'cancelado' AND check_in < $3 AND check_out > $2
	`
	var count int
	err := r.db.QueryRow(ctx, query, tenantID, from, to).Scan(&count)
	return count, err
}
