package repositories

import (
	"context"
	"time"

	"petshop2/internal/models"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Appointment, error)
	Update(ctx context.Context, appt *models.Appointment) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, from, to *time.Time, limit, offset int) ([]*models.Appointment, error)
	CountByStatus(ctx context.Context, tenantID uuid.UUID, status string, from, to time.Time) (int, error)
}

type appointmentRepo struct {
	db DB
}

func NewAppointmentRepo(db DB) AppointmentRepository {
	return &appointmentRepo{db: db}
}

const appointmentColumns = "id, tenant_id, pet_id, service_name, scheduled_at, status, price, notes, created_at, updated_at"

func scanAppointment(row interface{ Scan(dest ...any) error }) (*models.Appointment, error) {
	appt := &models.Appointment{}
	err := row.Scan(&appt.ID, &appt.TenantID, &appt.PetID, &appt.ServiceName, &appt.ScheduledAt,
		&appt.Status, &appt.Price, &appt.Notes, &appt.CreatedAt, &appt.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return appt, nil
}

func (r *appointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	query := `
		INSERT INTO appointments (id, tenant_id, pet_id, service_name, scheduled_at, status, price, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, appt.ID, appt.TenantID, appt.PetID, appt.ServiceName,
		appt.ScheduledAt, appt.Status, appt.Price, appt.Notes)
	return err
}

func (r *appointmentRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE tenant_id = $1 AND id = $2`
	return scanAppointment(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *appointmentRepo) Update(ctx context.Context, appt *models.Appointment) error {
	query := `
		UPDATE appointments
		SET pet_id = $1, service_name = $2, scheduled_at = $3, status = $4, price = $5, notes = $6, updated_at = NOW()
		WHERE tenant_id = $7 AND id = $8
	`
	_, err := r.db.Exec(ctx, query, appt.PetID, appt.ServiceName, appt.ScheduledAt, appt.Status,
		appt.Price, appt.Notes, appt.TenantID, appt.ID)
	return err
}

func (r *appointmentRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM appointments WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	return err
}

func (r *appointmentRepo) List(ctx context.Context, tenantID uuid.UUID, from, to *time.Time, limit, offset int) ([]*models.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE tenant_id = $1
		  AND ($2::timestamptz IS NULL OR scheduled_at >= $2)
		  AND ($3::timestamptz IS NULL OR scheduled_at < $3)
		ORDER BY scheduled_at
		LIMIT $4 OFFSET $5
	`
	rows, err := r.db.Query(ctx, query, tenantID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []*models.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, appt)
	}
	return appts, rows.Err()
}

func (r *appointmentRepo) CountByStatus(ctx context.Context, tenantID uuid.UUID, status string, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM appointments
		WHERE tenant_id = $1 AND status = $2 AND scheduled_at >= $3 AND scheduled_at < $4
	`
	var count int
	err := r.db.QueryRow(ctx, query, tenantID, status, from, to).Scan(&count)
	return count, err
}
