package repositories

import (
	"context"

	"petshop2/internal/models"

	"github.com/google/uuid"
)

type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Client, error)
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Client, error)
	Search(ctx context.Context, tenantID uuid.UUID, query string, limit, offset int) ([]*models.Client, error)
}

type clientRepo struct {
	db DB
}

func NewClientRepo(db DB) ClientRepository {
	return &clientRepo{db: db}
}

const clientColumns = "id, tenant_id, name, email, phone, address, created_at, updated_at"

func scanClient(row interface{ Scan(dest ...any) error }) (*models.Client, error) {
	client := &models.Client{}
	err := row.Scan(&client.ID, &client.TenantID, &client.Name, &client.Email,
		&client.Phone, &client.Address, &client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (r *clientRepo) Create(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (id, tenant_id, name, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, client.ID, client.TenantID, client.Name, client.Email,
		client.Phone, client.Address)
	return err
}

func (r *clientRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE tenant_id = $1 AND id = $2`
	return scanClient(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *clientRepo) Update(ctx context.Context, client *models.Client) error {
	query := `
		UPDATE clients
		SET name = $1, email = $2, phone = $3, address = $4, updated_at = NOW()
		WHERE tenant_id = $5 AND id = $6
	`
	_, err := r.db.Exec(ctx, query, client.Name, client.Email, client.Phone, client.Address,
		client.TenantID, client.ID)
	return err
}

func (r *clientRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM clients WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	return err
}

func (r *clientRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE tenant_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	return r.queryClients(ctx, query, tenantID, limit, offset)
}

func (r *clientRepo) Search(ctx context.Context, tenantID uuid.UUID, query string, limit, offset int) ([]*models.Client, error) {
	sql := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE tenant_id = $1 AND (name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%')
		ORDER BY name LIMIT $3 OFFSET $4
	`
	return r.queryClients(ctx, sql, tenantID, query, limit, offset)
}

func (r *clientRepo) queryClients(ctx context.Context, sql string, args ...any) ([]*models.Client, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}
