package repositories

import (
	"context"
	"fmt"

	"petshop2/internal/models"

	"github.com/google/uuid"
)

type PetRepository interface {
	Create(ctx context.Context, pet *models.Pet) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Pet, error)
	Update(ctx context.Context, pet *models.Pet) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, filter *models.PetSearchFilter) ([]*models.Pet, error)
}

type petRepo struct {
	db DB
}

func NewPetRepo(db DB) PetRepository {
	return &petRepo{db: db}
}

const petColumns = "id, tenant_id, client_id, name, species, breed, birth_date, weight_kg, notes, created_at, updated_at"

func scanPet(row interface{ Scan(dest ...any) error }) (*models.Pet, error) {
	pet := &models.Pet{}
	err := row.Scan(&pet.ID, &pet.TenantID, &pet.ClientID, &pet.Name, &pet.Species, &pet.Breed,
		&pet.BirthDate, &pet.WeightKg, &pet.Notes, &pet.CreatedAt, &pet.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return pet, nil
}

func (r *petRepo) Create(ctx context.Context, pet *models.Pet) error {
	query := `
		INSERT INTO pets (id, tenant_id, client_id, name, species, breed, birth_date, weight_kg, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, pet.ID, pet.TenantID, pet.ClientID, pet.Name, pet.Species,
		pet.Breed, pet.BirthDate, pet.WeightKg, pet.Notes)
	return err
}

func (r *petRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets WHERE tenant_id = $1 AND id = $2`
	return scanPet(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *petRepo) Update(ctx context.Context, pet *models.Pet) error {
	query := `
		UPDATE pets
		SET client_id = $1, name = $2, species = $3, breed = $4, birth_date = $5, weight_kg = $6, notes = $7, updated_at = NOW()
		WHERE tenant_id = $8 AND id = $9
	`
	_, err := r.db.Exec(ctx, query, pet.ClientID, pet.Name, pet.Species, pet.Breed,
		pet.BirthDate, pet.WeightKg, pet.Notes, pet.TenantID, pet.ID)
	return err
}

func (r *petRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM pets WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	return err
}

func (r *petRepo) List(ctx context.Context, tenantID uuid.UUID, filter *models.PetSearchFilter) ([]*models.Pet, error) {
	sql := `SELECT ` + petColumns + ` FROM pets WHERE tenant_id = $1`
	args := []any{tenantID}

	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		sql += fmt.Sprintf(` AND client_id = $%d`, len(args))
	}
	if filter.Species != nil {
		args = append(args, *filter.Species)
		sql += fmt.Sprintf(` AND species = $%d`, len(args))
	}
	if filter.Query != "" {
		args = append(args, filter.Query)
		sql += fmt.Sprintf(` AND (name ILIKE '%%' || $%d || '%%' OR breed ILIKE '%%' || $%d || '%%')`, len(args), len(args))
	}

	args = append(args, filter.Limit)
	sql += fmt.Sprintf(` ORDER BY name LIMIT $%d`, len(args))
	args = append(args, filter.Offset)
	sql += fmt.Sprintf(` OFFSET $%d`, len(args))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pets []*models.Pet
	for rows.Next() {
		pet, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		pets = append(pets, pet)
	}
	return pets, rows.Err()
}
