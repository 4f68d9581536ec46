package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"petshop2/internal/common"
	"petshop2/internal/models"
	"petshop2/internal/repositories"
	"petshop2/internal/tenancy"

	"github.com/google/uuid"
)

type AppointmentService interface {
	Create(ctx context.Context, req *CreateAppointmentRequest) (*models.Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	Update(ctx context.Context, req *UpdateAppointmentRequest) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*models.Appointment, error)
}

type appointmentService struct {
	apptRepo repositories.AppointmentRepository
	petRepo  repositories.PetRepository
}

func NewAppointmentService(apptRepo repositories.AppointmentRepository, petRepo repositories.PetRepository) AppointmentService {
	return &appointmentService{apptRepo: apptRepo, petRepo: petRepo}
}

type CreateAppointmentRequest struct {
	PetID       uuid.UUID `json:"pet_id" validate:"required"`
	ServiceName string    `json:"service_name" validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Price       float64   `json:"price"`
	Notes       *string   `json:"notes"`
}

type UpdateAppointmentRequest struct {
	ID          uuid.UUID
	ServiceName *string    `json:"service_name"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Price       *float64   `json:"price"`
	Notes       *string    `json:"notes"`
}

func (s *appointmentService) Create(ctx context.Context, req *CreateAppointmentRequest) (*models.Appointment, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	if err := common.ValidateRequiredString(req.ServiceName, "service_name"); err != nil {
		return nil, err
	}
	if req.ScheduledAt.IsZero() {
		return nil, errors.New("scheduled_at is required")
	}
	if req.Price < 0 {
		return nil, errors.New("price cannot be negative")
	}

	pet, err := s.petRepo.GetByID(ctx, tenantID, req.PetID)
	if err != nil {
		return nil, errors.New("pet not found")
	}
	if !tenancy.Validate(tenantID, pet) {
		return nil, tenancy.ErrTenantMismatch
	}

	appt := &models.Appointment{
		ID:          uuid.New(),
		TenantID:    tenantID,
		PetID:       req.PetID,
		ServiceName: req.ServiceName,
		ScheduledAt: req.ScheduledAt,
		Status:      models.AppointmentScheduled,
		Price:       req.Price,
		Notes:       req.Notes,
	}

	if err := s.apptRepo.Create(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *appointmentService) GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	appt, err := s.apptRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !tenancy.Validate(tenantID, appt) {
		return nil, tenancy.ErrTenantMismatch
	}
	return appt, nil
}

func (s *appointmentService) Update(ctx context.Context, req *UpdateAppointmentRequest) (*models.Appointment, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	existing, err := s.apptRepo.GetByID(ctx, tenantID, req.ID)
	if err != nil {
		return nil, err
	}
	if !tenancy.Validate(tenantID, existing) {
		return nil, tenancy.ErrTenantMismatch
	}

	if req.ServiceName != nil {
		existing.ServiceName = *req.ServiceName
	}
	if req.ScheduledAt != nil {
		existing.ScheduledAt = *req.ScheduledAt
	}
	if req.Price != nil {
		existing.Price = *req.Price
	}
	if req.Notes != nil {
		existing.Notes = req.Notes
	}

	if err := s.apptRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *appointmentService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Appointment, error) {
	if !models.ValidAppointmentStatus(status) {
		return nil, fmt.Errorf("invalid appointment status %q", status)
	}

	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	existing, err := s.apptRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if existing.Status == models.AppointmentCancelled {
		return nil, errors.New("cancelled appointments cannot change status")
	}

	existing.Status = status
	if err := s.apptRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *appointmentService) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return errors.New("no tenant in context")
	}
	return s.apptRepo.Delete(ctx, tenantID, id)
}

func (s *appointmentService) List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*models.Appointment, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	limit, offset = common.ValidatePaginationParams(limit, offset)

	appts, err := s.apptRepo.List(ctx, tenantID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	if !tenancy.ValidateAll(tenantID, appts) {
		return nil, tenancy.ErrTenantMismatch
	}
	return appts, nil
}
