package services

import (
	"context"
	"errors"
	"strings"

	"petshop2/internal/common"
	"petshop2/internal/models"
	"petshop2/internal/repositories"
	"petshop2/internal/tenancy"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered for this tenant")
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type UserService interface {
	Signup(ctx context.Context, req *SignupRequest) (*models.User, error)
	Authenticate(ctx context.Context, tenantID uuid.UUID, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, req *UpdateUserRequest) (*models.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

type SignupRequest struct {
	TenantID  uuid.UUID `json:"-"`
	Email     string    `json:"email" validate:"required,email"`
	Password  string    `json:"password" validate:"required,min=8"`
	FirstName string    `json:"first_name" validate:"required"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
}

type UpdateUserRequest struct {
	ID        uuid.UUID
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role"`
}

func validRole(role string) bool {
	return role == RoleAdmin || role == RoleStaff
}

func (s *userService) Signup(ctx context.Context, req *SignupRequest) (*models.User, error) {
	tenantID := req.TenantID
	if tenantID == uuid.Nil {
		var ok bool
		tenantID, ok = tenancy.TenantIDFromContext(ctx)
		if !ok {
			return nil, errors.New("no tenant in context")
		}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := common.ValidateRequiredString(email, "email"); err != nil {
		return nil, err
	}
	if len(req.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	if err := common.ValidateRequiredString(req.FirstName, "first_name"); err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = RoleStaff
	}
	if !validRole(role) {
		return nil, errors.New("role must be admin or staff")
	}

	if existing, err := s.userRepo.GetByEmail(ctx, tenantID, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, tenantID uuid.UUID, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(ctx, tenantID, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	user, err := s.userRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !tenancy.Validate(tenantID, user) {
		return nil, tenancy.ErrTenantMismatch
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, req *UpdateUserRequest) (*models.User, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	existing, err := s.userRepo.GetByID(ctx, tenantID, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if err := common.ValidateRequiredString(email, "email"); err != nil {
			return nil, err
		}
		existing.Email = email
	}
	if req.FirstName != nil {
		existing.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		existing.LastName = *req.LastName
	}
	if req.Role != nil {
		if !validRole(*req.Role) {
			return nil, errors.New("role must be admin or staff")
		}
		existing.Role = *req.Role
	}

	if err := s.userRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return errors.New("no tenant in context")
	}

	user, err := s.userRepo.GetByID(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if len(newPassword) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, tenantID, user.ID, string(hash))
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return errors.New("no tenant in context")
	}
	return s.userRepo.Delete(ctx, tenantID, id)
}

func (s *userService) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	limit, offset = common.ValidatePaginationParams(limit, offset)

	users, err := s.userRepo.List(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	if !tenancy.ValidateAll(tenantID, users) {
		return nil, tenancy.ErrTenantMismatch
	}
	return users, nil
}
