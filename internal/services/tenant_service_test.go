package services

import (
	"context"
	"errors"
	"testing"

	"petshop2/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TenantServiceTestSuite struct {
	suite.Suite
	tenantRepo *MockTenantRepository
	cache      *memCache
	service    TenantService
	ctx        context.Context
}

func (suite *TenantServiceTestSuite) SetupTest() {
	suite.tenantRepo = new(MockTenantRepository)
	suite.cache = newMemCache()
	suite.service = NewTenantService(suite.tenantRepo, suite.cache)
	suite.ctx = context.Background()
}

func (suite *TenantServiceTestSuite) TearDownTest() {
	suite.tenantRepo.AssertExpectations(suite.T())
}

func (suite *TenantServiceTestSuite) TestRegister() {
	suite.tenantRepo.On("GetBySubdomain", suite.ctx, "loja").Return(nil, pgx.ErrNoRows)
	suite.tenantRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Tenant")).Return(nil)

	tenant, err := suite.service.Register(suite.ctx, &RegisterTenantRequest{
		Name:      "Pet Shop Loja",
		Subdomain: "Loja",
	})

	suite.NoError(err)
	suite.Equal("loja", tenant.Subdomain)
	suite.Equal(models.TenantStatusActive, tenant.Status)
	suite.Equal(models.PlanBasic, tenant.Plan)
	suite.NotEqual(uuid.Nil, tenant.ID)
}

func (suite *TenantServiceTestSuite) TestRegister_SubdomainTaken() {
	existing := &models.Tenant{ID: uuid.New(), Subdomain: "loja"}
	suite.tenantRepo.On("GetBySubdomain", suite.ctx, "loja").Return(existing, nil)

	tenant, err := suite.service.Register(suite.ctx, &RegisterTenantRequest{
		Name:      "Outro",
		Subdomain: "loja",
	})

	suite.Error(err)
	suite.Nil(tenant)
	suite.Contains(err.Error(), "already taken")
}

func (suite *TenantServiceTestSuite) TestRegister_ReservedSubdomain() {
	tenant, err := suite.service.Register(suite.ctx, &RegisterTenantRequest{
		Name:      "Pet Shop",
		Subdomain: "admin",
	})

	suite.Error(err)
	suite.Nil(tenant)
}

func (suite *TenantServiceTestSuite) TestRegister_InvalidSubdomain() {
	for _, sub := range []string{"Não!", "a", "-loja", "loja-", "lo ja"} {
		tenant, err := suite.service.Register(suite.ctx, &RegisterTenantRequest{
			Name:      "Pet Shop",
			Subdomain: sub,
		})
		suite.Error(err, "subdomain %q should be rejected", sub)
		suite.Nil(tenant)
	}
}

func (suite *TenantServiceTestSuite) TestGetByID_CacheMiss() {
	tenant := &models.Tenant{ID: uuid.New(), Name: "Loja", Subdomain: "loja"}
	suite.tenantRepo.On("GetByID", suite.ctx, tenant.ID).Return(tenant, nil).Once()

	got, err := suite.service.GetByID(suite.ctx, tenant.ID)
	suite.NoError(err)
	suite.Equal(tenant.ID, got.ID)

	// Second call is served from cache, no further repo hit
	got, err = suite.service.GetByID(suite.ctx, tenant.ID)
	suite.NoError(err)
	suite.Equal(tenant.ID, got.ID)
}

func (suite *TenantServiceTestSuite) TestGetBySubdomain_CacheMiss() {
	tenant := &models.Tenant{ID: uuid.New(), Name: "Loja", Subdomain: "loja"}
	suite.tenantRepo.On("GetBySubdomain", suite.ctx, "loja").Return(tenant, nil).Once()

	got, err := suite.service.GetBySubdomain(suite.ctx, "loja")
	suite.NoError(err)
	suite.Equal(tenant.ID, got.ID)

	got, err = suite.service.GetBySubdomain(suite.ctx, "loja")
	suite.NoError(err)
	suite.Equal(tenant.ID, got.ID)
}

func (suite *TenantServiceTestSuite) TestGetByID_NotFound() {
	id := uuid.New()
	suite.tenantRepo.On("GetByID", suite.ctx, id).Return(nil, pgx.ErrNoRows)

	got, err := suite.service.GetByID(suite.ctx, id)
	suite.Error(err)
	suite.Nil(got)
}

func (suite *TenantServiceTestSuite) TestUpdate_InvalidatesCache() {
	tenant := &models.Tenant{ID: uuid.New(), Name: "Loja", Subdomain: "loja", Status: models.TenantStatusActive}
	suite.cache.SetTenant(suite.ctx, tenant, 0)

	suite.tenantRepo.On("GetByID", suite.ctx, tenant.ID).Return(tenant, nil)
	suite.tenantRepo.On("Update", suite.ctx, mock.AnythingOfType("*models.Tenant")).Return(nil)

	updated, err := suite.service.Update(suite.ctx, &UpdateTenantRequest{
		ID:        tenant.ID,
		Name:      "Loja Nova",
		Subdomain: "loja-nova",
		Status:    models.TenantStatusActive,
	})

	suite.NoError(err)
	suite.Equal("loja-nova", updated.Subdomain)

	// Stale subdomain entry must be gone
	cached, _ := suite.cache.GetTenantBySubdomain(suite.ctx, "loja")
	suite.Nil(cached)
}

func (suite *TenantServiceTestSuite) TestUpdateConfig() {
	color := "#ff6600"
	tenant := &models.Tenant{ID: uuid.New(), Name: "Loja", Subdomain: "loja"}

	suite.tenantRepo.On("GetByID", suite.ctx, tenant.ID).Return(tenant, nil)
	suite.tenantRepo.On("Update", suite.ctx, mock.AnythingOfType("*models.Tenant")).Return(nil)

	updated, err := suite.service.UpdateConfig(suite.ctx, tenant.ID, &models.TenantConfig{
		Name:       "Loja Renomeada",
		ThemeColor: &color,
	})

	suite.NoError(err)
	suite.Equal("Loja Renomeada", updated.Name)
	suite.Equal(&color, updated.ThemeColor)
}

func (suite *TenantServiceTestSuite) TestDelete() {
	tenant := &models.Tenant{ID: uuid.New(), Subdomain: "loja"}
	suite.tenantRepo.On("GetByID", suite.ctx, tenant.ID).Return(tenant, nil)
	suite.tenantRepo.On("Delete", suite.ctx, tenant.ID).Return(nil)

	suite.NoError(suite.service.Delete(suite.ctx, tenant.ID))
}

func (suite *TenantServiceTestSuite) TestDelete_RepoError() {
	tenant := &models.Tenant{ID: uuid.New(), Subdomain: "loja"}
	suite.tenantRepo.On("GetByID", suite.ctx, tenant.ID).Return(tenant, nil)
	suite.tenantRepo.On("Delete", suite.ctx, tenant.ID).Return(errors.New("db down"))

	suite.Error(suite.service.Delete(suite.ctx, tenant.ID))
}

func TestTenantServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TenantServiceTestSuite))
}
