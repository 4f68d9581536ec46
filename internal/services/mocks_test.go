package services

import (
	"context"
	"sync"
	"time"

	"petshop2/internal/common"
	"petshop2/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// tenantCtx returns a context carrying tenantID, as the resolution middleware
// would have left it.
func tenantCtx(tenantID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), common.TenantIDKey, tenantID)
}

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	tenant, _ := args.Get(0).(*models.Tenant)
	return tenant, args.Error(1)
}

func (m *MockTenantRepository) GetBySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error) {
	args := m.Called(ctx, subdomain)
	tenant, _ := args.Get(0).(*models.Tenant)
	return tenant, args.Error(1)
}

func (m *MockTenantRepository) Update(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenantRepository) List(ctx context.Context, limit, offset int) ([]*models.Tenant, error) {
	args := m.Called(ctx, limit, offset)
	tenants, _ := args.Get(0).([]*models.Tenant)
	return tenants, args.Error(1)
}

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Create(ctx context.Context, client *models.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Client, error) {
	args := m.Called(ctx, tenantID, id)
	client, _ := args.Get(0).(*models.Client)
	return client, args.Error(1)
}

func (m *MockClientRepository) Update(ctx context.Context, client *models.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockClientRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Client, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	clients, _ := args.Get(0).([]*models.Client)
	return clients, args.Error(1)
}

func (m *MockClientRepository) Search(ctx context.Context, tenantID uuid.UUID, query string, limit, offset int) ([]*models.Client, error) {
	args := m.Called(ctx, tenantID, query, limit, offset)
	clients, _ := args.Get(0).([]*models.Client)
	return clients, args.Error(1)
}

type MockPetRepository struct {
	mock.Mock
}

func (m *MockPetRepository) Create(ctx context.Context, pet *models.Pet) error {
	args := m.Called(ctx, pet)
	return args.Error(0)
}

func (m *MockPetRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Pet, error) {
	args := m.Called(ctx, tenantID, id)
	pet, _ := args.Get(0).(*models.Pet)
	return pet, args.Error(1)
}

func (m *MockPetRepository) Update(ctx context.Context, pet *models.Pet) error {
	args := m.Called(ctx, pet)
	return args.Error(0)
}

func (m *MockPetRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockPetRepository) List(ctx context.Context, tenantID uuid.UUID, filter *models.PetSearchFilter) ([]*models.Pet, error) {
	args := m.Called(ctx, tenantID, filter)
	pets, _ := args.Get(0).([]*models.Pet)
	return pets, args.Error(1)
}

type MockLodgingRepository struct {
	mock.Mock
}

func (m *MockLodgingRepository) Create(ctx context.Context, lodging *models.Lodging) error {
	args := m.Called(ctx, lodging)
	return args.Error(0)
}

func (m *MockLodgingRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Lodging, error) {
	args := m.Called(ctx, tenantID, id)
	lodging, _ := args.Get(0).(*models.Lodging)
	return lodging, args.Error(1)
}

func (m *MockLodgingRepository) Update(ctx context.Context, lodging *models.Lodging) error {
	args := m.Called(ctx, lodging)
	return args.Error(0)
}

func (m *MockLodgingRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockLodgingRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Lodging, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	lodgings, _ := args.Get(0).([]*models.Lodging)
	return lodgings, args.Error(1)
}

func (m *MockLodgingRepository) HasOverlap(ctx context.Context, tenantID, petID uuid.UUID, checkIn, checkOut time.Time, exclude *uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, petID, checkIn, checkOut, exclude)
	return args.Bool(0), args.Error(1)
}

func (m *MockLodgingRepository) ExpireFinished(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLodgingRepository) CountActiveInPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (int, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Int(0), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, tenantID, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*models.User, error) {
	args := m.Called(ctx, tenantID, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetTenantIDByUserID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, tenantID, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, tenantID, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Error(1)
}

type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) Create(ctx context.Context, sale *models.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Sale, error) {
	args := m.Called(ctx, tenantID, id)
	sale, _ := args.Get(0).(*models.Sale)
	return sale, args.Error(1)
}

func (m *MockSaleRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockSaleRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Sale, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	sales, _ := args.Get(0).([]*models.Sale)
	return sales, args.Error(1)
}

func (m *MockSaleRepository) TotalInPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (float64, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).(float64), args.Error(1)
}

type MockFinancialRepository struct {
	mock.Mock
}

func (m *MockFinancialRepository) Create(ctx context.Context, entry *models.FinancialEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockFinancialRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.FinancialEntry, error) {
	args := m.Called(ctx, tenantID, id)
	entry, _ := args.Get(0).(*models.FinancialEntry)
	return entry, args.Error(1)
}

func (m *MockFinancialRepository) Update(ctx context.Context, entry *models.FinancialEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockFinancialRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockFinancialRepository) List(ctx context.Context, tenantID uuid.UUID, entryType, status *string, limit, offset int) ([]*models.FinancialEntry, error) {
	args := m.Called(ctx, tenantID, entryType, status, limit, offset)
	entries, _ := args.Get(0).([]*models.FinancialEntry)
	return entries, args.Error(1)
}

func (m *MockFinancialRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFinancialRepository) SumByType(ctx context.Context, tenantID uuid.UUID, entryType string, from, to time.Time) (float64, error) {
	args := m.Called(ctx, tenantID, entryType, from, to)
	return args.Get(0).(float64), args.Error(1)
}

type MockPromotionRepository struct {
	mock.Mock
}

func (m *MockPromotionRepository) Create(ctx context.Context, promo *models.Promotion) error {
	args := m.Called(ctx, promo)
	return args.Error(0)
}

func (m *MockPromotionRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Promotion, error) {
	args := m.Called(ctx, tenantID, id)
	promo, _ := args.Get(0).(*models.Promotion)
	return promo, args.Error(1)
}

func (m *MockPromotionRepository) Update(ctx context.Context, promo *models.Promotion) error {
	args := m.Called(ctx, promo)
	return args.Error(0)
}

func (m *MockPromotionRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockPromotionRepository) List(ctx context.Context, tenantID uuid.UUID, onlyActive bool, limit, offset int) ([]*models.Promotion, error) {
	args := m.Called(ctx, tenantID, onlyActive, limit, offset)
	promos, _ := args.Get(0).([]*models.Promotion)
	return promos, args.Error(1)
}

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appt *models.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Appointment, error) {
	args := m.Called(ctx, tenantID, id)
	appt, _ := args.Get(0).(*models.Appointment)
	return appt, args.Error(1)
}

func (m *MockAppointmentRepository) Update(ctx context.Context, appt *models.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *MockAppointmentRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockAppointmentRepository) List(ctx context.Context, tenantID uuid.UUID, from, to *time.Time, limit, offset int) ([]*models.Appointment, error) {
	args := m.Called(ctx, tenantID, from, to, limit, offset)
	appts, _ := args.Get(0).([]*models.Appointment)
	return appts, args.Error(1)
}

func (m *MockAppointmentRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status string, from, to time.Time) (int, error) {
	args := m.Called(ctx, tenantID, status, from, to)
	return args.Int(0), args.Error(1)
}

// memCache is an in-memory caching.CacheService; the auth and tenant suites
// need real get/set semantics, which testify mocks express poorly.
type memCache struct {
	mu      sync.Mutex
	strings map[string]string
	tenants map[uuid.UUID]*models.Tenant
	bySub   map[string]uuid.UUID
	reports map[uuid.UUID]map[string]interface{}
}

func newMemCache() *memCache {
	return &memCache{
		strings: make(map[string]string),
		tenants: make(map[uuid.UUID]*models.Tenant),
		bySub:   make(map[string]uuid.UUID),
		reports: make(map[uuid.UUID]map[string]interface{}),
	}
}

func (c *memCache) GetTenant(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tenants[tenantID], nil
}

func (c *memCache) GetTenantBySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id, ok := c.bySub[subdomain]; ok {
		return c.tenants[id], nil
	}
	return nil, nil
}

func (c *memCache) SetTenant(ctx context.Context, tenant *models.Tenant, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tenants[tenant.ID] = tenant
	c.bySub[tenant.Subdomain] = tenant.ID
	return nil
}

func (c *memCache) DeleteTenant(ctx context.Context, tenant *models.Tenant) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tenants, tenant.ID)
	delete(c.bySub, tenant.Subdomain)
	return nil
}

func (c *memCache) GetReportSummary(ctx context.Context, tenantID uuid.UUID) (map[string]interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reports[tenantID], nil
}

func (c *memCache) SetReportSummary(ctx context.Context, tenantID uuid.UUID, summary map[string]interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports[tenantID] = summary
	return nil
}

func (c *memCache) InvalidateTenantCache(ctx context.Context, tenantID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.reports, tenantID)
	return nil
}

func (c *memCache) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return false, nil
}

func (c *memCache) IncrementRateLimit(ctx context.Context, key string, window time.Duration) error {
	return nil
}

func (c *memCache) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.strings[key] = value
	return nil
}

func (c *memCache) GetString(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.strings[key], nil
}

func (c *memCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.strings, key)
	return nil
}
