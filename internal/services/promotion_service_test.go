package services

import (
	"context"
	"testing"
	"time"

	"petshop2/internal/models"
	"petshop2/internal/tenancy"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PromotionServiceTestSuite struct {
	suite.Suite
	promoRepo *MockPromotionRepository
	service   PromotionService
	tenantID  uuid.UUID
	ctx       context.Context
}

func (suite *PromotionServiceTestSuite) SetupTest() {
	suite.promoRepo = new(MockPromotionRepository)
	suite.service = NewPromotionService(suite.promoRepo)
	suite.tenantID = uuid.New()
	suite.ctx = tenantCtx(suite.tenantID)
}

func (suite *PromotionServiceTestSuite) TearDownTest() {
	suite.promoRepo.AssertExpectations(suite.T())
}

func (suite *PromotionServiceTestSuite) TestCreate() {
	suite.promoRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Promotion")).Return(nil)

	starts := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	promo, err := suite.service.Create(suite.ctx, &CreatePromotionRequest{
		Title:           "Banho e tosa",
		DiscountPercent: 15,
		StartsAt:        starts,
		EndsAt:          starts.AddDate(0, 0, 7),
	})

	suite.NoError(err)
	suite.True(promo.Active)
	suite.Equal(suite.tenantID, promo.TenantID)
}

func (suite *PromotionServiceTestSuite) TestCreate_InvalidDiscount() {
	starts := time.Now()
	for _, pct := range []float64{0, -5, 101} {
		promo, err := suite.service.Create(suite.ctx, &CreatePromotionRequest{
			Title:           "Promoção",
			DiscountPercent: pct,
			StartsAt:        starts,
			EndsAt:          starts.AddDate(0, 0, 7),
		})
		suite.Error(err, "discount %v should be rejected", pct)
		suite.Nil(promo)
	}
}

func (suite *PromotionServiceTestSuite) TestList_ActiveDropsForeignRows() {
	mine := &models.Promotion{ID: uuid.New(), TenantID: suite.tenantID, Active: true}
	theirs := &models.Promotion{ID: uuid.New(), TenantID: uuid.New(), Active: true}
	suite.promoRepo.On("List", suite.ctx, suite.tenantID, true, 50, 0).
		Return([]*models.Promotion{mine, theirs}, nil)

	promos, err := suite.service.List(suite.ctx, true, 0, 0)
	suite.NoError(err)
	suite.Len(promos, 1)
	suite.Equal(mine.ID, promos[0].ID)
}

func (suite *PromotionServiceTestSuite) TestList_ManagementRejectsForeignRows() {
	mine := &models.Promotion{ID: uuid.New(), TenantID: suite.tenantID}
	theirs := &models.Promotion{ID: uuid.New(), TenantID: uuid.New()}
	suite.promoRepo.On("List", suite.ctx, suite.tenantID, false, 50, 0).
		Return([]*models.Promotion{mine, theirs}, nil)

	promos, err := suite.service.List(suite.ctx, false, 0, 0)
	suite.ErrorIs(err, tenancy.ErrTenantMismatch)
	suite.Nil(promos)
}

func TestPromotionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PromotionServiceTestSuite))
}
