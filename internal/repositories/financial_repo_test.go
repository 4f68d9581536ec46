package repositories

import (
	"context"
	"testing"
	"time"

	"petshop2/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type FinancialRepoTestSuite struct {
	suite.Suite
	mock     pgxmock.PgxPoolIface
	repo     FinancialRepository
	tenantID uuid.UUID
	context  context.Context
}

func (suite *FinancialRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewFinancialRepo(mock)
	suite.tenantID = uuid.New()
	suite.context = context.Background()
}

func (suite *FinancialRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestFinancialRepoTestSuite(t *testing.T) {
	suite.Run(t, new(FinancialRepoTestSuite))
}

func (suite *FinancialRepoTestSuite) TestCreate_Success() {
	entry := &models.FinancialEntry{
		ID:          uuid.New(),
		TenantID:    suite.tenantID,
		Description: "Ração premium",
		Amount:      129.90,
		Type:        models.EntryExpense,
		Status:      models.EntryPending,
	}

	suite.mock.ExpectExec(`INSERT INTO financial_entries`).
		WithArgs(entry.ID, entry.TenantID, entry.Description, entry.Amount,
			entry.Type, entry.Status, entry.DueDate, entry.PaidAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, entry)
	assert.NoError(suite.T(), err)
}

func (suite *FinancialRepoTestSuite) TestList_WithTypeAndStatus() {
	entry := &models.FinancialEntry{
		ID:          uuid.New(),
		TenantID:    suite.tenantID,
		Description: "Venda balcão",
		Amount:      55,
		Type:        models.EntryIncome,
		Status:      models.EntryPaid,
	}

	rows := pgxmock.NewRows([]string{"id", "tenant_id", "description", "amount", "type", "status",
		"due_date", "paid_at", "created_at", "updated_at"}).
		AddRow(entry.ID, entry.TenantID, entry.Description, entry.Amount, entry.Type, entry.Status,
			entry.DueDate, entry.PaidAt, entry.CreatedAt, entry.UpdatedAt)

	entryType := models.EntryIncome
	status := models.EntryPaid

	suite.mock.ExpectQuery(`SELECT (.+) FROM financial_entries`).
		WithArgs(suite.tenantID, &entryType, &status, 50, 0).
		WillReturnRows(rows)

	entries, err := suite.repo.List(suite.context, suite.tenantID, &entryType, &status, 50, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), entries, 1)
	assert.Equal(suite.T(), models.EntryIncome, entries[0].Type)
}

func (suite *FinancialRepoTestSuite) TestMarkOverdue() {
	now := time.Now()

	suite.mock.ExpectExec(`UPDATE financial_entries`).
		WithArgs(now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	affected, err := suite.repo.MarkOverdue(suite.context, now)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), affected)
}

func (suite *FinancialRepoTestSuite) TestMarkOverdue_NothingPending() {
	now := time.Now()

	suite.mock.ExpectExec(`UPDATE financial_entries`).
		WithArgs(now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	affected, err := suite.repo.MarkOverdue(suite.context, now)
	assert.NoError(suite.T(), err)
	assert.Zero(suite.T(), affected)
}

func (suite *FinancialRepoTestSuite) TestSumByType() {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	suite.mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\)`).
		WithArgs(suite.tenantID, models.EntryIncome, from, to).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(1234.56))

	total, err := suite.repo.SumByType(suite.context, suite.tenantID, models.EntryIncome, from, to)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1234.56, total)
}
