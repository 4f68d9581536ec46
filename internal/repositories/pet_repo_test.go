package repositories

import (
	"context"
	"testing"
	"time"

	"petshop2/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func stringPtr(s string) *string { return &s }

type PetRepoTestSuite struct {
	suite.Suite
	mock     pgxmock.PgxPoolIface
	repo     PetRepository
	tenantID uuid.UUID
	context  context.Context
}

func (suite *PetRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewPetRepo(mock)
	suite.tenantID = uuid.New()
	suite.context = context.Background()
}

func (suite *PetRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestPetRepoTestSuite(t *testing.T) {
	suite.Run(t, new(PetRepoTestSuite))
}

func petRow(pet *models.Pet) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "tenant_id", "client_id", "name", "species", "breed",
		"birth_date", "weight_kg", "notes", "created_at", "updated_at"}).
		AddRow(pet.ID, pet.TenantID, pet.ClientID, pet.Name, pet.Species, pet.Breed,
			pet.BirthDate, pet.WeightKg, pet.Notes, pet.CreatedAt, pet.UpdatedAt)
}

func (suite *PetRepoTestSuite) TestCreate_Success() {
	pet := &models.Pet{
		ID:       uuid.New(),
		TenantID: suite.tenantID,
		ClientID: uuid.New(),
		Name:     "Rex",
		Species:  "cachorro",
		Breed:    stringPtr("labrador"),
	}

	suite.mock.ExpectExec(`INSERT INTO pets`).
		WithArgs(pet.ID, pet.TenantID, pet.ClientID, pet.Name, pet.Species,
			pet.Breed, pet.BirthDate, pet.WeightKg, pet.Notes).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, pet)
	assert.NoError(suite.T(), err)
}

func (suite *PetRepoTestSuite) TestGetByID_Success() {
	pet := &models.Pet{
		ID:        uuid.New(),
		TenantID:  suite.tenantID,
		ClientID:  uuid.New(),
		Name:      "Rex",
		Species:   "cachorro",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	suite.mock.ExpectQuery(`SELECT (.+) FROM pets WHERE tenant_id = \$1 AND id = \$2`).
		WithArgs(suite.tenantID, pet.ID).
		WillReturnRows(petRow(pet))

	got, err := suite.repo.GetByID(suite.context, suite.tenantID, pet.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), pet.ID, got.ID)
	assert.Equal(suite.T(), suite.tenantID, got.TenantID)
}

func (suite *PetRepoTestSuite) TestGetByID_WrongTenant() {
	petID := uuid.New()
	otherTenant := uuid.New()

	// The tenant filter means another tenant's pet simply does not exist
	suite.mock.ExpectQuery(`SELECT (.+) FROM pets WHERE tenant_id = \$1 AND id = \$2`).
		WithArgs(otherTenant, petID).
		WillReturnError(pgx.ErrNoRows)

	got, err := suite.repo.GetByID(suite.context, otherTenant, petID)
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
	assert.Nil(suite.T(), got)
}

func (suite *PetRepoTestSuite) TestList_ScopedToTenant() {
	a := &models.Pet{ID: uuid.New(), TenantID: suite.tenantID, ClientID: uuid.New(), Name: "Mel", Species: "gato"}
	b := &models.Pet{ID: uuid.New(), TenantID: suite.tenantID, ClientID: uuid.New(), Name: "Rex", Species: "cachorro"}

	rows := petRow(a).AddRow(b.ID, b.TenantID, b.ClientID, b.Name, b.Species, b.Breed,
		b.BirthDate, b.WeightKg, b.Notes, b.CreatedAt, b.UpdatedAt)

	suite.mock.ExpectQuery(`SELECT (.+) FROM pets WHERE tenant_id = \$1 ORDER BY name LIMIT \$2 OFFSET \$3`).
		WithArgs(suite.tenantID, 50, 0).
		WillReturnRows(rows)

	pets, err := suite.repo.List(suite.context, suite.tenantID, &models.PetSearchFilter{Limit: 50, Offset: 0})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), pets, 2)
}

func (suite *PetRepoTestSuite) TestList_WithSpeciesFilter() {
	pet := &models.Pet{ID: uuid.New(), TenantID: suite.tenantID, ClientID: uuid.New(), Name: "Mel", Species: "gato"}

	suite.mock.ExpectQuery(`SELECT (.+) FROM pets WHERE tenant_id = \$1 AND species = \$2 ORDER BY name LIMIT \$3 OFFSET \$4`).
		WithArgs(suite.tenantID, "gato", 50, 0).
		WillReturnRows(petRow(pet))

	species := "gato"
	pets, err := suite.repo.List(suite.context, suite.tenantID, &models.PetSearchFilter{Species: &species, Limit: 50})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), pets, 1)
}

func (suite *PetRepoTestSuite) TestDelete_Success() {
	petID := uuid.New()

	suite.mock.ExpectExec(`DELETE FROM pets WHERE tenant_id = \$1 AND id = \$2`).
		WithArgs(suite.tenantID, petID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, suite.tenantID, petID)
	assert.NoError(suite.T(), err)
}
