package tenancy

import (
	"testing"

	"petshop2/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tenantID := uuid.New()
	otherID := uuid.New()

	testCases := []struct {
		name  string
		rec   Owned
		valid bool
	}{
		{"owner matches", &models.Pet{TenantID: tenantID}, true},
		{"owner differs", &models.Pet{TenantID: otherID}, false},
		{"no owner recorded", &models.Pet{}, true},
		{"nil record", nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, Validate(tenantID, tc.rec))
		})
	}
}

func TestValidateAll(t *testing.T) {
	tenantID := uuid.New()
	otherID := uuid.New()

	mine := &models.Pet{TenantID: tenantID}
	theirs := &models.Pet{TenantID: otherID}
	legacy := &models.Pet{}

	assert.True(t, ValidateAll(tenantID, []*models.Pet{}))
	assert.True(t, ValidateAll(tenantID, []*models.Pet(nil)))
	assert.True(t, ValidateAll(tenantID, []*models.Pet{mine, mine}))
	assert.True(t, ValidateAll(tenantID, []*models.Pet{mine, legacy}))
	assert.False(t, ValidateAll(tenantID, []*models.Pet{mine, theirs}))
	assert.False(t, ValidateAll(tenantID, []*models.Pet{theirs}))
}

func TestFilter(t *testing.T) {
	tenantID := uuid.New()
	otherID := uuid.New()

	mine := &models.Pet{ID: uuid.New(), TenantID: tenantID}
	theirs := &models.Pet{ID: uuid.New(), TenantID: otherID}
	legacy := &models.Pet{ID: uuid.New()}

	out := Filter(tenantID, []*models.Pet{mine, theirs, legacy})
	assert.Len(t, out, 2)
	assert.Contains(t, out, mine)
	assert.Contains(t, out, legacy)
	assert.NotContains(t, out, theirs)
}

func TestFilter_Empty(t *testing.T) {
	out := Filter(uuid.New(), []*models.Pet{})
	assert.Empty(t, out)
}
