package tenancy

import (
	"errors"

	"github.com/google/uuid"
)

// ErrTenantMismatch is returned by services when a record fails the
// ownership check. Handlers map it to a 403 with code TENANT_MISMATCH.
var ErrTenantMismatch = errors.New("record does not belong to the active tenant")

// Owned is implemented by records that can report which tenant owns them.
// The second return value is false for legacy records that predate the
// tenant column; those are treated as owned by everyone.
type Owned interface {
	TenantOwner() (uuid.UUID, bool)
}

// Validate reports whether rec may be exposed to tenantID: the owner
// matches, or the record reports no owner.
func Validate(tenantID uuid.UUID, rec Owned) bool {
	if rec == nil {
		return true
	}
	owner, ok := rec.TenantOwner()
	if !ok {
		return true
	}
	return owner == tenantID
}

// ValidateAll reports whether every record in recs may be exposed to
// tenantID. An empty slice is valid: the check answers "does anything here
// belong to another tenant", and an empty result set leaks nothing.
func ValidateAll[T Owned](tenantID uuid.UUID, recs []T) bool {
	for _, rec := range recs {
		if !Validate(tenantID, rec) {
			return false
		}
	}
	return true
}

// Filter returns only the records owned by (or ownerless for) tenantID.
func Filter[T Owned](tenantID uuid.UUID, recs []T) []T {
	out := recs[:0:0]
	for _, rec := range recs {
		if Validate(tenantID, rec) {
			out = append(out, rec)
		}
	}
	return out
}
