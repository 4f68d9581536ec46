package apiclient

import (
	"errors"
	"fmt"
)

// Sentinel errors for the tenant error codes the API emits. Callers branch on
// these with errors.Is; the full envelope is available via errors.As with
// *APIError.
var (
	ErrTenantNotFound = errors.New("tenant not found")
	ErrTenantInactive = errors.New("tenant inactive")
	ErrTenantMismatch = errors.New("tenant mismatch")
	ErrUnauthorized   = errors.New("unauthorized")
)

// APIError is the decoded error envelope from a non-2xx response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap maps machine codes onto the sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "TENANT_NOT_FOUND":
		return ErrTenantNotFound
	case "TENANT_INACTIVE":
		return ErrTenantInactive
	case "TENANT_MISMATCH":
		return ErrTenantMismatch
	case "UNAUTHORIZED":
		return ErrUnauthorized
	}
	return nil
}
