package shell

import (
	"errors"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/lending/identity"
)

// ErrorCategory is the coarse classification of every error the lending service returns.
type ErrorCategory string

const (
	CategoryNone           ErrorCategory = ""
	CategoryValidation     ErrorCategory = "validation"
	CategoryAuth           ErrorCategory = "auth"
	CategoryNotFound       ErrorCategory = "not_found"
	CategoryPolicyDenied   ErrorCategory = "policy_denied"
	CategoryInfrastructure ErrorCategory = "infrastructure"
)

// CategoryOf classifies err. A nil error has CategoryNone, anything unknown is infrastructure.
func CategoryOf(err error) ErrorCategory {
	switch {
	case err == nil:
		return CategoryNone
	case core.IsValidationError(err):
		return CategoryValidation
	case errors.Is(err, identity.ErrTokenInvalid), errors.Is(err, identity.ErrTokenExpired):
		return CategoryAuth
	case core.IsNotFound(err):
		return CategoryNotFound
	case core.IsPolicyDenial(err):
		return CategoryPolicyDenied
	default:
		return CategoryInfrastructure
	}
}

func (c ErrorCategory) String() string {
	return string(c)
}
