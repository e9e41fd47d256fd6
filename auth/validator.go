package auth

import (
	"fmt"
	"sng-lab/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateClaims rejects tokens without a usable identity.
func ValidateClaims(claims CustomClaims) error {
	if err := validate.Struct(claims); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidClaims, err)
	}
	return nil
}
