package users

import (
	"unicode"

	"github.com/shelfd/shelfd/pkg/api"
)

// ValidatePassword enforces the static password policy: minimum length 8,
// at least one letter and at least one digit. No upper bound and no
// character-class restriction beyond these two checks. Pure function.
func ValidatePassword(password string) *api.APIError {
	if len(password) < 8 {
		return api.NewInvalidRequestError("password", "Password must be at least 8 characters long.")
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return api.NewInvalidRequestError("password", "Password must contain at least one letter and one number.")
	}

	return nil
}
