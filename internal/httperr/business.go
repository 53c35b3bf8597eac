package httperr

import (
	"errors"
	"strings"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}

// IsExclusionConflict detects a violated exclusion/uniqueness constraint on
// the bookings table, which the driver reports by SQLSTATE rather than as a
// business error.
func IsExclusionConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23P01") || strings.Contains(msg, "exclusion constraint")
}
