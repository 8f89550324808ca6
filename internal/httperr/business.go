package httperr

import (
	"errors"
	"net/http"
)

// BusinessError is a domain-level failure carrying a stable machine code and
// the HTTP status it maps to at the edge.
type BusinessError struct {
	Code   string
	Status int
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrValidation(code string) error {
	return BusinessError{Code: code, Status: http.StatusBadRequest}
}

func ErrNotFound(code string) error {
	return BusinessError{Code: code, Status: http.StatusNotFound}
}

func ErrConflict(code string) error {
	return BusinessError{Code: code, Status: http.StatusConflict}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// StatusOf resolves the HTTP status for an error; anything that is not a
// BusinessError is treated as an internal failure.
func StatusOf(err error) int {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Status
	}
	return http.StatusInternalServerError
}
