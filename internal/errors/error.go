package errors

import "fmt"

// ErrorUnauthorized is the error for unauthorized requests.
type ErrorUnauthorized struct{}

func (eu *ErrorUnauthorized) Error() string {
	return "not authorized"
}

// ErrorUnknown is returned to clients in place of internal server errors.
type ErrorUnknown struct{}

func (eu *ErrorUnknown) Error() string {
	return "something went wrong, please try again later"
}

// ErrorNotFound is returned when no student matches the requested ID.
type ErrorNotFound struct {
	ID int64
}

func (enf *ErrorNotFound) Error() string {
	return fmt.Sprintf("student with id %d not found", enf.ID)
}
