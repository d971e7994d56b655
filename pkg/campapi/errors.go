package campapi

import (
	"errors"
	"fmt"
)

// TransportError covers network failures, unexpected HTTP statuses and
// malformed responses.
type TransportError struct {
	Op     string
	URL    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("camp api %s %s: status %d: %v", e.Op, e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("camp api %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AppError is a well-formed response with success set to false.
type AppError struct {
	Op      string
	Status  int
	Message string
}

func (e *AppError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request unsuccessful"
	}
	return fmt.Sprintf("camp api %s: %s", e.Op, msg)
}

// IsAppError reports whether err is an application-reported failure.
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// IsTransportError reports whether err is a transport or parse failure.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
