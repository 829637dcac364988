package service

import (
	"errors"
	"fmt"
)

const (
	// ErrInternalServerError means that an internal server error has occurred.
	ErrInternalServerError = "internal_server_error"
	// ErrEntityNotFound means that record or row is absent in repository or storage.
	ErrEntityNotFound = "entity_not_found"
	// ErrBadParameter means that provided parameter does not match declared.
	ErrBadParameter = "bad_parameter"

	// ErrNotFound means that the registry does not know the requested service.
	ErrNotFound = "not_found"
	// ErrNoInstances means that the service is known but has no registered instances.
	ErrNoInstances = "no_instances"
	// ErrRegistryUnavailable means that the registry could not be reached or is not configured.
	ErrRegistryUnavailable = "registry_unavailable"
	// ErrServiceUnreachable means that a downstream service has no viable instance or could not be contacted.
	ErrServiceUnreachable = "service_unreachable"
	// ErrConfiguration means that a required setting is missing.
	ErrConfiguration = "configuration_error"
	// ErrAuthenticationInfrastructure means that the authentication exchange failed for a reason other than credentials.
	ErrAuthenticationInfrastructure = "authentication_infrastructure_error"
	// ErrInvalidCredentials means that the presented credentials were rejected.
	ErrInvalidCredentials = "invalid_credentials"
)

// MyError represents an error within the context of mymesh services.
type MyError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// Inner is a wrapped error that is never shown to API consumers.
	Inner error `json:"-"`
}

// NewMyError creates a new MyError.
func NewMyError(code string, message string, inner error) *MyError {
	return &MyError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

// wrapOrNew keeps an already coded inner error and codes everything else.
func wrapOrNew(code string, message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(code, message, inner)
}

func NewInternalServerError(message string, inner error) *MyError {
	return wrapOrNew(ErrInternalServerError, message, inner)
}

func NewEntityNotFoundError(message string, inner error) *MyError {
	return wrapOrNew(ErrEntityNotFound, message, inner)
}

func NewBadParameterError(message string, inner error) *MyError {
	return wrapOrNew(ErrBadParameter, message, inner)
}

func NewRegistryUnavailableError(message string, inner error) *MyError {
	return wrapOrNew(ErrRegistryUnavailable, message, inner)
}

// NewNotFoundError, NewNoInstancesError and the authentication errors below always carry their own code:
// they classify a failure, so a coded cause stays reachable through Unwrap instead of replacing it.

func NewNotFoundError(message string, inner error) *MyError {
	return NewMyError(ErrNotFound, message, inner)
}

func NewNoInstancesError(message string, inner error) *MyError {
	return NewMyError(ErrNoInstances, message, inner)
}

func NewServiceUnreachableError(message string, inner error) *MyError {
	return NewMyError(ErrServiceUnreachable, message, inner)
}

func NewConfigurationError(message string, inner error) *MyError {
	return NewMyError(ErrConfiguration, message, inner)
}

func NewAuthenticationInfrastructureError(message string, inner error) *MyError {
	return NewMyError(ErrAuthenticationInfrastructure, message, inner)
}

func NewInvalidCredentialsError(message string, inner error) *MyError {
	return NewMyError(ErrInvalidCredentials, message, inner)
}

func (e MyError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}

	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e MyError) Unwrap() error {
	return e.Inner
}

// ToMyError returns a pointer to a mymesh error, or nil if it is not a mymesh error.
func ToMyError(err error) *MyError {
	var e *MyError
	if errors.As(err, &e) {
		return e
	}

	return nil
}

// ToMyErrorCode returns the code of the error, if available.
func ToMyErrorCode(err error) string {
	myerror := ToMyError(err)
	if myerror != nil {
		return myerror.Code
	}
	return ""
}

func IsMyError(err error, code string) bool {
	myerror := ToMyError(err)
	if myerror != nil {
		return myerror.Code == code
	}
	return false
}

func IsInternalServerError(err error) bool {
	return IsMyError(err, ErrInternalServerError)
}

func IsEntityNotFoundError(err error) bool {
	return IsMyError(err, ErrEntityNotFound)
}

func IsBadParameterError(err error) bool {
	return IsMyError(err, ErrBadParameter)
}

func IsNotFoundError(err error) bool {
	return IsMyError(err, ErrNotFound)
}

func IsNoInstancesError(err error) bool {
	return IsMyError(err, ErrNoInstances)
}

func IsRegistryUnavailableError(err error) bool {
	return IsMyError(err, ErrRegistryUnavailable)
}

func IsServiceUnreachableError(err error) bool {
	return IsMyError(err, ErrServiceUnreachable)
}

func IsConfigurationError(err error) bool {
	return IsMyError(err, ErrConfiguration)
}

func IsAuthenticationInfrastructureError(err error) bool {
	return IsMyError(err, ErrAuthenticationInfrastructure)
}

func IsInvalidCredentialsError(err error) bool {
	return IsMyError(err, ErrInvalidCredentials)
}

// IsTransient reports whether a lookup failure may clear up on a later attempt.
func IsTransient(err error) bool {
	switch ToMyErrorCode(err) {
	case ErrNotFound, ErrNoInstances, ErrRegistryUnavailable:
		return true
	default:
		return false
	}
}
