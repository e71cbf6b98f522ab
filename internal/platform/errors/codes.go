// Package errors provides structured error handling for the asset console.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Validation errors. These are raised client-side before any network
	// call is made.
	CodeValidationRequiredField Code = "VALIDATION_REQUIRED_FIELD"
	CodeValidationInvalidGender Code = "VALIDATION_INVALID_GENDER"
	CodeValidationInvalidAge    Code = "VALIDATION_INVALID_AGE"
	CodeValidationInvalidRange  Code = "VALIDATION_INVALID_RANGE"
	CodeValidationInvalidDate   Code = "VALIDATION_INVALID_DATE"

	// Auth errors
	CodeAuthInvalidCredentials Code = "AUTH_INVALID_CREDENTIALS"
	CodeAuthSessionExpired     Code = "AUTH_SESSION_EXPIRED"
	CodeAuthLoginInFlight      Code = "AUTH_LOGIN_IN_FLIGHT"

	// Remote errors
	CodeNotFound           Code = "NOT_FOUND"
	CodeNetworkUnavailable Code = "NETWORK_UNAVAILABLE"
	CodeServerFailure      Code = "SERVER_FAILURE"

	// Controller errors
	CodeSubmitInFlight     Code = "SUBMIT_IN_FLIGHT"
	CodeDeleteNotConfirmed Code = "DELETE_NOT_CONFIRMED"
	CodeFormNotOpen        Code = "FORM_NOT_OPEN"
	CodeListNotLoaded      Code = "LIST_NOT_LOADED"

	// Storage errors
	CodeStorageFailure Code = "STORAGE_FAILURE"
)

// IsValidation reports whether the code belongs to the client-side
// validation family. Validation failures must never reach the network layer.
func (c Code) IsValidation() bool {
	switch c {
	case CodeValidationRequiredField,
		CodeValidationInvalidGender,
		CodeValidationInvalidAge,
		CodeValidationInvalidRange,
		CodeValidationInvalidDate:
		return true
	default:
		return false
	}
}

// IsAuth reports whether the code means the session is no longer valid and
// the caller must fall back to the unauthenticated state.
func (c Code) IsAuth() bool {
	switch c {
	case CodeAuthInvalidCredentials, CodeAuthSessionExpired:
		return true
	default:
		return false
	}
}

// FromHTTPStatus maps a non-2xx response status to a domain code.
func FromHTTPStatus(status int) Code {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return CodeAuthSessionExpired
	case status == http.StatusNotFound:
		return CodeNotFound
	case status >= 500:
		return CodeServerFailure
	case status >= 400:
		return CodeServerFailure
	default:
		return CodeUnknown
	}
}
