package domainerrors

import "errors"

// Code represents an error category independent of the wire protocol.
// Codes describe what went wrong for the caller, not which GraphQL error
// type the service happened to send.
type Code string

const (
	// Precondition failures raised locally before any network access.
	CodeNotSignedIn     Code = "not_signed_in"
	CodeIllegalArgument Code = "illegal_argument"

	// Business rule violations reported by the identity verification service.
	CodeVersionMismatch                        Code = "version_mismatch"
	CodeIdentityVerificationRecordNotFound     Code = "identity_verification_record_not_found"
	CodeIdentityVerificationUpdateFailed       Code = "identity_verification_update_failed"
	CodeUnsupportedVerificationMethod          Code = "unsupported_verification_method"
	CodeImplausibleAge                         Code = "implausible_age"
	CodeInvalidAge                             Code = "invalid_age"
	CodeUnsupportedCountry                     Code = "unsupported_country"
	CodeUnsupportedNetworkLocation             Code = "unsupported_network_location"
	CodeRequiredIdentityInformationNotProvided Code = "required_identity_information_not_provided"

	// Platform-wide service errors produced by the generic mapper.
	CodeServiceError             Code = "service_error"
	CodeInvalidArgument          Code = "invalid_argument"
	CodeInsufficientEntitlements Code = "insufficient_entitlements"
	CodeNoEntitlements           Code = "no_entitlements"
	CodeLimitExceeded            Code = "limit_exceeded"
	CodeAccountLocked            Code = "account_locked"
	CodeDecodingError            Code = "decoding_error"
	CodeInvalidToken             Code = "invalid_token"
	CodeEnvironmentError         Code = "environment_error"
	CodeUnknownGraphQL           Code = "unknown_graphql"

	// Broken contract between client and service: unrecognized enum values,
	// missing payloads. Never retried.
	CodeFatal Code = "fatal"

	// Construction-time failures.
	CodeConfigurationSetNotFound Code = "configuration_set_not_found"
	CodeValidation               Code = "validation_failed"
)

// Error wraps client failures with a stable code.
// It is transport-agnostic and can be used across facade, api client and transport layers.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap creates a new domain error wrapping an existing error.
// If the wrapped error is already a domain error, the original code is preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if an error is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf returns the code of the outermost domain error in the chain,
// or CodeUnknownGraphQL when err carries none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknownGraphQL
}

// IsPrecondition reports whether err was raised locally before any network call.
// Arguments the service itself rejects carry CodeInvalidArgument instead.
func IsPrecondition(err error) bool {
	return HasCode(err, CodeNotSignedIn) || HasCode(err, CodeIllegalArgument)
}

// IsFatal reports whether err indicates client/service version skew or a broken
// response contract.
func IsFatal(err error) bool {
	return HasCode(err, CodeFatal)
}
