package graphqlErrors

import (
	"fmt"

	dErrors "secureid/pkg/domain-errors"
)

// AppSyncError is a GraphQL error as returned by the platform's AppSync
// endpoints. ErrorType carries the service-specific code.
type AppSyncError struct {
	Message   string         `json:"message"`
	ErrorType string         `json:"errorType,omitempty"`
	Path      []any          `json:"path,omitempty"`
	Locations []Location     `json:"locations,omitempty"`
	ErrorInfo map[string]any `json:"errorInfo,omitempty"`
}

// Location points at the offending token of a GraphQL document.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (e AppSyncError) Error() string {
	if e.ErrorType == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.ErrorType, e.Message)
}

// Platform-wide error types every service may return.
const (
	TypeAccountLocked            = "sudoplatform.AccountLockedError"
	TypeDecoding                 = "sudoplatform.DecodingError"
	TypeEnvironment              = "sudoplatform.EnvironmentError"
	TypeInsufficientEntitlements = "sudoplatform.InsufficientEntitlementsError"
	TypeInvalidArgument          = "sudoplatform.InvalidArgumentError"
	TypeInvalidToken             = "sudoplatform.InvalidTokenError"
	TypeLimitExceeded            = "sudoplatform.LimitExceededError"
	TypeNoEntitlements           = "sudoplatform.NoEntitlementsError"
	TypeServiceError             = "sudoplatform.ServiceError"
)

var platformCodes = map[string]dErrors.Code{
	TypeAccountLocked:            dErrors.CodeAccountLocked,
	TypeDecoding:                 dErrors.CodeDecodingError,
	TypeEnvironment:              dErrors.CodeEnvironmentError,
	TypeInsufficientEntitlements: dErrors.CodeInsufficientEntitlements,
	TypeInvalidArgument:          dErrors.CodeInvalidArgument,
	TypeInvalidToken:             dErrors.CodeInvalidToken,
	TypeLimitExceeded:            dErrors.CodeLimitExceeded,
	TypeNoEntitlements:           dErrors.CodeNoEntitlements,
	TypeServiceError:             dErrors.CodeServiceError,
}

// ToClientError maps a platform-wide GraphQL error to a client error.
// Unrecognized error types become CodeUnknownGraphQL wrapping the wire error.
func ToClientError(e AppSyncError) error {
	if code, ok := platformCodes[e.ErrorType]; ok {
		return &dErrors.Error{Code: code, Message: e.Message}
	}
	return &dErrors.Error{
		Code:    dErrors.CodeUnknownGraphQL,
		Message: fmt.Sprintf("unknown GraphQL error: %s", e.Error()),
		Err:     e,
	}
}
