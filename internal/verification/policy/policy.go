// Package policy holds the rules deciding which verification method applies to
// which client operation. Rules are pure and run before any network access.
package policy

import (
	"fmt"

	"secureid/internal/verification/models"
	dErrors "secureid/pkg/domain-errors"
)

// Operation names as reported in policy violations.
const (
	OperationVerifyIdentity                   = "verifyIdentity"
	OperationVerifyIdentityDocument           = "verifyIdentityDocument"
	OperationCaptureAndVerifyIdentityDocument = "captureAndVerifyIdentityDocument"
)

// supportedMethods maps each mutating operation to the single method it accepts.
// The accepted method doubles as the default when a request leaves it unset.
var supportedMethods = map[string]models.VerificationMethod{
	OperationVerifyIdentity:                   models.VerificationMethodKnowledgeOfPII,
	OperationVerifyIdentityDocument:           models.VerificationMethodGovernmentID,
	OperationCaptureAndVerifyIdentityDocument: models.VerificationMethodGovernmentID,
}

// Resolve returns the method to send for operation. An unset method resolves to
// the operation's default; any other method must equal it.
func Resolve(operation string, method models.VerificationMethod) (models.VerificationMethod, error) {
	supported, ok := supportedMethods[operation]
	if !ok {
		return "", dErrors.New(dErrors.CodeIllegalArgument, fmt.Sprintf("%s does not accept a verification method", operation))
	}
	if method.IsZero() {
		return supported, nil
	}
	if method != supported {
		return "", dErrors.New(dErrors.CodeIllegalArgument,
			fmt.Sprintf("%s is not a supported verification method for %s", method, operation))
	}
	return method, nil
}

// ApplyIdentity returns a copy of input with its verification method resolved
// for verifyIdentity.
func ApplyIdentity(input models.VerifyIdentityInput) (models.VerifyIdentityInput, error) {
	method, err := Resolve(OperationVerifyIdentity, input.VerificationMethod)
	if err != nil {
		return models.VerifyIdentityInput{}, err
	}
	input.VerificationMethod = method
	return input, nil
}

// ApplyDocument returns a copy of input with its verification method resolved
// for the given document operation.
func ApplyDocument(operation string, input models.VerifyIdentityDocumentInput) (models.VerifyIdentityDocumentInput, error) {
	method, err := Resolve(operation, input.VerificationMethod)
	if err != nil {
		return models.VerifyIdentityDocumentInput{}, err
	}
	input.VerificationMethod = method
	return input, nil
}
