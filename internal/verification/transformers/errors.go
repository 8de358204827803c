package transformers

import (
	dErrors "secureid/pkg/domain-errors"
	graphqlErrors "secureid/pkg/graphql-errors"
)

// Error types reported by the identity verification service.
const (
	ErrorTypeConditionalCheckFailed                 = "DynamoDB:ConditionalCheckFailedException"
	ErrorTypeRecordNotFound                         = "sudoplatform.identity-verification.IdentityVerificationRecordNotFoundError"
	ErrorTypeUpdateFailed                           = "sudoplatform.identity-verification.IdentityVerificationUpdateFailedError"
	ErrorTypeUnsupportedVerificationMethod          = "sudoplatform.identity-verification.UnsupportedVerificationMethodError"
	ErrorTypeImplausibleAge                         = "sudoplatform.identity-verification.ImplausibleAgeError"
	ErrorTypeInvalidAge                             = "sudoplatform.identity-verification.InvalidAgeError"
	ErrorTypeUnsupportedCountry                     = "sudoplatform.identity-verification.UnsupportedCountryError"
	ErrorTypeUnsupportedNetworkLocation             = "sudoplatform.identity-verification.UnsupportedNetworkLocationError"
	ErrorTypeRequiredIdentityInformationNotProvided = "sudoplatform.identity-verification.RequiredIdentityInformationNotProvidedError"
)

const versionMismatchMessage = "Version mismatch: the record was modified concurrently"

var serviceErrors = map[string]func(message string) error{
	ErrorTypeConditionalCheckFailed: func(string) error {
		return dErrors.New(dErrors.CodeVersionMismatch, versionMismatchMessage)
	},
	ErrorTypeRecordNotFound:                         withCode(dErrors.CodeIdentityVerificationRecordNotFound),
	ErrorTypeUpdateFailed:                           withCode(dErrors.CodeIdentityVerificationUpdateFailed),
	ErrorTypeUnsupportedVerificationMethod:          withCode(dErrors.CodeUnsupportedVerificationMethod),
	ErrorTypeImplausibleAge:                         withCode(dErrors.CodeImplausibleAge),
	ErrorTypeInvalidAge:                             withCode(dErrors.CodeInvalidAge),
	ErrorTypeUnsupportedCountry:                     withCode(dErrors.CodeUnsupportedCountry),
	ErrorTypeUnsupportedNetworkLocation:             withCode(dErrors.CodeUnsupportedNetworkLocation),
	ErrorTypeRequiredIdentityInformationNotProvided: withCode(dErrors.CodeRequiredIdentityInformationNotProvided),
}

func withCode(code dErrors.Code) func(string) error {
	return func(message string) error {
		return dErrors.New(code, message)
	}
}

// ToClientError classifies a wire error. Types outside this service's table
// go to the platform-wide mapper.
func ToClientError(e graphqlErrors.AppSyncError) error {
	if build, ok := serviceErrors[e.ErrorType]; ok {
		return build(e.Message)
	}
	return graphqlErrors.ToClientError(e)
}
