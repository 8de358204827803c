// Package transformers converts between the service's wire shapes and the
// client's entities, and classifies wire errors into client errors.
package transformers

import (
	"fmt"

	"secureid/internal/verification/models"
	dErrors "secureid/pkg/domain-errors"
)

var verificationMethods = map[string]models.VerificationMethod{
	"NONE":             models.VerificationMethodNone,
	"KNOWLEDGE_OF_PII": models.VerificationMethodKnowledgeOfPII,
	"GOVERNMENT_ID":    models.VerificationMethodGovernmentID,
}

var documentTypes = map[string]models.DocumentType{
	"driverLicense": models.DocumentTypeDriverLicense,
	"passport":      models.DocumentTypePassport,
	"idCard":        models.DocumentTypeIDCard,
}

var documentVerificationStatuses = map[string]models.DocumentVerificationStatus{
	"notRequired":        models.DocumentVerificationStatusNotRequired,
	"notAttempted":       models.DocumentVerificationStatusNotAttempted,
	"pending":            models.DocumentVerificationStatusPending,
	"documentUnreadable": models.DocumentVerificationStatusDocumentUnreadable,
	"failed":             models.DocumentVerificationStatusFailed,
	"succeeded":          models.DocumentVerificationStatusSucceeded,
}

// VerificationMethodToEntity decodes a wire verification method. Unknown values
// indicate version skew with the service and fail with CodeFatal.
func VerificationMethodToEntity(graphql string) (models.VerificationMethod, error) {
	if m, ok := verificationMethods[graphql]; ok {
		return m, nil
	}
	return "", unrecognized("verification method", graphql)
}

func VerificationMethodToGraphQL(entity models.VerificationMethod) string {
	return string(entity)
}

// DocumentTypeToEntity decodes a wire document type.
func DocumentTypeToEntity(graphql string) (models.DocumentType, error) {
	if t, ok := documentTypes[graphql]; ok {
		return t, nil
	}
	return "", unrecognized("document type", graphql)
}

func DocumentTypeToGraphQL(entity models.DocumentType) string {
	return string(entity)
}

// DocumentVerificationStatusToEntity decodes a wire document verification status.
func DocumentVerificationStatusToEntity(graphql string) (models.DocumentVerificationStatus, error) {
	if s, ok := documentVerificationStatuses[graphql]; ok {
		return s, nil
	}
	return "", unrecognized("document verification status", graphql)
}

func DocumentVerificationStatusToGraphQL(entity models.DocumentVerificationStatus) string {
	return string(entity)
}

func unrecognized(kind, value string) error {
	return dErrors.New(dErrors.CodeFatal, fmt.Sprintf("Unrecognized %s '%s' received from service", kind, value))
}
