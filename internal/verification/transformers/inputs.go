package transformers

import (
	"secureid/internal/verification/models"
	"secureid/internal/verification/wire"
)

// VerifyIdentityInputToGraphQL copies the PII request into mutation variables.
// An unset verification method stays unset.
func VerifyIdentityInputToGraphQL(entity models.VerifyIdentityInput) wire.VerifyIdentityInput {
	return wire.VerifyIdentityInput{
		VerificationMethod: optionalMethod(entity.VerificationMethod),
		FirstName:          entity.FirstName,
		LastName:           entity.LastName,
		Address:            entity.Address,
		City:               entity.City,
		State:              entity.State,
		PostalCode:         entity.PostalCode,
		Country:            entity.Country,
		DateOfBirth:        entity.DateOfBirth,
	}
}

// VerifyIdentityDocumentInputToGraphQL copies the document request into mutation
// variables. Images pass through untouched; their content is checked by the service.
func VerifyIdentityDocumentInputToGraphQL(entity models.VerifyIdentityDocumentInput) wire.VerifyIdentityDocumentInput {
	return wire.VerifyIdentityDocumentInput{
		VerificationMethod: optionalMethod(entity.VerificationMethod),
		ImageBase64:        entity.ImageBase64,
		BackImageBase64:    entity.BackImageBase64,
		FaceImageBase64:    entity.FaceImageBase64,
		Country:            entity.Country,
		DocumentType:       DocumentTypeToGraphQL(entity.DocumentType),
	}
}

func optionalMethod(m models.VerificationMethod) *string {
	if m.IsZero() {
		return nil
	}
	s := VerificationMethodToGraphQL(m)
	return &s
}
