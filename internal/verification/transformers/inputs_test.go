package transformers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secureid/internal/verification/models"
)

func TestVerifyIdentityInputToGraphQL(t *testing.T) {
	in := models.VerifyIdentityInput{
		VerificationMethod: models.VerificationMethodKnowledgeOfPII,
		FirstName:          "JOHN",
		LastName:           "SMITH",
		Address:            "222333 PEACHTREE PLACE",
		City:               ptr("ATLANTA"),
		PostalCode:         "30318",
		Country:            "US",
		DateOfBirth:        "1975-02-28",
	}

	got := VerifyIdentityInputToGraphQL(in)

	require.NotNil(t, got.VerificationMethod)
	assert.Equal(t, "KNOWLEDGE_OF_PII", *got.VerificationMethod)
	assert.Equal(t, "JOHN", got.FirstName)
	assert.Equal(t, "SMITH", got.LastName)
	assert.Equal(t, "222333 PEACHTREE PLACE", got.Address)
	assert.Equal(t, "ATLANTA", *got.City)
	assert.Nil(t, got.State)
	assert.Equal(t, "30318", got.PostalCode)
	assert.Equal(t, "US", got.Country)
	assert.Equal(t, "1975-02-28", got.DateOfBirth)

	in.VerificationMethod = ""
	assert.Nil(t, VerifyIdentityInputToGraphQL(in).VerificationMethod)
}

func TestVerifyIdentityDocumentInputToGraphQL(t *testing.T) {
	in := models.VerifyIdentityDocumentInput{
		VerificationMethod: models.VerificationMethodGovernmentID,
		ImageBase64:        "ZnJvbnQ=",
		BackImageBase64:    "YmFjaw==",
		Country:            "US",
		DocumentType:       models.DocumentTypeDriverLicense,
	}

	got := VerifyIdentityDocumentInputToGraphQL(in)

	assert.Equal(t, "GOVERNMENT_ID", *got.VerificationMethod)
	assert.Equal(t, "ZnJvbnQ=", got.ImageBase64)
	assert.Equal(t, "YmFjaw==", got.BackImageBase64)
	assert.Nil(t, got.FaceImageBase64)
	assert.Equal(t, "driverLicense", got.DocumentType)

	in.FaceImageBase64 = ptr("not-even-base64")
	in.VerificationMethod = ""
	got = VerifyIdentityDocumentInputToGraphQL(in)
	assert.Equal(t, "not-even-base64", *got.FaceImageBase64)
	assert.Nil(t, got.VerificationMethod)
}
