// Package wire holds the GraphQL shapes exchanged with the identity verification
// service. Field names and nullability mirror the service schema; nothing here
// is exposed to SDK callers.
package wire

// VerifiedIdentity is the service's verified identity record. Nullable scalars
// are pointers so that absent and null decode to nil.
type VerifiedIdentity struct {
	Owner                              string   `json:"owner"`
	Verified                           bool     `json:"verified"`
	VerifiedAtEpochMs                  *float64 `json:"verifiedAtEpochMs"`
	VerificationMethod                 string   `json:"verificationMethod"`
	CanAttemptVerificationAgain        bool     `json:"canAttemptVerificationAgain"`
	IDScanURL                          *string  `json:"idScanUrl"`
	RequiredVerificationMethod         *string  `json:"requiredVerificationMethod"`
	AcceptableDocumentTypes            []string `json:"acceptableDocumentTypes"`
	DocumentVerificationStatus         string   `json:"documentVerificationStatus"`
	VerificationLastAttemptedAtEpochMs *float64 `json:"verificationLastAttemptedAtEpochMs"`
}

// IdentityVerificationCapabilities is the payload of GetIdentityVerificationCapabilities.
type IdentityVerificationCapabilities struct {
	SupportedCountries            []string `json:"supportedCountries"`
	FaceImageRequiredWithDocument bool     `json:"faceImageRequiredWithDocument"`
}

// VerifyIdentityInput is the variable shape of the verifyIdentity mutation.
type VerifyIdentityInput struct {
	VerificationMethod *string `json:"verificationMethod,omitempty"`
	FirstName          string  `json:"firstName"`
	LastName           string  `json:"lastName"`
	Address            string  `json:"address"`
	City               *string `json:"city,omitempty"`
	State              *string `json:"state,omitempty"`
	PostalCode         string  `json:"postalCode"`
	Country            string  `json:"country"`
	DateOfBirth        string  `json:"dateOfBirth"`
}

// VerifyIdentityDocumentInput is the variable shape of the document mutations.
type VerifyIdentityDocumentInput struct {
	VerificationMethod *string `json:"verificationMethod,omitempty"`
	ImageBase64        string  `json:"imageBase64"`
	BackImageBase64    string  `json:"backImageBase64"`
	FaceImageBase64    *string `json:"faceImageBase64,omitempty"`
	Country            string  `json:"country"`
	DocumentType       string  `json:"documentType"`
}

// Query and mutation result envelopes. A nil field means the service returned
// no usable payload.
type (
	GetIdentityVerificationCapabilitiesData struct {
		GetIdentityVerificationCapabilities *IdentityVerificationCapabilities `json:"getIdentityVerificationCapabilities"`
	}
	CheckIdentityVerificationData struct {
		CheckIdentityVerification *VerifiedIdentity `json:"checkIdentityVerification"`
	}
	VerifyIdentityData struct {
		VerifyIdentity *VerifiedIdentity `json:"verifyIdentity"`
	}
	VerifyIdentityDocumentData struct {
		VerifyIdentityDocument *VerifiedIdentity `json:"verifyIdentityDocument"`
	}
	CaptureAndVerifyIdentityDocumentData struct {
		CaptureAndVerifyIdentityDocument *VerifiedIdentity `json:"captureAndVerifyIdentityDocument"`
	}
)

// InputVariables wraps mutation input under the schema's single `input` argument.
type InputVariables[T any] struct {
	Input T `json:"input"`
}
