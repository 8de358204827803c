package models

import "time"

// VerifiedIdentity is the current state of the signed in user's identity verification.
// It is a read-only projection rebuilt from every service response.
type VerifiedIdentity struct {
	// Owner is the subject of the user to whom this record pertains.
	Owner    string
	Verified bool
	// VerifiedAt is nil when the service reported no verification time.
	// Older service versions report epoch zero instead; see NeverVerified.
	VerifiedAt                  *time.Time
	VerificationMethod          VerificationMethod
	CanAttemptVerificationAgain bool
	// IDScanURL is present only while a document verification flow is in progress.
	IDScanURL *string
	// RequiredVerificationMethod is the method still needed to reach the verified state.
	RequiredVerificationMethod *VerificationMethod
	// AcceptableDocumentTypes is nil unless document verification is the required path.
	AcceptableDocumentTypes     []DocumentType
	DocumentVerificationStatus  DocumentVerificationStatus
	VerificationLastAttemptedAt *time.Time
}

// NeverVerified reports whether the record carries no verification time, under
// either service convention: an absent timestamp or epoch zero.
func (v VerifiedIdentity) NeverVerified() bool {
	return v.VerifiedAt == nil || v.VerifiedAt.UnixMilli() == 0
}

// VerifyIdentityInput carries the PII used for knowledge based verification.
type VerifyIdentityInput struct {
	// VerificationMethod must be empty or VerificationMethodKnowledgeOfPII.
	VerificationMethod VerificationMethod
	FirstName          string
	LastName           string
	Address            string
	City               *string
	State              *string
	PostalCode         string
	// Country is an ISO 3166-1 alpha-2 country code, e.g. US.
	Country     string
	DateOfBirth string
}

// VerifyIdentityDocumentInput carries base64 encoded images of a government ID document.
type VerifyIdentityDocumentInput struct {
	// VerificationMethod must be empty or VerificationMethodGovernmentID.
	VerificationMethod VerificationMethod
	// ImageBase64 is the front of the document.
	ImageBase64     string
	BackImageBase64 string
	// FaceImageBase64 is compared against the document photo when set.
	FaceImageBase64 *string
	Country         string
	DocumentType    DocumentType
}

// IDDocumentInfo locates the images needed to build a document verification
// request from the local filesystem. Images can be JPG, GIF or PNG.
type IDDocumentInfo struct {
	Country        string       `json:"country" validate:"required,iso3166_1_alpha2"`
	DocumentType   DocumentType `json:"documentType" validate:"required,oneof=driverLicense passport idCard"`
	FrontImagePath string       `json:"frontImagePath" validate:"required"`
	// BackImagePath may equal FrontImagePath for a passport.
	BackImagePath string `json:"backImagePath" validate:"required"`
	FaceImagePath string `json:"faceImagePath,omitempty"`
}

// Capabilities are service advertised parameters independent of any user's state.
type Capabilities struct {
	// SupportedCountries are ISO 3166-1 alpha-2 country codes.
	SupportedCountries            []string
	FaceImageRequiredWithDocument bool
}
