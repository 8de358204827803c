package models

// VerificationMethod is the mechanism by which a user's identity is or must be confirmed.
// Values equal their wire representation.
type VerificationMethod string

const (
	// VerificationMethodNone is reported when a user's identity has not yet been verified.
	VerificationMethodNone VerificationMethod = "NONE"
	// VerificationMethodKnowledgeOfPII verifies by knowledge of personally identifiable information.
	VerificationMethodKnowledgeOfPII VerificationMethod = "KNOWLEDGE_OF_PII"
	// VerificationMethodGovernmentID verifies by images of a government issued identity document.
	VerificationMethodGovernmentID VerificationMethod = "GOVERNMENT_ID"
)

// String returns the wire form of the method.
func (m VerificationMethod) String() string { return string(m) }

// IsZero reports whether no method was specified.
func (m VerificationMethod) IsZero() bool { return m == "" }

// Ptr returns a pointer to a copy of m, for optional fields.
func (m VerificationMethod) Ptr() *VerificationMethod { return &m }

// DocumentType identifies the kind of government issued identity document presented.
type DocumentType string

const (
	DocumentTypeDriverLicense DocumentType = "driverLicense"
	DocumentTypePassport      DocumentType = "passport"
	DocumentTypeIDCard        DocumentType = "idCard"
)

func (t DocumentType) String() string { return string(t) }

// DocumentVerificationStatus tracks the state of the document verification process.
type DocumentVerificationStatus string

const (
	// DocumentVerificationStatusNotRequired means no identity document is required.
	DocumentVerificationStatusNotRequired DocumentVerificationStatus = "notRequired"
	// DocumentVerificationStatusNotAttempted means a document is required but none was uploaded yet.
	DocumentVerificationStatusNotAttempted DocumentVerificationStatus = "notAttempted"
	// DocumentVerificationStatusPending means uploaded images are being processed.
	DocumentVerificationStatusPending DocumentVerificationStatus = "pending"
	// DocumentVerificationStatusDocumentUnreadable means the images could not be read,
	// e.g. too small, too dim, reflections or incomplete.
	DocumentVerificationStatusDocumentUnreadable DocumentVerificationStatus = "documentUnreadable"
	// DocumentVerificationStatusFailed means the images could not be verified.
	DocumentVerificationStatusFailed DocumentVerificationStatus = "failed"
	// DocumentVerificationStatusSucceeded means the images were verified.
	DocumentVerificationStatusSucceeded DocumentVerificationStatus = "succeeded"
)

func (s DocumentVerificationStatus) String() string { return string(s) }

// QueryOption controls whether reads are served from the local cache.
type QueryOption string

const (
	// QueryOptionCacheOnly returns results from the local cache only.
	QueryOptionCacheOnly QueryOption = "cache-only"
	// QueryOptionRemoteOnly fetches from the service and ignores cached entries.
	QueryOptionRemoteOnly QueryOption = "network-only"
)
