package testutil

import (
	"time"

	"github.com/google/uuid"

	"secureid/internal/verification/models"
	"secureid/internal/verification/wire"
)

// TestOwners provides fixed owner subjects for deterministic test data.
var TestOwners = struct {
	Owner1 string
	Owner2 string
}{
	Owner1: uuid.MustParse("11111111-1111-1111-1111-111111111111").String(),
	Owner2: uuid.MustParse("22222222-2222-2222-2222-222222222222").String(),
}

// ValidIdentity returns PII the simulator verifies.
func ValidIdentity() models.VerifyIdentityInput {
	return models.VerifyIdentityInput{
		FirstName:   "JOHN",
		LastName:    "SMITH",
		Address:     "222333 PEACHTREE PLACE",
		PostalCode:  "30318",
		Country:     "US",
		DateOfBirth: "1975-02-28",
	}
}

// ValidIdentityWithCityState returns ValidIdentity with the optional fields set.
func ValidIdentityWithCityState() models.VerifyIdentityInput {
	in := ValidIdentity()
	city, state := "ATLANTA", "GA"
	in.City = &city
	in.State = &state
	return in
}

// InvalidIdentity returns PII the simulator refuses to verify, leaving document
// verification as the next step.
func InvalidIdentity() models.VerifyIdentityInput {
	in := ValidIdentity()
	in.FirstName = "JACK"
	return in
}

// WireIdentityBuilder provides a fluent interface for building wire records.
type WireIdentityBuilder struct {
	record *wire.VerifiedIdentity
}

// NewWireIdentityBuilder starts from the record of a user who has never
// attempted verification.
func NewWireIdentityBuilder() *WireIdentityBuilder {
	zero := 0.0
	required := string(models.VerificationMethodKnowledgeOfPII)
	return &WireIdentityBuilder{
		record: &wire.VerifiedIdentity{
			Owner:                              TestOwners.Owner1,
			VerifiedAtEpochMs:                  &zero,
			VerificationMethod:                 string(models.VerificationMethodNone),
			CanAttemptVerificationAgain:        true,
			RequiredVerificationMethod:         &required,
			AcceptableDocumentTypes:            []string{},
			DocumentVerificationStatus:         string(models.DocumentVerificationStatusNotRequired),
			VerificationLastAttemptedAtEpochMs: &zero,
		},
	}
}

func (b *WireIdentityBuilder) WithOwner(owner string) *WireIdentityBuilder {
	b.record.Owner = owner
	return b
}

// VerifiedBy marks the record verified at t using method.
func (b *WireIdentityBuilder) VerifiedBy(method models.VerificationMethod, t time.Time) *WireIdentityBuilder {
	ms := float64(t.UnixMilli())
	b.record.Verified = true
	b.record.VerifiedAtEpochMs = &ms
	b.record.VerificationMethod = string(method)
	b.record.CanAttemptVerificationAgain = false
	return b
}

func (b *WireIdentityBuilder) AttemptedAt(t time.Time) *WireIdentityBuilder {
	ms := float64(t.UnixMilli())
	b.record.VerificationLastAttemptedAtEpochMs = &ms
	return b
}

func (b *WireIdentityBuilder) WithoutVerifiedAt() *WireIdentityBuilder {
	b.record.VerifiedAtEpochMs = nil
	return b
}

func (b *WireIdentityBuilder) WithAcceptableDocumentTypes(types ...models.DocumentType) *WireIdentityBuilder {
	b.record.AcceptableDocumentTypes = make([]string, 0, len(types))
	for _, t := range types {
		b.record.AcceptableDocumentTypes = append(b.record.AcceptableDocumentTypes, string(t))
	}
	return b
}

func (b *WireIdentityBuilder) WithRequiredMethod(method models.VerificationMethod) *WireIdentityBuilder {
	m := string(method)
	b.record.RequiredVerificationMethod = &m
	return b
}

func (b *WireIdentityBuilder) WithDocumentStatus(status models.DocumentVerificationStatus) *WireIdentityBuilder {
	b.record.DocumentVerificationStatus = string(status)
	return b
}

func (b *WireIdentityBuilder) WithIDScanURL(url string) *WireIdentityBuilder {
	b.record.IDScanURL = &url
	return b
}

// WithRawVerificationMethod sets a wire value without checking it.
func (b *WireIdentityBuilder) WithRawVerificationMethod(method string) *WireIdentityBuilder {
	b.record.VerificationMethod = method
	return b
}

func (b *WireIdentityBuilder) Build() *wire.VerifiedIdentity {
	return b.record
}
