package wire

// Operation names, also used as cache keys and metric labels.
const (
	OpGetIdentityVerificationCapabilities = "GetIdentityVerificationCapabilities"
	OpCheckIdentityVerification           = "CheckIdentityVerification"
	OpVerifyIdentity                      = "VerifyIdentity"
	OpVerifyIdentityDocument              = "VerifyIdentityDocument"
	OpCaptureAndVerifyIdentityDocument    = "CaptureAndVerifyIdentityDocument"
)

const verifiedIdentityFragment = `
fragment VerifiedIdentity on VerifiedIdentity {
  owner
  verified
  verifiedAtEpochMs
  verificationMethod
  canAttemptVerificationAgain
  idScanUrl
  requiredVerificationMethod
  acceptableDocumentTypes
  documentVerificationStatus
  verificationLastAttemptedAtEpochMs
}`

const GetIdentityVerificationCapabilitiesQuery = `query GetIdentityVerificationCapabilities {
  getIdentityVerificationCapabilities {
    supportedCountries
    faceImageRequiredWithDocument
  }
}`

const CheckIdentityVerificationQuery = `query CheckIdentityVerification {
  checkIdentityVerification {
    ...VerifiedIdentity
  }
}` + verifiedIdentityFragment

const VerifyIdentityMutation = `mutation VerifyIdentity($input: VerifyIdentityInput!) {
  verifyIdentity(input: $input) {
    ...VerifiedIdentity
  }
}` + verifiedIdentityFragment

const VerifyIdentityDocumentMutation = `mutation VerifyIdentityDocument($input: VerifyIdentityDocumentInput!) {
  verifyIdentityDocument(input: $input) {
    ...VerifiedIdentity
  }
}` + verifiedIdentityFragment

const CaptureAndVerifyIdentityDocumentMutation = `mutation CaptureAndVerifyIdentityDocument($input: VerifyIdentityDocumentInput!) {
  captureAndVerifyIdentityDocument(input: $input) {
    ...VerifiedIdentity
  }
}` + verifiedIdentityFragment
