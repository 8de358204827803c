package transformers

import (
	"time"

	"secureid/internal/verification/models"
	"secureid/internal/verification/wire"
)

// VerifiedIdentityToEntity maps a wire record to the client entity.
//
// Timestamps are epoch milliseconds. Absent and null both map to nil; any
// number, including zero, maps to that instant so that records from services
// encoding "never verified" as epoch zero keep their wire value.
func VerifiedIdentityToEntity(graphql wire.VerifiedIdentity) (*models.VerifiedIdentity, error) {
	method, err := VerificationMethodToEntity(graphql.VerificationMethod)
	if err != nil {
		return nil, err
	}
	status, err := DocumentVerificationStatusToEntity(graphql.DocumentVerificationStatus)
	if err != nil {
		return nil, err
	}

	var required *models.VerificationMethod
	if graphql.RequiredVerificationMethod != nil {
		m, err := VerificationMethodToEntity(*graphql.RequiredVerificationMethod)
		if err != nil {
			return nil, err
		}
		required = &m
	}

	var docTypes []models.DocumentType
	if graphql.AcceptableDocumentTypes != nil {
		docTypes = make([]models.DocumentType, 0, len(graphql.AcceptableDocumentTypes))
		for _, t := range graphql.AcceptableDocumentTypes {
			dt, err := DocumentTypeToEntity(t)
			if err != nil {
				return nil, err
			}
			docTypes = append(docTypes, dt)
		}
	}

	return &models.VerifiedIdentity{
		Owner:                       graphql.Owner,
		Verified:                    graphql.Verified,
		VerifiedAt:                  epochMsToTime(graphql.VerifiedAtEpochMs),
		VerificationMethod:          method,
		CanAttemptVerificationAgain: graphql.CanAttemptVerificationAgain,
		IDScanURL:                   graphql.IDScanURL,
		RequiredVerificationMethod:  required,
		AcceptableDocumentTypes:     docTypes,
		DocumentVerificationStatus:  status,
		VerificationLastAttemptedAt: epochMsToTime(graphql.VerificationLastAttemptedAtEpochMs),
	}, nil
}

// CapabilitiesToEntity maps the capabilities payload.
func CapabilitiesToEntity(graphql wire.IdentityVerificationCapabilities) models.Capabilities {
	countries := graphql.SupportedCountries
	if countries == nil {
		countries = []string{}
	}
	return models.Capabilities{
		SupportedCountries:            countries,
		FaceImageRequiredWithDocument: graphql.FaceImageRequiredWithDocument,
	}
}

func epochMsToTime(ms *float64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(int64(*ms)).UTC()
	return &t
}
