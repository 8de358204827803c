package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"secureid/pkg/secureid"
)

func TestToIdentityOutput(t *testing.T) {
	t.Run("never verified omits verifiedAt", func(t *testing.T) {
		epoch := time.UnixMilli(0)
		required := secureid.VerificationMethodKnowledgeOfPII
		out := toIdentityOutput(&secureid.VerifiedIdentity{
			Owner:                       "alice",
			VerifiedAt:                  &epoch,
			VerificationMethod:          secureid.VerificationMethodNone,
			CanAttemptVerificationAgain: true,
			RequiredVerificationMethod:  &required,
			DocumentVerificationStatus:  secureid.DocumentVerificationStatusNotRequired,
		})

		assert.Empty(t, out.VerifiedAt)
		assert.Equal(t, "NONE", out.VerificationMethod)
		assert.Equal(t, "KNOWLEDGE_OF_PII", out.RequiredVerificationMethod)
		assert.Equal(t, []string{}, out.AcceptableDocumentTypes)
	})

	t.Run("verified by document", func(t *testing.T) {
		at := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
		url := "https://scan.example.com/abc"
		out := toIdentityOutput(&secureid.VerifiedIdentity{
			Verified:                    true,
			VerifiedAt:                  &at,
			VerificationMethod:          secureid.VerificationMethodGovernmentID,
			IDScanURL:                   &url,
			AcceptableDocumentTypes:     []secureid.DocumentType{secureid.DocumentTypePassport},
			DocumentVerificationStatus:  secureid.DocumentVerificationStatusSucceeded,
			VerificationLastAttemptedAt: &at,
		})

		assert.Equal(t, "2026-10-17T09:30:00Z", out.VerifiedAt)
		assert.Equal(t, url, out.IDScanURL)
		assert.Equal(t, []string{"passport"}, out.AcceptableDocumentTypes)
		assert.Equal(t, "succeeded", out.DocumentVerificationStatus)
	})
}

func TestCommandsAreListed(t *testing.T) {
	assert.Len(t, commandOrder, len(commands))
	for _, name := range commandOrder {
		assert.Contains(t, commands, name)
	}
}
