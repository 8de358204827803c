// Package simulator is an in-process stand-in for the identity verification
// service. It answers the same GraphQL operations with predictable results:
// JOHN SMITH passes PII verification, JPEG and PNG documents pass document
// verification, and everything else fails.
package simulator

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"secureid/internal/platform/config"
	"secureid/internal/verification/models"
	"secureid/internal/verification/transformers"
	"secureid/internal/verification/wire"
	"secureid/pkg/domain"
	graphqlErrors "secureid/pkg/graphql-errors"
	platformstrings "secureid/pkg/platform/strings"
)

// maxAgeYears bounds plausible dates of birth.
const maxAgeYears = 120

var retryDocumentTypes = []models.DocumentType{models.DocumentTypeDriverLicense, models.DocumentTypeIDCard}

// Config controls the simulated service's behavior.
type Config struct {
	SupportedCountries []string
	FaceImageRequired  bool
	// IDScanBaseURL enables idScanUrl on failed PII attempts when set.
	IDScanBaseURL string
	// MaxAttempts is the number of failed attempts after which
	// canAttemptVerificationAgain turns false.
	MaxAttempts int
}

// ConfigFrom maps the simulator process configuration.
func ConfigFrom(cfg config.Simulator) Config {
	return Config{
		SupportedCountries: cfg.SupportedCountries,
		FaceImageRequired:  cfg.FaceImageRequired,
		IDScanBaseURL:      cfg.IDScanBaseURL,
		MaxAttempts:        cfg.MaxAttempts,
	}
}

// Simulator is safe for concurrent use.
type Simulator struct {
	cfg    Config
	store  *store
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Simulator)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Simulator) {
		s.now = now
	}
}

func New(cfg Config, opts ...Option) *Simulator {
	cfg.SupportedCountries = platformstrings.DedupeAndTrimUpper(cfg.SupportedCountries)
	if len(cfg.SupportedCountries) == 0 {
		cfg.SupportedCountries = []string{"US"}
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	cfg.IDScanBaseURL = strings.TrimRight(cfg.IDScanBaseURL, "/")

	s := &Simulator{
		cfg:   cfg,
		store: newStore(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

func serviceError(errorType, format string, args ...any) error {
	return graphqlErrors.AppSyncError{ErrorType: errorType, Message: fmt.Sprintf(format, args...)}
}

func (s *Simulator) Capabilities(_ context.Context) *wire.IdentityVerificationCapabilities {
	return &wire.IdentityVerificationCapabilities{
		SupportedCountries:            slices.Clone(s.cfg.SupportedCountries),
		FaceImageRequiredWithDocument: s.cfg.FaceImageRequired,
	}
}

// Check returns the owner's record; owners never seen before get a fresh one.
func (s *Simulator) Check(_ context.Context, owner string) *wire.VerifiedIdentity {
	return s.store.view(owner, s.cfg.MaxAttempts)
}

// VerifyIdentity attempts knowledge of PII verification.
func (s *Simulator) VerifyIdentity(ctx context.Context, owner string, input wire.VerifyIdentityInput) (*wire.VerifiedIdentity, error) {
	if err := s.checkMethod(input.VerificationMethod, models.VerificationMethodKnowledgeOfPII); err != nil {
		return nil, err
	}
	if err := s.checkCountry(input.Country); err != nil {
		return nil, err
	}
	if err := s.checkDateOfBirth(input.DateOfBirth); err != nil {
		return nil, err
	}

	var result *wire.VerifiedIdentity
	err := s.store.update(owner, func(rec *record) error {
		if rec.verified {
			result = rec.toWire(s.cfg.MaxAttempts)
			return nil
		}
		if !rec.canAttemptAgain(s.cfg.MaxAttempts) {
			return serviceError(transformers.ErrorTypeUpdateFailed, "No further verification attempts are permitted")
		}

		now := s.now()
		rec.lastAttemptedAt = now
		rec.piiAttempted = true

		if strings.EqualFold(strings.TrimSpace(input.FirstName), "JOHN") &&
			strings.EqualFold(strings.TrimSpace(input.LastName), "SMITH") {
			rec.verified = true
			rec.verifiedAt = now
			rec.method = models.VerificationMethodKnowledgeOfPII
			result = rec.toWire(s.cfg.MaxAttempts)
			return nil
		}

		rec.failedAttempts++
		result = rec.toWire(s.cfg.MaxAttempts)
		// Only the response points the caller at document verification; the
		// stored record keeps requiring PII.
		result.AcceptableDocumentTypes = documentTypeNames(retryDocumentTypes)
		if s.cfg.IDScanBaseURL != "" {
			url := s.cfg.IDScanBaseURL + "/" + uuid.NewString()
			result.IDScanURL = &url
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "simulated PII verification",
		"verified", result.Verified,
		"can_attempt_again", result.CanAttemptVerificationAgain,
	)
	return result, nil
}

// VerifyIdentityDocument attempts document verification following a PII attempt.
func (s *Simulator) VerifyIdentityDocument(ctx context.Context, owner string, input wire.VerifyIdentityDocumentInput) (*wire.VerifiedIdentity, error) {
	return s.verifyDocument(ctx, owner, input, true)
}

// CaptureAndVerifyIdentityDocument attempts document verification without a prior PII attempt.
func (s *Simulator) CaptureAndVerifyIdentityDocument(ctx context.Context, owner string, input wire.VerifyIdentityDocumentInput) (*wire.VerifiedIdentity, error) {
	return s.verifyDocument(ctx, owner, input, false)
}

func (s *Simulator) verifyDocument(ctx context.Context, owner string, input wire.VerifyIdentityDocumentInput, requirePriorAttempt bool) (*wire.VerifiedIdentity, error) {
	if err := s.checkMethod(input.VerificationMethod, models.VerificationMethodGovernmentID); err != nil {
		return nil, err
	}
	if err := s.checkCountry(input.Country); err != nil {
		return nil, err
	}
	if _, err := transformers.DocumentTypeToEntity(input.DocumentType); err != nil {
		return nil, serviceError(graphqlErrors.TypeInvalidArgument, "Unsupported document type %s", input.DocumentType)
	}
	if s.cfg.FaceImageRequired && (input.FaceImageBase64 == nil || *input.FaceImageBase64 == "") {
		return nil, serviceError(transformers.ErrorTypeRequiredIdentityInformationNotProvided, "A face image is required with the identity document")
	}

	var result *wire.VerifiedIdentity
	err := s.store.update(owner, func(rec *record) error {
		if requirePriorAttempt && !rec.piiAttempted {
			return serviceError(transformers.ErrorTypeUpdateFailed, "Identity verification using PII has not been attempted")
		}
		if rec.verified {
			result = rec.toWire(s.cfg.MaxAttempts)
			return nil
		}
		if !rec.canAttemptAgain(s.cfg.MaxAttempts) {
			return serviceError(transformers.ErrorTypeUpdateFailed, "No further verification attempts are permitted")
		}

		now := s.now()
		rec.lastAttemptedAt = now
		rec.requiredMethod = models.VerificationMethodGovernmentID

		if readable(input.ImageBase64) && readable(input.BackImageBase64) {
			rec.verified = true
			rec.verifiedAt = now
			rec.method = models.VerificationMethodGovernmentID
			rec.documentStatus = models.DocumentVerificationStatusSucceeded
			rec.acceptable = []models.DocumentType{}
		} else {
			rec.failedAttempts++
			rec.documentStatus = models.DocumentVerificationStatusDocumentUnreadable
			rec.acceptable = slices.Clone(retryDocumentTypes)
		}
		result = rec.toWire(s.cfg.MaxAttempts)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "simulated document verification",
		"verified", result.Verified,
		"document_status", result.DocumentVerificationStatus,
	)
	return result, nil
}

func (s *Simulator) checkMethod(method *string, want models.VerificationMethod) error {
	if method == nil || *method == string(want) {
		return nil
	}
	return serviceError(transformers.ErrorTypeUnsupportedVerificationMethod, "Verification method %s is not supported by this operation", *method)
}

func (s *Simulator) checkCountry(country string) error {
	if slices.Contains(s.cfg.SupportedCountries, country) {
		return nil
	}
	return serviceError(transformers.ErrorTypeUnsupportedCountry, "Country %q is not supported", country)
}

func (s *Simulator) checkDateOfBirth(dateOfBirth string) error {
	dob, err := domain.ParseDateOfBirth(dateOfBirth)
	if err != nil {
		return serviceError(transformers.ErrorTypeInvalidAge, "Date of birth %q is not a valid date", dateOfBirth)
	}
	if !domain.IsPlausibleDateOfBirth(dob, s.now(), maxAgeYears) {
		return serviceError(transformers.ErrorTypeImplausibleAge, "Date of birth %s gives an implausible age", dateOfBirth)
	}
	return nil
}

func documentTypeNames(types []models.DocumentType) []string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	return names
}
