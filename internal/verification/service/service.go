// Package service is the identity verification client facade. Every operation
// checks the session first, applies the verification method policy to writes,
// and maps wire payloads to entities.
package service

import (
	"context"
	"log/slog"
	"time"

	"secureid/internal/platform/tracer"
	"secureid/internal/verification/metrics"
	"secureid/internal/verification/models"
	"secureid/internal/verification/policy"
	"secureid/internal/verification/transformers"
	"secureid/internal/verification/wire"
	dErrors "secureid/pkg/domain-errors"
)

// APIClient invokes the service's GraphQL operations.
type APIClient interface {
	GetCapabilities(ctx context.Context, option models.QueryOption) (*wire.IdentityVerificationCapabilities, error)
	CheckIdentityVerification(ctx context.Context, option models.QueryOption) (*wire.VerifiedIdentity, error)
	VerifyIdentity(ctx context.Context, input wire.VerifyIdentityInput) (*wire.VerifiedIdentity, error)
	VerifyIdentityDocument(ctx context.Context, input wire.VerifyIdentityDocumentInput) (*wire.VerifiedIdentity, error)
	CaptureAndVerifyIdentityDocument(ctx context.Context, input wire.VerifyIdentityDocumentInput) (*wire.VerifiedIdentity, error)
	Reset(ctx context.Context) error
}

// Session reports whether a user is signed in.
type Session interface {
	IsSignedIn(ctx context.Context) (bool, error)
}

// Operation names used for logs and metrics.
const (
	opListSupportedCountries           = "listSupportedCountries"
	opIsFaceImageRequired              = "isFaceImageRequired"
	opGetCapabilities                  = "getCapabilities"
	opCheckIdentityVerification        = "checkIdentityVerification"
	opVerifyIdentity                   = policy.OperationVerifyIdentity
	opVerifyIdentityDocument           = policy.OperationVerifyIdentityDocument
	opCaptureAndVerifyIdentityDocument = policy.OperationCaptureAndVerifyIdentityDocument
	opReset                            = "reset"
)

// Service is safe for concurrent use; it holds no state beyond its collaborators.
type Service struct {
	api     APIClient
	session Session
	logger  *slog.Logger
	tracer  tracer.Tracer
	metrics *metrics.Metrics
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(api APIClient, session Session, opts ...Option) *Service {
	s := &Service{
		api:     api,
		session: session,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.tracer == nil {
		s.tracer = tracer.NewNoop()
	}
	return s
}

// ListSupportedCountries returns the ISO 3166-1 alpha-2 codes of countries the
// service can verify identities in.
func (s *Service) ListSupportedCountries(ctx context.Context, option models.QueryOption) (countries []string, err error) {
	ctx, done := s.begin(ctx, opListSupportedCountries, tracer.SpanGetCapabilities)
	defer func() { done(err) }()

	caps, err := s.capabilities(ctx, option, "Listing supported countries for identity verification")
	if err != nil {
		return nil, err
	}
	return caps.SupportedCountries, nil
}

// IsFaceImageRequired reports whether document verification needs a face image.
func (s *Service) IsFaceImageRequired(ctx context.Context, option models.QueryOption) (required bool, err error) {
	ctx, done := s.begin(ctx, opIsFaceImageRequired, tracer.SpanGetCapabilities)
	defer func() { done(err) }()

	caps, err := s.capabilities(ctx, option, "Determining requirement to provide face image with ID document")
	if err != nil {
		return false, err
	}
	return caps.FaceImageRequiredWithDocument, nil
}

// GetCapabilities returns every service advertised capability in one call.
func (s *Service) GetCapabilities(ctx context.Context, option models.QueryOption) (caps *models.Capabilities, err error) {
	ctx, done := s.begin(ctx, opGetCapabilities, tracer.SpanGetCapabilities)
	defer func() { done(err) }()

	return s.capabilities(ctx, option, "Retrieving identity verification capabilities")
}

// capabilities logs msg once the caller is known to be signed in.
func (s *Service) capabilities(ctx context.Context, option models.QueryOption, msg string) (*models.Capabilities, error) {
	if err := s.requireSignedIn(ctx); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, msg)
	raw, err := s.api.GetCapabilities(ctx, option)
	if err != nil {
		return nil, err
	}
	caps := transformers.CapabilitiesToEntity(*raw)
	return &caps, nil
}

// CheckIdentityVerification returns the signed in user's verification state.
func (s *Service) CheckIdentityVerification(ctx context.Context, option models.QueryOption) (identity *models.VerifiedIdentity, err error) {
	ctx, done := s.begin(ctx, opCheckIdentityVerification, tracer.SpanCheckIdentityVerification)
	defer func() { done(err) }()

	if err := s.requireSignedIn(ctx); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Retrieving current identity verification status")
	raw, err := s.api.CheckIdentityVerification(ctx, option)
	if err != nil {
		return nil, err
	}
	return s.toEntity(ctx, raw)
}

// VerifyIdentity verifies the signed in user by knowledge of PII. An unset
// verification method defaults to KNOWLEDGE_OF_PII; any other method is rejected
// before the service is contacted.
func (s *Service) VerifyIdentity(ctx context.Context, input models.VerifyIdentityInput) (identity *models.VerifiedIdentity, err error) {
	ctx, done := s.begin(ctx, opVerifyIdentity, tracer.SpanVerifyIdentity,
		tracer.String(tracer.AttrCountry, input.Country),
	)
	defer func() { done(err) }()

	if err := s.requireSignedIn(ctx); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Verifying identity using PII")
	input, err = policy.ApplyIdentity(input)
	if err != nil {
		return nil, err
	}
	s.policyApplied(ctx, input.VerificationMethod)
	raw, err := s.api.VerifyIdentity(ctx, transformers.VerifyIdentityInputToGraphQL(input))
	if err != nil {
		return nil, err
	}
	identity, err = s.toEntity(ctx, raw)
	if err != nil {
		return nil, err
	}
	s.recordOutcome(opVerifyIdentity, identity)
	return identity, nil
}

// VerifyIdentityDocument verifies the signed in user by government ID images,
// following a prior PII attempt. An unset method defaults to GOVERNMENT_ID.
func (s *Service) VerifyIdentityDocument(ctx context.Context, input models.VerifyIdentityDocumentInput) (*models.VerifiedIdentity, error) {
	return s.verifyDocument(ctx, opVerifyIdentityDocument, tracer.SpanVerifyIdentityDocument,
		"Verifying identity using document", input, s.api.VerifyIdentityDocument)
}

// CaptureAndVerifyIdentityDocument has the service extract the identity fields
// from the document images and verify them, without a prior PII attempt.
func (s *Service) CaptureAndVerifyIdentityDocument(ctx context.Context, input models.VerifyIdentityDocumentInput) (*models.VerifiedIdentity, error) {
	return s.verifyDocument(ctx, opCaptureAndVerifyIdentityDocument, tracer.SpanCaptureAndVerifyIdentityDocument,
		"Capturing identity from document and verifying", input, s.api.CaptureAndVerifyIdentityDocument)
}

type documentCall func(context.Context, wire.VerifyIdentityDocumentInput) (*wire.VerifiedIdentity, error)

func (s *Service) verifyDocument(
	ctx context.Context,
	operation, span, message string,
	input models.VerifyIdentityDocumentInput,
	call documentCall,
) (identity *models.VerifiedIdentity, err error) {
	ctx, done := s.begin(ctx, operation, span,
		tracer.String(tracer.AttrCountry, input.Country),
		tracer.String(tracer.AttrDocumentType, input.DocumentType.String()),
	)
	defer func() { done(err) }()

	if err := s.requireSignedIn(ctx); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, message)
	input, err = policy.ApplyDocument(operation, input)
	if err != nil {
		return nil, err
	}
	s.policyApplied(ctx, input.VerificationMethod)
	raw, err := call(ctx, transformers.VerifyIdentityDocumentInputToGraphQL(input))
	if err != nil {
		return nil, err
	}
	identity, err = s.toEntity(ctx, raw)
	if err != nil {
		return nil, err
	}
	s.recordOutcome(operation, identity)
	return identity, nil
}

// Reset clears cached responses. It needs no session so that it can run after
// sign out.
func (s *Service) Reset(ctx context.Context) (err error) {
	ctx, done := s.begin(ctx, opReset, tracer.SpanReset)
	defer func() { done(err) }()

	s.logger.InfoContext(ctx, "Resetting client state")
	if err := s.api.Reset(ctx); err != nil {
		return err
	}
	spanFrom(ctx).AddEvent(tracer.EventCacheCleared)
	return nil
}

func (s *Service) requireSignedIn(ctx context.Context) error {
	signedIn, err := s.session.IsSignedIn(ctx)
	if err != nil {
		return err
	}
	if !signedIn {
		return dErrors.New(dErrors.CodeNotSignedIn, "not signed in")
	}
	return nil
}

func (s *Service) toEntity(ctx context.Context, raw *wire.VerifiedIdentity) (*models.VerifiedIdentity, error) {
	identity, err := transformers.VerifiedIdentityToEntity(*raw)
	if err != nil {
		return nil, err
	}
	spanFrom(ctx).SetAttributes(
		tracer.String(tracer.AttrOwnerHash, tracer.HashOwner(identity.Owner)),
		tracer.Bool(tracer.AttrVerified, identity.Verified),
	)
	return identity, nil
}

func (s *Service) policyApplied(ctx context.Context, method models.VerificationMethod) {
	spanFrom(ctx).AddEvent(tracer.EventPolicyApplied, tracer.String(tracer.AttrVerificationMethod, method.String()))
}

func (s *Service) recordOutcome(operation string, identity *models.VerifiedIdentity) {
	if s.metrics != nil {
		s.metrics.RecordOutcome(operation, identity.Verified)
	}
}

type spanKey struct{}

// spanFrom returns the operation span opened by begin, or a no-op span.
func spanFrom(ctx context.Context) tracer.Span {
	if span, ok := ctx.Value(spanKey{}).(tracer.Span); ok {
		return span
	}
	_, span := tracer.NewNoop().Start(ctx, "")
	return span
}

// begin opens a span for operation and returns the function that closes it,
// logging and counting the result.
func (s *Service) begin(ctx context.Context, operation, spanName string, attrs ...tracer.Attribute) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, spanName, attrs...)
	ctx = context.WithValue(ctx, spanKey{}, span)

	return ctx, func(err error) {
		code := "ok"
		if err != nil {
			code = string(dErrors.CodeOf(err))
			span.SetAttributes(tracer.String(tracer.AttrErrorCode, code))
			s.logger.ErrorContext(ctx, "identity verification operation failed",
				"operation", operation,
				"error_code", code,
				"error", err,
			)
		}
		if s.metrics != nil {
			s.metrics.ObserveOperation(operation, code, time.Since(start).Seconds())
		}
		span.End(err)
	}
}
