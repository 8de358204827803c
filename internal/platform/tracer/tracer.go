// Package tracer provides a lightweight tracing abstraction for the client.
//
// The facade and transport emit spans through the Tracer interface so that they
// do not depend on OpenTelemetry APIs directly.
//
// Implementations:
//   - NoopTracer: for tests and callers without a tracing pipeline
//   - OTelTracer: OpenTelemetry adapter
package tracer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span. A non-nil err marks the span as failed.
	// End must be called exactly once, typically via defer.
	End(err error)

	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a new span. The returned context carries the span and should
	// be passed to child operations.
	//
	// Example:
	//   ctx, span := tr.Start(ctx, tracer.SpanVerifyIdentity,
	//       tracer.String(tracer.AttrCountry, "US"),
	//   )
	//   defer span.End(err)
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// HashOwner returns a short SHA-256 digest of an owner subject so traces can be
// correlated without recording the subject itself.
func HashOwner(owner string) string {
	if owner == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(owner))
	return hex.EncodeToString(hash[:8])
}

// Span names.
const (
	SpanGetCapabilities                  = "idv.get_capabilities"
	SpanCheckIdentityVerification        = "idv.check_identity_verification"
	SpanVerifyIdentity                   = "idv.verify_identity"
	SpanVerifyIdentityDocument           = "idv.verify_identity_document"
	SpanCaptureAndVerifyIdentityDocument = "idv.capture_and_verify_identity_document"
	SpanReset                            = "idv.reset"
	SpanGraphQLRequest                   = "graphql.request"
)

// Attribute keys.
const (
	AttrOperation    = "graphql.operation"
	AttrFetchPolicy  = "graphql.fetch_policy"
	AttrCacheHit     = "cache.hit"
	AttrStatusCode   = "http.status_code"
	AttrRequestID    = "request_id"
	AttrOwnerHash    = "owner_hash"
	AttrCountry      = "country"
	AttrDocumentType = "document_type"
	AttrVerified     = "verified"
	AttrErrorCode    = "error_code"

	AttrVerificationMethod = "verification_method"
)

// Event names.
const (
	EventPolicyApplied = "policy.applied"
	EventCacheCleared  = "cache.cleared"
)
