package simulator

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"secureid/internal/platform/health"
	"secureid/internal/platform/metrics"
	"secureid/internal/platform/middleware"
	"secureid/internal/verification/wire"
	graphqlErrors "secureid/pkg/graphql-errors"
	"secureid/pkg/platform/httputil"
)

const requestTimeout = 30 * time.Second

// Handler serves the simulator's GraphQL endpoint. Operations are dispatched by
// operation name; the query document is not parsed.
type Handler struct {
	sim     *Simulator
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type HandlerOption func(*Handler)

// WithMetrics records served operations and rejected tokens.
func WithMetrics(m *metrics.Metrics) HandlerOption {
	return func(h *Handler) {
		h.metrics = m
	}
}

func NewHandler(sim *Simulator, logger *slog.Logger, opts ...HandlerOption) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &Handler{sim: sim, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the GraphQL endpoint. Callers must install RequireToken first.
func (h *Handler) Register(r chi.Router) {
	r.Post("/graphql", h.HandleGraphQL)
}

// NewRouter wires the GraphQL endpoint and health probes with middleware.
func NewRouter(h *Handler, verifier middleware.TokenVerifier, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(requestTimeout))

	health.New().Register(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Use(h.countRejectedTokens)
		r.Use(middleware.RequireToken(verifier, logger))
		h.Register(r)
	})
	return r
}

type graphQLRequest struct {
	OperationName string          `json:"operationName"`
	Query         string          `json:"query"`
	Variables     json.RawMessage `json:"variables"`
}

func (h *Handler) HandleGraphQL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := httputil.DecodeJSON[graphQLRequest](w, r)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to decode GraphQL request",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteGraphQLError(w, http.StatusBadRequest, graphqlErrors.TypeDecoding, "Invalid GraphQL request body")
		return
	}

	started := time.Now()
	data, err := h.dispatch(ctx, middleware.GetSubject(ctx), req)
	if err != nil {
		var appSyncErr graphqlErrors.AppSyncError
		if !errors.As(err, &appSyncErr) {
			h.logger.ErrorContext(ctx, "simulated operation failed",
				"operation", req.OperationName,
				"error", err,
				"request_id", middleware.GetRequestID(ctx),
			)
			appSyncErr = graphqlErrors.AppSyncError{ErrorType: graphqlErrors.TypeServiceError, Message: "Internal service error"}
		}
		h.metrics.ObserveOperation(operationLabel(req.OperationName), appSyncErr.ErrorType, started)
		httputil.WriteJSON(w, http.StatusOK, httputil.GraphQLResponse{
			Errors: []graphqlErrors.AppSyncError{appSyncErr},
		})
		return
	}
	h.metrics.ObserveOperation(operationLabel(req.OperationName), "", started)
	httputil.WriteJSON(w, http.StatusOK, httputil.GraphQLResponse{Data: data})
}

func (h *Handler) countRejectedTokens(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		if ww.Status() == http.StatusUnauthorized {
			h.metrics.IncrementAuthFailures()
		}
	})
}

// operationLabel bounds metric cardinality to the known operations.
func operationLabel(name string) string {
	switch name {
	case wire.OpGetIdentityVerificationCapabilities,
		wire.OpCheckIdentityVerification,
		wire.OpVerifyIdentity,
		wire.OpVerifyIdentityDocument,
		wire.OpCaptureAndVerifyIdentityDocument:
		return name
	default:
		return "unknown"
	}
}

func (h *Handler) dispatch(ctx context.Context, owner string, req *graphQLRequest) (any, error) {
	switch req.OperationName {
	case wire.OpGetIdentityVerificationCapabilities:
		return wire.GetIdentityVerificationCapabilitiesData{
			GetIdentityVerificationCapabilities: h.sim.Capabilities(ctx),
		}, nil

	case wire.OpCheckIdentityVerification:
		return wire.CheckIdentityVerificationData{
			CheckIdentityVerification: h.sim.Check(ctx, owner),
		}, nil

	case wire.OpVerifyIdentity:
		input, err := decodeInput[wire.VerifyIdentityInput](req.Variables)
		if err != nil {
			return nil, err
		}
		identity, err := h.sim.VerifyIdentity(ctx, owner, input)
		if err != nil {
			return nil, err
		}
		return wire.VerifyIdentityData{VerifyIdentity: identity}, nil

	case wire.OpVerifyIdentityDocument:
		input, err := decodeInput[wire.VerifyIdentityDocumentInput](req.Variables)
		if err != nil {
			return nil, err
		}
		identity, err := h.sim.VerifyIdentityDocument(ctx, owner, input)
		if err != nil {
			return nil, err
		}
		return wire.VerifyIdentityDocumentData{VerifyIdentityDocument: identity}, nil

	case wire.OpCaptureAndVerifyIdentityDocument:
		input, err := decodeInput[wire.VerifyIdentityDocumentInput](req.Variables)
		if err != nil {
			return nil, err
		}
		identity, err := h.sim.CaptureAndVerifyIdentityDocument(ctx, owner, input)
		if err != nil {
			return nil, err
		}
		return wire.CaptureAndVerifyIdentityDocumentData{CaptureAndVerifyIdentityDocument: identity}, nil

	default:
		return nil, serviceError(graphqlErrors.TypeInvalidArgument, "Unknown operation %q", req.OperationName)
	}
}

func decodeInput[T any](raw json.RawMessage) (T, error) {
	var vars wire.InputVariables[T]
	if len(raw) == 0 {
		return vars.Input, serviceError(graphqlErrors.TypeInvalidArgument, "Missing input variable")
	}
	if err := json.Unmarshal(raw, &vars); err != nil {
		return vars.Input, serviceError(graphqlErrors.TypeInvalidArgument, "Invalid input variable: %v", err)
	}
	return vars.Input, nil
}
