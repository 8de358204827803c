package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	graphqlErrors "secureid/pkg/graphql-errors"
	"secureid/pkg/platform/httputil"
)

// TokenVerifier validates an access token and returns its claims.
type TokenVerifier interface {
	Verify(tokenString string) (*jwt.RegisteredClaims, error)
}

type contextKeySubject struct{}

// GetSubject retrieves the authenticated token subject from the context.
func GetSubject(ctx context.Context) string {
	subject, ok := ctx.Value(contextKeySubject{}).(string)
	if !ok {
		return ""
	}
	return subject
}

// WithSubject stores an authenticated subject, for handler tests that skip RequireToken.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, contextKeySubject{}, subject)
}

// RequireToken rejects requests without a valid token in the Authorization
// header. The header carries the raw token; a "Bearer " prefix is accepted.
func RequireToken(verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token := strings.TrimSpace(r.Header.Get("Authorization"))
			token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
			if token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", GetRequestID(ctx),
				)
				httputil.WriteGraphQLError(w, http.StatusUnauthorized, graphqlErrors.TypeInvalidToken, "Missing Authorization header")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil || claims.Subject == "" {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				httputil.WriteGraphQLError(w, http.StatusUnauthorized, graphqlErrors.TypeInvalidToken, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSubject(ctx, claims.Subject)))
		})
	}
}
