package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/leaderboard/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// SubjectKey is the context key for the authenticated token subject.
	SubjectKey contextKey = "subject"
	// RequestIDKey is the context key for the per-call request id.
	RequestIDKey contextKey = "request_id"
)

// GetSubject extracts the token subject from the context.
// Returns empty string if the call was not authenticated.
func GetSubject(ctx context.Context) string {
	subject, _ := ctx.Value(SubjectKey).(string)
	return subject
}

// RequireAdmin returns an interceptor that demands a valid admin token for
// every procedure for which protected returns true. Other procedures pass
// through untouched. A nil jwtManager means admin login is disabled and every
// protected call is refused.
func RequireAdmin(jwtManager *auth.JWTManager, protected func(procedure string) bool) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if !protected(req.Spec().Procedure) {
				return next(ctx, req)
			}
			if jwtManager == nil {
				return nil, connect.NewError(connect.CodePermissionDenied, auth.ErrNotConfigured)
			}

			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			ctx = context.WithValue(ctx, SubjectKey, claims.Subject)
			return next(ctx, req)
		}
	}
}
