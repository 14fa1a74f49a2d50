package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"toptop/internal/httputil"
	"toptop/internal/identity"
	"toptop/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// ViewerIDKey is the context key for the authenticated account id
const ViewerIDKey contextKey = "viewer_id"

// AccountSyncer writes verified identity claims into the account store.
type AccountSyncer interface {
	Sync(ctx context.Context, id model.Identity) error
}

// AuthMiddleware rejects requests without a valid identity token.
// Checks the Authorization header first, then the access_token cookie.
func AuthMiddleware(jwtSecret string, syncer AccountSyncer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				httputil.WriteUnauthorized(w, "Missing authentication token")
				return
			}

			id, err := identity.Verify(tokenString, jwtSecret)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					httputil.WriteUnauthorized(w, "Access token has expired")
					return
				}
				httputil.WriteUnauthorized(w, "Invalid authentication token")
				return
			}

			ctx, ok := attachViewer(w, r, syncer, id)
			if !ok {
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthMiddleware attaches the viewer when a valid token is present.
// Missing or invalid tokens continue anonymously.
func OptionalAuthMiddleware(jwtSecret string, syncer AccountSyncer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := identity.Verify(tokenString, jwtSecret)
			if err != nil {
				logrus.Debugf("[Auth] Ignoring invalid token on optional route path=%s err=%v", r.URL.Path, err)
				next.ServeHTTP(w, r)
				return
			}

			ctx, ok := attachViewer(w, r, syncer, id)
			if !ok {
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func attachViewer(w http.ResponseWriter, r *http.Request, syncer AccountSyncer, id model.Identity) (context.Context, bool) {
	if syncer != nil {
		if err := syncer.Sync(r.Context(), id); err != nil {
			httputil.WriteDomainError(w, "Auth", err)
			return nil, false
		}
	}
	return context.WithValue(r.Context(), ViewerIDKey, id.Subject), true
}

func extractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if token := strings.TrimSpace(parts[1]); token != "" {
				return token
			}
		}
	}
	if cookie, err := r.Cookie("access_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}

// GetViewerIDFromContext returns the authenticated account id, if any.
func GetViewerIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ViewerIDKey).(string)
	return id, ok && id != ""
}

// Viewer returns the account id as the optional viewer the services take.
func Viewer(ctx context.Context) *string {
	if id, ok := GetViewerIDFromContext(ctx); ok {
		return &id
	}
	return nil
}
