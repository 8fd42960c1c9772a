package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"DOIT_BACK-END/internal/auth"
	"DOIT_BACK-END/internal/common"
	"DOIT_BACK-END/internal/config"
	"DOIT_BACK-END/internal/logging"
	"DOIT_BACK-END/internal/models"
	"DOIT_BACK-END/internal/utils"
)

// UserLoader resolves the account a token was issued for.
type UserLoader interface {
	LoadByEmail(ctx context.Context, email string) (*models.User, error)
}

// publicPrefixes are reachable without a bearer token.
var publicPrefixes = []string{
	"/api/auth/",
	"/swagger/",
	"/healthz",
	"/livez",
	"/readyz",
}

func isPublic(path string) bool {
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// AuthMiddleware validates JWT tokens in the Authorization header.
// A missing header answers 403; a bad, expired or orphaned token answers 401.
func AuthMiddleware(next http.Handler, users UserLoader, cfg *config.JWTConfig, log logging.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublic(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		tokenString, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			utils.WriteError(r.Context(), w, log, common.ErrMissingToken)
			return
		}

		claims, err := auth.ValidateToken(tokenString, cfg)
		if err != nil {
			log.Debug(r.Context(), "rejected bearer token", "error", err)
			utils.WriteError(r.Context(), w, log, common.ErrInvalidToken)
			return
		}

		user, err := users.LoadByEmail(r.Context(), claims.Email())
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				utils.WriteError(r.Context(), w, log, common.ErrInvalidToken)
				return
			}
			utils.WriteError(r.Context(), w, log, err)
			return
		}
		// the email now belongs to a different account
		if user.ID != claims.UserID {
			utils.WriteError(r.Context(), w, log, common.ErrInvalidToken)
			return
		}

		ctx := utils.WithIdentity(r.Context(), utils.Identity{UserID: user.ID, Email: user.Email})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Extract token from "Bearer <token>"
func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
