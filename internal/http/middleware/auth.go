package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"entregas/internal/auth"
	"entregas/internal/domain"
	"entregas/internal/logx"
)

type ctxKey int

const userKey ctxKey = iota

type tokenValidator interface {
	Validate(raw string) (auth.TokenIdentity, error)
}

type userLoader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Authenticate validates the bearer token and loads the acting identity into
// the request context. Missing, malformed, expired and tampered tokens all
// answer the same 401.
func Authenticate(logger logx.Logger, tokens tokenValidator, users userLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				unauthorized(w)
				return
			}

			identity, err := tokens.Validate(raw)
			if err != nil {
				unauthorized(w)
				return
			}

			// identity may have been removed after issuance
			u, err := users.GetByID(r.Context(), identity.UserID)
			if err != nil || u == nil {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext returns the authenticated user, or nil outside the
// Authenticate middleware.
func UserFromContext(ctx context.Context) *domain.User {
	u, _ := ctx.Value(userKey).(*domain.User)
	return u
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(prefix):])
	return token, token != ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}
