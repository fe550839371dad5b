package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"entregas/internal/apperr"
	"entregas/internal/domain"
)

// Claims is the JWT payload: registered claims plus the actor's role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIdentity is the identity recovered from a validated token.
type TokenIdentity struct {
	UserID int64
	Role   domain.Role
}

// TokenService mints and validates signed, time-bounded identity assertions.
// Tokens are stateless: once issued they stay valid until expiry.
type TokenService struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewTokenService creates a TokenService signing with secret for the given
// validity window.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		key: []byte(secret),
		ttl: ttl,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Issue produces a signed HS256 token asserting the user's id and role.
func (s *TokenService) Issue(userID int64, role domain.Role) (string, error) {
	now := s.now()
	claims := &Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// Validate verifies signature and expiry and recovers the identity.
// Every failure mode collapses to apperr.ErrUnauthorized so the boundary
// cannot leak which check rejected the token.
func (s *TokenService) Validate(raw string) (TokenIdentity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return TokenIdentity{}, apperr.ErrUnauthorized
	}

	uid, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || uid <= 0 {
		return TokenIdentity{}, apperr.ErrUnauthorized
	}
	role := domain.Role(claims.Role)
	if !role.Valid() {
		return TokenIdentity{}, apperr.ErrUnauthorized
	}
	return TokenIdentity{UserID: uid, Role: role}, nil
}
