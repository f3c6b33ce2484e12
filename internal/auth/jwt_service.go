package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"mfchat/internal/model"
)

var (
	// ErrInvalidToken is returned when a token fails signature, expiry,
	// issuer or audience checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenDisabled is returned when a structurally valid token is absent
	// from or revoked in the ledger.
	ErrTokenDisabled = errors.New("token has been disabled")
)

// Claims represents the JWT claims carried by a session token. The subject
// claim is the user id.
type Claims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// JWTService signs and validates session tokens. The signing key is fixed at
// construction and never rotated at runtime.
type JWTService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewJWTService creates a JWT service.
func NewJWTService(secret, issuer, audience string, ttl time.Duration) *JWTService {
	return &JWTService{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
	}
}

// Issue mints a signed token for the user.
func (s *JWTService) Issue(user *model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate checks signature, expiry, issuer and audience and returns the claims.
func (s *JWTService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyIssuer(s.issuer, s.issuer != "") {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyAudience(s.audience, s.audience != "") {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SubjectID parses the subject claim as a user id.
func (c *Claims) SubjectID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}
