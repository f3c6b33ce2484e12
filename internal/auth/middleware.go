package auth

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "mfchat/internal/errors"
)

const (
	claimsContextKey   = "user"
	rawTokenContextKey = "raw_token"
)

// SessionMiddleware validates the bearer token on every request: signature
// and expiry first, then the revocation ledger. A request is admitted only
// when both pass; the subject claim becomes the authenticated identity.
//
// The ledger check and the downstream handler are not atomic with respect to
// a concurrent logout of the same token; that narrow race is accepted.
func SessionMiddleware(jwtService *JWTService, ledger LedgerInterface) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: claimsContextKey,
		ParseTokenFunc: func(c echo.Context, authToken string) (interface{}, error) {
			claims, err := jwtService.Validate(authToken)
			if err != nil {
				return nil, err
			}
			valid, err := ledger.IsValid(c.Request().Context(), authToken)
			if err != nil {
				return nil, err
			}
			if !valid {
				return nil, ErrTokenDisabled
			}
			c.Set(rawTokenContextKey, authToken)
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			msg := "invalid or expired token"
			switch {
			case errors.Is(err, ErrTokenDisabled):
				msg = ErrTokenDisabled.Error()
			case c.Request().Header.Get(echo.HeaderAuthorization) != "":
				// a token was presented but failed validation; surface the reason
				if inner := innermost(err); inner != nil {
					msg = inner.Error()
				}
			}
			return c.JSON(http.StatusUnauthorized, apperrors.Fail(msg))
		},
	})
}

// ClaimsFromContext returns the validated claims set by SessionMiddleware.
func ClaimsFromContext(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(claimsContextKey).(*Claims)
	return claims, ok
}

// UserIDFromContext returns the authenticated user id.
func UserIDFromContext(c echo.Context) (uuid.UUID, error) {
	claims, ok := ClaimsFromContext(c)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	return claims.SubjectID()
}

// RawTokenFromContext returns the bearer token exactly as presented, for
// ledger operations keyed by the full signed token.
func RawTokenFromContext(c echo.Context) string {
	token, _ := c.Get(rawTokenContextKey).(string)
	return token
}

func innermost(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
