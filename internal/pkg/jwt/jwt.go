package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Verification failure reasons. All of them match errors.Is(err, ErrTokenInvalid)
// so callers can branch on the broad class and log the narrow reason.
var (
	ErrTokenInvalid      = errors.New("token is invalid")
	ErrTokenExpired      = fmt.Errorf("%w: token has expired", ErrTokenInvalid)
	ErrTokenMalformed    = fmt.Errorf("%w: token is malformed", ErrTokenInvalid)
	ErrTokenBadSignature = fmt.Errorf("%w: token signature mismatch", ErrTokenInvalid)
	ErrTokenWrongKind    = fmt.Errorf("%w: unexpected token kind", ErrTokenInvalid)
)

// Token kinds. A refresh token is only ever exchanged for a new pair,
// never accepted for a business operation.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

const issuer = "trip-planner"

// Claims represents the JWT claims. Roles are deliberately not embedded:
// authorization re-reads the user's current role set from storage so a
// role change takes effect without waiting for token expiry.
type Claims struct {
	UserID uint   `json:"user_id"`
	Kind   string `json:"kind"`
	jwt.RegisteredClaims
}

// GenerateAccessToken generates a signed access token for a user
func GenerateAccessToken(userID uint, username, secret string, lifetime time.Duration) (string, error) {
	return generate(userID, username, KindAccess, secret, lifetime)
}

// GenerateRefreshToken generates a signed refresh token for a user.
// Its lifetime must exceed the access lifetime (enforced by config).
func GenerateRefreshToken(userID uint, username, secret string, lifetime time.Duration) (string, error) {
	return generate(userID, username, KindRefresh, secret, lifetime)
}

func generate(userID uint, username, kind, secret string, lifetime time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyAccessToken verifies an access token and returns its claims.
// Refresh tokens are rejected identically to malformed ones.
func VerifyAccessToken(tokenString, secret string) (*Claims, error) {
	return verify(tokenString, KindAccess, secret)
}

// VerifyRefreshToken verifies a refresh token and returns its claims.
func VerifyRefreshToken(tokenString, secret string) (*Claims, error) {
	return verify(tokenString, KindRefresh, secret)
}

func verify(tokenString, kind, secret string) (*Claims, error) {
	// The clock is read once here; the expiry comparison inside the parser
	// uses this instant, so a token cannot expire mid-verification.
	now := time.Now()

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenBadSignature
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenBadSignature
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Kind != kind {
		return nil, ErrTokenWrongKind
	}
	if claims.Subject == "" {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// ExtractUsername returns the subject of a verified access token
func ExtractUsername(tokenString, secret string) (string, error) {
	claims, err := VerifyAccessToken(tokenString, secret)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ExtractUserID returns the user ID of a verified access token
func ExtractUserID(tokenString, secret string) (uint, error) {
	claims, err := VerifyAccessToken(tokenString, secret)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
