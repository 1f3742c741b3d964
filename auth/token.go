package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenService signs and verifies bearer tokens carrying a user id.
// The signing secret is injected once at construction and never changes.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret []byte) *TokenService {
	return &TokenService{secret: secret}
}

// Issue signs a token with the user id as subject. Tokens carry no expiry;
// they stay valid until removed from the user's session list. The jti keeps
// two logins in the same second from producing identical session entries.
func (ts *TokenService) Issue(userID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:   "accounts",
		Subject:  userID,
		IssuedAt: jwt.NewNumericDate(time.Now().UTC()),
		ID:       xid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ts.secret)
}

// Validate verifies the signature and returns the user id claim. It does not
// check revocation; that is the caller's job.
func (ts *TokenService) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return ts.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
