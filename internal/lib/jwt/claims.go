// Package jwt implements generation and parsing of the credential
// tokens handed to clients after login/registration. Besides the user
// identity the claims carry the session key, so the middleware can
// restore the matching server-side session on every request.
package jwt

import (
	"time"
)

// Maker describes generation and parsing of credential tokens.
type Maker interface {
	GenerateToken(userID, role, sessionKey string) (string, error)
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl implements Maker with an HMAC secret and a token TTL.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewMaker returns a MakerImpl signing with the given secret, issuing
// tokens valid for ttl.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
