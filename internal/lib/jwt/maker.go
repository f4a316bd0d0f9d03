package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims extends the registered JWT claims with the user id, the
// user role and the key of the server-side session the token binds to.
type CustomClaims struct {
	UserID               string `json:"user_id"`
	Role                 string `json:"role"`
	SessionKey           string `json:"session_key"`
	jwt.RegisteredClaims        // ExpiresAt, IssuedAt and friends
}

// GenerateToken creates a signed token for the given user and session.
func (j *MakerImpl) GenerateToken(userID, role, sessionKey string) (string, error) {
	claims := CustomClaims{
		UserID:     userID,
		Role:       role,
		SessionKey: sessionKey,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken verifies the signature and validity of a token and returns
// its claims.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
