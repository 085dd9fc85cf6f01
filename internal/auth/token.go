// Package auth provides the credential capabilities used by the service:
// signed bearer tokens and password digests.
package auth

import (
	"fmt"
	"time"

	"github.com/atinyakov/TaskTracker/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTIssuer issues and verifies stateless HS256-signed bearer tokens.
// Nothing is persisted; a token is valid as long as its signature checks out
// and it has not expired.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTIssuer returns an issuer signing with secret. A non-positive ttl
// produces tokens without an expiry claim.
func NewJWTIssuer(secret []byte, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: secret, ttl: ttl, now: time.Now}
}

// Issue returns a fresh token whose subject is userID.
func (i *JWTIssuer) Issue(userID string) (string, error) {
	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:  userID,
		IssuedAt: jwt.NewNumericDate(now),
		ID:       uuid.NewString(),
	}
	if i.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(i.ttl))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify checks the token signature and expiry and returns the subject.
// Every failure, expiry included, is reported as common.ErrUnauthenticated.
func (i *JWTIssuer) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", common.ErrUnauthenticated
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return "", common.ErrUnauthenticated
	}
	if claims.Subject == "" {
		return "", common.ErrUnauthenticated
	}
	return claims.Subject, nil
}
