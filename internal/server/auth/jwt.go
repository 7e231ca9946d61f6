// Package auth extracts the caller identity from bearer tokens issued by
// the identity provider.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/umeduck/quack-note/internal/common"
)

// Verifier resolves a bearer token into the caller's account id (the
// token's subject claim). Implementations decide how much of the token to
// trust.
type Verifier interface {
	Subject(tokenString string) (string, error)
}

// UnverifiedDecoder decodes the token without checking its signature and
// trusts the subject claim as-is.
//
// This matches the upstream deployment where an API gateway in front of
// the service has already verified the token. Anywhere tokens arrive
// unchecked, swap in a Verifier that validates the signature against the
// provider's published JWKS before trusting claims.
type UnverifiedDecoder struct{}

func (UnverifiedDecoder) Subject(tokenString string) (string, error) {
	claims := jwt.MapClaims{}

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorUnauthorized, err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("%w: sub claim is missing", common.ErrorUnauthorized)
	}
	return sub, nil
}
