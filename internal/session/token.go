package session

import (
	"github.com/golang-jwt/jwt/v5"

	dErrors "caselink/pkg/domain-errors"
)

// tokenClaims is the slice of the access token payload the client cares
// about: the expiry and any application role claims.
type tokenClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// decodeTokenClaims reads the token payload without verifying the signature.
// The client is not the token's validator, the backend is; it only needs
// the advisory exp and roles claims. A token that does not parse is treated
// as a recoverable acquisition failure, never a panic.
func decodeTokenClaims(raw string) (*tokenClaims, error) {
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "malformed access token")
	}
	return &claims, nil
}
