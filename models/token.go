package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the claim set carried by platform identity tokens.
//
// It extends the standard RFC 7519 registered claims with the platform
// role. The subject claim holds the user identifier.
type TokenClaims struct {
	jwt.RegisteredClaims

	// Role is the platform role granted to the token holder
	// (see the Role* constants).
	Role string `json:"role"`
}

// Token wraps a verified JWT with the identity extracted from its claims.
type Token struct {
	// Token is the underlying parsed JWT. Excluded from JSON because only
	// the compact string form is meaningful outside the issuing process.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// Identity is the principal described by the token's sub and role claims.
	Identity Identity `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
