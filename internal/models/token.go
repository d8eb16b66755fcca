package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Fixed issuer/audience strings embedded in every bearer token.
const (
	TokenIssuer   = "burningsawals"
	TokenAudience = "burningsawals-api"
)

// TokenClaims is the signed claims payload carried inside the encrypted
// bearer token.
type TokenClaims struct {
	PhoneNumber string `json:"phone_number,omitempty"`
	Email       string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
