package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"fmt"

	"github.com/abhisekadhikari/burningsawals/internal/models"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// PBKDF2 parameters for OTP digests. The code space is only 10^6, so the
	// derivation has to be slow enough that an offline sweep of a leaked
	// store is expensive.
	HashIterations = 12000
	HashKeyLength  = 64
	SaltLength     = 16
)

// HashOTP derives the salted digest stored in place of the plaintext code.
// Deterministic for a given (code, salt) pair.
func HashOTP(code string, salt []byte) ([]byte, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: empty code", models.ErrBadRequest)
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("%w: empty salt", models.ErrBadRequest)
	}

	return pbkdf2.Key([]byte(code), salt, HashIterations, HashKeyLength, sha512.New), nil
}

// GenerateSalt produces a cryptographically random salt, unique per call.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// VerifyOTP recomputes the digest of code under salt and compares it to the
// stored digest in constant time.
func VerifyOTP(code string, salt, storedHash []byte) (bool, error) {
	computed, err := HashOTP(code, salt)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(computed, storedHash) == 1, nil
}
