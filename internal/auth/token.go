package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"strings"
	"time"

	"github.com/abhisekadhikari/burningsawals/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenManager issues and authenticates bearer tokens. Claims are signed with
// an HMAC secret, then the compact JWS is encrypted under an RSA-wrapped
// AES-256-GCM key so holders of the token cannot read the claims.
type TokenManager struct {
	secret     string
	expiry     time.Duration
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
}

// NewTokenManager parses the PEM-encoded RSA private key and returns a ready
// manager. An unparsable or missing key is a startup failure.
func NewTokenManager(secret, privateKeyPEM string, expiry time.Duration) (*TokenManager, error) {
	key, err := parsePrivateKey(privateKeyPEM)
	if err != nil {
		return nil, err
	}

	return &TokenManager{
		secret:     secret,
		expiry:     expiry,
		privateKey: key,
		publicKey:  &key.PublicKey,
	}, nil
}

func parsePrivateKey(pemStr string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(pemStr))
	if block == nil {
		return nil, fmt.Errorf("token private key is not valid PEM")
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token private key: %w", err)
	}

	rsaKey, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("token private key is not an RSA key")
	}
	return rsaKey, nil
}

// Issue produces the double-wrapped bearer token for a user identity.
func (tm *TokenManager) Issue(userID, phoneNumber, email string) (string, error) {
	signed, err := tm.Sign(userID, phoneNumber, email)
	if err != nil {
		return "", err
	}
	return tm.Encrypt(signed)
}

// Sign builds and HMAC-signs the claims payload as a compact JWS.
func (tm *TokenManager) Sign(userID, phoneNumber, email string) (string, error) {
	now := time.Now()
	claims := &models.TokenClaims{
		PhoneNumber: phoneNumber,
		Email:       email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userID,
			Issuer:    models.TokenIssuer,
			Audience:  jwt.ClaimStrings{models.TokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(tm.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Encrypt wraps a compact JWS into the opaque bearer representation: a random
// AES-256-GCM key encrypts the JWS, RSA-OAEP wraps the key, and the three
// parts (wrapped key, nonce, ciphertext) are emitted base64url dot-joined.
func (tm *TokenManager) Encrypt(signed string) (string, error) {
	cek := make([]byte, 32)
	if _, err := rand.Read(cek); err != nil {
		return "", fmt.Errorf("failed to generate content key: %w", err)
	}

	wrappedKey, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, tm.publicKey, cek, nil)
	if err != nil {
		return "", fmt.Errorf("failed to wrap content key: %w", err)
	}

	block, err := aes.NewCipher(cek)
	if err != nil {
		return "", fmt.Errorf("failed to init cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to init gcm: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, []byte(signed), nil)

	enc := base64.RawURLEncoding
	return enc.EncodeToString(wrappedKey) + "." +
		enc.EncodeToString(nonce) + "." +
		enc.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt, recovering the compact JWS.
func (tm *TokenManager) Decrypt(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", models.ErrUnauthorized
	}

	enc := base64.RawURLEncoding
	wrappedKey, err := enc.DecodeString(parts[0])
	if err != nil {
		return "", models.ErrUnauthorized
	}
	nonce, err := enc.DecodeString(parts[1])
	if err != nil {
		return "", models.ErrUnauthorized
	}
	ciphertext, err := enc.DecodeString(parts[2])
	if err != nil {
		return "", models.ErrUnauthorized
	}

	cek, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, tm.privateKey, wrappedKey, nil)
	if err != nil {
		return "", models.ErrUnauthorized
	}

	block, err := aes.NewCipher(cek)
	if err != nil {
		return "", models.ErrUnauthorized
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", models.ErrUnauthorized
	}
	if len(nonce) != gcm.NonceSize() {
		return "", models.ErrUnauthorized
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", models.ErrUnauthorized
	}

	return string(plaintext), nil
}

// Verify parses and validates a compact JWS, including signature, expiry and
// the fixed issuer/audience pair.
func (tm *TokenManager) Verify(signed string) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}

	token, err := jwt.ParseWithClaims(signed, claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(tm.secret), nil
		},
		jwt.WithIssuer(models.TokenIssuer),
		jwt.WithAudience(models.TokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, models.ErrUnauthorized
	}

	return claims, nil
}

// Authenticate reverses Issue. Every failure, at either the decryption or the
// signature layer, collapses to ErrUnauthorized so callers cannot tell which
// check rejected the token.
func (tm *TokenManager) Authenticate(token string) (*models.TokenClaims, error) {
	signed, err := tm.Decrypt(token)
	if err != nil {
		return nil, models.ErrUnauthorized
	}
	return tm.Verify(signed)
}
