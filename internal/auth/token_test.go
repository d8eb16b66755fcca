package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisekadhikari/burningsawals/internal/models"
)

const testSecret = "test-secret-key-at-least-16-chars"

func testPrivateKeyPEM(t *testing.T) string {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	return string(pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}))
}

func newTokenManagerForTest(t *testing.T, expiry time.Duration) *TokenManager {
	t.Helper()

	tm, err := NewTokenManager(testSecret, testPrivateKeyPEM(t), expiry)
	require.NoError(t, err)
	return tm
}

func TestNewTokenManager_InvalidPEM(t *testing.T) {
	_, err := NewTokenManager(testSecret, "not a pem block", time.Hour)
	assert.Error(t, err)
}

func TestTokenManager_IssueAuthenticate_RoundTrip(t *testing.T) {
	tm := newTokenManagerForTest(t, time.Hour)

	token, err := tm.Issue("user_123", "9876543210", "asha@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tm.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, "user_123", claims.Subject)
	assert.Equal(t, "9876543210", claims.PhoneNumber)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, models.TokenIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenManager_EncryptDecrypt_RoundTrip(t *testing.T) {
	tm := newTokenManagerForTest(t, time.Hour)

	signed, err := tm.Sign("user_123", "9876543210", "")
	require.NoError(t, err)

	encrypted, err := tm.Encrypt(signed)
	require.NoError(t, err)
	assert.NotEqual(t, signed, encrypted)

	decrypted, err := tm.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, signed, decrypted)
}

func TestTokenManager_Encrypt_Nondeterministic(t *testing.T) {
	tm := newTokenManagerForTest(t, time.Hour)

	signed, err := tm.Sign("user_123", "9876543210", "")
	require.NoError(t, err)

	first, err := tm.Encrypt(signed)
	require.NoError(t, err)
	second, err := tm.Encrypt(signed)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTokenManager_Authenticate_Expired(t *testing.T) {
	tm := newTokenManagerForTest(t, -time.Minute)

	token, err := tm.Issue("user_123", "9876543210", "")
	require.NoError(t, err)

	_, err = tm.Authenticate(token)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestTokenManager_Authenticate_Tampered(t *testing.T) {
	tm := newTokenManagerForTest(t, time.Hour)

	token, err := tm.Issue("user_123", "9876543210", "")
	require.NoError(t, err)

	tampered := []byte(token)
	tampered[len(tampered)-1] ^= 0x01

	_, err = tm.Authenticate(string(tampered))
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestTokenManager_Authenticate_Garbage(t *testing.T) {
	tm := newTokenManagerForTest(t, time.Hour)

	for _, token := range []string{"", "abc", "a.b", "a.b.c.d", "!!!.!!!.!!!"} {
		_, err := tm.Authenticate(token)
		assert.ErrorIs(t, err, models.ErrUnauthorized)
	}
}

func TestTokenManager_Authenticate_WrongSecret(t *testing.T) {
	keyPEM := testPrivateKeyPEM(t)

	issuer, err := NewTokenManager(testSecret, keyPEM, time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokenManager("another-secret-of-sufficient-len", keyPEM, time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue("user_123", "9876543210", "")
	require.NoError(t, err)

	_, err = verifier.Authenticate(token)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestTokenManager_Authenticate_WrongKey(t *testing.T) {
	issuer := newTokenManagerForTest(t, time.Hour)
	verifier := newTokenManagerForTest(t, time.Hour)

	token, err := issuer.Issue("user_123", "9876543210", "")
	require.NoError(t, err)

	// Same secret, different RSA key: decryption must fail closed
	_, err = verifier.Authenticate(token)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}
