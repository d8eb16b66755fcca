package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisekadhikari/burningsawals/internal/models"
)

func TestHashOTP_Deterministic(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)

	first, err := HashOTP("482913", salt)
	require.NoError(t, err)
	second, err := HashOTP("482913", salt)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, HashKeyLength)
}

func TestHashOTP_DifferentSaltDifferentDigest(t *testing.T) {
	saltA, err := GenerateSalt()
	require.NoError(t, err)
	saltB, err := GenerateSalt()
	require.NoError(t, err)

	hashA, err := HashOTP("482913", saltA)
	require.NoError(t, err)
	hashB, err := HashOTP("482913", saltB)
	require.NoError(t, err)

	assert.NotEqual(t, hashA, hashB)
}

func TestHashOTP_EmptyInputs(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)

	_, err = HashOTP("", salt)
	assert.ErrorIs(t, err, models.ErrBadRequest)

	_, err = HashOTP("482913", nil)
	assert.ErrorIs(t, err, models.ErrBadRequest)
}

func TestGenerateSalt_Unique(t *testing.T) {
	saltA, err := GenerateSalt()
	require.NoError(t, err)
	saltB, err := GenerateSalt()
	require.NoError(t, err)

	assert.Len(t, saltA, SaltLength)
	assert.NotEqual(t, saltA, saltB)
}

func TestVerifyOTP(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)
	hash, err := HashOTP("482913", salt)
	require.NoError(t, err)

	match, err := VerifyOTP("482913", salt, hash)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = VerifyOTP("482914", salt, hash)
	require.NoError(t, err)
	assert.False(t, match)
}
