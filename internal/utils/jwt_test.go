package utils

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func TestAccessTokenRoundTrip(t *testing.T) {
	key := testKey(t)

	access, err := NewAccessToken(key, 42, 3600)
	require.NoError(t, err)
	require.NotEmpty(t, access.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), access.Exp, 5*time.Second)

	uid, err := VerifyAccessToken(access.Token, &key.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), uid)
}

func TestVerifyAccessTokenExpired(t *testing.T) {
	key := testKey(t)

	// A negative TTL produces a token that is already past its exp claim.
	access, err := NewAccessToken(key, 7, -10)
	require.NoError(t, err)

	_, err = VerifyAccessToken(access.Token, &key.PublicKey)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyAccessTokenWrongKey(t *testing.T) {
	signing := testKey(t)
	other := testKey(t)

	access, err := NewAccessToken(signing, 7, 3600)
	require.NoError(t, err)

	_, err = VerifyAccessToken(access.Token, &other.PublicKey)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyAccessTokenGarbage(t *testing.T) {
	key := testKey(t)

	_, err := VerifyAccessToken("not.a.token", &key.PublicKey)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
