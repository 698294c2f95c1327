package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/golang-jwt/jwt"
	"github.com/ldelaney/rolodex/server/auth/key"
	"github.com/stretchr/testify/assert"
)

func newTestKeyPair(t *testing.T) *key.KeyPair {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	assert.Nil(t, err)

	return &key.KeyPair{
		Kid:        "test-key-id",
		PrivateKey: privateKey,
		PublicKey:  &privateKey.PublicKey,
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery")
	assert.Nil(t, err)
	assert.NotEqual(t, "correct-horse-battery", hash)

	assert.True(t, CheckPasswordHash("correct-horse-battery", hash))
	assert.False(t, CheckPasswordHash("wrong-horse-battery", hash))
}

func TestSessionTokenRoundTrip(t *testing.T) {
	keyPair := newTestKeyPair(t)

	token, err := EncodeSessionToken(SessionTokenClaims{
		Username:       "johndoe",
		StandardClaims: jwt.StandardClaims{Subject: "42"},
	}, keyPair)
	assert.Nil(t, err)

	claims, err := DecodeSessionToken(token, keyPair)
	assert.Nil(t, err)
	assert.Equal(t, "johndoe", claims.Username)
	assert.Equal(t, "42", claims.Subject)
}

func TestDecodeSessionTokenRejectsWrongKey(t *testing.T) {
	token, err := EncodeSessionToken(SessionTokenClaims{
		StandardClaims: jwt.StandardClaims{Subject: "42"},
	}, newTestKeyPair(t))
	assert.Nil(t, err)

	_, err = DecodeSessionToken(token, newTestKeyPair(t))
	assert.NotNil(t, err)

	_, err = DecodeSessionToken("not-a-token", newTestKeyPair(t))
	assert.NotNil(t, err)
}
