package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_SignAndVerify(t *testing.T) {
	s := NewJWTSigner("test-secret", "sitewatch")

	token, err := s.SignAccessToken(42, "USER", 15*time.Minute)
	require.NoError(t, err)

	claims, err := s.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "USER", claims.Role)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.Exp, 5*time.Second)
}

func TestJWT_UniquePerIssue(t *testing.T) {
	s := NewJWTSigner("test-secret", "sitewatch")

	a, err := s.SignAccessToken(42, "USER", time.Minute)
	require.NoError(t, err)
	b, err := s.SignAccessToken(42, "USER", time.Minute)
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "jti must make same-second tokens distinct")
}

func TestJWT_RejectsExpired(t *testing.T) {
	s := NewJWTSigner("test-secret", "sitewatch")

	token, err := s.SignAccessToken(42, "USER", -time.Minute)
	require.NoError(t, err)

	_, err = s.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestJWT_RejectsWrongSecret(t *testing.T) {
	signer := NewJWTSigner("secret-a", "sitewatch")
	verifier := NewJWTSigner("secret-b", "sitewatch")

	token, err := signer.SignAccessToken(42, "USER", time.Minute)
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestJWT_RejectsWrongIssuer(t *testing.T) {
	signer := NewJWTSigner("test-secret", "someone-else")
	verifier := NewJWTSigner("test-secret", "sitewatch")

	token, err := signer.SignAccessToken(42, "USER", time.Minute)
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestJWT_RejectsAlgNone(t *testing.T) {
	s := NewJWTSigner("test-secret", "sitewatch")

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject: "42",
		Issuer:  "sitewatch",
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.VerifyAccessToken(token)
	assert.Error(t, err)
}
