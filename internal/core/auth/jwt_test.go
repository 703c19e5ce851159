package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "bookswap", TTL: time.Hour}

	tok, err := j.Issue("uid123", "USER")
	require.NoError(t, err)

	claims, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "uid123", claims.UID)
	assert.Equal(t, "USER", claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "bookswap", TTL: time.Hour}
	tok, err := j.Issue("uid123", "USER")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("different"), Issuer: "bookswap", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "someone-else", TTL: time.Hour}
	tok, err := j.Issue("uid123", "USER")
	require.NoError(t, err)

	verifier := &JWTer{Secret: []byte("test-secret"), Issuer: "bookswap", TTL: time.Hour}
	_, err = verifier.Parse(tok)
	assert.Error(t, err)
}
