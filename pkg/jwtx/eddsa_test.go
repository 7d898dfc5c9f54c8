package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	signer, err := NewEphemeralSigner()
	require.NoError(t, err)

	claims := NewAccessClaims("alice", "courier", time.Hour, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := signer.Verifier("courier").Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username())
	require.Equal(t, "courier", got.Issuer)
	require.NotEmpty(t, got.ID, "jti should be set")
}

func TestVerify_WrongIssuer(t *testing.T) {
	signer, err := NewEphemeralSigner()
	require.NoError(t, err)

	claims := NewAccessClaims("alice", "someone-else", time.Hour, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = signer.Verifier("courier").Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestVerify_Expired(t *testing.T) {
	signer, err := NewEphemeralSigner()
	require.NoError(t, err)

	claims := NewAccessClaims("alice", "courier", time.Minute, time.Now().UTC().Add(-time.Hour))
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = signer.Verifier("courier").Verify(token)
	require.Error(t, err)
}

func TestVerify_WrongKey(t *testing.T) {
	signer1, err := NewEphemeralSigner()
	require.NoError(t, err)
	signer2, err := NewEphemeralSigner()
	require.NoError(t, err)

	claims := NewAccessClaims("alice", "courier", time.Hour, time.Now().UTC())
	token, err := signer1.Sign(claims)
	require.NoError(t, err)

	// A different keypair must reject the token, the kid won't match either.
	_, err = signer2.Verifier("courier").Verify(token)
	require.Error(t, err)
}

func TestVerify_Garbage(t *testing.T) {
	signer, err := NewEphemeralSigner()
	require.NoError(t, err)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := signer.Verifier("courier").Verify(token)
		require.Error(t, err)
	}
}
