package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigningKey_RoundTripThroughJWK(t *testing.T) {
	key, err := GenerateSigningKey()
	require.NoError(t, err)

	jwk := key.JWK()
	assert.Equal(t, KeyTypeOKP, jwk.Kty)
	assert.Equal(t, CurveEd25519, jwk.Crv)
	assert.NotEmpty(t, jwk.Kid)
	assert.NotEmpty(t, jwk.D)

	data, err := MarshalJWK(jwk)
	require.NoError(t, err)

	parsed, err := UnmarshalJWK(data)
	require.NoError(t, err)

	restored, err := SigningKeyFromJWK(parsed)
	require.NoError(t, err)
	assert.Equal(t, key.PublicJWK(), restored.PublicJWK())
}

func TestSigningKey_SignVerify(t *testing.T) {
	key, err := GenerateSigningKey()
	require.NoError(t, err)

	msg := []byte(`{"name":"John Doe","ver":"0.3"}`)
	sig := key.Sign(msg)

	ok, err := Verify(key.PublicJWK(), msg, sig)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify(key.PublicJWK(), []byte(`{"name":"Jane"}`), sig)
	require.NoError(t, err)
	assert.False(t, ok, "signature must not verify over other bytes")

	ok, err = Verify(key.PublicJWK(), msg, "not-a-signature")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_RejectsWrongCurve(t *testing.T) {
	ck, err := GenerateConnectionKey()
	require.NoError(t, err)

	_, err = Verify(ck.PublicJWK(), []byte("x"), "")
	require.ErrorIs(t, err, ErrUnsupportedCurve)
}

func TestPublicJWK_HasNoPrivatePart(t *testing.T) {
	sk, err := GenerateSigningKey()
	require.NoError(t, err)
	ck, err := GenerateConnectionKey()
	require.NoError(t, err)

	assert.Empty(t, sk.PublicJWK().D)
	assert.Empty(t, ck.PublicJWK().D)
	assert.Equal(t, CurveX25519, ck.PublicJWK().Crv)
}

func TestConnectionKey_RoundTripThroughJWK(t *testing.T) {
	key, err := GenerateConnectionKey()
	require.NoError(t, err)

	restored, err := ConnectionKeyFromJWK(key.JWK())
	require.NoError(t, err)
	assert.Equal(t, key.JWK(), restored.JWK())
}

func TestKeyFromJWK_Errors(t *testing.T) {
	sk, err := GenerateSigningKey()
	require.NoError(t, err)
	ck, err := GenerateConnectionKey()
	require.NoError(t, err)

	_, err = SigningKeyFromJWK(ck.JWK())
	require.ErrorIs(t, err, ErrUnsupportedCurve)

	_, err = ConnectionKeyFromJWK(sk.JWK())
	require.ErrorIs(t, err, ErrUnsupportedCurve)

	_, err = SigningKeyFromJWK(sk.PublicJWK())
	require.ErrorIs(t, err, ErrInvalidKey, "public key alone cannot sign")

	tampered := sk.JWK()
	tampered.X = ck.JWK().X
	_, err = SigningKeyFromJWK(tampered)
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestUnmarshalJWK_RejectsUnknownMembers(t *testing.T) {
	_, err := UnmarshalJWK([]byte(`{"kid":"a","kty":"OKP","crv":"Ed25519","x":"b","extra":1}`))
	require.ErrorIs(t, err, ErrInvalidKey)
}
