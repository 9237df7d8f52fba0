package models

import (
	"encoding/json"
	"testing"

	"github.com/dmitrijs2005/spxp-cli/internal/common"
	"github.com/dmitrijs2005/spxp-cli/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() cryptox.JWK {
	return cryptox.JWK{Kid: "k1", Kty: cryptox.KeyTypeOKP, Crv: cryptox.CurveEd25519, X: "pub"}
}

func TestNewProfile_Shape(t *testing.T) {
	p := NewProfile("John Doe", "Exploring", testKey())

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, "0.3", got["ver"])
	assert.Equal(t, "John Doe", got["name"])
	assert.Equal(t, "Exploring", got["shortInfo"])
	assert.Contains(t, got, "publicKey")
	assert.NotContains(t, got, "signature")
	assert.Len(t, got, 4)
}

func TestProfile_SetAndRemoveField(t *testing.T) {
	p := NewProfile("John Doe", "", testKey())

	require.NoError(t, p.SetField(FieldAbout, "hello"))
	assert.Equal(t, "hello", p.About)

	require.NoError(t, p.RemoveField(FieldAbout))
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"about"`)
}

func TestProfile_FieldErrors(t *testing.T) {
	p := NewProfile("John Doe", "", testKey())

	err := p.SetField("nickname", "x")
	require.ErrorIs(t, err, common.ErrUnknownField)
	require.ErrorIs(t, err, common.ErrPrecondition)

	require.ErrorIs(t, p.RemoveField("nickname"), common.ErrUnknownField)
	require.ErrorIs(t, p.RemoveField(FieldName), common.ErrRequiredField)
	require.ErrorIs(t, p.SetField(FieldHometown, "https://x"), common.ErrUnknownField)
	require.ErrorIs(t, p.SetReference(FieldAbout, &Reference{URI: "u"}), common.ErrUnknownField)
}

func TestProfile_References(t *testing.T) {
	p := NewProfile("John Doe", "", testKey())
	require.NoError(t, p.SetReference(FieldLocation, &Reference{URI: "https://places/x"}))
	require.NotNil(t, p.Location)

	require.NoError(t, p.RemoveField(FieldLocation))
	assert.Nil(t, p.Location)
}

func TestDecodeProfile(t *testing.T) {
	good := `{"ver":"0.3","name":"John","publicKey":{"kid":"k","kty":"OKP","crv":"Ed25519","x":"p"}}`
	p, err := DecodeProfile([]byte(good))
	require.NoError(t, err)
	assert.Equal(t, "John", p.Name)

	tests := []struct {
		name string
		doc  string
	}{
		{"unknown member", `{"ver":"0.3","name":"John","color":"red","publicKey":{"kid":"k","kty":"OKP","crv":"Ed25519","x":"p"}}`},
		{"wrong version", `{"ver":"0.2","name":"John","publicKey":{"kid":"k","kty":"OKP","crv":"Ed25519","x":"p"}}`},
		{"no name", `{"ver":"0.3","publicKey":{"kid":"k","kty":"OKP","crv":"Ed25519","x":"p"}}`},
		{"no key", `{"ver":"0.3","name":"John"}`},
		{"not json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeProfile([]byte(tt.doc))
			require.ErrorIs(t, err, common.ErrInvalidDocument)
		})
	}
}

func TestParseRemoteProfile(t *testing.T) {
	rp, err := ParseRemoteProfile([]byte(`{"ver":"0.3","name":"Place","extra":[1,2]}`))
	require.NoError(t, err)
	ref := rp.ReferenceTo("https://p/x")
	assert.Equal(t, "https://p/x", ref.URI)
	assert.Nil(t, ref.PublicKey)

	rp, err = ParseRemoteProfile([]byte(`{"ver":"0.3","name":"Friend","publicKey":{"kid":"k","kty":"OKP","crv":"Ed25519","x":"p"}}`))
	require.NoError(t, err)
	require.NotNil(t, rp.PublicKey)
	assert.Equal(t, "k", rp.PublicKey.Kid)

	_, err = ParseRemoteProfile([]byte(`{"ver":"0.4","name":"Future"}`))
	require.ErrorIs(t, err, common.ErrUnsupportedVersion)

	_, err = ParseRemoteProfile([]byte(`{"ver":"0.3"}`))
	require.ErrorIs(t, err, common.ErrInvalidProfile)

	_, err = ParseRemoteProfile([]byte(`<html></html>`))
	require.ErrorIs(t, err, common.ErrRemoteValidation)

	rp, err = ParseRemoteProfile([]byte(`{"ver":"0.3","name":"Keyless","publicKey":null}`))
	require.NoError(t, err)
	assert.Nil(t, rp.PublicKey)
}

func TestParseRemoteProfile_RejectsForeignKeys(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "rsa", key: `{"kid":"r","kty":"RSA","n":"AQAB","e":"AQAB"}`},
		{name: "x25519", key: `{"kid":"c","kty":"OKP","crv":"X25519","x":"p"}`},
		{name: "extra alg member", key: `{"kid":"k","kty":"OKP","crv":"Ed25519","x":"p","alg":"EdDSA"}`},
		{name: "missing x", key: `{"kid":"k","kty":"OKP","crv":"Ed25519"}`},
		{name: "private part", key: `{"kid":"k","kty":"OKP","crv":"Ed25519","x":"p","d":"s"}`},
		{name: "not an object", key: `"ed25519"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"ver":"0.3","name":"Friend","publicKey":` + tt.key + `}`
			_, err := ParseRemoteProfile([]byte(doc))
			require.ErrorIs(t, err, common.ErrInvalidProfile)
		})
	}
}

func TestReference_OmitsMissingPublicKey(t *testing.T) {
	data, err := json.Marshal(Reference{URI: "https://p/x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"uri":"https://p/x"}`, string(data))
}

func TestIsProfileField(t *testing.T) {
	for _, f := range []string{FieldName, FieldAbout, FieldProfilePhoto, FieldHometown, FieldLocation} {
		assert.True(t, IsProfileField(f), f)
	}
	for _, f := range []string{"", "ver", "publicKey", "postsEndpoint", "signature"} {
		assert.False(t, IsProfileField(f), f)
	}
}
