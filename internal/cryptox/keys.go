// Package cryptox implements the key material of an SPXP identity.
//
// An identity owns two keypairs, both stored as JSON Web Keys of type OKP:
//
//   - a signing keypair (crv Ed25519) that signs profile, friends and post
//     documents as well as the device/access-token requests;
//   - a connection keypair (crv X25519) reserved for connection handshakes.
//
// Documents are signed over their canonical JSON form (see Canonicalize).
package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cloudflare/circl/sign/ed25519"
	"github.com/dmitrijs2005/spxp-cli/internal/common"
	"golang.org/x/crypto/curve25519"
)

const (
	KeyTypeOKP   = "OKP"
	CurveEd25519 = "Ed25519"
	CurveX25519  = "X25519"

	kidSize = 16
)

var (
	ErrInvalidKey       = errors.New("invalid key")
	ErrUnsupportedCurve = errors.New("unsupported curve")
)

// JWK is the JSON Web Key representation used on disk and in profile
// documents. D is only set for private keys.
type JWK struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	D   string `json:"d,omitempty"`
}

// Public returns a copy of k without the private part.
func (k JWK) Public() JWK {
	k.D = ""
	return k
}

// SigningKey is an Ed25519 keypair with its key id.
type SigningKey struct {
	Kid     string
	public  ed25519.PublicKey
	private ed25519.PrivateKey
}

// GenerateSigningKey creates a fresh Ed25519 keypair with a random kid.
func GenerateSigningKey() (*SigningKey, error) {
	kid, err := common.MakeRandBase64URL(kidSize)
	if err != nil {
		return nil, err
	}
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate ed25519 key: %w", err)
	}
	return &SigningKey{Kid: kid, public: pub, private: priv}, nil
}

// SigningKeyFromJWK restores a private signing key.
func SigningKeyFromJWK(k JWK) (*SigningKey, error) {
	if err := checkJWK(k, CurveEd25519); err != nil {
		return nil, err
	}
	seed, err := base64.RawURLEncoding.DecodeString(k.D)
	if err != nil || len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: bad ed25519 seed", ErrInvalidKey)
	}
	priv := ed25519.NewKeyFromSeed(seed)
	common.WipeByteArray(seed)
	pub := priv.Public().(ed25519.PublicKey)

	x, err := base64.RawURLEncoding.DecodeString(k.X)
	if err != nil || string(x) != string(pub) {
		return nil, fmt.Errorf("%w: public part does not match seed", ErrInvalidKey)
	}
	return &SigningKey{Kid: k.Kid, public: pub, private: priv}, nil
}

// JWK returns the private JWK of the key.
func (s *SigningKey) JWK() JWK {
	return JWK{
		Kid: s.Kid,
		Kty: KeyTypeOKP,
		Crv: CurveEd25519,
		X:   base64.RawURLEncoding.EncodeToString(s.public),
		D:   base64.RawURLEncoding.EncodeToString(s.private.Seed()),
	}
}

// PublicJWK returns the public extract of the key.
func (s *SigningKey) PublicJWK() JWK {
	return s.JWK().Public()
}

// Sign returns the unpadded base64url Ed25519 signature of message.
func (s *SigningKey) Sign(message []byte) string {
	return base64.RawURLEncoding.EncodeToString(ed25519.Sign(s.private, message))
}

// Verify checks sig (as produced by Sign) against message using public key k.
func Verify(k JWK, message []byte, sig string) (bool, error) {
	if k.Kty != KeyTypeOKP || k.Crv != CurveEd25519 {
		return false, fmt.Errorf("%w: %s/%s", ErrUnsupportedCurve, k.Kty, k.Crv)
	}
	pub, err := base64.RawURLEncoding.DecodeString(k.X)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return false, fmt.Errorf("%w: bad ed25519 public key", ErrInvalidKey)
	}
	raw, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil || len(raw) != ed25519.SignatureSize {
		return false, nil
	}
	return ed25519.Verify(ed25519.PublicKey(pub), message, raw), nil
}

// ConnectionKey is an X25519 keypair with its key id.
type ConnectionKey struct {
	Kid     string
	public  []byte
	private []byte
}

// GenerateConnectionKey creates a fresh X25519 keypair with a random kid.
func GenerateConnectionKey() (*ConnectionKey, error) {
	kid, err := common.MakeRandBase64URL(kidSize)
	if err != nil {
		return nil, err
	}
	priv := common.GenerateRandByteArray(curve25519.ScalarSize)
	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("derive x25519 public key: %w", err)
	}
	return &ConnectionKey{Kid: kid, public: pub, private: priv}, nil
}

// ConnectionKeyFromJWK restores a private connection key.
func ConnectionKeyFromJWK(k JWK) (*ConnectionKey, error) {
	if err := checkJWK(k, CurveX25519); err != nil {
		return nil, err
	}
	priv, err := base64.RawURLEncoding.DecodeString(k.D)
	if err != nil || len(priv) != curve25519.ScalarSize {
		return nil, fmt.Errorf("%w: bad x25519 scalar", ErrInvalidKey)
	}
	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	x, err := base64.RawURLEncoding.DecodeString(k.X)
	if err != nil || string(x) != string(pub) {
		return nil, fmt.Errorf("%w: public part does not match scalar", ErrInvalidKey)
	}
	return &ConnectionKey{Kid: k.Kid, public: pub, private: priv}, nil
}

func (c *ConnectionKey) JWK() JWK {
	return JWK{
		Kid: c.Kid,
		Kty: KeyTypeOKP,
		Crv: CurveX25519,
		X:   base64.RawURLEncoding.EncodeToString(c.public),
		D:   base64.RawURLEncoding.EncodeToString(c.private),
	}
}

func (c *ConnectionKey) PublicJWK() JWK {
	return c.JWK().Public()
}

func checkJWK(k JWK, crv string) error {
	if k.Kty != KeyTypeOKP || k.Crv != crv {
		return fmt.Errorf("%w: %s/%s", ErrUnsupportedCurve, k.Kty, k.Crv)
	}
	if k.Kid == "" || k.X == "" || k.D == "" {
		return fmt.Errorf("%w: incomplete jwk", ErrInvalidKey)
	}
	return nil
}

// MarshalJWK renders k as indented JSON for storage.
func MarshalJWK(k JWK) ([]byte, error) {
	return json.MarshalIndent(k, "", "  ")
}

// UnmarshalJWK parses a stored JWK, rejecting unknown members.
func UnmarshalJWK(data []byte) (JWK, error) {
	var k JWK
	if err := decodeStrict(data, &k); err != nil {
		return JWK{}, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return k, nil
}
