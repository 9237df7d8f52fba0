package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/spxp-cli/internal/common"
	"github.com/dmitrijs2005/spxp-cli/internal/cryptox"
)

// Reference points at another profile, optionally pinning its public key.
type Reference struct {
	URI       string       `json:"uri"`
	PublicKey *cryptox.JWK `json:"publicKey,omitempty"`
}

// Profile is an SPXP profile document.
type Profile struct {
	Ver              string      `json:"ver"`
	Name             string      `json:"name"`
	ShortInfo        string      `json:"shortInfo,omitempty"`
	About            string      `json:"about,omitempty"`
	Gender           string      `json:"gender,omitempty"`
	Website          string      `json:"website,omitempty"`
	Email            string      `json:"email,omitempty"`
	BirthDayAndMonth string      `json:"birthDayAndMonth,omitempty"`
	BirthYear        string      `json:"birthYear,omitempty"`
	ProfilePhoto     string      `json:"profilePhoto,omitempty"`
	Hometown         *Reference  `json:"hometown,omitempty"`
	Location         *Reference  `json:"location,omitempty"`
	FriendsEndpoint  string      `json:"friendsEndpoint,omitempty"`
	PostsEndpoint    string      `json:"postsEndpoint,omitempty"`
	KeysEndpoint     string      `json:"keysEndpoint,omitempty"`
	PublicKey        cryptox.JWK `json:"publicKey"`
	Signature        *Signature  `json:"signature,omitempty"`
}

// Profile field names accepted by SetField / RemoveField.
const (
	FieldName             = "name"
	FieldShortInfo        = "shortInfo"
	FieldAbout            = "about"
	FieldGender           = "gender"
	FieldWebsite          = "website"
	FieldEmail            = "email"
	FieldBirthDayAndMonth = "birthDayAndMonth"
	FieldBirthYear        = "birthYear"
	FieldProfilePhoto     = "profilePhoto"
	FieldHometown         = "hometown"
	FieldLocation         = "location"
)

// NewProfile builds the initial, unsigned profile of a fresh identity.
func NewProfile(name, shortInfo string, publicKey cryptox.JWK) *Profile {
	return &Profile{
		Ver:       common.ProtocolVersion,
		Name:      name,
		ShortInfo: shortInfo,
		PublicKey: publicKey,
	}
}

func (p *Profile) SetSignature(s *Signature) { p.Signature = s }

func (p *Profile) stringField(name string) *string {
	switch name {
	case FieldName:
		return &p.Name
	case FieldShortInfo:
		return &p.ShortInfo
	case FieldAbout:
		return &p.About
	case FieldGender:
		return &p.Gender
	case FieldWebsite:
		return &p.Website
	case FieldEmail:
		return &p.Email
	case FieldBirthDayAndMonth:
		return &p.BirthDayAndMonth
	case FieldBirthYear:
		return &p.BirthYear
	case FieldProfilePhoto:
		return &p.ProfilePhoto
	}
	return nil
}

func (p *Profile) referenceField(name string) **Reference {
	switch name {
	case FieldHometown:
		return &p.Hometown
	case FieldLocation:
		return &p.Location
	}
	return nil
}

// IsProfileField reports whether name is a field that can be set or removed.
func IsProfileField(name string) bool {
	return (&Profile{}).stringField(name) != nil || IsReferenceField(name)
}

// IsReferenceField reports whether name holds a profile reference rather
// than a plain string.
func IsReferenceField(name string) bool {
	return name == FieldHometown || name == FieldLocation
}

// SetField replaces a string field. Reference fields go through SetReference.
func (p *Profile) SetField(name, value string) error {
	f := p.stringField(name)
	if f == nil {
		return fmt.Errorf("%w: %q", common.ErrUnknownField, name)
	}
	*f = value
	return nil
}

// SetReference replaces hometown or location.
func (p *Profile) SetReference(name string, ref *Reference) error {
	f := p.referenceField(name)
	if f == nil {
		return fmt.Errorf("%w: %q is not a reference field", common.ErrUnknownField, name)
	}
	*f = ref
	return nil
}

// RemoveField deletes an optional field. The name is required and cannot be
// removed.
func (p *Profile) RemoveField(name string) error {
	if name == FieldName {
		return fmt.Errorf("%w: %q", common.ErrRequiredField, name)
	}
	if f := p.referenceField(name); f != nil {
		*f = nil
		return nil
	}
	f := p.stringField(name)
	if f == nil {
		return fmt.Errorf("%w: %q", common.ErrUnknownField, name)
	}
	*f = ""
	return nil
}

// ApplyEndpoints copies the three service endpoints a profile advertises.
func (p *Profile) ApplyEndpoints(b *BindingRecord) {
	p.FriendsEndpoint = b.FriendsEndpoint
	p.PostsEndpoint = b.PostsEndpoint
	p.KeysEndpoint = b.KeysEndpoint
}

// Validate checks the fixed fields of a local profile.
func (p *Profile) Validate() error {
	if p.Ver != common.ProtocolVersion {
		return fmt.Errorf("%w: profile version %q", common.ErrInvalidDocument, p.Ver)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: profile has no name", common.ErrInvalidDocument)
	}
	if p.PublicKey.X == "" {
		return fmt.Errorf("%w: profile has no public key", common.ErrInvalidDocument)
	}
	return nil
}

// DecodeProfile strictly decodes and validates a locally stored profile.
func DecodeProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := decodeStrict(data, &p); err != nil {
		return nil, fmt.Errorf("%w: profile: %v", common.ErrInvalidDocument, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// RemoteProfile is the subset of a foreign profile the client inspects.
type RemoteProfile struct {
	Ver       string       `json:"ver"`
	Name      string       `json:"name"`
	PublicKey *cryptox.JWK `json:"publicKey,omitempty"`
}

// ParseRemoteProfile checks that data is a profile document of the supported
// protocol version with a name. A public key, when present, must be an
// Ed25519 OKP key without extra members, since references store only those.
func ParseRemoteProfile(data []byte) (*RemoteProfile, error) {
	var raw struct {
		Ver       string          `json:"ver"`
		Name      string          `json:"name"`
		PublicKey json.RawMessage `json:"publicKey"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidProfile, err)
	}
	if raw.Ver == "" {
		return nil, fmt.Errorf("%w: missing ver", common.ErrInvalidProfile)
	}
	if raw.Ver != common.ProtocolVersion {
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedVersion, raw.Ver)
	}
	if raw.Name == "" {
		return nil, fmt.Errorf("%w: missing name", common.ErrInvalidProfile)
	}
	rp := &RemoteProfile{Ver: raw.Ver, Name: raw.Name}
	if len(raw.PublicKey) == 0 || string(raw.PublicKey) == "null" {
		return rp, nil
	}
	key, err := cryptox.UnmarshalJWK(raw.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: publicKey: %v", common.ErrInvalidProfile, err)
	}
	if key.Kty != cryptox.KeyTypeOKP || key.Crv != cryptox.CurveEd25519 || key.X == "" {
		return nil, fmt.Errorf("%w: publicKey is not an Ed25519 key (kty %q, crv %q)", common.ErrInvalidProfile, key.Kty, key.Crv)
	}
	if key.D != "" {
		return nil, fmt.Errorf("%w: publicKey carries private material", common.ErrInvalidProfile)
	}
	rp.PublicKey = &key
	return rp, nil
}

// ReferenceTo builds a reference to the profile at uri.
func (rp *RemoteProfile) ReferenceTo(uri string) *Reference {
	return &Reference{URI: uri, PublicKey: rp.PublicKey}
}

// MarshalDocument renders a document as indented JSON for local storage.
func MarshalDocument(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
