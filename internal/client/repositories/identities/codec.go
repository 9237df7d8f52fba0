package identities

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/spxp-cli/internal/client/models"
	"github.com/dmitrijs2005/spxp-cli/internal/common"
	"github.com/dmitrijs2005/spxp-cli/internal/cryptox"
)

const (
	fileSigningKey    = "signing-key.json"
	filePublicKey     = "signing-key.pub.json"
	fileConnectionKey = "connection-key.json"
	fileProfile       = "profile.json"
	fileFriends       = "friends.json"
	fileBinding       = "binding.json"
)

func fileFor(doc Document) (string, error) {
	switch doc {
	case DocProfile:
		return fileProfile, nil
	case DocFriends:
		return fileFriends, nil
	case DocBinding:
		return fileBinding, nil
	}
	return "", fmt.Errorf("unknown document %q", doc)
}

// validateName keeps identity names to a single path element.
func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: invalid identity name %q", common.ErrPrecondition, name)
	}
	return nil
}

func encodeDocument(id *models.Identity, doc Document) ([]byte, error) {
	var v any
	switch doc {
	case DocProfile:
		v = id.Profile
	case DocFriends:
		v = id.Friends
	case DocBinding:
		if id.Binding == nil {
			return nil, fmt.Errorf("%w: identity %q has no binding record", common.ErrInvalidDocument, id.Name)
		}
		v = id.Binding
	default:
		return nil, fmt.Errorf("unknown document %q", doc)
	}
	return models.MarshalDocument(v)
}

// encodeAll renders every file of a new identity. The binding record is
// included only when present.
func encodeAll(id *models.Identity) (map[string][]byte, error) {
	if id.SigningKey == nil || id.ConnectionKey == nil || id.Profile == nil || id.Friends == nil {
		return nil, fmt.Errorf("%w: incomplete identity %q", common.ErrInvalidDocument, id.Name)
	}

	files := make(map[string][]byte, 6)

	keys := []struct {
		file string
		jwk  cryptox.JWK
	}{
		{fileSigningKey, id.SigningKey.JWK()},
		{filePublicKey, id.SigningKey.PublicJWK()},
		{fileConnectionKey, id.ConnectionKey.JWK()},
	}
	for _, k := range keys {
		b, err := cryptox.MarshalJWK(k.jwk)
		if err != nil {
			return nil, err
		}
		files[k.file] = b
	}

	docs := []Document{DocProfile, DocFriends}
	if id.Binding != nil {
		docs = append(docs, DocBinding)
	}
	for _, d := range docs {
		b, err := encodeDocument(id, d)
		if err != nil {
			return nil, err
		}
		name, _ := fileFor(d)
		files[name] = b
	}
	return files, nil
}

// decodeIdentity rebuilds an identity from its files. read returns
// (nil, nil) for files that do not exist.
func decodeIdentity(name string, read func(file string) ([]byte, error)) (*models.Identity, error) {
	required := func(file string) ([]byte, error) {
		b, err := read(file)
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, fmt.Errorf("%w: identity %q is missing %s", common.ErrInvalidDocument, name, file)
		}
		return b, nil
	}

	id := &models.Identity{Name: name}

	b, err := required(fileSigningKey)
	if err != nil {
		return nil, err
	}
	jwk, err := cryptox.UnmarshalJWK(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrInvalidDocument, fileSigningKey, err)
	}
	if id.SigningKey, err = cryptox.SigningKeyFromJWK(jwk); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrInvalidDocument, fileSigningKey, err)
	}

	b, err = required(fileConnectionKey)
	if err != nil {
		return nil, err
	}
	jwk, err = cryptox.UnmarshalJWK(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrInvalidDocument, fileConnectionKey, err)
	}
	if id.ConnectionKey, err = cryptox.ConnectionKeyFromJWK(jwk); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrInvalidDocument, fileConnectionKey, err)
	}

	if b, err = required(fileProfile); err != nil {
		return nil, err
	}
	if id.Profile, err = models.DecodeProfile(b); err != nil {
		return nil, err
	}
	if id.Profile.PublicKey != id.SigningKey.PublicJWK() {
		return nil, fmt.Errorf("%w: profile public key does not match signing key", common.ErrInvalidDocument)
	}

	if b, err = required(fileFriends); err != nil {
		return nil, err
	}
	if id.Friends, err = models.DecodeFriendsList(b); err != nil {
		return nil, err
	}

	b, err = read(fileBinding)
	if err != nil {
		return nil, err
	}
	if b != nil {
		if id.Binding, err = models.DecodeBindingRecord(b); err != nil {
			return nil, err
		}
	}
	return id, nil
}
