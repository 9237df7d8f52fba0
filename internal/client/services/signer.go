package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/spxp-cli/internal/client/models"
	"github.com/dmitrijs2005/spxp-cli/internal/common"
	"github.com/dmitrijs2005/spxp-cli/internal/cryptox"
)

// Signer re-signs documents in place.
type Signer interface {
	// Sign replaces the signature of doc with a fresh one over the document
	// without its signature member. Signatures are never layered. On failure
	// doc is left unchanged.
	Sign(doc models.Signable, key *cryptox.SigningKey) error
}

type documentSigner struct{}

func NewSigner() Signer {
	return documentSigner{}
}

func (documentSigner) Sign(doc models.Signable, key *cryptox.SigningKey) error {
	if key == nil {
		return fmt.Errorf("%w: no signing key", common.ErrSigning)
	}
	msg, err := cryptox.Canonicalize(doc, models.SignatureMember)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrSigning, err)
	}
	doc.SetSignature(&models.Signature{Key: key.Kid, Sig: key.Sign(msg)})
	return nil
}

// VerifySignature checks the embedded signature of doc against pub. sig is
// passed separately because Signable has no getter.
func VerifySignature(doc models.Signable, sig *models.Signature, pub cryptox.JWK) error {
	if sig == nil {
		return errors.New("document is not signed")
	}
	if sig.Key != pub.Kid {
		return fmt.Errorf("signed with key %q, expected %q", sig.Key, pub.Kid)
	}
	msg, err := cryptox.Canonicalize(doc, models.SignatureMember)
	if err != nil {
		return err
	}
	ok, err := cryptox.Verify(pub, msg, sig.Sig)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("signature does not verify")
	}
	return nil
}
