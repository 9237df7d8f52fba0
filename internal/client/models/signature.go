package models

// Signature is the detached signature embedded in a signed document. Key is
// the kid of the signing key; Sig is the base64url Ed25519 signature over the
// canonical form of the document without its signature member.
type Signature struct {
	Key string `json:"key"`
	Sig string `json:"sig"`
}

// Signable is implemented by every document that carries a signature member.
type Signable interface {
	SetSignature(*Signature)
}

// SignatureMember is the JSON name of the signature member.
const SignatureMember = "signature"
