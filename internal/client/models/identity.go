package models

import (
	"github.com/dmitrijs2005/spxp-cli/internal/common"
	"github.com/dmitrijs2005/spxp-cli/internal/cryptox"
)

// IdentityContext selects the identity a command operates on. It is passed
// explicitly into every service operation.
type IdentityContext struct {
	Name string
}

// NewIdentityContext returns a context for name, or for the default identity
// when name is empty.
func NewIdentityContext(name string) IdentityContext {
	if name == "" {
		name = common.DefaultIdentity
	}
	return IdentityContext{Name: name}
}

// Identity is one local keypair set plus its documents and binding record.
type Identity struct {
	Name          string
	SigningKey    *cryptox.SigningKey
	ConnectionKey *cryptox.ConnectionKey
	Profile       *Profile
	Friends       *FriendsList
	Binding       *BindingRecord
}

// IsBound reports whether the binding handshake has completed, which is the
// precondition for publishing.
func (i *Identity) IsBound() bool {
	return i.Binding.Stage() == StageEndpointsKnown
}
