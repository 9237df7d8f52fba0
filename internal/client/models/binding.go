package models

import (
	"fmt"

	"github.com/dmitrijs2005/spxp-cli/internal/common"
)

// BindingStage is the position of an identity in the binding handshake.
type BindingStage int

const (
	StageUnbound BindingStage = iota
	StageServiceBound
	StageDeviceRegistered
	StageEndpointsKnown
)

func (s BindingStage) String() string {
	switch s {
	case StageUnbound:
		return "unbound"
	case StageServiceBound:
		return "service-bound"
	case StageDeviceRegistered:
		return "device-registered"
	case StageEndpointsKnown:
		return "bound"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// BindingRecord is built incrementally by the binding handshake and persisted
// after every step.
type BindingRecord struct {
	ProfileURI              string `json:"profileUri"`
	ManagementEndpoint      string `json:"managementEndpoint"`
	DeviceToken             string `json:"deviceToken,omitempty"`
	FriendsEndpoint         string `json:"friendsEndpoint,omitempty"`
	PostsEndpoint           string `json:"postsEndpoint,omitempty"`
	KeysEndpoint            string `json:"keysEndpoint,omitempty"`
	ConnectEndpoint         string `json:"connectEndpoint,omitempty"`
	ConnectResponseEndpoint string `json:"connectResponseEndpoint,omitempty"`
}

// Stage derives the handshake position from the fields that are set. A nil
// record is unbound.
func (b *BindingRecord) Stage() BindingStage {
	switch {
	case b == nil || b.ProfileURI == "" || b.ManagementEndpoint == "":
		return StageUnbound
	case b.DeviceToken == "":
		return StageServiceBound
	case !b.hasEndpoints():
		return StageDeviceRegistered
	}
	return StageEndpointsKnown
}

func (b *BindingRecord) hasEndpoints() bool {
	return b.FriendsEndpoint != "" && b.PostsEndpoint != "" && b.KeysEndpoint != "" &&
		b.ConnectEndpoint != "" && b.ConnectResponseEndpoint != ""
}

// SetEndpoints records the endpoints negotiated with the service.
func (b *BindingRecord) SetEndpoints(e ServiceEndpoints) {
	b.FriendsEndpoint = e.FriendsEndpoint
	b.PostsEndpoint = e.PostsEndpoint
	b.KeysEndpoint = e.KeysEndpoint
	b.ConnectEndpoint = e.ConnectEndpoint
	b.ConnectResponseEndpoint = e.ConnectResponseEndpoint
}

// DecodeBindingRecord strictly decodes a stored binding record.
func DecodeBindingRecord(data []byte) (*BindingRecord, error) {
	var b BindingRecord
	if err := decodeStrict(data, &b); err != nil {
		return nil, fmt.Errorf("%w: binding: %v", common.ErrInvalidDocument, err)
	}
	if b.ProfileURI == "" || b.ManagementEndpoint == "" {
		return nil, fmt.Errorf("%w: binding record lacks profileUri or managementEndpoint", common.ErrInvalidDocument)
	}
	return &b, nil
}
