package models

import "github.com/dmitrijs2005/spxp-cli/internal/cryptox"

// Discovery is the SPXP-SPE discovery document of a domain.
type Discovery struct {
	Start              string `json:"start"`
	Bind               string `json:"bind"`
	ManagementEndpoint string `json:"managementEndpoint"`
}

// BindRequest is posted to the discovery document's bind URL.
type BindRequest struct {
	Token     string      `json:"token"`
	PublicKey cryptox.JWK `json:"publicKey"`
}

type BindResponse struct {
	ProfileURI string `json:"profileUri"`
}

// DeviceRegistration is the signed request registering this device.
type DeviceRegistration struct {
	ProfileURI string     `json:"profile_uri"`
	DeviceID   string     `json:"device_id"`
	Timestamp  string     `json:"timestamp"`
	Signature  *Signature `json:"signature,omitempty"`
}

func (d *DeviceRegistration) SetSignature(s *Signature) { d.Signature = s }

type DeviceRegistrationResponse struct {
	DeviceToken string `json:"device_token"`
}

// AccessTokenRequest is the signed request exchanging the device token for
// a short-lived access token.
type AccessTokenRequest struct {
	DeviceToken string     `json:"device_token"`
	Timestamp   string     `json:"timestamp"`
	Signature   *Signature `json:"signature,omitempty"`
}

func (a *AccessTokenRequest) SetSignature(s *Signature) { a.Signature = s }

type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// ServiceEndpoints are the endpoints a service reports in /service/info.
type ServiceEndpoints struct {
	FriendsEndpoint         string `json:"friendsEndpoint"`
	PostsEndpoint           string `json:"postsEndpoint"`
	KeysEndpoint            string `json:"keysEndpoint"`
	ConnectEndpoint         string `json:"connectEndpoint"`
	ConnectResponseEndpoint string `json:"connectResponseEndpoint"`
}

type ServiceInfo struct {
	Endpoints ServiceEndpoints `json:"endpoints"`
}

type MediaResponse struct {
	URI string `json:"uri"`
}
