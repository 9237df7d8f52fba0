package client

import (
	"context"

	"github.com/dmitrijs2005/spxp-cli/internal/client/models"
)

type Client interface {
	Discover(ctx context.Context, domain string) (*models.Discovery, error)
	Bind(ctx context.Context, bindURL string, req *models.BindRequest) (*models.BindResponse, error)
	RegisterDevice(ctx context.Context, managementEndpoint string, req *models.DeviceRegistration) (*models.DeviceRegistrationResponse, error)
	AccessToken(ctx context.Context, managementEndpoint string, req *models.AccessTokenRequest) (string, error)
	ServiceInfo(ctx context.Context, managementEndpoint, accessToken string) (*models.ServiceInfo, error)
	PutProfile(ctx context.Context, managementEndpoint, accessToken string, p *models.Profile) error
	PutFriends(ctx context.Context, managementEndpoint, accessToken string, f *models.FriendsList) error
	CreatePost(ctx context.Context, managementEndpoint, accessToken string, p *models.Post) error
	UploadMedia(ctx context.Context, managementEndpoint, accessToken, path string) (string, error)
	FetchProfile(ctx context.Context, uri string) ([]byte, error)
}
