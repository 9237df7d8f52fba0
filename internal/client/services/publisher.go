package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/spxp-cli/internal/client/client"
	"github.com/dmitrijs2005/spxp-cli/internal/client/models"
	"github.com/dmitrijs2005/spxp-cli/internal/common"
	"github.com/dmitrijs2005/spxp-cli/internal/logging"
)

// timeNow is a test seam for request timestamps.
var timeNow = time.Now

// Publisher performs authenticated uploads to the service an identity is
// bound to. Documents must already be signed.
type Publisher interface {
	// AccessToken returns the bearer token for id, fetching it on first use.
	// A token is fetched at most once per Publisher.
	AccessToken(ctx context.Context, id *models.Identity) (string, error)
	PublishProfile(ctx context.Context, id *models.Identity) error
	PublishFriends(ctx context.Context, id *models.Identity) error
	PublishPost(ctx context.Context, id *models.Identity, post *models.Post) error
	// UploadMedia uploads a local file and returns its URI.
	UploadMedia(ctx context.Context, id *models.Identity, path string) (string, error)
}

type publisher struct {
	client client.Client
	signer Signer
	log    logging.Logger

	tokens map[string]string
}

func NewPublisher(c client.Client, signer Signer, log logging.Logger) Publisher {
	return &publisher{client: c, signer: signer, log: log, tokens: make(map[string]string)}
}

func (p *publisher) AccessToken(ctx context.Context, id *models.Identity) (string, error) {
	if t, ok := p.tokens[id.Name]; ok {
		return t, nil
	}
	if id.Binding.Stage() < models.StageDeviceRegistered {
		return "", fmt.Errorf("%w: %q has no device token", common.ErrNotBound, id.Name)
	}

	req := &models.AccessTokenRequest{
		DeviceToken: id.Binding.DeviceToken,
		Timestamp:   common.FormatTimestamp(timeNow()),
	}
	if err := p.signer.Sign(req, id.SigningKey); err != nil {
		return "", fmt.Errorf("sign access token request: %w", err)
	}

	p.log.Debug(ctx, "requesting access token", "identity", id.Name, "managementEndpoint", id.Binding.ManagementEndpoint)
	token, err := p.client.AccessToken(ctx, id.Binding.ManagementEndpoint, req)
	if err != nil {
		return "", fmt.Errorf("access token: %w", err)
	}
	p.tokens[id.Name] = token
	return token, nil
}

// authorize checks id is bound and returns the management endpoint and a
// token.
func (p *publisher) authorize(ctx context.Context, id *models.Identity) (string, string, error) {
	if !id.IsBound() {
		return "", "", fmt.Errorf("%w: %q", common.ErrNotBound, id.Name)
	}
	token, err := p.AccessToken(ctx, id)
	if err != nil {
		return "", "", err
	}
	return id.Binding.ManagementEndpoint, token, nil
}

func (p *publisher) PublishProfile(ctx context.Context, id *models.Identity) error {
	mgmt, token, err := p.authorize(ctx, id)
	if err != nil {
		return err
	}
	p.log.Debug(ctx, "publishing profile", "identity", id.Name)
	if err := p.client.PutProfile(ctx, mgmt, token, id.Profile); err != nil {
		return fmt.Errorf("publish profile: %w", err)
	}
	return nil
}

func (p *publisher) PublishFriends(ctx context.Context, id *models.Identity) error {
	mgmt, token, err := p.authorize(ctx, id)
	if err != nil {
		return err
	}
	p.log.Debug(ctx, "publishing friends", "identity", id.Name, "count", len(id.Friends.Data))
	if err := p.client.PutFriends(ctx, mgmt, token, id.Friends); err != nil {
		return fmt.Errorf("publish friends: %w", err)
	}
	return nil
}

func (p *publisher) PublishPost(ctx context.Context, id *models.Identity, post *models.Post) error {
	mgmt, token, err := p.authorize(ctx, id)
	if err != nil {
		return err
	}
	p.log.Debug(ctx, "publishing post", "identity", id.Name, "type", post.Type)
	if err := p.client.CreatePost(ctx, mgmt, token, post); err != nil {
		return fmt.Errorf("publish post: %w", err)
	}
	return nil
}

func (p *publisher) UploadMedia(ctx context.Context, id *models.Identity, path string) (string, error) {
	mgmt, token, err := p.authorize(ctx, id)
	if err != nil {
		return "", err
	}
	p.log.Debug(ctx, "uploading media", "identity", id.Name, "file", path)
	uri, err := p.client.UploadMedia(ctx, mgmt, token, path)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	return uri, nil
}
