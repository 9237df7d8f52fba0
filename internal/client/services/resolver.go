package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/spxp-cli/internal/client/client"
	"github.com/dmitrijs2005/spxp-cli/internal/client/models"
	"github.com/dmitrijs2005/spxp-cli/internal/common"
	"github.com/dmitrijs2005/spxp-cli/internal/logging"
)

// ProfileResolver turns a profile URI into a validated reference.
type ProfileResolver interface {
	// Resolve fetches uri and checks it is a profile of the supported
	// protocol version with a name. Any failure, including an unreachable
	// URI, is a common.ErrRemoteValidation.
	Resolve(ctx context.Context, uri string) (*models.Reference, error)
}

type profileResolver struct {
	client client.Client
	log    logging.Logger
}

func NewProfileResolver(c client.Client, log logging.Logger) ProfileResolver {
	return &profileResolver{client: c, log: log}
}

func (r *profileResolver) Resolve(ctx context.Context, uri string) (*models.Reference, error) {
	if uri == "" {
		return nil, fmt.Errorf("%w: profile uri", common.ErrMissingArgument)
	}
	u, err := url.Parse(uri)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an http(s) uri", common.ErrRemoteValidation, uri)
	}

	body, err := r.client.FetchProfile(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %s does not resolve: %v", common.ErrRemoteValidation, uri, err)
	}
	rp, err := models.ParseRemoteProfile(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", uri, err)
	}
	r.log.Debug(ctx, "resolved profile", "uri", uri, "name", rp.Name, "hasPublicKey", rp.PublicKey != nil)
	return rp.ReferenceTo(uri), nil
}
