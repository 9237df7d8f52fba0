package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/spxp-cli/internal/client/client"
	"github.com/dmitrijs2005/spxp-cli/internal/client/models"
	"github.com/dmitrijs2005/spxp-cli/internal/logging"
)

// DiscoveryService resolves a domain to its SPXP-SPE endpoints.
type DiscoveryService interface {
	Discover(ctx context.Context, domain string) (*models.Discovery, error)
}

type discoveryService struct {
	client client.Client
	log    logging.Logger
}

func NewDiscoveryService(c client.Client, log logging.Logger) DiscoveryService {
	return &discoveryService{client: c, log: log}
}

func (s *discoveryService) Discover(ctx context.Context, domain string) (*models.Discovery, error) {
	d, err := s.client.Discover(ctx, domain)
	if err != nil {
		var de *client.DiscoveryError
		if errors.As(err, &de) {
			s.log.Debug(ctx, "discovery failed", "domain", domain, "cause", de.Cause)
		}
		return nil, err
	}
	s.log.Debug(ctx, "discovered service", "domain", domain, "start", d.Start, "bind", d.Bind, "managementEndpoint", d.ManagementEndpoint)
	return d, nil
}
