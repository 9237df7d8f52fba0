package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/spxp-cli/internal/client/client"
	"github.com/dmitrijs2005/spxp-cli/internal/client/models"
	"github.com/dmitrijs2005/spxp-cli/internal/client/repositories/identities"
	"github.com/dmitrijs2005/spxp-cli/internal/common"
	"github.com/dmitrijs2005/spxp-cli/internal/logging"
	"github.com/google/uuid"
)

// newDeviceID is a test seam for device identifiers.
var newDeviceID = uuid.NewString

// BindingService runs the SPXP-SPE handshake that turns a local identity into
// a bound, publishable one:
//
//	UNBOUND           --discover, bind(token)--> SERVICE_BOUND
//	SERVICE_BOUND     --registerDevice-->        DEVICE_REGISTERED
//	DEVICE_REGISTERED --negotiateEndpoints-->    ENDPOINTS_KNOWN
//	ENDPOINTS_KNOWN   --publish profile+friends  (terminal)
//
// The binding record is persisted after every step. A record left behind by
// an interrupted run is resumed from the first missing step; domain and token
// are not needed then because the bind token was already consumed.
type BindingService interface {
	Bind(ctx context.Context, ic models.IdentityContext, domain, token string) (*models.BindingRecord, error)
}

type bindingService struct {
	repo      identities.Repository
	client    client.Client
	discovery DiscoveryService
	signer    Signer
	publisher Publisher
	log       logging.Logger
}

func NewBindingService(repo identities.Repository, c client.Client, discovery DiscoveryService, signer Signer, publisher Publisher, log logging.Logger) BindingService {
	return &bindingService{repo: repo, client: c, discovery: discovery, signer: signer, publisher: publisher, log: log}
}

func (s *bindingService) Bind(ctx context.Context, ic models.IdentityContext, domain, token string) (*models.BindingRecord, error) {
	id, err := s.repo.Load(ctx, ic)
	if err != nil {
		return nil, err
	}
	log := s.log.With("identity", id.Name)

	stage := id.Binding.Stage()
	switch stage {
	case models.StageEndpointsKnown:
		return nil, fmt.Errorf("%w: %q is bound to %s", common.ErrAlreadyBound, id.Name, id.Binding.ProfileURI)
	case models.StageUnbound:
		if domain == "" {
			return nil, fmt.Errorf("%w: domain", common.ErrMissingArgument)
		}
		if token == "" {
			return nil, fmt.Errorf("%w: bind token", common.ErrMissingArgument)
		}
	default:
		if domain != "" || token != "" {
			return nil, fmt.Errorf("%w: %q is partially bound to %s (stage %s), run bind without a domain or token to resume",
				common.ErrBindingInProgress, id.Name, id.Binding.ProfileURI, stage)
		}
		log.Info(ctx, "resuming interrupted binding", "stage", stage.String(), "profileUri", id.Binding.ProfileURI)
	}

	if stage == models.StageUnbound {
		if err := s.bindService(ctx, log, id, domain, token); err != nil {
			return nil, err
		}
	}
	if id.Binding.Stage() == models.StageServiceBound {
		if err := s.registerDevice(ctx, log, id); err != nil {
			return nil, err
		}
	}
	if id.Binding.Stage() == models.StageDeviceRegistered {
		if err := s.negotiateEndpoints(ctx, log, id); err != nil {
			return nil, err
		}
	}
	if err := s.publishInitial(ctx, log, id); err != nil {
		return nil, err
	}

	log.Info(ctx, "identity bound", "profileUri", id.Binding.ProfileURI)
	return id.Binding, nil
}

func (s *bindingService) bindService(ctx context.Context, log logging.Logger, id *models.Identity, domain, token string) error {
	d, err := s.discovery.Discover(ctx, domain)
	if err != nil {
		return err
	}

	log.Debug(ctx, "binding to service", "step", "bind", "url", d.Bind)
	resp, err := s.client.Bind(ctx, d.Bind, &models.BindRequest{Token: token, PublicKey: id.SigningKey.PublicJWK()})
	if err != nil {
		return fmt.Errorf("bind: %w", err)
	}

	id.Binding = &models.BindingRecord{
		ProfileURI:         resp.ProfileURI,
		ManagementEndpoint: d.ManagementEndpoint,
	}
	if err := s.repo.Persist(ctx, id, identities.DocBinding); err != nil {
		return fmt.Errorf("save binding: %w", err)
	}
	return nil
}

func (s *bindingService) registerDevice(ctx context.Context, log logging.Logger, id *models.Identity) error {
	req := &models.DeviceRegistration{
		ProfileURI: id.Binding.ProfileURI,
		DeviceID:   newDeviceID(),
		Timestamp:  common.FormatTimestamp(timeNow()),
	}
	if err := s.signer.Sign(req, id.SigningKey); err != nil {
		return fmt.Errorf("sign device registration: %w", err)
	}

	log.Debug(ctx, "registering device", "step", "device", "url", id.Binding.ManagementEndpoint, "deviceId", req.DeviceID)
	resp, err := s.client.RegisterDevice(ctx, id.Binding.ManagementEndpoint, req)
	if err != nil {
		return fmt.Errorf("register device: %w", err)
	}

	id.Binding.DeviceToken = resp.DeviceToken
	if err := s.repo.Persist(ctx, id, identities.DocBinding); err != nil {
		return fmt.Errorf("save binding: %w", err)
	}
	return nil
}

// negotiateEndpoints stores the service endpoints. The profile is patched and
// saved before the binding record so that a crash in between is repaired by
// simply resuming this step.
func (s *bindingService) negotiateEndpoints(ctx context.Context, log logging.Logger, id *models.Identity) error {
	token, err := s.publisher.AccessToken(ctx, id)
	if err != nil {
		return err
	}

	log.Debug(ctx, "fetching service info", "step", "endpoints", "url", id.Binding.ManagementEndpoint)
	info, err := s.client.ServiceInfo(ctx, id.Binding.ManagementEndpoint, token)
	if err != nil {
		return fmt.Errorf("service info: %w", err)
	}

	endpoints := *id.Binding
	endpoints.SetEndpoints(info.Endpoints)

	id.Profile.ApplyEndpoints(&endpoints)
	if err := s.signer.Sign(id.Profile, id.SigningKey); err != nil {
		return fmt.Errorf("sign profile: %w", err)
	}
	if err := s.repo.Persist(ctx, id, identities.DocProfile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	id.Binding = &endpoints
	if err := s.repo.Persist(ctx, id, identities.DocBinding); err != nil {
		return fmt.Errorf("save binding: %w", err)
	}
	return nil
}

func (s *bindingService) publishInitial(ctx context.Context, log logging.Logger, id *models.Identity) error {
	// endpoints may have been saved by an earlier run that stopped here
	id.Profile.ApplyEndpoints(id.Binding)
	if err := s.signer.Sign(id.Profile, id.SigningKey); err != nil {
		return fmt.Errorf("sign profile: %w", err)
	}
	if err := s.signer.Sign(id.Friends, id.SigningKey); err != nil {
		return fmt.Errorf("sign friends: %w", err)
	}
	if err := s.repo.Persist(ctx, id, identities.DocProfile, identities.DocFriends); err != nil {
		return fmt.Errorf("save documents: %w", err)
	}

	log.Debug(ctx, "publishing initial documents", "step", "publish")
	if err := s.publisher.PublishProfile(ctx, id); err != nil {
		return err
	}
	return s.publisher.PublishFriends(ctx, id)
}
