package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/spxp-cli/internal/client/models"
	"github.com/dmitrijs2005/spxp-cli/internal/client/repositories/identities"
	"github.com/dmitrijs2005/spxp-cli/internal/common"
	"github.com/dmitrijs2005/spxp-cli/internal/cryptox"
	"github.com/dmitrijs2005/spxp-cli/internal/logging"
)

// IdentityService creates and reads local identities.
type IdentityService interface {
	// Init generates both keypairs and stores a new identity with an unsigned
	// profile and an empty friends list. It never overwrites an existing
	// identity.
	Init(ctx context.Context, ic models.IdentityContext, name, shortInfo string) (*models.Identity, error)
	Load(ctx context.Context, ic models.IdentityContext) (*models.Identity, error)
	List(ctx context.Context) ([]string, error)
}

type identityService struct {
	repo identities.Repository
	log  logging.Logger
}

func NewIdentityService(repo identities.Repository, log logging.Logger) IdentityService {
	return &identityService{repo: repo, log: log}
}

func (s *identityService) Init(ctx context.Context, ic models.IdentityContext, name, shortInfo string) (*models.Identity, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name", common.ErrMissingArgument)
	}

	sk, err := cryptox.GenerateSigningKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSigning, err)
	}
	ck, err := cryptox.GenerateConnectionKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSigning, err)
	}

	id := &models.Identity{
		Name:          ic.Name,
		SigningKey:    sk,
		ConnectionKey: ck,
		Profile:       models.NewProfile(name, shortInfo, sk.PublicJWK()),
		Friends:       models.NewFriendsList(),
	}
	if err := s.repo.Create(ctx, id); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "identity created", "identity", ic.Name, "kid", sk.Kid)
	return id, nil
}

func (s *identityService) Load(ctx context.Context, ic models.IdentityContext) (*models.Identity, error) {
	return s.repo.Load(ctx, ic)
}

func (s *identityService) List(ctx context.Context) ([]string, error) {
	return s.repo.List(ctx)
}
