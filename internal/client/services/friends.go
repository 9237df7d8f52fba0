package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/spxp-cli/internal/client/models"
	"github.com/dmitrijs2005/spxp-cli/internal/client/repositories/identities"
	"github.com/dmitrijs2005/spxp-cli/internal/common"
	"github.com/dmitrijs2005/spxp-cli/internal/logging"
)

// FriendsService maintains the friends list of an identity.
type FriendsService interface {
	// Add resolves uri and inserts it, replacing an existing entry for the
	// same URI.
	Add(ctx context.Context, ic models.IdentityContext, uri string) (Outcome, error)
	// Remove drops uri. An absent URI is not an error and yields
	// OutcomeUnchanged without re-signing.
	Remove(ctx context.Context, ic models.IdentityContext, uri string) (Outcome, error)
	List(ctx context.Context, ic models.IdentityContext) ([]models.Reference, error)
}

type friendsService struct {
	repo      identities.Repository
	signer    Signer
	publisher Publisher
	resolver  ProfileResolver
	log       logging.Logger
}

func NewFriendsService(repo identities.Repository, signer Signer, publisher Publisher, resolver ProfileResolver, log logging.Logger) FriendsService {
	return &friendsService{repo: repo, signer: signer, publisher: publisher, resolver: resolver, log: log}
}

func (s *friendsService) Add(ctx context.Context, ic models.IdentityContext, uri string) (Outcome, error) {
	id, err := s.repo.Load(ctx, ic)
	if err != nil {
		return 0, err
	}
	ref, err := s.resolver.Resolve(ctx, uri)
	if err != nil {
		return 0, err
	}
	id.Friends.Add(*ref)
	return s.commit(ctx, id)
}

func (s *friendsService) Remove(ctx context.Context, ic models.IdentityContext, uri string) (Outcome, error) {
	if uri == "" {
		return 0, fmt.Errorf("%w: profile uri", common.ErrMissingArgument)
	}
	id, err := s.repo.Load(ctx, ic)
	if err != nil {
		return 0, err
	}
	if !id.Friends.Remove(uri) {
		s.log.Info(ctx, "not in friends list", "identity", id.Name, "uri", uri)
		return OutcomeUnchanged, nil
	}
	return s.commit(ctx, id)
}

func (s *friendsService) commit(ctx context.Context, id *models.Identity) (Outcome, error) {
	if err := s.signer.Sign(id.Friends, id.SigningKey); err != nil {
		return 0, err
	}
	if err := s.repo.Persist(ctx, id, identities.DocFriends); err != nil {
		return 0, fmt.Errorf("save friends: %w", err)
	}
	if !id.IsBound() {
		s.log.Warn(ctx, "friends saved locally only, identity is not bound", "identity", id.Name)
		return OutcomeLocalOnly, nil
	}
	if err := s.publisher.PublishFriends(ctx, id); err != nil {
		return 0, err
	}
	return OutcomePublished, nil
}

func (s *friendsService) List(ctx context.Context, ic models.IdentityContext) ([]models.Reference, error) {
	id, err := s.repo.Load(ctx, ic)
	if err != nil {
		return nil, err
	}
	return id.Friends.Data, nil
}
