package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/spxp-cli/internal/client/models"
	"github.com/dmitrijs2005/spxp-cli/internal/client/repositories/identities"
	"github.com/dmitrijs2005/spxp-cli/internal/common"
	"github.com/dmitrijs2005/spxp-cli/internal/logging"
)

// ProfileService mutates the profile document of an identity.
type ProfileService interface {
	// Set replaces field with value, or removes it when value is empty. The
	// profile is re-signed and saved, then published if the identity is
	// bound. For profilePhoto value is a local file; for hometown and
	// location it is a profile URI.
	Set(ctx context.Context, ic models.IdentityContext, field, value string) (Outcome, error)

	// Republish re-signs and uploads both the profile and the friends list.
	Republish(ctx context.Context, ic models.IdentityContext) error
}

type profileService struct {
	repo      identities.Repository
	signer    Signer
	publisher Publisher
	resolver  ProfileResolver
	log       logging.Logger
}

func NewProfileService(repo identities.Repository, signer Signer, publisher Publisher, resolver ProfileResolver, log logging.Logger) ProfileService {
	return &profileService{repo: repo, signer: signer, publisher: publisher, resolver: resolver, log: log}
}

func (s *profileService) Set(ctx context.Context, ic models.IdentityContext, field, value string) (Outcome, error) {
	if field == "" {
		return 0, fmt.Errorf("%w: field", common.ErrMissingArgument)
	}
	if !models.IsProfileField(field) {
		return 0, fmt.Errorf("%w: %q", common.ErrUnknownField, field)
	}

	id, err := s.repo.Load(ctx, ic)
	if err != nil {
		return 0, err
	}

	if value == "" {
		if err := id.Profile.RemoveField(field); err != nil {
			return 0, err
		}
	} else if err := s.apply(ctx, id, field, value); err != nil {
		return 0, err
	}

	if err := s.signer.Sign(id.Profile, id.SigningKey); err != nil {
		return 0, err
	}
	if err := s.repo.Persist(ctx, id, identities.DocProfile); err != nil {
		return 0, fmt.Errorf("save profile: %w", err)
	}

	if !id.IsBound() {
		s.log.Warn(ctx, "profile saved locally only, identity is not bound", "identity", id.Name, "field", field)
		return OutcomeLocalOnly, nil
	}
	if err := s.publisher.PublishProfile(ctx, id); err != nil {
		return 0, err
	}
	return OutcomePublished, nil
}

// apply performs every remote step before touching the document, so a failed
// upload or resolution leaves the profile unchanged.
func (s *profileService) apply(ctx context.Context, id *models.Identity, field, value string) error {
	switch {
	case field == models.FieldProfilePhoto:
		if !id.IsBound() {
			return fmt.Errorf("%w: %s needs a bound identity to upload the photo", common.ErrNotBound, field)
		}
		if err := requireFile(value); err != nil {
			return err
		}
		uri, err := s.publisher.UploadMedia(ctx, id, value)
		if err != nil {
			return err
		}
		return id.Profile.SetField(field, uri)
	case models.IsReferenceField(field):
		ref, err := s.resolver.Resolve(ctx, value)
		if err != nil {
			return err
		}
		return id.Profile.SetReference(field, ref)
	}
	return id.Profile.SetField(field, value)
}

func (s *profileService) Republish(ctx context.Context, ic models.IdentityContext) error {
	id, err := s.repo.Load(ctx, ic)
	if err != nil {
		return err
	}
	if !id.IsBound() {
		return fmt.Errorf("%w: %q", common.ErrNotBound, id.Name)
	}

	id.Profile.ApplyEndpoints(id.Binding)
	if err := s.signer.Sign(id.Profile, id.SigningKey); err != nil {
		return err
	}
	if err := s.signer.Sign(id.Friends, id.SigningKey); err != nil {
		return err
	}
	if err := s.repo.Persist(ctx, id, identities.DocProfile, identities.DocFriends); err != nil {
		return fmt.Errorf("save documents: %w", err)
	}

	if err := s.publisher.PublishProfile(ctx, id); err != nil {
		return err
	}
	return s.publisher.PublishFriends(ctx, id)
}
