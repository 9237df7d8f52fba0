package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/spxp-cli/internal/client/models"
	"github.com/dmitrijs2005/spxp-cli/internal/client/repositories/identities"
	"github.com/dmitrijs2005/spxp-cli/internal/common"
	"github.com/dmitrijs2005/spxp-cli/internal/filex"
	"github.com/dmitrijs2005/spxp-cli/internal/logging"
)

// PostInput holds the operator-supplied fields of a new post. Which fields
// are required depends on Type.
type PostInput struct {
	Type        string
	Message     string
	Link        string
	PreviewFile string
	FullFile    string
	// Place is a profile URI, resolved like hometown and location.
	Place string
	// CreateTS overrides the service-assigned creation time when non-zero.
	CreateTS time.Time
}

type PostService interface {
	// Create builds, signs and publishes a post. Only bound identities can
	// post; that check runs before any other validation.
	Create(ctx context.Context, ic models.IdentityContext, in PostInput) (*models.Post, error)
}

type postService struct {
	repo      identities.Repository
	signer    Signer
	publisher Publisher
	resolver  ProfileResolver
	log       logging.Logger
}

func NewPostService(repo identities.Repository, signer Signer, publisher Publisher, resolver ProfileResolver, log logging.Logger) PostService {
	return &postService{repo: repo, signer: signer, publisher: publisher, resolver: resolver, log: log}
}

func (s *postService) Create(ctx context.Context, ic models.IdentityContext, in PostInput) (*models.Post, error) {
	id, err := s.repo.Load(ctx, ic)
	if err != nil {
		return nil, err
	}
	if !id.IsBound() {
		return nil, fmt.Errorf("%w: %q cannot post", common.ErrNotBound, id.Name)
	}

	typ, err := models.ParsePostType(in.Type)
	if err != nil {
		return nil, err
	}
	if err := validatePostInput(typ, in); err != nil {
		return nil, err
	}

	post := &models.Post{Type: typ, Message: in.Message, Link: in.Link}
	if !in.CreateTS.IsZero() {
		post.CreateTS = common.FormatTimestamp(in.CreateTS)
	}
	if in.Place != "" {
		if post.Place, err = s.resolver.Resolve(ctx, in.Place); err != nil {
			return nil, err
		}
	}

	// media URIs are covered by the signature, so upload first
	switch typ {
	case models.PostPhoto:
		if post.Small, err = s.publisher.UploadMedia(ctx, id, in.PreviewFile); err != nil {
			return nil, err
		}
		if in.FullFile != "" {
			if post.Full, err = s.publisher.UploadMedia(ctx, id, in.FullFile); err != nil {
				return nil, err
			}
		}
	case models.PostVideo:
		if post.Preview, err = s.publisher.UploadMedia(ctx, id, in.PreviewFile); err != nil {
			return nil, err
		}
		if post.Media, err = s.publisher.UploadMedia(ctx, id, in.FullFile); err != nil {
			return nil, err
		}
	}

	if err := s.signer.Sign(post, id.SigningKey); err != nil {
		return nil, err
	}
	if err := s.publisher.PublishPost(ctx, id, post); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "post published", "identity", id.Name, "type", typ)
	return post, nil
}

func validatePostInput(typ models.PostType, in PostInput) error {
	switch typ {
	case models.PostText:
		if in.Message == "" {
			return fmt.Errorf("%w: text post needs a message", common.ErrMissingArgument)
		}
	case models.PostWeb:
		if in.Link == "" {
			return fmt.Errorf("%w: web post needs a link", common.ErrMissingArgument)
		}
	case models.PostPhoto:
		if in.PreviewFile == "" {
			return fmt.Errorf("%w: photo post needs a preview file", common.ErrMissingArgument)
		}
		if err := requireFile(in.PreviewFile); err != nil {
			return err
		}
		if in.FullFile != "" {
			return requireFile(in.FullFile)
		}
	case models.PostVideo:
		if in.PreviewFile == "" || in.FullFile == "" {
			return fmt.Errorf("%w: video post needs a preview and a media file", common.ErrMissingArgument)
		}
		if err := requireFile(in.PreviewFile); err != nil {
			return err
		}
		return requireFile(in.FullFile)
	}
	return nil
}

func requireFile(path string) error {
	ok, err := filex.Exists(path)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrLocalIO, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrFileNotFound, path)
	}
	return nil
}
