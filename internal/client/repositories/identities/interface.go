package identities

import (
	"context"

	"github.com/dmitrijs2005/spxp-cli/internal/client/models"
)

// Document names one persisted part of an identity.
type Document string

const (
	DocProfile Document = "profile"
	DocFriends Document = "friends"
	DocBinding Document = "binding"
)

// Repository persists identities.
type Repository interface {
	// Create stores a new identity with all its keys and documents. It fails
	// with common.ErrIdentityExists if an identity of that name exists; the
	// existing files are left untouched.
	Create(ctx context.Context, id *models.Identity) error

	// Load reads and validates the identity selected by ic. A missing identity
	// yields common.ErrIdentityNotFound.
	Load(ctx context.Context, ic models.IdentityContext) (*models.Identity, error)

	// Persist atomically writes the given documents of id.
	Persist(ctx context.Context, id *models.Identity, docs ...Document) error

	// List returns the names of all stored identities, sorted.
	List(ctx context.Context) ([]string, error)
}
