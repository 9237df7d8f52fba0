package identities

import (
	"testing"

	"github.com/dmitrijs2005/spxp-cli/internal/client/models"
	"github.com/dmitrijs2005/spxp-cli/internal/cryptox"
	"github.com/stretchr/testify/require"
)

func newIdentity(t *testing.T, name string) *models.Identity {
	t.Helper()
	sk, err := cryptox.GenerateSigningKey()
	require.NoError(t, err)
	ck, err := cryptox.GenerateConnectionKey()
	require.NoError(t, err)
	return &models.Identity{
		Name:          name,
		SigningKey:    sk,
		ConnectionKey: ck,
		Profile:       models.NewProfile("John Doe", "Exploring", sk.PublicJWK()),
		Friends:       models.NewFriendsList(),
	}
}

// repositories returns one fresh instance of every implementation.
func repositories(t *testing.T) map[string]Repository {
	t.Helper()
	return map[string]Repository{
		"fs":     NewFSRepository(t.TempDir()),
		"memory": NewMemRepository(),
	}
}
