package identities

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dmitrijs2005/spxp-cli/internal/client/models"
	"github.com/dmitrijs2005/spxp-cli/internal/common"
)

// MemRepository keeps encoded identity files in memory. Loads always decode
// fresh copies, so callers cannot alias stored state.
type MemRepository struct {
	mu    sync.Mutex
	files map[string]map[string][]byte

	// PersistErr, when set, is returned by Persist without writing anything.
	PersistErr error
}

func NewMemRepository() *MemRepository {
	return &MemRepository{files: make(map[string]map[string][]byte)}
}

func (r *MemRepository) Create(ctx context.Context, id *models.Identity) error {
	if err := validateName(id.Name); err != nil {
		return err
	}
	files, err := encodeAll(id)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.files[id.Name]; ok {
		return fmt.Errorf("%w: %q", common.ErrIdentityExists, id.Name)
	}
	r.files[id.Name] = files
	return nil
}

func (r *MemRepository) Load(ctx context.Context, ic models.IdentityContext) (*models.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	files, ok := r.files[ic.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrIdentityNotFound, ic.Name)
	}
	return decodeIdentity(ic.Name, func(file string) ([]byte, error) {
		return files[file], nil
	})
}

func (r *MemRepository) Persist(ctx context.Context, id *models.Identity, docs ...Document) error {
	if r.PersistErr != nil {
		return r.PersistErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	files, ok := r.files[id.Name]
	if !ok {
		return fmt.Errorf("%w: %q", common.ErrIdentityNotFound, id.Name)
	}
	for _, d := range docs {
		file, err := fileFor(d)
		if err != nil {
			return err
		}
		data, err := encodeDocument(id, d)
		if err != nil {
			return err
		}
		files[file] = data
	}
	return nil
}

func (r *MemRepository) List(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.files))
	for n := range r.files {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Raw returns the stored bytes of one file, for assertions in tests.
func (r *MemRepository) Raw(name string, doc Document) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := fileFor(doc)
	if err != nil {
		return nil
	}
	return append([]byte(nil), r.files[name][file]...)
}
