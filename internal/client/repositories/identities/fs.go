package identities

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/dmitrijs2005/spxp-cli/internal/client/models"
	"github.com/dmitrijs2005/spxp-cli/internal/common"
	"github.com/dmitrijs2005/spxp-cli/internal/filex"
)

const (
	keyFilePerm = 0o600
	docFilePerm = 0o644
)

// FSRepository stores identities as directories below Root.
type FSRepository struct {
	Root string
}

func NewFSRepository(root string) *FSRepository {
	return &FSRepository{Root: root}
}

func (r *FSRepository) dir(name string) string {
	return filepath.Join(r.Root, name)
}

func (r *FSRepository) Create(ctx context.Context, id *models.Identity) error {
	if err := validateName(id.Name); err != nil {
		return err
	}
	files, err := encodeAll(id)
	if err != nil {
		return err
	}

	dir := r.dir(id.Name)
	if err := filex.CreateDir(dir); err != nil {
		if errors.Is(err, filex.ErrExists) {
			return fmt.Errorf("%w: %q", common.ErrIdentityExists, id.Name)
		}
		return fmt.Errorf("%w: %v", common.ErrLocalIO, err)
	}

	for name, data := range files {
		perm := os.FileMode(docFilePerm)
		if name == fileSigningKey || name == fileConnectionKey {
			perm = keyFilePerm
		}
		if err := filex.WriteFileAtomic(filepath.Join(dir, name), data, perm); err != nil {
			// the directory was created above, nothing else can be in it
			_ = os.RemoveAll(dir)
			return fmt.Errorf("%w: %v", common.ErrLocalIO, err)
		}
	}
	return nil
}

func (r *FSRepository) Load(ctx context.Context, ic models.IdentityContext) (*models.Identity, error) {
	if err := validateName(ic.Name); err != nil {
		return nil, err
	}
	dir := r.dir(ic.Name)

	ok, err := filex.Exists(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrLocalIO, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrIdentityNotFound, ic.Name)
	}

	return decodeIdentity(ic.Name, func(file string) ([]byte, error) {
		b, err := os.ReadFile(filepath.Join(dir, file))
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrLocalIO, err)
		}
		return b, nil
	})
}

func (r *FSRepository) Persist(ctx context.Context, id *models.Identity, docs ...Document) error {
	if err := validateName(id.Name); err != nil {
		return err
	}
	dir := r.dir(id.Name)
	for _, d := range docs {
		file, err := fileFor(d)
		if err != nil {
			return err
		}
		data, err := encodeDocument(id, d)
		if err != nil {
			return err
		}
		if err := filex.WriteFileAtomic(filepath.Join(dir, file), data, docFilePerm); err != nil {
			return fmt.Errorf("%w: %v", common.ErrLocalIO, err)
		}
	}
	return nil
}

func (r *FSRepository) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.Root)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrLocalIO, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() || validateName(e.Name()) != nil {
			continue
		}
		ok, err := filex.Exists(filepath.Join(r.Root, e.Name(), fileProfile))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrLocalIO, err)
		}
		if ok {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
