package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/fastygo/tasknest/domain"
	"github.com/fastygo/tasknest/repository"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// SlotStore keeps every slot in its own file under dir.
// Writes go through a temporary file and a rename so a reader never sees a partial value.
type SlotStore struct {
	fs  afero.Fs
	dir string
}

// NewSlotStore creates dir on fs if needed.
func NewSlotStore(fsys afero.Fs, dir string) (*SlotStore, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if dir == "" {
		dir = "."
	}
	if ok, _ := afero.DirExists(fsys, dir); !ok {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create slot directory %s: %w", dir, err)
		}
	}
	return &SlotStore{fs: fsys, dir: dir}, nil
}

func (s *SlotStore) Get(ctx context.Context, key string) (string, error) {
	path, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.ErrSlotNotFound
		}
		return "", err
	}
	return string(data), nil
}

func (s *SlotStore) Set(ctx context.Context, key, value string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp := path + "." + uuid.NewString() + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, []byte(value), 0o600); err != nil {
		return err
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return err
	}
	return nil
}

// Ping verifies the slot directory is still reachable.
func (s *SlotStore) Ping(ctx context.Context) error {
	info, err := s.fs.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}
	return nil
}

func (s *SlotStore) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", domain.WrapError(domain.ErrCodeInvalid, "invalid slot key", fmt.Errorf("%q", key))
	}
	return filepath.Join(s.dir, key+".json"), nil
}

var (
	_ repository.SlotStore = (*SlotStore)(nil)
	_ repository.Pinger    = (*SlotStore)(nil)
)
