package store

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Store is the output directory reports are written to. The directory may be
// shared with other files, so the store only ever touches files it is told
// to write or remove.
type Store struct {
	fs  *afero.Afero
	dir string
}

// New creates dir if needed. It fails if dir exists and is not a directory.
func New(fs afero.Fs, dir string) (*Store, error) {
	s := &Store{
		fs:  &afero.Afero{Fs: fs},
		dir: dir,
	}

	exists, err := s.fs.Exists(dir)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", dir, err)
	}
	if exists {
		isDir, err := s.fs.IsDir(dir)
		if err != nil {
			return nil, fmt.Errorf("checking %s: %w", dir, err)
		}
		if !isDir {
			return nil, fmt.Errorf("%s is not a directory", dir)
		}
	}

	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}

	return s, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// Remove deletes the named files a previous run left behind. Missing files
// are skipped; directories are never removed.
func (s *Store) Remove(names ...string) error {
	for _, name := range names {
		p := s.path(name)
		exists, err := s.fs.Exists(p)
		if err != nil {
			return fmt.Errorf("checking %s: %w", name, err)
		}
		if !exists {
			continue
		}
		if isDir, _ := s.fs.IsDir(p); isDir {
			continue
		}
		if err := s.fs.Remove(p); err != nil {
			return fmt.Errorf("removing %s: %w", name, err)
		}
	}
	return nil
}
