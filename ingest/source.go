package ingest

import (
	"context"
	"os"
	"path/filepath"
)

// ObjectSource hands out raw document bytes by opaque key.
type ObjectSource interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Size(ctx context.Context, key string) (int64, error)
}

// DirSource serves objects from a directory; keys are paths relative
// to its root.
type DirSource struct {
	root string
}

func NewDirSource(root string) *DirSource {
	return &DirSource{root: root}
}

func (s *DirSource) Get(ctx context.Context, key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.root, key))
}

func (s *DirSource) Size(ctx context.Context, key string) (int64, error) {
	info, err := os.Stat(filepath.Join(s.root, key))
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
