package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Harshitk-cp/brainbase/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileSnapshotStore reads a project snapshot from a .json, .yaml or .yml file.
type FileSnapshotStore struct {
	path string
}

func NewFileSnapshotStore(path string) (*FileSnapshotStore, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return &FileSnapshotStore{path: path}, nil
}

func (s *FileSnapshotStore) Path() string {
	return s.path
}

func (s *FileSnapshotStore) Latest(ctx context.Context) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	snap := &domain.Snapshot{}
	if strings.ToLower(filepath.Ext(s.path)) == ".json" {
		err = json.Unmarshal(data, snap)
	} else {
		err = yaml.Unmarshal(data, snap)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", s.path, err)
	}
	return snap, nil
}
