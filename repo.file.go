package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

var _ SnapshotStore = (*fileSnapshotStore)(nil)

type fileSnapshotStore struct {
	logger *zap.Logger
	path   string
}

// NewFileSnapshotStore provides a snapshot store keeping adverts
// as a JSON array into a single file.
func NewFileSnapshotStore(logger *zap.Logger, path string) SnapshotStore {
	return &fileSnapshotStore{
		logger: logger,
		path:   path,
	}
}

// Load reads the whole snapshot file. A missing file is an empty snapshot.
func (fss *fileSnapshotStore) Load(ctx context.Context) ([]Advert, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fss.path)
	if errors.Is(err, os.ErrNotExist) {
		fss.logger.Info("snapshot: file does not exist", zap.String("snapshot.path", fss.path))
		return []Advert{}, nil
	}
	if err != nil {
		return nil, err
	}
	adverts := []Advert{}
	if err = json.Unmarshal(data, &adverts); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot file %s: %w", fss.path, err)
	}
	return adverts, nil
}

// Save rewrites the snapshot file. The content is first written to a
// temporary file of the same folder which is then renamed over the target.
func (fss *fileSnapshotStore) Save(ctx context.Context, adverts []Advert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if adverts == nil {
		adverts = []Advert{}
	}
	dir := filepath.Dir(fss.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(fss.path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err = json.NewEncoder(tmp).Encode(adverts); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), fss.mode()); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), fss.path)
}

// mode keeps the permissions of an existing snapshot file.
func (fss *fileSnapshotStore) mode() os.FileMode {
	if info, err := os.Stat(fss.path); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}

// Close is a no-op since the file is never kept open.
func (fss *fileSnapshotStore) Close() error {
	return nil
}
