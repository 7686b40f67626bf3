package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"path"
)

// FSStore serves assets from a filesystem, normally the binary's embedded static tree.
type FSStore struct {
	fsys fs.FS
}

func NewFSStore(fsys fs.FS) *FSStore {
	return &FSStore{fsys: fsys}
}

func (s *FSStore) Open(_ context.Context, name string) (*Asset, error) {
	if name == "" || !fs.ValidPath(name) {
		return nil, ErrAssetNotFound
	}
	f, err := s.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("open asset %s: %w", name, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat asset %s: %w", name, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, ErrAssetNotFound
	}
	return &Asset{
		Body:        f,
		Size:        info.Size(),
		ContentType: contentType(name),
		ModTime:     info.ModTime(),
	}, nil
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

var _ AssetStore = (*FSStore)(nil)
