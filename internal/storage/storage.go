package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"time"
)

// ErrAssetNotFound is returned when a static asset does not exist in the store.
var ErrAssetNotFound = errors.New("asset not found")

// Asset is an open static file. Size is -1 when unknown.
type Asset struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
	ModTime     time.Time
}

// UploadOptions conveys upload destination metadata.
type UploadOptions struct {
	Bucket           string
	KeyPrefix        string
	ProgressCallback func(done, total int64)
}

// AssetStore serves static files by name.
type AssetStore interface {
	Open(ctx context.Context, name string) (*Asset, error)
}

// Publisher copies a static file tree to remote object storage.
type Publisher interface {
	UploadFS(ctx context.Context, fsys fs.FS, opts UploadOptions) (string, error)
}
