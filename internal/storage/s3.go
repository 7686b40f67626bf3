package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of *s3.Client used here.
type S3API interface {
	manager.UploadAPIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Service serves and publishes static assets on Amazon S3 (or compatible APIs).
type S3Service struct {
	client    S3API
	uploader  *manager.Uploader
	bucket    string
	keyPrefix string
}

func NewS3Service(client S3API, bucket, keyPrefix string) *S3Service {
	return &S3Service{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
	}
}

func (s *S3Service) Open(ctx context.Context, name string) (*Asset, error) {
	if name == "" || !fs.ValidPath(name) {
		return nil, ErrAssetNotFound
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(joinKey(s.keyPrefix, name)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("get object %s: %w", name, err)
	}

	asset := &Asset{
		Body:        out.Body,
		Size:        -1,
		ContentType: aws.ToString(out.ContentType),
	}
	if out.ContentLength != nil {
		asset.Size = *out.ContentLength
	}
	if asset.ContentType == "" {
		asset.ContentType = contentType(name)
	}
	if out.LastModified != nil {
		asset.ModTime = *out.LastModified
	}
	return asset, nil
}

// UploadFS copies every regular file in fsys to the bucket under opts.KeyPrefix
// and returns the s3:// location of the prefix.
func (s *S3Service) UploadFS(ctx context.Context, fsys fs.FS, opts UploadOptions) (string, error) {
	bucket := opts.Bucket
	if bucket == "" {
		bucket = s.bucket
	}
	if bucket == "" {
		return "", fmt.Errorf("storage bucket is required")
	}
	keyPrefix := strings.Trim(opts.KeyPrefix, "/")
	if keyPrefix == "" {
		keyPrefix = s.keyPrefix
	}

	type uploadFile struct {
		name string
		size int64
	}

	var files []uploadFile
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", name, err)
		}
		files = append(files, uploadFile{name: name, size: info.Size()})
		return nil
	})
	if err != nil {
		return "", err
	}

	var totalSize int64
	for _, file := range files {
		totalSize += file.size
	}

	progress := newProgressReporter(totalSize, opts.ProgressCallback)
	if progress != nil {
		progress.report(0)
	}

	for _, file := range files {
		f, err := fsys.Open(file.name)
		if err != nil {
			return "", fmt.Errorf("open file %s: %w", file.name, err)
		}
		var reader io.Reader = f
		if progress != nil {
			reader = io.TeeReader(f, progress)
		}
		_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(joinKey(keyPrefix, file.name)),
			Body:        reader,
			ContentType: aws.String(contentType(file.name)),
			ACL:         types.ObjectCannedACLPrivate,
		})
		closeErr := f.Close()
		if err != nil {
			return "", fmt.Errorf("upload %s: %w", file.name, err)
		}
		if closeErr != nil {
			return "", fmt.Errorf("close file %s: %w", file.name, closeErr)
		}
	}

	if progress != nil {
		progress.flush()
	}

	return fmt.Sprintf("s3://%s/%s", bucket, keyPrefix), nil
}

func joinKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var respErr *awshttp.ResponseError
	return errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound
}

var (
	_ AssetStore = (*S3Service)(nil)
	_ Publisher  = (*S3Service)(nil)
)

type progressReporter struct {
	total    int64
	done     int64
	cb       func(done, total int64)
	mu       sync.Mutex
	lastFire time.Time
}

func newProgressReporter(total int64, cb func(done, total int64)) *progressReporter {
	if cb == nil {
		return nil
	}
	return &progressReporter{
		total: total,
		cb:    cb,
	}
}

func (p *progressReporter) Write(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done += int64(len(b))
	now := time.Now()
	if now.Sub(p.lastFire) >= 200*time.Millisecond || p.done == p.total {
		p.lastFire = now
		p.cb(p.done, p.total)
	}

	return len(b), nil
}

func (p *progressReporter) report(done int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done = done
	p.lastFire = time.Now()
	p.cb(p.done, p.total)
}

func (p *progressReporter) flush() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cb(p.done, p.total)
}
