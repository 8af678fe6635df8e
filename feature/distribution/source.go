package distribution

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"ota-server/core/storage"

	"github.com/minio/minio-go/v7"
)

// ErrArtifactNotFound is returned when a backing file does not exist.
var ErrArtifactNotFound = errors.New("artifact not found")

// Object is an opened backing file. The caller must close Body.
type Object struct {
	Body    io.ReadCloser
	Size    int64
	ModTime time.Time
}

// Source opens backing files by path.
type Source interface {
	// Open returns the content of the file at p, or an error wrapping
	// ErrArtifactNotFound when it does not exist.
	Open(ctx context.Context, p string) (*Object, error)
	// Name identifies the source in logs and reports.
	Name() string
}

// NewSource creates the source selected by the configuration.
// The storage client is only used for the bucket source and may be nil otherwise.
func NewSource(cfg Config, client storage.Client, bucket string) (Source, error) {
	switch cfg.Source {
	case SourceDisk:
		return NewDiskSource(cfg.Root), nil
	case SourceBucket:
		if client == nil {
			return nil, errors.New("bucket source requires a storage client")
		}
		return NewBucketSource(client, bucket), nil
	default:
		return nil, fmt.Errorf("unknown artifact source: %q", cfg.Source)
	}
}

// DiskSource reads backing files from a local directory.
type DiskSource struct {
	root string
}

// NewDiskSource creates a source rooted at dir.
func NewDiskSource(dir string) *DiskSource {
	return &DiskSource{root: dir}
}

// Name returns "disk".
func (s *DiskSource) Name() string {
	return SourceDisk
}

// Open opens the file read-only. Directories count as missing.
func (s *DiskSource) Open(_ context.Context, p string) (*Object, error) {
	full := filepath.Join(s.root, filepath.FromSlash(p))

	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, p)
		}
		return nil, fmt.Errorf("failed to open %s: %w", p, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", p, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrArtifactNotFound, p)
	}

	return &Object{Body: f, Size: info.Size(), ModTime: info.ModTime()}, nil
}

// BucketSource reads backing files from an object storage bucket.
// Paths are used as object keys.
type BucketSource struct {
	client storage.Client
	bucket string
}

// NewBucketSource creates a source reading from bucket.
func NewBucketSource(client storage.Client, bucket string) *BucketSource {
	return &BucketSource{client: client, bucket: bucket}
}

// Name returns "bucket".
func (s *BucketSource) Name() string {
	return SourceBucket
}

// Open stats the object first so the size is known before streaming.
func (s *BucketSource) Open(ctx context.Context, p string) (*Object, error) {
	key := ObjectKey(p)

	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, key)
		}
		return nil, fmt.Errorf("failed to stat object %s: %w", key, err)
	}

	body, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}

	return &Object{Body: body, Size: info.Size, ModTime: info.LastModified}, nil
}

// ObjectKey converts a backing path into its object key.
func ObjectKey(p string) string {
	key := path.Clean("/" + filepath.ToSlash(p))
	return key[1:]
}
