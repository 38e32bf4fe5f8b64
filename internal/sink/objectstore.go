package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// ObjectStore holds the files of one output location. Keys are
// slash-separated and relative to the location root.
type ObjectStore interface {
	// Clear removes everything under the location root.
	Clear(ctx context.Context) (int, error)
	// Create opens key for writing. The object is complete once the writer
	// is closed without error.
	Create(ctx context.Context, key string) (io.WriteCloser, error)
	Close() error
}

// OpenObjectStore returns the store for loc.
func OpenObjectStore(ctx context.Context, loc Location) (ObjectStore, error) {
	switch loc.Scheme {
	case "gs":
		return NewGCSStore(ctx, loc.Bucket, loc.Path)
	case "file":
		return NewLocalStore(loc.Path), nil
	default:
		return nil, fmt.Errorf("OpenObjectStore: unsupported scheme %q", loc.Scheme)
	}
}

// GCSStore writes objects under a prefix of a GCS bucket. It assumes
// Application Default Credentials are configured.
type GCSStore struct {
	client *storage.Client
	bucket string
	prefix string

	// UploadTimeout bounds each object upload.
	UploadTimeout time.Duration
}

// NewGCSStore creates a GCSStore with its own client. Close it when done.
func NewGCSStore(ctx context.Context, bucket, prefix string) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewGCSStore: create storage client: %w", err)
	}
	return &GCSStore{
		client:        client,
		bucket:        bucket,
		prefix:        prefix,
		UploadTimeout: 2 * time.Minute,
	}, nil
}

// Close closes the storage client.
func (s *GCSStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// Clear implements ObjectStore.
func (s *GCSStore) Clear(ctx context.Context) (int, error) {
	bkt := s.client.Bucket(s.bucket)
	it := bkt.Objects(ctx, &storage.Query{Prefix: s.prefix + "/"})

	deleted := 0
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return deleted, fmt.Errorf("GCSStore.Clear: listing gs://%s/%s: %w", s.bucket, s.prefix, err)
		}
		if err := bkt.Object(attrs.Name).Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
			return deleted, fmt.Errorf("GCSStore.Clear: deleting %s: %w", attrs.Name, err)
		}
		deleted++
	}
	return deleted, nil
}

// Create implements ObjectStore.
func (s *GCSStore) Create(ctx context.Context, key string) (io.WriteCloser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.UploadTimeout)
	w := s.client.Bucket(s.bucket).Object(path.Join(s.prefix, key)).NewWriter(ctx)
	return &gcsWriter{Writer: w, cancel: cancel}, nil
}

type gcsWriter struct {
	*storage.Writer
	cancel context.CancelFunc
}

func (w *gcsWriter) Close() error {
	defer w.cancel()
	if err := w.Writer.Close(); err != nil {
		return fmt.Errorf("finalize upload %s: %w", w.Writer.Name, err)
	}
	return nil
}

// LocalStore writes files under a local directory.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

// Close implements ObjectStore.
func (s *LocalStore) Close() error { return nil }

// Clear implements ObjectStore.
func (s *LocalStore) Clear(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("LocalStore.Clear: %w", err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(s.dir, e.Name())); err != nil {
			return 0, fmt.Errorf("LocalStore.Clear: %w", err)
		}
	}
	return len(entries), nil
}

// Create implements ObjectStore.
func (s *LocalStore) Create(ctx context.Context, key string) (io.WriteCloser, error) {
	p := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return nil, fmt.Errorf("LocalStore.Create: %w", err)
	}
	f, err := os.Create(p)
	if err != nil {
		return nil, fmt.Errorf("LocalStore.Create: %w", err)
	}
	return f, nil
}
