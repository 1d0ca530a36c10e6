package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

// DefaultBaseURL is the public URL prefix of Google Cloud Storage objects.
const DefaultBaseURL = "https://storage.googleapis.com"

// BucketArgs are the mandatory arguments for the creation of a Bucket.
type BucketArgs struct {
	// Client is a cloud storage client.
	Client *storage.Client

	// Name is the bucket name.
	Name string
}

// BucketOptArgs are the optional arguments for building a Bucket.
type BucketOptArgs = func(*Bucket)

// WithBaseURL overrides the public URL prefix of the objects (e.g. a CDN or a local emulator).
func WithBaseURL(baseURL string) BucketOptArgs {
	return func(b *Bucket) {
		b.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithKeyFunc overrides the generation of object names. Useful for testing.
func WithKeyFunc(keyFunc func() string) BucketOptArgs {
	return func(b *Bucket) {
		b.keyFunc = keyFunc
	}
}

// NewBucket creates a new Bucket.
func NewBucket(args BucketArgs, optArgs ...BucketOptArgs) (*Bucket, error) {
	if args.Client == nil {
		return nil, errors.New("nil storage client")
	}
	if args.Name == "" {
		return nil, errors.New("empty bucket name")
	}
	b := &Bucket{
		handle:  args.Client.Bucket(args.Name),
		name:    args.Name,
		baseURL: DefaultBaseURL,
		keyFunc: uuid.NewString,
	}
	for _, opt := range optArgs {
		opt(b)
	}
	return b, nil
}

// Bucket is a Google Cloud Storage adapter. It implements ports.ObjectStorage.
type Bucket struct {
	handle  *storage.BucketHandle
	name    string
	baseURL string
	keyFunc func() string
}

// Upload stores data under a fresh key. The key keeps the extension of the original file name.
func (b *Bucket) Upload(ctx context.Context, data []byte, name, mimeType string, opts model.UploadOptions) (*model.StoredObject, error) {
	key := objectKey(opts.Folder, b.keyFunc(), name)

	w := b.handle.Object(key).NewWriter(ctx)
	w.ContentType = mimeType
	if opts.CacheControl != "" {
		w.CacheControl = opts.CacheControl
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("error writing object [%s]: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("error finalizing object [%s]: %w", key, err)
	}
	return &model.StoredObject{Key: key, URL: b.URL(key)}, nil
}

// Delete removes the object. Deleting a missing object is not an error.
func (b *Bucket) Delete(ctx context.Context, key string) error {
	if err := b.handle.Object(key).Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("error deleting object [%s]: %w", key, err)
	}
	return nil
}

// URL returns the public URL of the object.
func (b *Bucket) URL(key string) string {
	return b.baseURL + "/" + url.PathEscape(b.name) + "/" + escapeKey(key)
}

func objectKey(folder, id, name string) string {
	key := id + strings.ToLower(path.Ext(name))
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return key
	}
	return folder + "/" + key
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
