package s3

import (
	"context"
	"path"
	"sync"
)

// Archive writes run artifacts into one bucket under a fixed prefix.
type Archive struct {
	client *Client
	bucket string
	prefix string

	once      sync.Once
	ensureErr error
}

// NewArchive creates an archive writing to bucket under prefix.
func NewArchive(client *Client, bucket, prefix string) *Archive {
	return &Archive{client: client, bucket: bucket, prefix: prefix}
}

// Key returns the object key for name.
func (a *Archive) Key(name string) string {
	return path.Join(a.prefix, name)
}

// Put stores body under the archive prefix. The bucket is created on the
// first call if needed.
func (a *Archive) Put(ctx context.Context, name string, body []byte) error {
	a.once.Do(func() {
		a.ensureErr = a.client.EnsureBucket(ctx, a.bucket)
	})
	if a.ensureErr != nil {
		return a.ensureErr
	}
	return a.client.PutObject(ctx, a.bucket, a.Key(name), body)
}
