// Package storage abstracts the S3-compatible blob store that holds the
// uploaded PDF content. Implementations stream everything; nothing ever
// touches local disk.
package storage

import (
	"context"
	"io"
	"time"
)

// PutObjectOptions carries the optional upload parameters. Size should
// be the exact byte count when known; -1 lets the backend chunk the
// stream itself.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the blob store client. Implementations must be safe for
// concurrent use.
type Storage interface {
	// Put uploads the reader's content under the given key.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get opens the object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
}
