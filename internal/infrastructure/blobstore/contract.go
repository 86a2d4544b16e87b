// Package blobstore stores product images in an object store and issues
// time-limited read URLs for them.
package blobstore

import (
	"context"
	"io"
	"time"
)

// SignedURLTTL is how long an issued image URL stays readable.
const SignedURLTTL = time.Hour

// Store is an object store that can overwrite objects by name and sign read
// URLs without a network round trip.
type Store interface {
	Upload(ctx context.Context, name string, body io.Reader, size int64, contentType string) error
	SignedURL(name string) (string, error)
}

