package blobstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// MinioStore keeps images in any S3-compatible bucket. The region is fixed at
// construction so presigning never has to look up the bucket location.
type MinioStore struct {
	client *minio.Client
	bucket string
	ttl    time.Duration
}

func NewMinioStore(endpoint, accessKey, secretKey, region, bucket string, useSSL bool, transport http.RoundTripper) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:    useSSL,
		Region:    region,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &MinioStore{client: client, bucket: bucket, ttl: SignedURLTTL}, nil
}

func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket existence: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %q: %w", s.bucket, err)
		}
		log.Info().Str("component", "EnsureBucket").Str("bucket", s.bucket).Msg("created bucket")
	}

	return nil
}

// Upload writes body under name, replacing any existing object. A negative
// size makes the client buffer the stream.
func (s *MinioStore) Upload(ctx context.Context, name string, body io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, name, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", name, err)
	}

	return nil
}

func (s *MinioStore) SignedURL(name string) (string, error) {
	u, err := s.client.PresignedGetObject(context.Background(), s.bucket, name, s.ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign object %q: %w", name, err)
	}

	return u.String(), nil
}
