package blobstore

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/alimikegami/point-of-sales/product-catalog-service/config"
	"github.com/alimikegami/point-of-sales/product-catalog-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/product-catalog-service/pkg/utils"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultUploadTimeout = 30 * time.Second

// Gateway uploads images under their sanitized filename and hands back a
// freshly signed URL.
type Gateway struct {
	store   Store
	timeout time.Duration
}

func NewGateway(store Store, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = defaultUploadTimeout
	}

	return &Gateway{store: store, timeout: timeout}
}

// CreateGateway builds the store selected by STORAGE_PROVIDER.
func CreateGateway(ctx context.Context, conf config.StorageConfig) (*Gateway, error) {
	transport := otelhttp.NewTransport(http.DefaultTransport)

	var store Store
	switch conf.Provider {
	case config.StorageProviderMinio:
		minioStore, err := NewMinioStore(conf.Minio.Endpoint, conf.Minio.AccessKey, conf.Minio.SecretKey, conf.Minio.Region, conf.ContainerName, conf.Minio.UseSSL, transport)
		if err != nil {
			return nil, err
		}

		if err := minioStore.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		store = minioStore
	default:
		azureStore, err := NewAzureStore(conf.Azure.ConnectionString, conf.Azure.AccountName, conf.Azure.AccountKey, conf.ContainerName, &http.Client{
			Transport: transport,
			Timeout:   conf.Timeout,
		})
		if err != nil {
			return nil, err
		}
		store = azureStore
	}

	return NewGateway(store, conf.Timeout), nil
}

// Upload stores body under the sanitized form of filename. The upload is
// detached from ctx cancellation and bounded only by the gateway timeout.
func (g *Gateway) Upload(ctx context.Context, filename string, body io.Reader, size int64, contentType string) (string, error) {
	name := utils.SecureFilename(filename)
	if name == "" {
		log.Ctx(ctx).Error().Str("component", "Upload").Str("filename", filename).Msg("filename is empty after sanitizing")
		return "", errs.ErrInvalidFilename
	}

	uploadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.timeout)
	defer cancel()

	if err := g.store.Upload(uploadCtx, name, body, size, contentType); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Upload").Str("blob", name).Msg("blob upload failed")
		return "", err
	}

	signedURL, err := g.store.SignedURL(name)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Upload").Str("blob", name).Msg("signing blob url failed")
		return "", err
	}

	return signedURL, nil
}

func (g *Gateway) SignedURL(name string) (string, error) {
	return g.store.SignedURL(name)
}
