package blobstore

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
)

type AzureStore struct {
	client        *azblob.Client
	containerName string
	*AzureSigner
}

func NewAzureStore(connectionString, accountName, accountKey, containerName string, httpClient *http.Client) (*AzureStore, error) {
	signer, err := NewAzureSigner(accountName, accountKey, containerName)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientFromConnectionString(connectionString, &azblob.ClientOptions{
		ClientOptions: azcore.ClientOptions{Transport: httpClient},
	})
	if err != nil {
		return nil, fmt.Errorf("creating azure blob client: %w", err)
	}

	return &AzureStore{client: client, containerName: containerName, AzureSigner: signer}, nil
}

// Upload writes body under name, replacing any existing blob.
func (s *AzureStore) Upload(ctx context.Context, name string, body io.Reader, size int64, contentType string) error {
	opts := &azblob.UploadStreamOptions{}
	if contentType != "" {
		opts.HTTPHeaders = &blob.HTTPHeaders{BlobContentType: to.Ptr(contentType)}
	}

	if _, err := s.client.UploadStream(ctx, s.containerName, name, body, opts); err != nil {
		return fmt.Errorf("uploading blob %q: %w", name, err)
	}

	return nil
}
