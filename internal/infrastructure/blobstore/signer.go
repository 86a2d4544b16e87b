package blobstore

import (
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
)

// AzureSigner signs read-only blob SAS tokens offline with the account key.
type AzureSigner struct {
	accountName   string
	containerName string
	credential    *azblob.SharedKeyCredential
	ttl           time.Duration
	now           func() time.Time
}

func NewAzureSigner(accountName, accountKey, containerName string) (*AzureSigner, error) {
	if accountName == "" || accountKey == "" {
		return nil, fmt.Errorf("azure account name and key are required")
	}

	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("creating shared key credential: %w", err)
	}

	return &AzureSigner{
		accountName:   accountName,
		containerName: containerName,
		credential:    credential,
		ttl:           SignedURLTTL,
		now:           time.Now,
	}, nil
}

func (s *AzureSigner) SignedURL(name string) (string, error) {
	permissions := sas.BlobPermissions{Read: true}

	queryParams, err := sas.BlobSignatureValues{
		Protocol:      sas.ProtocolHTTPS,
		ExpiryTime:    s.now().UTC().Add(s.ttl),
		Permissions:   permissions.String(),
		ContainerName: s.containerName,
		BlobName:      name,
	}.SignWithSharedKey(s.credential)
	if err != nil {
		return "", fmt.Errorf("signing blob %q: %w", name, err)
	}

	return fmt.Sprintf("https://%s.blob.core.windows.net/%s/%s?%s", s.accountName, s.containerName, name, queryParams.Encode()), nil
}
