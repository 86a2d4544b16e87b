package service

import (
	"context"
	"io"

	"github.com/alimikegami/point-of-sales/product-catalog-service/internal/dto"
)

type ProductService interface {
	AddProduct(ctx context.Context, data dto.ProductRequest) (resp dto.AddProductResponse, err error)
	GetProducts(ctx context.Context) (data []dto.ProductResponse, err error)
	UpdateProduct(ctx context.Context, id string, fields dto.ProductUpdateRequest) (err error)
	DeleteProduct(ctx context.Context, id string) (err error)
	ClearProducts(ctx context.Context) (err error)
	UploadImage(ctx context.Context, image dto.ImageFile) (resp dto.UploadImageResponse, err error)
}

// ImageGateway stores uploaded images and signs read URLs for them.
type ImageGateway interface {
	Upload(ctx context.Context, filename string, body io.Reader, size int64, contentType string) (string, error)
	SignedURL(name string) (string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, eventType string, data interface{})
}
