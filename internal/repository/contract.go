package repository

import (
	"context"

	"github.com/alimikegami/point-of-sales/product-catalog-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MongoDBProductRepository interface {
	AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error)
	// GetProducts returns every document as stored. Updates are not
	// validated, so documents are not decoded into domain.Product.
	GetProducts(ctx context.Context) (data []bson.M, err error)
	UpdateProduct(ctx context.Context, id string, fields map[string]interface{}) (matched int64, err error)
	DeleteProduct(ctx context.Context, id string) (deleted int64, err error)
	DeleteProducts(ctx context.Context) (deleted int64, err error)
}
