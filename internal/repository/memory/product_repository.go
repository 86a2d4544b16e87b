// Package memory holds an in-process product repository used where a MongoDB
// deployment is not available, such as handler and service tests.
package memory

import (
	"context"
	"sync"

	"github.com/alimikegami/point-of-sales/product-catalog-service/internal/domain"
	"github.com/alimikegami/point-of-sales/product-catalog-service/internal/repository"
	"github.com/alimikegami/point-of-sales/product-catalog-service/pkg/errs"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductRepository struct {
	mu       sync.RWMutex
	products map[primitive.ObjectID]bson.M
	order    []primitive.ObjectID
}

var _ repository.MongoDBProductRepository = (*ProductRepository)(nil)

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: map[primitive.ObjectID]bson.M{}}
}

func (r *ProductRepository) AddProduct(ctx context.Context, data domain.Product) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := primitive.NewObjectID()
	r.products[id] = bson.M{
		domain.FieldID:       id,
		"name":               nullable(data.Name),
		"price":              data.Price,
		"category":           nullable(data.Category),
		domain.FieldImageURL: nullable(data.ImageURL),
	}
	r.order = append(r.order, id)

	return id, nil
}

// nullable mirrors how the driver stores a nil pointer.
func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func (r *ProductRepository) GetProducts(ctx context.Context) ([]bson.M, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data := make([]bson.M, 0, len(r.order))
	for _, id := range r.order {
		data = append(data, clone(r.products[id]))
	}

	return data, nil
}

// GetProduct is a lookup helper for tests; it is not part of the repository
// contract.
func (r *ProductRepository) GetProduct(id primitive.ObjectID) (bson.M, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, false
	}
	return clone(product), true
}

func clone(doc bson.M) bson.M {
	copied := make(bson.M, len(doc))
	for k, v := range doc {
		copied[k] = v
	}
	return copied
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, errs.ErrInvalidID
	}

	set := bson.M{}
	for k, v := range fields {
		if k != domain.FieldID {
			set[k] = v
		}
	}
	if len(set) == 0 {
		return 0, errs.ErrEmptyUpdate
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[productID]
	if !ok {
		return 0, errs.ErrNotFound
	}

	for k, v := range set {
		product[k] = v
	}

	return 1, nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id string) (int64, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, errs.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[productID]; !ok {
		return 0, errs.ErrNotFound
	}

	delete(r.products, productID)
	for i, existing := range r.order {
		if existing == productID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return 1, nil
}

func (r *ProductRepository) DeleteProducts(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := int64(len(r.products))
	r.products = map[primitive.ObjectID]bson.M{}
	r.order = nil

	return deleted, nil
}
