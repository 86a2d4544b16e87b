package service

import (
	"context"

	"github.com/alimikegami/point-of-sales/product-catalog-service/internal/domain"
	"github.com/alimikegami/point-of-sales/product-catalog-service/internal/dto"
	"github.com/alimikegami/point-of-sales/product-catalog-service/internal/repository"
	"github.com/alimikegami/point-of-sales/product-catalog-service/pkg/blobref"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductServiceImpl struct {
	mongoDBRepo repository.MongoDBProductRepository
	images      ImageGateway
	publisher   EventPublisher
}

// CreateProductService wires the service. publisher may be nil, in which case
// no product events are emitted.
func CreateProductService(mongoDBRepo repository.MongoDBProductRepository, images ImageGateway, publisher EventPublisher) ProductService {
	return &ProductServiceImpl{mongoDBRepo: mongoDBRepo, images: images, publisher: publisher}
}

func (s *ProductServiceImpl) AddProduct(ctx context.Context, data dto.ProductRequest) (resp dto.AddProductResponse, err error) {
	imageURL := s.uploadOptionalImage(ctx, data.Image)

	productID, err := s.mongoDBRepo.AddProduct(ctx, domain.Product{
		Name:     data.Name,
		Price:    data.Price,
		Category: data.Category,
		ImageURL: imageURL,
	})
	if err != nil {
		return
	}

	s.publish(ctx, productID.Hex(), dto.EventProductCreated, dto.ProductEvent{
		ID:       productID.Hex(),
		Name:     data.Name,
		Price:    data.Price,
		Category: data.Category,
		ImageURL: imageURL,
	})

	return dto.AddProductResponse{
		Message:   "Product added",
		ProductID: productID.Hex(),
		ImageURL:  imageURL,
	}, nil
}

// uploadOptionalImage returns nil when there is no image or when the upload
// fails. A failed upload never aborts product creation.
func (s *ProductServiceImpl) uploadOptionalImage(ctx context.Context, image *dto.ImageFile) *string {
	if image == nil {
		return nil
	}

	signedURL, err := s.images.Upload(ctx, image.Filename, image.Content, image.Size, image.ContentType)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "AddProduct").Msg("continuing without image")
		return nil
	}

	return &signedURL
}

func (s *ProductServiceImpl) GetProducts(ctx context.Context) (data []dto.ProductResponse, err error) {
	products, err := s.mongoDBRepo.GetProducts(ctx)
	if err != nil {
		return
	}

	data = make([]dto.ProductResponse, 0, len(products))
	for _, product := range products {
		if id, ok := product[domain.FieldID].(primitive.ObjectID); ok {
			product[domain.FieldID] = id.Hex()
		}

		for _, key := range []string{domain.FieldImageURL, domain.FieldLegacyImageURL} {
			if storedURL, ok := product[key].(string); ok {
				product[key] = s.resign(ctx, storedURL)
			}
		}

		data = append(data, dto.ProductResponse(product))
	}

	return data, nil
}

// resign swaps the expired token of a stored image URL for a fresh one. The
// stored value is returned as is when no blob name can be recovered from it.
func (s *ProductServiceImpl) resign(ctx context.Context, storedURL string) string {
	blobName, ok := blobref.Decode(storedURL)
	if !ok {
		return storedURL
	}

	signedURL, err := s.images.SignedURL(blobName)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Str("blob", blobName).Msg("")
		return storedURL
	}

	return signedURL
}

func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, id string, fields dto.ProductUpdateRequest) (err error) {
	_, err = s.mongoDBRepo.UpdateProduct(ctx, id, fields)
	if err != nil {
		return
	}

	delete(fields, domain.FieldID)
	s.publish(ctx, id, dto.EventProductUpdated, dto.ProductEvent{
		ID:     id,
		Fields: fields,
	})

	return nil
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	_, err = s.mongoDBRepo.DeleteProduct(ctx, id)
	if err != nil {
		return
	}

	s.publish(ctx, id, dto.EventProductDeleted, dto.ProductEvent{ID: id})

	return nil
}

func (s *ProductServiceImpl) ClearProducts(ctx context.Context) (err error) {
	deleted, err := s.mongoDBRepo.DeleteProducts(ctx)
	if err != nil {
		return
	}

	s.publish(ctx, "", dto.EventProductsCleared, dto.ProductEvent{Count: deleted})

	return nil
}

// UploadImage surfaces upload failures, unlike AddProduct which degrades to
// a product without an image.
func (s *ProductServiceImpl) UploadImage(ctx context.Context, image dto.ImageFile) (resp dto.UploadImageResponse, err error) {
	signedURL, err := s.images.Upload(ctx, image.Filename, image.Content, image.Size, image.ContentType)
	if err != nil {
		return
	}

	return dto.UploadImageResponse{ImageURL: signedURL}, nil
}

func (s *ProductServiceImpl) publish(ctx context.Context, key string, eventType string, data dto.ProductEvent) {
	if s.publisher == nil {
		return
	}

	s.publisher.Publish(ctx, key, eventType, data)
}
