package repository

import (
	"context"

	"github.com/alimikegami/point-of-sales/product-catalog-service/internal/domain"
	"github.com/alimikegami/point-of-sales/product-catalog-service/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoDBProductRepositoryImpl struct {
	collection *mongo.Collection
}

func CreateNewMongoDBRepository(db *mongo.Database, collectionName string) MongoDBProductRepository {
	return &MongoDBProductRepositoryImpl{collection: db.Collection(collectionName)}
}

func (r *MongoDBProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error) {
	result, err := r.collection.InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBProductRepositoryImpl) GetProducts(ctx context.Context) (data []bson.M, err error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}
	defer cursor.Close(ctx)

	data = []bson.M{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) UpdateProduct(ctx context.Context, id string, fields map[string]interface{}) (matched int64, err error) {
	productID, err := parseProductID(ctx, id, "UpdateProduct")
	if err != nil {
		return
	}

	set := bson.M{}
	for k, v := range fields {
		if k == domain.FieldID {
			continue
		}
		set[k] = v
	}

	if len(set) == 0 {
		return 0, errs.ErrEmptyUpdate
	}

	filter := bson.D{{Key: domain.FieldID, Value: productID}}
	update := bson.D{{Key: "$set", Value: set}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateProduct").Msg("Failed to update product")
		return
	}

	if result.MatchedCount == 0 {
		log.Ctx(ctx).Info().Str("component", "UpdateProduct").Str("product_id", id).Msg("product not found")
		return 0, errs.ErrNotFound
	}

	return result.MatchedCount, nil
}

func (r *MongoDBProductRepositoryImpl) DeleteProduct(ctx context.Context, id string) (deleted int64, err error) {
	productID, err := parseProductID(ctx, id, "DeleteProduct")
	if err != nil {
		return
	}

	filter := bson.D{{Key: domain.FieldID, Value: productID}}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		log.Ctx(ctx).Info().Str("component", "DeleteProduct").Str("product_id", id).Msg("product not found")
		return 0, errs.ErrNotFound
	}

	return result.DeletedCount, nil
}

func (r *MongoDBProductRepositoryImpl) DeleteProducts(ctx context.Context) (deleted int64, err error) {
	result, err := r.collection.DeleteMany(ctx, bson.D{})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProducts").Msg("")
		return
	}

	return result.DeletedCount, nil
}

func parseProductID(ctx context.Context, id string, component string) (primitive.ObjectID, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return primitive.NilObjectID, errs.ErrInvalidID
	}

	return productID, nil
}
