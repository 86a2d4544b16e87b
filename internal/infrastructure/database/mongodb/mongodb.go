package mongodb

import (
	"context"
	"time"

	"github.com/alimikegami/point-of-sales/product-catalog-service/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
)

func ConnectToMongoDB(ctx context.Context, conf config.MongoDBConfig) (*mongo.Database, error) {
	clientOptions := options.Client().
		ApplyURI(conf.URI).
		SetTimeout(conf.Timeout).
		SetMonitor(otelmongo.NewMonitor())

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, conf.Timeout)
	defer cancel()

	if err = client.Ping(pingCtx, nil); err != nil {
		return nil, err
	}

	return client.Database(conf.DBName), nil
}

func Disconnect(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return db.Client().Disconnect(ctx)
}
