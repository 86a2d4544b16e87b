package main

import (
	"context"

	"github.com/alimikegami/point-of-sales/product-catalog-service/config"
	"github.com/alimikegami/point-of-sales/product-catalog-service/internal/app"
	"github.com/alimikegami/point-of-sales/product-catalog-service/internal/infrastructure/database/mongodb"
	"github.com/rs/zerolog/log"
)

func main() {
	config := config.CreateNewConfig()
	app.SetupLogger(config)

	db, err := mongodb.ConnectToMongoDB(context.Background(), config.MongoDBConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}

	defer func() {
		if err := mongodb.Disconnect(db); err != nil {
			log.Error().Err(err).Msg("Failed to disconnect from MongoDB")
		}
	}()

	app := app.App{
		DB:     db,
		Config: config,
	}

	app.Start()
}
