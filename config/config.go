package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	ServicePort   string `envconfig:"SERVICE_PORT" default:"5000"`
	MetricsPort   string `envconfig:"METRICS_PORT" default:"9090"`
	Environment   string `envconfig:"ENVIRONMENT" default:"development"`
	MongoDBConfig MongoDBConfig
	StorageConfig StorageConfig
	KafkaConfig   KafkaConfig
	TracingConfig TracingConfig
	CORSConfig    CORSConfig
}

func CreateNewConfig() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Info().Str("component", "CreateNewConfig").Msg("no .env file found, reading from environment")
	}

	conf := Config{}
	if err := envconfig.Process("", &conf); err != nil {
		log.Fatal().Err(err).Str("component", "CreateNewConfig").Msg("failed to process environment config")
	}

	return &conf
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
