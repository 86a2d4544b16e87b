package config

import "time"

type MongoDBConfig struct {
	URI            string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	DBName         string        `envconfig:"DB_NAME" default:"product_db"`
	CollectionName string        `envconfig:"COLLECTION_NAME" default:"products"`
	Timeout        time.Duration `envconfig:"DB_TIMEOUT" default:"10s"`
}

const (
	StorageProviderAzure = "azure"
	StorageProviderMinio = "minio"
)

type StorageConfig struct {
	Provider      string        `envconfig:"STORAGE_PROVIDER" default:"azure"`
	ContainerName string        `envconfig:"CONTAINER_NAME" default:"images"`
	Timeout       time.Duration `envconfig:"STORAGE_TIMEOUT" default:"30s"`
	Azure         AzureConfig
	Minio         MinioConfig
}

type AzureConfig struct {
	ConnectionString string `envconfig:"AZURE_STORAGE_CONNECTION_STRING"`
	AccountName      string `envconfig:"ACCOUNT_NAME"`
	AccountKey       string `envconfig:"ACCOUNT_KEY"`
}

type MinioConfig struct {
	Endpoint  string `envconfig:"MINIO_ENDPOINT" default:"localhost:9000"`
	AccessKey string `envconfig:"MINIO_ACCESS_KEY"`
	SecretKey string `envconfig:"MINIO_SECRET_KEY"`
	UseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false"`
	Region    string `envconfig:"MINIO_REGION" default:"us-east-1"`
}

type KafkaConfig struct {
	BrokerAddress string `envconfig:"BROKER_ADDRESS"`
	BrokerTopic   string `envconfig:"BROKER_TOPIC" default:"product-catalog"`
}

type TracingConfig struct {
	// Tracing is disabled when CollectorHost is empty.
	CollectorHost string  `envconfig:"COLLECTOR_HOST"`
	CollectorPort string  `envconfig:"COLLECTOR_PORT" default:"4318"`
	Insecure      bool    `envconfig:"COLLECTOR_INSECURE" default:"true"`
	SampleRatio   float64 `envconfig:"TRACE_SAMPLE_RATIO" default:"1"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}
