package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string `envconfig:"DB_HOST"`
	Port               string `envconfig:"DB_PORT" default:"5432"`
	User               string `envconfig:"DB_USER"`
	Password           string `envconfig:"DB_PASSWORD"`
	Name               string `envconfig:"DB_NAME"`
	SSLMode            string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenConns       int    `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns       int    `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetimeSec int    `envconfig:"DB_CONN_MAX_LIFETIME_SEC" default:"300"`

	ApplicationName        string `envconfig:"DB_APPLICATION_NAME" default:"foodhood"`
	QueryExecMode          string `envconfig:"DB_QUERY_EXEC_MODE" default:"cache_statement"`
	StatementCacheCapacity int    `envconfig:"DB_STATEMENT_CACHE_CAPACITY" default:"512"`
	ConnectTimeoutSec      int    `envconfig:"DB_CONNECT_TIMEOUT_SEC" default:"5"`
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string `envconfig:"MINIO_ENDPOINT"`
	AccessKey string `envconfig:"MINIO_ACCESS_KEY"`
	SecretKey string `envconfig:"MINIO_SECRET_KEY"`
	Bucket    string `envconfig:"MINIO_BUCKET"`
	UseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false"`
}

// S3Config holds settings for AWS S3. Credentials come from the default AWS chain.
type S3Config struct {
	Region   string `envconfig:"S3_REGION"`
	Bucket   string `envconfig:"S3_BUCKET"`
	Endpoint string `envconfig:"S3_ENDPOINT"`
	// PathStyle is needed by most S3 compatible services other than AWS.
	PathStyle bool `envconfig:"S3_PATH_STYLE" default:"false"`
}

// StorageConfig selects and configures the object store.
type StorageConfig struct {
	Driver string      `envconfig:"STORAGE_DRIVER" default:"minio"`
	MinIO  MinIOConfig `ignored:"true"`
	S3     S3Config    `ignored:"true"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables; a .env file is honored when the
// binary imports github.com/joho/godotenv/autoload.
type AppConfig struct {
	Port        string `envconfig:"PORT" default:"8080"`
	InstanceID  int64  `envconfig:"INSTANCE_ID" default:"0"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	BodyLimitMB int    `envconfig:"BODY_LIMIT_MB" default:"64"`

	Database DatabaseConfig `ignored:"true"`
	Storage  StorageConfig  `ignored:"true"`
}

// Load reads configuration from environment variables.
// Every nested struct is processed on its own so keys are exactly the tag names.
func Load() (*AppConfig, error) {
	cfg := new(AppConfig)

	sections := []struct {
		name string
		dst  any
	}{
		{"app", cfg},
		{"database", &cfg.Database},
		{"storage", &cfg.Storage},
		{"minio", &cfg.Storage.MinIO},
		{"s3", &cfg.Storage.S3},
	}
	for _, s := range sections {
		if err := envconfig.Process("", s.dst); err != nil {
			return nil, fmt.Errorf("process %s config: %w", s.name, err)
		}
	}

	switch cfg.Storage.Driver {
	case "minio", "s3":
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}
	if cfg.BodyLimitMB <= 0 {
		return nil, fmt.Errorf("BODY_LIMIT_MB must be positive")
	}
	// application_name carries the instance tag, e.g. "foodhood-3".
	if cfg.Database.ApplicationName != "" {
		cfg.Database.ApplicationName = fmt.Sprintf("%s-%d", cfg.Database.ApplicationName, cfg.InstanceID)
	}

	return cfg, nil
}
