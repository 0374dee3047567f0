package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	httpapi "github.com/techstore/admin-manager/internal/api/http"
	"github.com/techstore/admin-manager/internal/apisrv/auth"
	"github.com/techstore/admin-manager/internal/bucket"
	"github.com/techstore/admin-manager/internal/revalidation"
	"github.com/techstore/admin-manager/internal/store"
	"github.com/techstore/admin-manager/log"
	"github.com/spf13/viper"
)

// StatsConfig tunes the dashboard aggregates.
type StatsConfig struct {
	// CacheTTL is how long computed aggregates are served before being
	// recomputed.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	// Timezone decides which calendar day a delivery timestamp falls on
	// when bucketing the monthly sales series.
	Timezone string `mapstructure:"timezone"`
}

// Config represents the global configuration for the service.
type Config struct {
	DB           store.Config        `mapstructure:"mysql"`
	Logger       log.Config          `mapstructure:"logger"`
	HTTP         httpapi.Config      `mapstructure:"http"`
	Auth         auth.Config         `mapstructure:"auth"`
	Bucket       bucket.Config       `mapstructure:"bucket"`
	Stats        StatsConfig         `mapstructure:"stats"`
	Revalidation revalidation.Config `mapstructure:"revalidation"`
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values.
func LoadConfig(cfgFile string) (*Config, error) {
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))
	bindEnvVars()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			// config file is optional, env vars may carry everything
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("$HOME/config/admin-manager")
		viper.AddConfigPath("/etc/admin-manager")
		_ = viper.ReadInConfig()
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	if config.Stats.CacheTTL == 0 {
		config.Stats.CacheTTL = time.Minute
	}
	if config.Stats.Timezone == "" {
		config.Stats.Timezone = "Local"
	}

	// construct the DSN from individual env vars when it is not set directly
	if config.DB.DSN == "" {
		mysqlHost := os.Getenv("MYSQL_HOST")
		mysqlPort := os.Getenv("MYSQL_PORT")
		mysqlUser := os.Getenv("MYSQL_USER")
		mysqlPassword := os.Getenv("MYSQL_PASSWORD")
		mysqlDatabase := os.Getenv("MYSQL_DATABASE")

		if mysqlHost != "" {
			if mysqlPort == "" {
				mysqlPort = "3306"
			}
			if mysqlUser != "" && mysqlPassword != "" && mysqlDatabase != "" {
				config.DB.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8&parseTime=true",
					mysqlUser, mysqlPassword, mysqlHost, mysqlPort, mysqlDatabase)
			}
		}
	}

	return &config, nil
}

func bindEnvVars() {
	// MySQL
	viper.BindEnv("mysql.dsn", "MYSQL_DSN")
	viper.BindEnv("mysql.automigrate", "MYSQL_AUTOMIGRATE")
	viper.BindEnv("mysql.max_open_connections", "MYSQL_MAX_OPEN_CONNECTIONS")
	viper.BindEnv("mysql.max_idle_connections", "MYSQL_MAX_IDLE_CONNECTIONS")
	viper.BindEnv("mysql.tls_ca_path", "MYSQL_TLS_CA_PATH")

	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	viper.BindEnv("http.port", "HTTP_PORT")
	viper.BindEnv("http.address", "HTTP_ADDRESS")
	viper.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")

	// Auth
	viper.BindEnv("auth.jwtSecret", "AUTH_JWT_SECRET")
	viper.BindEnv("auth.masterPassword", "AUTH_MASTER_PASSWORD")
	viper.BindEnv("auth.passwordHasherSaltSize", "AUTH_PASSWORD_HASHER_SALT_SIZE")
	viper.BindEnv("auth.passwordHasherIterations", "AUTH_PASSWORD_HASHER_ITERATIONS")
	viper.BindEnv("auth.jwtttl", "AUTH_JWT_TTL")

	// Bucket
	viper.BindEnv("bucket.s3AccessKey", "BUCKET_S3_ACCESS_KEY")
	viper.BindEnv("bucket.s3SecretAccessKey", "BUCKET_S3_SECRET_ACCESS_KEY")
	viper.BindEnv("bucket.s3Endpoint", "BUCKET_S3_ENDPOINT")
	viper.BindEnv("bucket.s3BucketName", "BUCKET_S3_BUCKET_NAME")
	viper.BindEnv("bucket.s3BucketLocation", "BUCKET_S3_BUCKET_LOCATION")
	viper.BindEnv("bucket.baseFolder", "BUCKET_BASE_FOLDER")

	// Stats
	viper.BindEnv("stats.cache_ttl", "STATS_CACHE_TTL")
	viper.BindEnv("stats.timezone", "STATS_TIMEZONE")

	// Revalidation
	viper.BindEnv("revalidation.storefront_url", "REVALIDATION_STOREFRONT_URL")
	viper.BindEnv("revalidation.revalidate_secret", "REVALIDATION_REVALIDATE_SECRET")
	viper.BindEnv("revalidation.http_timeout", "REVALIDATION_HTTP_TIMEOUT")
}
