package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	BackendLocal    = "local"
	BackendSupabase = "supabase"
	BackendMinio    = "minio"

	// DefaultMaxFileBytes is the per-file upload ceiling and the JSON body limit.
	DefaultMaxFileBytes = 50 << 20
)

type ServerConfig struct {
	Port        string `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
	BaseURL     string `mapstructure:"base_url"`
}

type DatabaseConfig struct {
	Driver  string `mapstructure:"driver"`
	Path    string `mapstructure:"path"`
	URL     string `mapstructure:"url"`
	LogMode bool   `mapstructure:"log_mode"`
}

type UploadsConfig struct {
	Backend      string `mapstructure:"backend"`
	Dir          string `mapstructure:"dir"`
	MaxFileBytes int64  `mapstructure:"max_file_bytes"`
	MaxFiles     int    `mapstructure:"max_files"`
}

type AdminConfig struct {
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	PasswordHash string `mapstructure:"password_hash"`
}

type SessionConfig struct {
	Secret string `mapstructure:"secret"`
}

type FrontendConfig struct {
	DistDir string `mapstructure:"dist_dir"`
}

type SupabaseConfig struct {
	URL    string `mapstructure:"url"`
	Key    string `mapstructure:"key"`
	Bucket string `mapstructure:"bucket"`
}

type MinioConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Uploads  UploadsConfig  `mapstructure:"uploads"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Session  SessionConfig  `mapstructure:"session"`
	Frontend FrontendConfig `mapstructure:"frontend"`
	Supabase SupabaseConfig `mapstructure:"supabase"`
	Minio    MinioConfig    `mapstructure:"minio"`
	Log      LogConfig      `mapstructure:"log"`
}

// Load reads configuration from the optional file at path and from the
// environment. Environment keys use the PRINTSHOP_ prefix with dots replaced
// by underscores (PRINTSHOP_DATABASE_PATH). PORT and DATABASE_URL are also
// honoured without the prefix.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("PRINTSHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if port := getEnv("PORT", ""); port != "" {
		cfg.Server.Port = port
	}
	if dbURL := getEnv("DATABASE_URL", ""); dbURL != "" && cfg.Database.URL == "" {
		cfg.Database.URL = dbURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.base_url", "http://localhost:5000")

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "data/printshop.db")
	v.SetDefault("database.url", "")
	v.SetDefault("database.log_mode", false)

	v.SetDefault("uploads.backend", BackendLocal)
	v.SetDefault("uploads.dir", "uploads")
	v.SetDefault("uploads.max_file_bytes", DefaultMaxFileBytes)
	v.SetDefault("uploads.max_files", 20)

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "")
	v.SetDefault("admin.password_hash", "")

	v.SetDefault("session.secret", "")
	v.SetDefault("frontend.dist_dir", "dist")

	v.SetDefault("supabase.url", "")
	v.SetDefault("supabase.key", "")
	v.SetDefault("supabase.bucket", "order-files")

	v.SetDefault("minio.endpoint", "")
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.bucket", "order-files")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

func (c *Config) Validate() error {
	if c.Admin.Username == "" {
		return fmt.Errorf("admin.username is required")
	}
	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		return fmt.Errorf("admin.password or admin.password_hash is required")
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("database.url is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}

	if c.Uploads.MaxFileBytes <= 0 {
		return fmt.Errorf("uploads.max_file_bytes must be positive")
	}
	if c.Uploads.MaxFiles <= 0 {
		return fmt.Errorf("uploads.max_files must be positive")
	}

	switch c.Uploads.Backend {
	case BackendLocal:
		if c.Uploads.Dir == "" {
			return fmt.Errorf("uploads.dir is required for the local backend")
		}
	case BackendSupabase:
		if c.Supabase.URL == "" || c.Supabase.Key == "" || c.Supabase.Bucket == "" {
			return fmt.Errorf("supabase.url, supabase.key and supabase.bucket are required for the supabase backend")
		}
	case BackendMinio:
		if c.Minio.Endpoint == "" || c.Minio.AccessKey == "" || c.Minio.SecretKey == "" || c.Minio.Bucket == "" {
			return fmt.Errorf("minio configuration incomplete")
		}
	default:
		return fmt.Errorf("unknown uploads.backend %q", c.Uploads.Backend)
	}

	return nil
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
