package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	DB          DBConfig          `mapstructure:"db"`
	Log         LogConfig         `mapstructure:"log"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Admin       AdminConfig       `mapstructure:"admin"`
	Uploads     UploadsConfig     `mapstructure:"uploads"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Maintenance MaintenanceConfig `mapstructure:"maintenance"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Port string    `mapstructure:"port"`
	TLS  TLSConfig `mapstructure:"tls"`
}

// TLSConfig holds TLS-specific configuration.
type TLSConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	CertFile string `mapstructure:"certFile"`
	KeyFile  string `mapstructure:"keyFile"`
}

// DBConfig holds database-specific configuration.
type DBConfig struct {
	Driver     string `mapstructure:"driver"`
	DSN        string `mapstructure:"dsn"`
	Migrations string `mapstructure:"migrations"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // e.g., "debug", "info", "warn", "error"
	Format string `mapstructure:"format"` // e.g., "json", "console"
}

// AuthConfig holds admin token settings.
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
	// LoginRate is the number of login attempts per minute allowed from one IP.
	LoginRate  int `mapstructure:"login_rate"`
	LoginBurst int `mapstructure:"login_burst"`
}

// AdminConfig describes the administrator account seeded on startup.
// Seeding is skipped when Email or Password is empty.
type AdminConfig struct {
	Name     string `mapstructure:"name"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// UploadsConfig holds the upload tree settings.
type UploadsConfig struct {
	Root    string `mapstructure:"root"`
	MaxSize int64  `mapstructure:"max_size"`
}

// CacheConfig holds the SQLite cache configuration.
type CacheConfig struct {
	FilePath   string        `mapstructure:"file_path"`
	SummaryTTL time.Duration `mapstructure:"summary_ttl"`
}

// MaintenanceConfig holds the orphan cleanup schedule.
type MaintenanceConfig struct {
	Schedule string `mapstructure:"schedule"`
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	// A missing .env is fine; values may come from the real environment.
	_ = godotenv.Load()

	// Set default values
	viper.SetDefault("server.port", "5000")
	viper.SetDefault("db.driver", "mysql")
	viper.SetDefault("db.dsn", "root:@tcp(127.0.0.1:3306)/db_acehwonders?parseTime=true&multiStatements=true")
	viper.SetDefault("db.migrations", "migrations")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("auth.token_ttl", 24*time.Hour)
	viper.SetDefault("auth.login_rate", 10)
	viper.SetDefault("auth.login_burst", 5)
	viper.SetDefault("admin.name", "Administrator")
	viper.SetDefault("uploads.root", "uploads")
	viper.SetDefault("uploads.max_size", 64<<20)
	viper.SetDefault("cache.file_path", "cache.db")
	viper.SetDefault("cache.summary_ttl", 30*time.Second)
	viper.SetDefault("maintenance.schedule", "0 3 * * *")

	// Set up viper to read from config file
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/etc/wonders-cms/")

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return nil, err
		}
	}

	// Set up viper to read from environment variables
	viper.SetEnvPrefix("CMS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
