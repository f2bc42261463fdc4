package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultMaxUploadBytes is the upload limit used when MAX_UPLOAD_BYTES is not set.
const DefaultMaxUploadBytes int64 = 16 << 20

type Config struct {
	Port           string        `mapstructure:"port"`
	UploadDir      string        `mapstructure:"upload_dir"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
	ParseTimeout   time.Duration `mapstructure:"parse_timeout"`
	SkillsFile     string        `mapstructure:"skills_file"`

	DatabaseURL string        `mapstructure:"database_url"`
	RedisURL    string        `mapstructure:"redis_url"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`

	JWTSecret     string `mapstructure:"jwt_secret"`
	JWTIssuer     string `mapstructure:"jwt_issuer"`
	JWTTTLMinutes int    `mapstructure:"jwt_ttl_minutes"`

	LogJSON  bool `mapstructure:"log_json"`
	LogDebug bool `mapstructure:"log_debug"`
}

// Load reads environment variables, optionally from a .env file if present.
// CONFIG_FILE may point to a yaml/json/toml file; env variables win over it.
func Load() (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("upload_dir", filepath.Join(os.TempDir(), "resumecompare"))
	v.SetDefault("max_upload_bytes", DefaultMaxUploadBytes)
	v.SetDefault("parse_timeout", 30*time.Second)
	v.SetDefault("skills_file", "")
	v.SetDefault("database_url", "")
	v.SetDefault("redis_url", "")
	v.SetDefault("cache_ttl", time.Hour)
	v.SetDefault("jwt_secret", "dev-secret-change")
	v.SetDefault("jwt_issuer", "resumecompare")
	v.SetDefault("jwt_ttl_minutes", 60)
	v.SetDefault("log_json", false)
	v.SetDefault("log_debug", false)
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	if c.ParseTimeout <= 0 {
		return fmt.Errorf("PARSE_TIMEOUT must be positive, got %s", c.ParseTimeout)
	}
	return nil
}

// JWTTTL returns the token lifetime.
func (c Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTTTLMinutes) * time.Minute
}
