// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	ImageHost   ImageHostConfig
	Cloudinary  CloudinaryConfig
	AWS         AWSConfig
	Upload      UploadConfig
	RateLimit   RateLimitConfig
	CORS        CORSConfig
	Log         LogConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type JWTConfig struct {
	SecretKey string
	TTLHours  int
	Issuer    string
}

// ImageHostConfig selects the remote image host: "cloudinary", "s3" or "local".
type ImageHostConfig struct {
	Provider         string
	LocalDir         string
	LocalBaseURL     string
	BreakerName      string
	BreakerMinCalls  uint32
	BreakerFailRatio float64
	BreakerTimeout   int // seconds the breaker stays open
}

type CloudinaryConfig struct {
	URL    string
	Folder string
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	CloudFrontURL   string
}

type UploadConfig struct {
	MaxFiles    int
	MaxFileSize int64 // in bytes
}

// RateLimitConfig values are requests per minute per client IP. Zero disables the limiter.
type RateLimitConfig struct {
	General int
	Auth    int
	Upload  int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8000"),
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 60),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USERNAME", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "catalog_admin"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", defaultJWTSecret),
			TTLHours:  getEnvAsInt("JWT_TTL_HOURS", 168), // 7 days
			Issuer:    getEnv("JWT_ISSUER", "catalog-admin"),
		},
		ImageHost: ImageHostConfig{
			Provider:         strings.ToLower(getEnv("IMAGE_HOST", "cloudinary")),
			LocalDir:         getEnv("IMAGE_HOST_LOCAL_DIR", "./uploads"),
			LocalBaseURL:     getEnv("IMAGE_HOST_LOCAL_BASE_URL", "http://localhost:8000/uploads"),
			BreakerName:      getEnv("IMAGE_HOST_BREAKER_NAME", "image-host"),
			BreakerMinCalls:  uint32(getEnvAsInt("IMAGE_HOST_BREAKER_MIN_CALLS", 3)),
			BreakerFailRatio: getEnvAsFloat("IMAGE_HOST_BREAKER_FAIL_RATIO", 0.6),
			BreakerTimeout:   getEnvAsInt("IMAGE_HOST_BREAKER_TIMEOUT", 30),
		},
		Cloudinary: CloudinaryConfig{
			URL:    getEnv("CLOUDINARY_URL", ""),
			Folder: getEnv("CLOUDINARY_FOLDER", "products"),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", "catalog-admin-images"),
			CloudFrontURL:   getEnv("AWS_CLOUDFRONT_URL", ""),
		},
		Upload: UploadConfig{
			MaxFiles:    getEnvAsInt("UPLOAD_MAX_FILES", 5),
			MaxFileSize: int64(getEnvAsInt("UPLOAD_MAX_FILE_SIZE_MB", 10)) * 1024 * 1024,
		},
		RateLimit: RateLimitConfig{
			General: getEnvAsInt("RATE_LIMIT_GENERAL_PER_MIN", 600),
			Auth:    getEnvAsInt("RATE_LIMIT_AUTH_PER_MIN", 20),
			Upload:  getEnvAsInt("RATE_LIMIT_UPLOAD_PER_MIN", 30),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", ""),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.JWT.SecretKey == defaultJWTSecret && c.Environment == "production" {
		return fmt.Errorf("JWT secret key must be changed in production")
	}

	if c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	if c.JWT.TTLHours <= 0 {
		return fmt.Errorf("JWT_TTL_HOURS must be positive")
	}

	switch c.ImageHost.Provider {
	case "cloudinary":
		if c.Cloudinary.URL == "" {
			return fmt.Errorf("CLOUDINARY_URL is required when IMAGE_HOST is cloudinary")
		}
	case "s3":
		if c.AWS.S3Bucket == "" {
			return fmt.Errorf("AWS_S3_BUCKET is required when IMAGE_HOST is s3")
		}
	case "local":
		if c.Environment == "production" {
			return fmt.Errorf("local image host is not allowed in production")
		}
	default:
		return fmt.Errorf("unknown IMAGE_HOST %q", c.ImageHost.Provider)
	}

	if c.Upload.MaxFiles < 1 {
		return fmt.Errorf("UPLOAD_MAX_FILES must be at least 1")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
