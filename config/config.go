package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config carries every runtime setting. Values come from the environment
// (optionally seeded from a .env file) with sane development defaults.
type Config struct {
	Port      string
	GinMode   string
	DBPath    string
	JWTSecret string

	UploadDir     string
	UploadBaseURL string

	// local | s3
	ImageStore    string
	S3Bucket      string
	S3Region      string
	CloudFrontURL string

	// mock | rekognition
	AnalyzerProvider string
	AWSRegion        string

	LogJSON  bool
	LogLevel string
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("DB_PATH", "data/mealsnap.db")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("UPLOAD_BASE_URL", "/uploads")
	v.SetDefault("IMAGE_STORE", "local")
	v.SetDefault("ANALYZER_PROVIDER", "mock")
	v.SetDefault("LOG_JSON", false)
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Port:      v.GetString("PORT"),
		GinMode:   v.GetString("GIN_MODE"),
		DBPath:    v.GetString("DB_PATH"),
		JWTSecret: v.GetString("JWT_SECRET"),

		UploadDir:     v.GetString("UPLOAD_DIR"),
		UploadBaseURL: v.GetString("UPLOAD_BASE_URL"),

		ImageStore:    v.GetString("IMAGE_STORE"),
		S3Bucket:      v.GetString("S3_BUCKET"),
		S3Region:      v.GetString("S3_REGION"),
		CloudFrontURL: v.GetString("CLOUDFRONT_URL"),

		AnalyzerProvider: v.GetString("ANALYZER_PROVIDER"),
		AWSRegion:        v.GetString("AWS_REGION"),

		LogJSON:  v.GetBool("LOG_JSON"),
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.ImageStore == "s3" && cfg.S3Bucket == "" {
		return nil, fmt.Errorf("IMAGE_STORE=s3 requires S3_BUCKET")
	}
	return cfg, nil
}

// NewLogger builds the process logger from config.
func NewLogger(cfg *Config) *logrus.Logger {
	logger := logrus.New()
	if cfg.LogJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
		})
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}
