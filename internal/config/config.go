// Package config loads the uploader configuration from environment
// variables. It is read once at startup; the rest of the program receives
// plain values and never reads the environment itself.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage type constants
const (
	StorageTypeVolatile = "volatile"
	StorageTypeS3       = "s3"
	StorageTypeOSS      = "oss"
	StorageTypeCOS      = "cos"
	StorageTypeQiniu    = "qiniu"
)

// Config is the complete uploader configuration
type Config struct {
	BaseURL        string        `env:"OAP_STORAGE_BASE_URL" envDefault:"https://storage.oaphub.ai"`
	AuthToken      string        `env:"OAP_CLIENT_KEY"`
	MinExpireAfter int64         `env:"OAP_MIN_EXPIRE_AFTER" envDefault:"60"`
	Timeout        time.Duration `env:"OAP_UPLOAD_TIMEOUT" envDefault:"0s"`
	StorageType    string        `env:"OAP_STORAGE_TYPE" envDefault:"volatile"`

	S3    S3    `envPrefix:"OAP_S3_"`
	OSS   OSS   `envPrefix:"OAP_OSS_"`
	COS   COS   `envPrefix:"OAP_COS_"`
	Qiniu Qiniu `envPrefix:"OAP_QINIU_"`
}

// S3 configures an S3-compatible backend
type S3 struct {
	Bucket    string `env:"BUCKET"`
	Region    string `env:"REGION"`
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Session   string `env:"SESSION"`
}

// OSS configures an Aliyun OSS backend
type OSS struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET"`
}

// COS configures a Tencent COS backend
type COS struct {
	Bucket        string `env:"BUCKET"`
	Region        string `env:"REGION"`
	AppID         string `env:"APP_ID"`
	SecretID      string `env:"ACCESS_KEY"`
	SecretKey     string `env:"SECRET_KEY"`
	UseHTTPS      bool   `env:"USE_HTTPS" envDefault:"true"`
	UseAccelerate bool   `env:"USE_ACCELERATE" envDefault:"false"`
}

// Qiniu configures a Qiniu Kodo backend
type Qiniu struct {
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET"`
	Domain    string `env:"DOMAIN"`
	Region    string `env:"REGION" envDefault:"z0"`
}

// Load parses the environment into a Config and validates it
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}
	cfg.StorageType = strings.ToLower(strings.TrimSpace(cfg.StorageType))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values the upload pipeline depends on
func (c *Config) Validate() error {
	if c.MinExpireAfter <= 0 {
		return fmt.Errorf("minimum expiration must be positive, got %d", c.MinExpireAfter)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("upload timeout cannot be negative, got %s", c.Timeout)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid storage base URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid storage base URL %q: scheme must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid storage base URL %q: missing host", c.BaseURL)
	}
	return nil
}
