package resourcestore

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/formaflow/formaflow/internal/pkg/env"
)

// Config holds object storage configuration for resource files and
// organization branding assets.
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // Optional for S3-compatible services
	Enabled         bool
}

// LoadConfig loads storage configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("S3_REGION", "eu-west-3"),
		BucketName:      env.GetEnv("S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		Enabled:         env.GetEnv("S3_STORAGE_ENABLED", "false") == "true",
	}

	if config.Enabled {
		if config.AccessKeyID == "" {
			return nil, errors.New("S3_ACCESS_KEY_ID is required when S3 storage is enabled")
		}
		if config.SecretAccessKey == "" {
			return nil, errors.New("S3_SECRET_ACCESS_KEY is required when S3 storage is enabled")
		}
		if config.BucketName == "" {
			return nil, errors.New("S3_BUCKET_NAME is required when S3 storage is enabled")
		}
	}

	return config, nil
}

// IsEnabled returns true if S3 storage is enabled
func (c *Config) IsEnabled() bool {
	return c.Enabled
}

// GetBucketName returns the bucket name as configured
func (c *Config) GetBucketName() string {
	return c.BucketName
}

// ResourceObjectKey generates the object key for an org-scoped resource file.
// Format: resources/<org>/<uuid><ext>
func ResourceObjectKey(orgID uint, fileExtension string) string {
	return fmt.Sprintf("resources/%d/%s%s", orgID, uuid.New().String(), fileExtension)
}

// BrandingObjectKey generates the object key for an organization logo.
func BrandingObjectKey(orgID uint, fileExtension string) string {
	return fmt.Sprintf("branding/%d/logo%s", orgID, fileExtension)
}
