package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validate checks the configuration against the struct validation tags and
// a few cross-field rules the tags cannot express.
func Validate(cfg *Config) error {
	v := validator.New()

	if err := v.Struct(cfg); err != nil {
		return err
	}

	if err := cfg.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	switch cfg.Content.Type {
	case "filesystem":
		if cfg.Content.Root == "" {
			return fmt.Errorf("content: root directory is required for the filesystem backend")
		}
	case "s3":
		if cfg.Content.S3.Bucket == "" {
			return fmt.Errorf("content: s3 bucket is required for the s3 backend")
		}
	}

	return nil
}
