package config

import (
	"strings"
	"testing"
)

func validTestConfig() *Config {
	cfg := GetDefaultConfig()
	cfg.Content.Root = "/var/lib/photofold/library"
	return cfg
}

func TestValidate_ValidConfig(t *testing.T) {
	if err := Validate(validTestConfig()); err != nil {
		t.Errorf("Expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validTestConfig()
	cfg.Logging.Level = "INVALID"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for invalid log level")
	}
	if !strings.Contains(err.Error(), "oneof") {
		t.Errorf("Expected 'oneof' validation error, got: %v", err)
	}
}

func TestValidate_InvalidLogFormat(t *testing.T) {
	cfg := validTestConfig()
	cfg.Logging.Format = "xml"

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for invalid log format")
	}
}

func TestValidate_InvalidAPIPort(t *testing.T) {
	cfg := validTestConfig()
	cfg.API.Port = 70000 // Out of range

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for port out of range")
	}
	if !strings.Contains(err.Error(), "max") {
		t.Errorf("Expected 'max' validation error, got: %v", err)
	}
}

func TestValidate_NegativePort(t *testing.T) {
	cfg := validTestConfig()
	cfg.API.Port = -1

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for negative port")
	}
}

func TestValidate_ZeroShutdownTimeout(t *testing.T) {
	cfg := validTestConfig()
	cfg.ShutdownTimeout = 0

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for zero shutdown timeout")
	}
}

func TestValidate_MissingContentRoot(t *testing.T) {
	cfg := validTestConfig()
	cfg.Content.Root = ""

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for missing content root")
	}
	errStr := strings.ToLower(err.Error())
	if !strings.Contains(errStr, "root") {
		t.Errorf("Expected error about content root, got: %v", err)
	}
}

func TestValidate_S3RequiresBucket(t *testing.T) {
	cfg := validTestConfig()
	cfg.Content.Type = "s3"
	cfg.Content.S3.Bucket = ""

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for missing s3 bucket")
	}
	if !strings.Contains(strings.ToLower(err.Error()), "bucket") {
		t.Errorf("Expected error about s3 bucket, got: %v", err)
	}

	cfg.Content.S3.Bucket = "photofold-media"
	if err := Validate(cfg); err != nil {
		t.Errorf("Expected s3 config with bucket to pass, got: %v", err)
	}
}

func TestValidate_InvalidContentType(t *testing.T) {
	cfg := validTestConfig()
	cfg.Content.Type = "ftp"

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for unsupported content type")
	}
}

func TestValidate_InvalidDatabase(t *testing.T) {
	cfg := validTestConfig()
	cfg.Database.Type = "oracle"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for unsupported database type")
	}
	if !strings.Contains(err.Error(), "database") {
		t.Errorf("Expected database error, got: %v", err)
	}
}

func TestValidate_InvalidSampleRate(t *testing.T) {
	cfg := validTestConfig()
	cfg.Telemetry.SampleRate = 1.5

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for sample rate above 1.0")
	}
}

func TestValidate_InvalidPageSize(t *testing.T) {
	cfg := validTestConfig()
	cfg.Download.PageSize = -10

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for negative page size")
	}
}
