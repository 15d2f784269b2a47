package config

import (
	"os"
	"testing"
)

const (
	validConfigPath       = "testdata/valid_config.yaml"
	expansionConfigPath   = "testdata/expansion_config.yaml"
	nonexistentConfigPath = "testdata/nonexistent_config.yaml"
	expectedNoErrorMsg    = "expected no error, got %v"
	expectedNonNilConfig  = "expected non-nil config"
	scorecastName         = "scorecast"
	developmentEnv        = "development"
	invalidEnv            = "invalid"
	testAppNameVar        = "SCORECAST_TEST_APP_NAME"
	expandedAppName       = "expanded-app-name"
)

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if cfg == nil {
		t.Fatal(expectedNonNilConfig)
	}

	if cfg.App.Name != scorecastName {
		t.Errorf("expected app name %q, got %q", scorecastName, cfg.App.Name)
	}
	if cfg.App.Environment != developmentEnv {
		t.Errorf("expected environment %q, got %q", developmentEnv, cfg.App.Environment)
	}
	if cfg.Engine.HalftimeGoalFactor != 0.55 {
		t.Errorf("expected halftime goal factor 0.55, got %f", cfg.Engine.HalftimeGoalFactor)
	}
	if cfg.Engine.CheckWorkers != 4 {
		t.Errorf("expected 4 check workers, got %d", cfg.Engine.CheckWorkers)
	}
	if cfg.Results.Provider != "simulated" {
		t.Errorf("expected simulated provider, got %q", cfg.Results.Provider)
	}
	if !cfg.Scheduler.Enabled {
		t.Error("expected scheduler enabled")
	}
}

// TestLoadConfigFileNotFound tests handling of a missing configuration file
func TestLoadConfigFileNotFound(t *testing.T) {
	if _, err := Load(nonexistentConfigPath); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// TestLoadConfigEnvExpansion tests ${VAR} expansion in the YAML file
func TestLoadConfigEnvExpansion(t *testing.T) {
	os.Setenv(testAppNameVar, expandedAppName)
	defer os.Unsetenv(testAppNameVar)

	cfg, err := Load(expansionConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if cfg.App.Name != expandedAppName {
		t.Errorf("expected expanded app name %q, got %q", expandedAppName, cfg.App.Name)
	}
}

// TestLoadWithDefaultsMissingFile tests defaults when no file exists
func TestLoadWithDefaultsMissingFile(t *testing.T) {
	cfg, err := LoadWithDefaults(nonexistentConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if cfg == nil {
		t.Fatal(expectedNonNilConfig)
	}

	if cfg.Engine.HalftimeGoalFactor != 0.55 {
		t.Errorf("expected default halftime goal factor 0.55, got %f", cfg.Engine.HalftimeGoalFactor)
	}
	if cfg.Engine.LiveBaseGoalRate != 0.03 {
		t.Errorf("expected default live base goal rate 0.03, got %f", cfg.Engine.LiveBaseGoalRate)
	}
	if cfg.Results.Provider != "simulated" {
		t.Errorf("expected default provider simulated, got %q", cfg.Results.Provider)
	}
	if cfg.Results.CacheTTLSeconds != 120 {
		t.Errorf("expected default cache TTL 120s, got %d", cfg.Results.CacheTTLSeconds)
	}
}

// TestValidateValidConfig tests validation of a well-formed configuration
func TestValidateValidConfig(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("valid config failed validation: %v", err)
	}
}

// TestValidateRejectsBadEnvironment tests the custom environment validator
func TestValidateRejectsBadEnvironment(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	cfg.App.Environment = invalidEnv

	if err := Validate(cfg); err == nil {
		t.Error("expected validation error for invalid environment")
	}
}

// TestValidateRejectsBadHalftimeFactor tests the factor bounds
func TestValidateRejectsBadHalftimeFactor(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	cfg.Engine.HalftimeGoalFactor = 0.9

	if err := Validate(cfg); err == nil {
		t.Error("expected validation error for out-of-range halftime factor")
	}
}

// TestValidateHTTPProviderNeedsBaseURL tests the cross-field rule
func TestValidateHTTPProviderNeedsBaseURL(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	cfg.Results.Provider = "http"
	cfg.Results.BaseURL = ""

	if err := Validate(cfg); err == nil {
		t.Error("expected validation error for http provider without base URL")
	}

	cfg.Results.BaseURL = "https://scores.example.com/api"
	if err := Validate(cfg); err != nil {
		t.Errorf("http provider with base URL should validate, got %v", err)
	}
}
