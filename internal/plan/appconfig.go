package plan

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/roomfit/internal/model"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.roomfit/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".roomfit")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	var config model.AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, err
	}
	// Ensure RecentPlans is never nil
	if config.RecentPlans == nil {
		config.RecentPlans = []string{}
	}
	// An omitted tolerance decodes to zero, which would disable the
	// predicate it feeds; fall back to the solver defaults instead.
	defaults := model.DefaultAppConfig()
	if config.DefaultCoverageRatio <= 0 || config.DefaultCoverageRatio > 1 {
		config.DefaultCoverageRatio = defaults.DefaultCoverageRatio
	}
	if config.DefaultDoorOverlapArea <= 0 {
		config.DefaultDoorOverlapArea = defaults.DefaultDoorOverlapArea
	}
	if config.DefaultCollisionRatio <= 0 {
		config.DefaultCollisionRatio = defaults.DefaultCollisionRatio
	}
	return config, nil
}
