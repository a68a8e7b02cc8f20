// Package config loads optional YAML defaults for the projsnap tools.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/tyemirov/projsnap/internal/utils"
)

const configurationType = "yaml"

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds tool-specific configuration defaults.
type ApplicationConfiguration struct {
	Tree    TreeConfiguration    `mapstructure:"tree"`
	Archive ArchiveConfiguration `mapstructure:"archive"`
}

// TreeConfiguration defines defaults for savetree.
type TreeConfiguration struct {
	Output    string `mapstructure:"output"`
	Clipboard *bool  `mapstructure:"clipboard"`
}

// ArchiveConfiguration defines defaults for zipproject.
type ArchiveConfiguration struct {
	Output string `mapstructure:"output"`
}

// LoadApplicationConfiguration loads the global configuration and overlays the local one.
// Missing files contribute nothing.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	return merged.Merge(localConfig), nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.ConfigFileName)
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath
	}
	return filepath.Join(workingDirectory, explicitPath)
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType(configurationType)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	if override.Tree.Output != "" {
		result.Tree.Output = override.Tree.Output
	}
	if override.Tree.Clipboard != nil {
		clipboard := *override.Tree.Clipboard
		result.Tree.Clipboard = &clipboard
	}
	if override.Archive.Output != "" {
		result.Archive.Output = override.Archive.Output
	}
	return result
}

// ClipboardEnabled reports whether the tree should be copied to the clipboard by default.
func (config TreeConfiguration) ClipboardEnabled() bool {
	return config.Clipboard != nil && *config.Clipboard
}
