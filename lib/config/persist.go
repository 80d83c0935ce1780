package config

import (
	"os"
	"path/filepath"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var CfgFile string

const RECONFIG_BASE_DIR = ".reconfig"

// BuildConfigDirPath returns the reconfig dot-directory under the
// user's home.
func BuildConfigDirPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.WithError(err).Warn("could not determine home directory, using cwd")
		return RECONFIG_BASE_DIR
	}
	return filepath.Join(home, RECONFIG_BASE_DIR)
}

// DefaultConfigPath returns the path Save writes to when no explicit
// file was configured.
func DefaultConfigPath() string {
	if CfgFile != "" {
		return CfgFile
	}
	return filepath.Join(BuildConfigDirPath(), "config.yaml")
}

// Load reads the configuration file via viper, creating a default
// file when none exists yet. An explicitly configured CfgFile that is
// missing is an error rather than a trigger for file creation.
func Load() (Store, error) {
	if CfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(CfgFile)
	} else {
		viper.AddConfigPath(BuildConfigDirPath())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if CfgFile != "" {
				return nil, oops.Errorf("config file %s is not found: %v", CfgFile, err)
			}
			if err := createDefaultConfig(BuildConfigDirPath()); err != nil {
				return nil, err
			}
		} else {
			return nil, oops.Errorf("error reading config file: %v", err)
		}
	} else {
		log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}

	return Store(viper.AllSettings()), nil
}

func setDefaults() {
	for category, slice := range DefaultStore() {
		viper.SetDefault(category, slice)
	}
}

func createDefaultConfig(defaultConfigDir string) error {
	defaultConfigFile := filepath.Join(defaultConfigDir, "config.yaml")
	if err := os.MkdirAll(defaultConfigDir, 0o755); err != nil {
		return oops.Errorf("could not create config directory: %v", err)
	}
	if err := Save(DefaultStore(), defaultConfigFile); err != nil {
		return err
	}
	log.Debugf("Created default configuration at: %s", defaultConfigFile)
	return nil
}

// Save writes the store as YAML. This is the durable-persistence
// collaborator of the apply cycle; an error here surfaces as a
// warning after the in-memory apply already took effect.
func Save(s Store, path string) error {
	data, err := yaml.Marshal(map[string]any(s))
	if err != nil {
		return oops.Errorf("could not serialize config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return oops.Errorf("could not create config directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return oops.Errorf("could not write config file %s: %v", path, err)
	}
	log.WithFields(logger.Fields{
		"at":   "config.Save",
		"path": path,
	}).Debug("config_saved")
	return nil
}
