package main

import (
	"errors"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the daemon configuration, loaded from mediad.yaml (working
// directory or /etc/mediad) with MEDIAFS_* environment overrides.
type Config struct {
	Listen           string `mapstructure:"listen"`
	StorageDir       string `mapstructure:"storage_dir"`
	TempDir          string `mapstructure:"temp_dir"`
	DBPath           string `mapstructure:"db_path"`
	Debug            bool   `mapstructure:"debug"`
	ReadOnlyBrowsing bool   `mapstructure:"read_only_browsing"`
}

func loadConfig() (*Config, error) {
	viper.SetDefault("listen", ":8080")
	viper.SetDefault("storage_dir", "data/uploads")
	viper.SetDefault("temp_dir", "")
	viper.SetDefault("db_path", "data/media.db")
	viper.SetDefault("debug", false)
	viper.SetDefault("read_only_browsing", false)

	viper.SetConfigName("mediad")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/mediad")
	viper.SetEnvPrefix("MEDIAFS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		// Defaults plus environment are enough to run.
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if cfg.TempDir == "" {
		// The pipeline hard-links from the temp directory, so it must stay
		// on the same filesystem as the storage tree.
		cfg.TempDir = filepath.Join(cfg.StorageDir, ".tmp")
	}

	return cfg, nil
}
