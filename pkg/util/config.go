package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	OUTPUT_DIR       = "OUTPUT_DIR"
	DIAGNOSTICS_FILE = "DIAGNOSTICS_FILE"
	LOG_LEVEL        = "LOG_LEVEL"
	SWEEP_WORKERS    = "SWEEP_WORKERS"
	PLOT_OUTPUT_DIR  = "PLOT_OUTPUT_DIR"
	PLOT_SVG         = "PLOT_SVG"
	COMPRESS_OUTPUT  = "COMPRESS_OUTPUT"
)

func SetConfigDefaults() {
	viper.SetDefault(OUTPUT_DIR, "OUT")
	viper.SetDefault(DIAGNOSTICS_FILE, "tubs.txt")
	viper.SetDefault(LOG_LEVEL, "info")
	viper.SetDefault(SWEEP_WORKERS, 1)
	viper.SetDefault(PLOT_OUTPUT_DIR, ".")
	viper.SetDefault(PLOT_SVG, true)
	viper.SetDefault(COMPRESS_OUTPUT, false)
}

// ReadConfig loads the optional "config" file from dir (or ./data/ when dir is empty).
// Environment variables prefixed with COVSWN_ override file values. A missing file is not an error.
func ReadConfig(dir string) error {
	SetConfigDefaults()

	viper.SetEnvPrefix("COVSWN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	if dir == "" {
		dir = "./data/"
	}
	viper.AddConfigPath(dir)

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
