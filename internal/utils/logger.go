// internal/utils/logger.go
package utils

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/catalogadmin/backend/internal/config"
)

// ConfigureLogger sets the level and formatter of the global logrus logger.
// Production defaults to JSON output.
func ConfigureLogger(cfg config.LogConfig, environment string) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.Level, err)
	}
	logrus.SetLevel(level)

	format := strings.ToLower(cfg.Format)
	if format == "" && environment == "production" {
		format = "json"
	}

	switch format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q", cfg.Format)
	}

	return nil
}
