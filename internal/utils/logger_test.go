package utils

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogadmin/backend/internal/config"
)

func TestConfigureLogger(t *testing.T) {
	defer logrus.SetFormatter(&logrus.TextFormatter{})
	defer logrus.SetLevel(logrus.InfoLevel)

	require.NoError(t, ConfigureLogger(config.LogConfig{Level: "debug"}, "production"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	require.NoError(t, ConfigureLogger(config.LogConfig{Level: "warn"}, "development"))
	assert.IsType(t, &logrus.TextFormatter{}, logrus.StandardLogger().Formatter)

	assert.Error(t, ConfigureLogger(config.LogConfig{Level: "loud"}, "development"))
	assert.Error(t, ConfigureLogger(config.LogConfig{Level: "info", Format: "xml"}, "development"))
}
