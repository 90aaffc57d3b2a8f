package logger

import (
	"testing"

	"dentalbot-service/internal/app/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLogrusLogger(t *testing.T) {
	t.Run("Development uses the text formatter", func(t *testing.T) {
		internalConfig := &config.InternalConfig{App: config.App{Env: "development"}}

		log := NewLogrusLogger(internalConfig)

		assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
	})

	t.Run("Production uses the JSON formatter", func(t *testing.T) {
		internalConfig := &config.InternalConfig{App: config.App{Env: "production"}}

		log := NewLogrusLogger(internalConfig)

		assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
	})
}
