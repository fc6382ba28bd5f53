package logging

import (
	"testing"

	"github.com/sirupsen/logrus"

	"server-utilities/internal/config"
)

func TestNew(t *testing.T) {
	logger := New(config.LogConfig{Level: "debug", Format: "json"})
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %s", logger.GetLevel())
	}
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("Expected JSON formatter, got %T", logger.Formatter)
	}

	logger = New(config.LogConfig{Level: "nonsense", Format: "text"})
	if logger.GetLevel() != logrus.InfoLevel {
		t.Errorf("Expected info level fallback, got %s", logger.GetLevel())
	}
	if _, ok := logger.Formatter.(*logrus.TextFormatter); !ok {
		t.Errorf("Expected text formatter, got %T", logger.Formatter)
	}
}
