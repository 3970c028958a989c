// Package logger builds the process logger from environment configuration.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New creates a configured logger. Level comes from LOG_LEVEL (default
// info), format from LOG_FORMAT ("json" for machine collection, text
// otherwise). The logger is passed explicitly to everything that logs;
// there is no package-level instance.
func New() *logrus.Logger {
	log := logrus.New()

	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	log.SetOutput(os.Stdout)
	return log
}
