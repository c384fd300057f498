package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

// GetLogger returns a singleton logger instance
func GetLogger() *logrus.Logger {
	if logger == nil {
		logger = logrus.New()

		// Set log level from environment or default to info
		SetLogLevel(os.Getenv("LOG_LEVEL"))

		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
		logger.SetOutput(os.Stdout)
	}

	return logger
}

// SetLogLevel applies a level name such as "debug"; unknown names mean info.
func SetLogLevel(level string) {
	if logger == nil {
		GetLogger()
	}
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
}
