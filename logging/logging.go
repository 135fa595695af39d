package logging

import (
	"os"
	"strings"

	"fintrack/config"

	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger from cfg and returns it.
// LOG_LEVEL in the environment wins over the configured level.
func Setup(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.StandardLogger()
	logger.SetOutput(os.Stdout)

	if strings.EqualFold(cfg.Format, "text") {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		})
	}

	levelStr := cfg.Level
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		levelStr = env
	}
	level, err := logrus.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
