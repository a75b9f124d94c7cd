package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the application logger. Format is "json" or "text".
func New(level, format string) *logrus.Logger {
	logg := logrus.New()
	logg.SetOutput(os.Stdout)

	if format == "json" {
		logg.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logg.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logg.SetLevel(lvl)

	return logg
}

// LogError writes an error entry tagged with where it happened
func LogError(logger logrus.FieldLogger, moduleName string, funcName string, context string, data any, err error) {
	fields := logrus.Fields{
		"module":   moduleName,
		"funcName": funcName,
		"context":  context,
	}
	if data != nil {
		fields["data"] = data
	}
	logger.WithFields(fields).Error(err.Error())
}
