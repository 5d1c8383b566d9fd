// Package logging provides the module-wide structured logger.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New constructs a configured logrus logger writing to stdout with the
// given level ("debug", "info", "warn", "error"; defaults to "info" on a
// bad or empty value).
func New(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.Formatter = &logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05.000",
		FullTimestamp:   true,
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	return log
}
