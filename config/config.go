package config

import (
	"github.com/rostis232/yahoonews2googlesheet/internal/app/logwriter"
	"github.com/sirupsen/logrus"
)

// SetupLogging parses the configured level (info when empty or invalid) and
// attaches the monthly file hook.
func SetupLogging(level string, logDir string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)

	if logDir != "" {
		logrus.AddHook(logwriter.NewMonthlyFileHook(logDir))
	}
}
