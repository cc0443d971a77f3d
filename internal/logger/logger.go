package logger

import (
	"io"

	"github.com/sadopc/pomo/internal/config"
	"github.com/sirupsen/logrus"
)

// New builds the process logger. Logs go to w, which should never be the
// stream the timer renders to.
func New(cfg *config.AppConfig, w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.SetLevel(logrus.WarnLevel)
		log.Warnf("Invalid log level '%s', defaulting to 'warn'", cfg.LogLevel)
	} else {
		log.SetLevel(level)
	}

	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	log.Debugf("log level set to %s", log.GetLevel())
	return log
}
