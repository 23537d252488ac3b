package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.Formatter = newTextFormatter()
	log.Level = levelFromEnv(os.Getenv("PIM_LOG_LEVEL"))
}

func newTextFormatter() *logrus.TextFormatter {
	return &logrus.TextFormatter{
		TimestampFormat: "Jan 02 15:04:05",
		FullTimestamp:   true,
		DisableColors:   true,
	}
}

func levelFromEnv(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

// Get returns the process-wide logger.
func Get() *logrus.Logger {
	return log
}

// WithPrefix returns an entry tagged with the given component prefix.
func WithPrefix(prefix string) *logrus.Entry {
	return log.WithField("prefix", prefix)
}

// SetLevel parses and applies a level name such as "debug" or "warn".
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	return nil
}

// SetOutput redirects the process-wide logger.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// Discard returns an entry that drops everything written to it.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
