// Package logger wraps a process-wide logrus logger for diagnostic output.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// InitializeAndConfigure sets up the logger with the formatter and level
// taken from LOG_FORMAT and LOG_LEVEL. Output goes to stderr so that it
// never interleaves with the tables and commands printed on stdout.
func InitializeAndConfigure() {
	log.SetOutput(os.Stderr)
	configureFormatter(os.Getenv("LOG_FORMAT"))
	configureLogLevel(os.Getenv("LOG_LEVEL"))
}

// SetOutput redirects log output, mostly useful in tests.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// SetLevel sets the minimum level that will be emitted.
func SetLevel(level logrus.Level) {
	log.SetLevel(level)
}

func configureFormatter(format string) {
	switch strings.ToLower(format) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		log.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
	}
}

func configureLogLevel(levelStr string) {
	// The CLI speaks to the operator through stdout; logs stay quiet unless asked for.
	log.SetLevel(logrus.WarnLevel)

	if levelStr == "" {
		return
	}

	level, err := logrus.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		log.Warnf("Invalid log level '%s', defaulting to 'warn'", levelStr)
		return
	}

	log.SetLevel(level)
	log.Debugf("Log level set to '%s'", level)
}

// Debugf logs a message at the Debugf level
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Warnf logs a message at the Warnf level
func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

// DebugWithFields logs a message at the debug level with additional fields
func DebugWithFields(msg string, fields map[string]interface{}) {
	log.WithFields(logrus.Fields(fields)).Debug(msg)
}

// WarnWithFields logs a message at the warn level with additional fields
func WarnWithFields(msg string, fields map[string]interface{}) {
	log.WithFields(logrus.Fields(fields)).Warn(msg)
}
