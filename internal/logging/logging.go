// Package logging holds the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

func init() {
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// SetLogLevel accepts debug, info, warn (or warning), error and fatal.
func SetLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug":
		Log.SetLevel(logrus.DebugLevel)
	case "info":
		Log.SetLevel(logrus.InfoLevel)
	case "warning", "warn":
		Log.SetLevel(logrus.WarnLevel)
	case "error":
		Log.SetLevel(logrus.ErrorLevel)
	case "fatal":
		Log.SetLevel(logrus.FatalLevel)
	default:
		return fmt.Errorf("bad log level %q", level)
	}
	return nil
}

// SetFormat switches between "text" and "json" output.
func SetFormat(format string) error {
	switch strings.ToLower(format) {
	case "", "text":
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		Log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("bad log format %q", format)
	}
	return nil
}

func SetOutput(w io.Writer) {
	Log.SetOutput(w)
}
