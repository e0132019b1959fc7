package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// EnvLogLevel is the name of the environment variable to change the logging
// level.
const EnvLogLevel = "GLOG"

const defaultLevel = zerolog.InfoLevel

var (
	logout io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		// Format the component name
		FormatPrepare: func(e map[string]interface{}) error {
			e["component"] = fmt.Sprintf("[%s]", e["component"])
			return nil
		},
		// Change the order in which things appear
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			"component",
			zerolog.MessageFieldName,
		},
		// Prevent the component from being printed again
		FieldsExclude: []string{"component"},
	}
)

// ParseLevel maps the value of the GLOG variable to a zerolog level. Unknown
// values fall back to the default level.
func ParseLevel(lvl string) zerolog.Level {
	switch lvl {
	case "error":
		return zerolog.ErrorLevel
	case "warn":
		return zerolog.WarnLevel
	case "info":
		return zerolog.InfoLevel
	case "debug":
		return zerolog.DebugLevel
	case "trace":
		return zerolog.TraceLevel
	case "no":
		return zerolog.Disabled
	default:
		return defaultLevel
	}
}

// GetLogger returns a formatted logger tagged with the given component name
func GetLogger(component string) zerolog.Logger {
	return NewLogger(logout, component)
}

// NewLogger is like GetLogger but writes to out instead of stderr
func NewLogger(out io.Writer, component string) zerolog.Logger {
	return zerolog.New(out).
		Level(ParseLevel(os.Getenv(EnvLogLevel))).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}
