// Package sysutil holds small process-level helpers used by the server
// entrypoint: logger construction, log level parsing and env flag parsing.
package sysutil

import (
	"io"
	"net"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger. Pretty selects a human-readable
// console writer; otherwise lines are JSON.
func NewLogger(w io.Writer, pretty bool, service string) zerolog.Logger {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Str("service", service).Logger()
}

// SetLogLevel configures the global zerolog level based on a string value.
// Supported values (case-insensitive): debug, info, warn, error, fatal, panic.
func SetLogLevel(lvl string) {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info", "":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// FirstNonEmpty returns the first non-blank string from a variadic list.
// If all values are blank, it returns "".
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// ListenAddr turns a bare port ("5000") or a host:port into a listen
// address. Blank input falls back to def.
func ListenAddr(port, def string) string {
	p := strings.TrimSpace(FirstNonEmpty(port, def))
	if _, _, err := net.SplitHostPort(p); err == nil {
		return p
	}
	return ":" + strings.TrimPrefix(p, ":")
}
