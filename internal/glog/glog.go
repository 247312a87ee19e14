// Package glog provides a configurable logger shared across the module's
// packages, modeled on gnark's logger package. Unlike gnark, which gates its
// under-test silencing on a compile-time debug build tag
// (github.com/consensys/gnark/debug), this module has no such tag, so
// verbosity is instead driven by the POSEIDON_LOG_LEVEL environment
// variable: set it and the package logger stays live even under `go test`,
// which is the knob to reach for when chasing whether a given parameter
// tuple recomputed its master permutation or hit the memo table.
package glog

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	logger = zerolog.New(output).With().Timestamp().Logger().Level(levelFromEnv())

	if strings.HasSuffix(os.Args[0], ".test") && os.Getenv("POSEIDON_LOG_LEVEL") == "" {
		logger = zerolog.Nop()
	}
}

// levelFromEnv reads POSEIDON_LOG_LEVEL ("debug", "info", "warn", ...),
// defaulting to info when the variable is unset or unparseable.
func levelFromEnv() zerolog.Level {
	lvl, err := zerolog.ParseLevel(os.Getenv("POSEIDON_LOG_LEVEL"))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// SetOutput changes the output of the package logger.
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// Set overrides the package logger entirely.
func Set(l zerolog.Logger) {
	logger = l
}

// Disable silences the package logger.
func Disable() {
	logger = zerolog.Nop()
}

// Logger returns the shared logger.
func Logger() *zerolog.Logger {
	return &logger
}

// Component returns a sublogger tagged with the memoized table the caller is
// reporting on ("constants", "master"), so activity across the module's
// several memo tables can be told apart in log output instead of reading as
// one undifferentiated stream.
func Component(name string) *zerolog.Logger {
	l := logger.With().Str("component", name).Logger()
	return &l
}
