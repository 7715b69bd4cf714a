package logger

import (
	"io"
	"os"
	"time"

	"autoap/pkg/globals"

	"github.com/go-logr/logr"
	"github.com/go-logr/zerologr"
	"github.com/gofrs/uuid"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

var log = logr.Discard()

// Init configures the process-wide logger. Every invocation carries a short
// random run ID so interleaved action-script processes can be told apart in
// the shared journal.
func Init(debug bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerologr.NameFieldName = "logger"
	zerologr.NameSeparator = "/"

	var out io.Writer = os.Stderr
	if isatty.IsTerminal(os.Stderr.Fd()) {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	ring := newRing(globals.LogsPath)

	zl := zerolog.New(io.MultiWriter(out, ring)).Level(level).With().Timestamp().Logger()
	if id, err := uuid.NewV4(); err == nil {
		zl = zl.With().Str("run", id.String()[:8]).Logger()
	}
	log = zerologr.New(&zl)
}

// L returns the process logger. Discards until Init is called.
func L() logr.Logger {
	return log
}
