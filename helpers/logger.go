package helpers

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// NewLogger returns a logfmt logger writing to w with UTC timestamps and caller, filtered to logLevel
// (debug, info, warn or error; empty means info).
func NewLogger(w io.Writer, logLevel string) (log.Logger, error) {
	allow, err := levelOption(logLevel)
	if err != nil {
		return nil, err
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, allow)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	return logger, nil
}

func levelOption(logLevel string) (level.Option, error) {
	switch strings.ToLower(strings.TrimSpace(logLevel)) {
	case "debug":
		return level.AllowDebug(), nil
	case "", "info":
		return level.AllowInfo(), nil
	case "warn", "warning":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	default:
		return nil, fmt.Errorf("unknown log level %q", logLevel)
	}
}
