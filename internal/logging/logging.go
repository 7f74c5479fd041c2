// Package logging builds the structured logger shared by the server.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm/logger"
)

// New returns a logger writing to w at the named level ("debug", "info", "warn", "error").
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "todo",
	}), nil
}

// GormLevel maps a logger level onto gorm's SQL log mode. SQL statements are
// only logged at debug level.
func GormLevel(l *log.Logger) logger.LogLevel {
	switch l.GetLevel() {
	case log.DebugLevel:
		return logger.Info
	case log.InfoLevel, log.WarnLevel:
		return logger.Warn
	default:
		return logger.Error
	}
}
