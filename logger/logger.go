package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"time"

	c "eventers-marketplace-client/context"

	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

const (
	CorrelationId = "correlation_id"
	ClientPage    = "client_page"
)

var newlines = regexp.MustCompile(`(\n)|(\r\n)`)

func init() {
	logger = logrus.New()
	logger.SetOutput(os.Stderr)
}

// SetLevel parses a logrus level name; unknown names keep the current level.
func SetLevel(level string) error {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("setLevel: invalid log level %q: %w", level, err)
	}
	logger.SetLevel(l)
	return nil
}

func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

func SetJSON() {
	logger.SetFormatter(&logrus.JSONFormatter{})
}

func entry(ctx context.Context) *logrus.Entry {
	e := logger.WithField(CorrelationId, c.GetContextValue(ctx, c.ContextKeyCorrelationID))
	if page := c.GetContextValue(ctx, c.ContextKeyClientPage); page != "" {
		e = e.WithField(ClientPage, page)
	}
	return e
}

func Fatalf(ctx context.Context, format string, args ...interface{}) {
	entry(ctx).Fatalf(format, args...)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	entry(ctx).Infof(format, args...)
}

func Info(ctx context.Context, msg string) {
	entry(ctx).Info(msg)
}

func Debugf(ctx context.Context, format string, args ...interface{}) {
	entry(ctx).Debug(escapeString(format, args...))
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	entry(ctx).Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	entry(ctx).Error(escapeString(format, args...))
}

// LogExecutionTime is meant to be deferred with the start time of the measured call.
func LogExecutionTime(ctx context.Context, start time.Time, msg string) {
	entry(ctx).WithField("elapsed_ms", time.Since(start).Milliseconds()).Debug(msg)
}

func escapeString(format string, args ...interface{}) string {
	errorMessage := fmt.Sprintf(format, args...)
	return newlines.ReplaceAllString(errorMessage, "\\n ")
}
