// Package notify renders user-facing messages. The API client never prints;
// commands hand their outcomes to a Notifier.
package notify

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"eventers-marketplace-client/client"
	"eventers-marketplace-client/session"

	"github.com/fatih/color"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarn:
		return "warning"
	case LevelError:
		return "error"
	}
	return "info"
}

type Notifier interface {
	Notify(level Level, message string)
}

// Console prints one coloured line per message.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	colors map[Level]*color.Color
}

func NewConsole(out io.Writer) *Console {
	return &Console{
		out: out,
		colors: map[Level]*color.Color{
			LevelInfo:    color.New(color.FgCyan),
			LevelSuccess: color.New(color.FgGreen),
			LevelWarn:    color.New(color.FgYellow),
			LevelError:   color.New(color.FgRed, color.Bold),
		},
	}
}

func (c *Console) Notify(level Level, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.colors[level].Fprintln(c.out, message)
}

func Success(n Notifier, format string, args ...interface{}) {
	n.Notify(LevelSuccess, fmt.Sprintf(format, args...))
}

func Info(n Notifier, format string, args ...interface{}) {
	n.Notify(LevelInfo, fmt.Sprintf(format, args...))
}

func Warn(n Notifier, format string, args ...interface{}) {
	n.Notify(LevelWarn, fmt.Sprintf(format, args...))
}

// Error reports err the way its kind deserves: validation failures field
// by field, auth failures as a hint to log in, everything else verbatim.
func Error(n Notifier, err error) {
	if err == nil {
		return
	}
	var apiErr *client.APIError
	switch {
	case errors.Is(err, session.ErrNoSession), errors.Is(err, session.ErrForbidden):
		n.Notify(LevelWarn, err.Error())
	case errors.As(err, &apiErr) && apiErr.Kind == client.KindValidation:
		for _, line := range fieldErrors(apiErr) {
			n.Notify(LevelError, line)
		}
	case errors.As(err, &apiErr) && apiErr.Kind == client.KindAuth:
		n.Notify(LevelWarn, fmt.Sprintf("%s (status %d). Try `marketplace login`.", apiErr.Message, apiErr.StatusCode))
	default:
		n.Notify(LevelError, err.Error())
	}
}

func fieldErrors(err *client.APIError) []string {
	var fields validation.Errors
	if !errors.As(err.Err, &fields) {
		return []string{err.Message}
	}
	lines := make([]string, 0, len(fields))
	for name, e := range fields {
		lines = append(lines, fmt.Sprintf("%s: %v", name, e))
	}
	sort.Strings(lines)
	return lines
}

// Recorder keeps messages in memory.
type Recorder struct {
	mu       sync.Mutex
	Messages []string
}

func (r *Recorder) Notify(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, level.String()+": "+message)
}

func (r *Recorder) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.Messages, "\n")
}
