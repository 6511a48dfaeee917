package logger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level is the severity of a line of log.
type Level uint8

const (
	levelUnknown Level = iota
	// ErrorLevel is for the failures, like an unreachable asset store.
	ErrorLevel
	// WarnLevel is for the unexpected but handled cases.
	WarnLevel
	// InfoLevel is for the requests and the lifecycle of the servers.
	InfoLevel
	// DebugLevel is verbose, and should only be enabled for a short time.
	DebugLevel
)

// ErrInvalidLevel is returned by ParseLevel for an unknown level.
var ErrInvalidLevel = errors.New("not a valid logging level")

var levels = []struct {
	level  Level
	name   string
	logrus logrus.Level
}{
	{ErrorLevel, "error", logrus.ErrorLevel},
	{WarnLevel, "warning", logrus.WarnLevel},
	{InfoLevel, "info", logrus.InfoLevel},
	{DebugLevel, "debug", logrus.DebugLevel},
}

// ParseLevel returns the level for its name. The match is case insensitive,
// and "warn" is accepted for "warning".
func ParseLevel(lvl string) (Level, error) {
	name := strings.ToLower(lvl)
	if name == "warn" {
		name = "warning"
	}
	for _, l := range levels {
		if l.name == name {
			return l.level, nil
		}
	}
	return levelUnknown, fmt.Errorf("%q: %w", lvl, ErrInvalidLevel)
}

func (level Level) String() string {
	for _, l := range levels {
		if l.level == level {
			return l.name
		}
	}
	return "unknown"
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (level *Level) UnmarshalText(text []byte) error {
	l, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*level = l
	return nil
}

// logrusLevel returns the matching logrus level. Unknown levels are logged
// as errors.
func (level Level) logrusLevel() logrus.Level {
	for _, l := range levels {
		if l.level == level {
			return l.logrus
		}
	}
	return logrus.ErrorLevel
}
