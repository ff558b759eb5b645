package starterbot

import (
	"fmt"
	"io"
	"log"
)

// SLogger is what the controller, its bots and the enricher log through
type SLogger interface {
	Printf(format string, v ...interface{})

	Debugf(format string, v ...interface{})
}

type sLogger struct {
	logger *log.Logger
	debug  bool
}

// NewSLogger wraps log. Debugf lines are dropped unless debug is set
func NewSLogger(log *log.Logger, debug bool) *sLogger {
	return &sLogger{logger: log, debug: debug}
}

// newDefaultLogger returns the logger used when no OptionLog or OptionLogfile is given. Log lines are
// prefixed with the bot name
func newDefaultLogger(w io.Writer, name string) *log.Logger {
	return log.New(w, fmt.Sprintf("%s: ", name), log.Lshortfile|log.LstdFlags)
}

// Debugf logs a debug line after checking if the configuration is in debug mode
func (sl *sLogger) Debugf(format string, v ...interface{}) {
	if sl.debug {
		sl.logger.Output(2, fmt.Sprintf(format, v...))
	}
}

// Printf logs a line by delegating the call to Output
func (sl *sLogger) Printf(format string, v ...interface{}) {
	sl.logger.Output(2, fmt.Sprintf(format, v...))
}
