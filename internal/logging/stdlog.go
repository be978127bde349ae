package logging

import (
	"log"
	"strings"
)

type writer struct {
	log Logger
}

func (w writer) Write(p []byte) (int, error) {
	w.log.Info(strings.TrimSpace(string(p)))
	return len(p), nil
}

// StdLog adapts the Logger for libraries that only accept a *log.Logger.
func StdLog(l Logger) *log.Logger {
	return log.New(writer{log: l}, "", 0)
}
