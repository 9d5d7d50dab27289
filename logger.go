package qcircuit

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger returns the structured logger used for per-gate traces.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:  level,
		Prefix: "qcircuit",
	})
}
