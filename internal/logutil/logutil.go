// Package logutil contains logging helpers shared by the pixelbatt packages.
package logutil

import (
	"io"

	"github.com/sirupsen/logrus"
)

// OrDiscard returns log, or a logger which discards everything if it is nil.
func OrDiscard(log logrus.FieldLogger) logrus.FieldLogger {
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		return l
	}
	return log
}
