//go:build debug
// +build debug

package dbg

import (
	"github.com/sirupsen/logrus"
)

type debugLoggerImpl struct {
	logger *logrus.Logger
}

// init function for the debug build.
// This will be called when the 'debug' tag is active.
func init() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.TraceLevel)
	debugLog = &debugLoggerImpl{logger: log}
}

// Printf implements the Printf method of the DebugLogger interface.
func (d *debugLoggerImpl) Printf(format string, a ...interface{}) {
	d.logger.Tracef(format, a...)
}

// Println implements the Println method of the DebugLogger interface.
func (d *debugLoggerImpl) Println(a ...interface{}) {
	d.logger.Traceln(a...)
}
