// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging provides the leveled logger used across kiln's packages.
package logging

import (
	logging "gopkg.in/op/go-logging.v1"
)

// Logger is the leveled logger interface kiln packages log through.
type Logger = logging.Logger

// MustGet returns the named logger, creating it if necessary.
func MustGet(name string) *Logger {
	return logging.MustGetLogger(name)
}

// HTTPLogWrapper adapts a Logger to the Logger interface expected by
// github.com/hashicorp/go-retryablehttp, which wants Error/Info/Debug/Warn
// methods taking a message and key/value pairs rather than printf verbs.
type HTTPLogWrapper struct {
	*Logger
}

// Error logs at error level.
func (w *HTTPLogWrapper) Error(msg string, keysAndValues ...interface{}) {
	w.Errorf("%v: %v", msg, keysAndValues)
}

// Info logs at info level.
func (w *HTTPLogWrapper) Info(msg string, keysAndValues ...interface{}) {
	w.Infof("%v: %v", msg, keysAndValues)
}

// Debug logs at debug level.
func (w *HTTPLogWrapper) Debug(msg string, keysAndValues ...interface{}) {
	w.Debugf("%v: %v", msg, keysAndValues)
}

// Warn logs at warning level.
func (w *HTTPLogWrapper) Warn(msg string, keysAndValues ...interface{}) {
	w.Warningf("%v: %v", msg, keysAndValues)
}
