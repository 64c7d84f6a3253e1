// Package loggertest provides a Logger for tests. It lives outside the
// logger package so production binaries never import the testing package.
package loggertest

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"community-assist/internal/common/logger"
)

// New returns a Logger that writes through t.
func New(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}
