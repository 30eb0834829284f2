// Package testlogger builds loggers for tests.
package testlogger

import (
	"os"
	"testing"

	"github.com/BackendStack21/cryptolab-go/log"
)

// Level returns DebugLevel when CRYPTOLAB_TEST_LOGS=DEBUG, InfoLevel otherwise.
func Level(t testing.TB) int {
	logLevel := log.InfoLevel
	debugEnv, isDebug := os.LookupEnv("CRYPTOLAB_TEST_LOGS")
	if isDebug && debugEnv == "DEBUG" {
		t.Log("Enabling DebugLevel logs")
		logLevel = log.DebugLevel
	}

	return logLevel
}

// New returns a logger tagged with the test name.
func New(t testing.TB) log.Logger {
	return log.New(nil, Level(t), true).
		With("testName", t.Name())
}
