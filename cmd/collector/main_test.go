// cmd/collector/main_test.go
package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"unknown": slog.LevelInfo,
	}
	for in, want := range tests {
		v := new(slog.LevelVar)
		setLogLevel(in, v)
		assert.Equal(t, want, v.Level(), in)
	}
}

func TestThrottle(t *testing.T) {
	assert.Negative(t, int64(throttle(0)))
	assert.Equal(t, 50*time.Millisecond, throttle(50*time.Millisecond))
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()

	collect, _, err := root.Find([]string{"collect"})
	require.NoError(t, err)
	assert.Equal(t, "collect", collect.Name())
	assert.NotNil(t, collect.Flags().Lookup("output"))

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())
}
