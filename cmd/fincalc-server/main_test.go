package main

import (
	"errors"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWaitForStop(t *testing.T) {
	t.Run("signal", func(t *testing.T) {
		quit := make(chan os.Signal, 1)
		serverErr := make(chan error, 1)
		quit <- syscall.SIGTERM

		assert.False(t, waitForStop(quit, serverErr))
	})

	t.Run("server error returns instead of exiting", func(t *testing.T) {
		quit := make(chan os.Signal, 1)
		serverErr := make(chan error, 1)
		serverErr <- errors.New("listen tcp :8000: address already in use")

		assert.True(t, waitForStop(quit, serverErr))
	})

	t.Run("server closed cleanly", func(t *testing.T) {
		quit := make(chan os.Signal, 1)
		serverErr := make(chan error, 1)
		serverErr <- nil

		assert.False(t, waitForStop(quit, serverErr))
	})
}
