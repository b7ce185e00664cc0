package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestNewLogger(t *testing.T) {
	t.Run("drops time and filters by level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&buf, false, "warn")

		logger.Info("hidden")
		logger.Warn("shown", "tx", "0xabc")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "msg=shown")
		assert.Contains(t, out, "tx=0xabc")
		assert.NotContains(t, out, "time=")
	})

	t.Run("debug overrides level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&buf, true, "error")

		logger.Debug("details")
		assert.Contains(t, buf.String(), "msg=details")
		assert.Contains(t, buf.String(), "source=")
	})
}

func TestShortPath(t *testing.T) {
	assert.Equal(t, "internal/usecase/deploy_artifact.go", shortPath("/home/ci/src/vault-deployer/internal/usecase/deploy_artifact.go"))
	assert.Equal(t, "main.go", shortPath("/tmp/build/main.go"))
}
