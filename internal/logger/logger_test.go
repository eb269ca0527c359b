package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Run("default level hides debug", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(Config{Output: &buf})
		log.Debug().Msg("hidden")
		log.Warn().Msg("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("debug level", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(Config{Level: "debug", Output: &buf})
		log.Debug().Str("path", "lib/api.ts").Msg("read")

		assert.Contains(t, buf.String(), `"path":"lib/api.ts"`)
	})

	t.Run("invalid level falls back to warn", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(Config{Level: "loud", Output: &buf})
		log.Info().Msg("hidden")
		assert.Empty(t, buf.String())
	})
}
