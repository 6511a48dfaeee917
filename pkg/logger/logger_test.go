package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("JSONWithFields", func(t *testing.T) {
		var buf bytes.Buffer
		err := Init(Options{Level: "info", Format: "json", Output: &buf})
		require.NoError(t, err)

		WithNamespace("avatar").WithRequestID("req-1").WithField("path", "animals/256/cat.webp").Info("served")

		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "avatar", line["nspace"])
		assert.Equal(t, "req-1", line["req_id"])
		assert.Equal(t, "animals/256/cat.webp", line["path"])
		assert.Equal(t, "served", line["msg"])
		assert.Equal(t, "info", line["level"])
	})

	t.Run("LevelFilter", func(t *testing.T) {
		var buf bytes.Buffer
		err := Init(Options{Level: "warning", Output: &buf})
		require.NoError(t, err)

		log := WithNamespace("test")
		log.Info("hidden")
		log.Warnf("shown %d", 42)
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown 42")
		assert.False(t, log.IsDebug())
	})

	t.Run("Truncate", func(t *testing.T) {
		var buf bytes.Buffer
		err := Init(Options{Level: "debug", Format: "json", Output: &buf})
		require.NoError(t, err)

		WithNamespace("test").Debug(strings.Repeat("a", 3000))
		assert.Contains(t, buf.String(), "[TRUNCATED]")
		assert.Equal(t, logrus.DebugLevel, logrus.StandardLogger().Level)
	})

	t.Run("InvalidOptions", func(t *testing.T) {
		assert.Error(t, Init(Options{Level: "verbose"}))
		assert.Error(t, Init(Options{Level: "info", Format: "xml"}))
	})
}
