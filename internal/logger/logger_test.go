package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitWritesJSONFile(t *testing.T) {
	prev := Lg
	t.Cleanup(func() { Lg = prev })

	path := filepath.Join(t.TempDir(), "logs", "test.log")
	require.NoError(t, Init(&LogConfig{Level: "debug", Filename: path, MaxSize: 1}, "production"))

	Named("session").Info("image loaded", zap.Int("width", 800))
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"image loaded"`)
	assert.Contains(t, string(data), `"logger":"session"`)
	assert.Contains(t, string(data), `"width":800`)
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	prev := Lg
	t.Cleanup(func() { Lg = prev })

	err := Init(&LogConfig{Level: "loud", Filename: filepath.Join(t.TempDir(), "x.log")}, "production")
	assert.Error(t, err)
	assert.Same(t, prev, Lg)
}

func TestHelpersAreSafeBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		Info("info")
		Warn("warn")
		Error("error")
		Debug("debug")
		Sync()
	})
}
