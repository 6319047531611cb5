package logger

import (
	"bytes"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseConfig(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		cfg := ParseConfig("", "", "")
		assert.Equal(t, slog.LevelInfo, cfg.DefaultLevel)
		assert.False(t, cfg.JSON)
		assert.False(t, cfg.AddSource)
	})

	t.Run("Subsystems", func(t *testing.T) {
		cfg := ParseConfig("assembler=debug, node=error ,warn", "JSON", "1")
		assert.Equal(t, slog.LevelWarn, cfg.DefaultLevel)
		assert.Equal(t, slog.LevelDebug, cfg.LevelFor("assembler"))
		assert.Equal(t, slog.LevelError, cfg.LevelFor("node"))
		assert.Equal(t, slog.LevelWarn, cfg.LevelFor("keychain"))
		assert.True(t, cfg.JSON)
		assert.True(t, cfg.AddSource)
	})

	t.Run("UnknownLevelIgnored", func(t *testing.T) {
		cfg := ParseConfig("assembler=loud,verbose", "", "")
		assert.Equal(t, slog.LevelInfo, cfg.DefaultLevel)
		_, ok := cfg.SubsystemLevels["assembler"]
		assert.False(t, ok)
	})
}

func TestLogger_OutputAndLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)
	defer SetOutput(os.Stderr)

	log := Logger("logger-test")
	assert.Same(t, log, Logger("logger-test"))

	SetLevel("logger-test", slog.LevelInfo)
	log.Debug("hidden")
	log.Info("visible", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "key=value")
	assert.Contains(t, out, "subsystem=logger-test")

	buf.Reset()
	SetLevel("logger-test", slog.LevelDebug)
	log.Debug("now shown")
	assert.Contains(t, buf.String(), "now shown")

	t.Log("✅ Logger 测试通过")
}
