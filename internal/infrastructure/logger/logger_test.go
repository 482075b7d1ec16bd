package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
	assert.NotEmpty(t, cfg.TimeFormat)
}

func TestProductionConfig(t *testing.T) {
	cfg := ProductionConfig()

	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"default config", DefaultConfig()},
		{"production config", ProductionConfig()},
		{"nil config", nil},
		{"stderr json", &Config{Level: "debug", Format: "json", Output: "stderr"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	l, err := New(&Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	l.Info("hello file")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "hello file"))
}

func TestNew_UnwritableFile(t *testing.T) {
	_, err := New(&Config{Output: filepath.Join(t.TempDir(), "missing", "app.log")})
	assert.Error(t, err)
}

func TestNewForEnvironment(t *testing.T) {
	for _, env := range []string{"production", "development", ""} {
		l, err := NewForEnvironment(env)
		require.NoError(t, err)
		assert.NotNil(t, l)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"DEBUG":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
		"bogus":   zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

type syncWriter struct {
	err error
}

func (w syncWriter) Write(p []byte) (int, error) { return len(p), nil }
func (w syncWriter) Sync() error                 { return w.err }

func newSyncLogger(err error) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		syncWriter{err: err},
		zapcore.InfoLevel,
	)
	return zap.New(core)
}

func TestSync(t *testing.T) {
	t.Run("file output flushes", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		log, err := New(&Config{Level: "info", Format: "json", Output: path})
		require.NoError(t, err)

		log.Info("flushed")
		require.NoError(t, Sync(log))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "flushed")
	})

	t.Run("terminal errors are ignored", func(t *testing.T) {
		assert.NoError(t, Sync(newSyncLogger(syscall.ENOTTY)))
		assert.NoError(t, Sync(newSyncLogger(syscall.EINVAL)))
	})

	t.Run("other errors are returned", func(t *testing.T) {
		boom := errors.New("disk full")
		assert.ErrorIs(t, Sync(newSyncLogger(boom)), boom)
	})
}
