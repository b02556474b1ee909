package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		encoding string
		wantErr  bool
	}{
		{name: "json info", level: "info", encoding: "json"},
		{name: "console debug", level: "debug", encoding: "console"},
		{name: "unknown encoding falls back to json", level: "warn", encoding: "logfmt"},
		{name: "invalid level", level: "loud", encoding: "json", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.level, tt.encoding)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, got.Logger)
		})
	}
}

func TestFromContext(t *testing.T) {
	base := NewNop()
	child := base.With(StringField("request_id", "abc"))

	assert.Same(t, base, base.FromContext(context.Background()))
	assert.Same(t, child, base.FromContext(NewContext(context.Background(), child)))
}

func TestLogger_ContextVariants(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := &Logger{Logger: zap.New(core)}
	ctx := NewContext(context.Background(), base.With(StringField("request_id", "abc")))

	base.DebugContext(ctx, "debug")
	base.InfoContext(ctx, "info")
	base.WarnContext(ctx, "warn")
	base.ErrorContext(ctx, "error")
	base.Info("plain")

	entries := logs.All()
	require.Len(t, entries, 5)
	for _, entry := range entries[:4] {
		assert.Equal(t, "abc", entry.ContextMap()["request_id"], entry.Message)
	}
	assert.NotContains(t, entries[4].ContextMap(), "request_id")
	assert.Equal(t, []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel, zapcore.InfoLevel},
		[]zapcore.Level{entries[0].Level, entries[1].Level, entries[2].Level, entries[3].Level, entries[4].Level})
}
