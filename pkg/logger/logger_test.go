package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give    string
		want    zapcore.Level
		wantErr bool
	}{
		{give: "", want: zapcore.InfoLevel},
		{give: "debug", want: zapcore.DebugLevel},
		{give: "WARN", want: zapcore.WarnLevel},
		{give: "error", want: zapcore.ErrorLevel},
		{give: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()

			cfg, err := ParseConfig(tt.give)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Level)
		})
	}
}

func TestNamed(t *testing.T) {
	t.Parallel()

	lggr, logs := TestObserved(t, zapcore.InfoLevel)
	child := lggr.Named("sqlstore")
	assert.Equal(t, "sqlstore", child.Name())

	child.Debugw("hidden")
	child.Infow("visible", "table", "measurements")
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "sqlstore", entry.LoggerName)
	assert.Equal(t, "measurements", entry.ContextMap()["table"])
}

func TestNewAndNop(t *testing.T) {
	t.Parallel()

	cfg := Config{Level: zapcore.ErrorLevel}
	lggr, err := cfg.New()
	require.NoError(t, err)
	assert.NotNil(t, lggr)

	Nop().Info("dropped")
	assert.Empty(t, Nop().Name())
}
