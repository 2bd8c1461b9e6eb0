package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/magefree/mage-goldfish/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

var elvesPath = filepath.Join("..", "..", "internal", "scenario", "testdata", "elves.yaml")

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		cfg  config.LoggingConfig
		want zapcore.Level
	}{
		{config.LoggingConfig{Level: "debug", Format: "console"}, zapcore.DebugLevel},
		{config.LoggingConfig{Level: "WARN", Format: "json"}, zapcore.WarnLevel},
		{config.LoggingConfig{Level: "error"}, zapcore.ErrorLevel},
		{config.LoggingConfig{}, zapcore.InfoLevel},
	}
	for _, tt := range tests {
		logger, err := initLogger(tt.cfg)
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(tt.want), tt.cfg.Level)
		if tt.want > zapcore.DebugLevel {
			assert.False(t, logger.Core().Enabled(tt.want-1), tt.cfg.Level)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "goldfish dev\n", out)
}

func TestEvaluateCommand(t *testing.T) {
	out, err := execute(t, "evaluate", "--log-level", "error", elvesPath)
	require.NoError(t, err)
	assert.Contains(t, out, "== Elf tribal, turn four (turn 4) ==")
	assert.Contains(t, out, "Power available to attack: 6")

	out, err = execute(t, "evaluate", "--format", "json", "--workers", "1", "--log-level", "error", elvesPath)
	require.NoError(t, err)
	var reports []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "Elf tribal, turn four", reports[0]["scenario"])
}

func TestEvaluateCommand_Errors(t *testing.T) {
	_, err := execute(t, "evaluate")
	assert.Error(t, err, "at least one scenario is required")

	_, err = execute(t, "evaluate", "--format", "xml", elvesPath)
	assert.ErrorContains(t, err, "output.format")

	_, err = execute(t, "evaluate", "--log-level", "error", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
