package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/qubit-toolkit/pkg/qubit"
)

func TestLoadDefaults(t *testing.T) {

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, qubit.DefaultStart, cfg.Start)
	assert.Equal(t, qubit.DefaultTolerance, cfg.Tolerance)
	assert.Equal(t, time.Second, cfg.Playback)
	assert.Equal(t, 50*time.Millisecond, cfg.FrameTick)
	assert.Equal(t, 3, cfg.SeedQubits)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
	assert.Equal(t, ":8080", cfg.Addr)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("QC_START_X", "6")
	t.Setenv("QC_START_Y", "0")
	t.Setenv("QC_TOLERANCE", "0.01")
	t.Setenv("QC_PLAYBACK_MS", "250")
	t.Setenv("QC_LOG_PRETTY", "false")
	t.Setenv("QC_SEED_QUBITS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, qubit.Point{X: 6, Y: 0}, cfg.Start)
	assert.Equal(t, 0.01, cfg.Tolerance)
	assert.Equal(t, 250*time.Millisecond, cfg.Playback)
	assert.False(t, cfg.LogPretty)
	assert.Equal(t, 3, cfg.SeedQubits, "unparsable values keep the default")

	opts := cfg.RegistryOptions()
	require.NotNil(t, opts.Start)
	assert.Equal(t, cfg.Start, *opts.Start)
	assert.Equal(t, 0.01, opts.Tolerance)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"QC_START_X", "16"},
		{"QC_START_Y", "-1"},
		{"QC_TOLERANCE", "-0.5"},
		{"QC_PLAYBACK_MS", "0"},
		{"QC_FRAME_MS", "-10"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.ErrorContains(t, err, tt.key)
		})
	}
}
