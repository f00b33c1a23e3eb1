package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
engine:
  shoot_cooldown_ticks: 5
  zero_shell_countdown: 40
  algorithm:
    info_interval: 6
    threat_radius: 4.5
tournament:
  num_threads: 8
`
	err := os.WriteFile(configFile, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg = nil
	v = nil

	err = Init(configFile)
	require.NoError(t, err)

	c := Get()
	assert.Equal(t, 5, c.Engine.ShootCooldownTicks)
	assert.Equal(t, 40, c.Engine.ZeroShellCountdown)
	assert.Equal(t, 6, c.Engine.Algorithm.InfoInterval)
	assert.Equal(t, 4.5, c.Engine.Algorithm.ThreatRadius)
	assert.Equal(t, 8, c.Tournament.NumThreads)
}

func TestInitWithDefaults(t *testing.T) {
	cfg = nil
	v = nil

	err := Init("/non/existent/path/config.yaml")
	require.NoError(t, err)

	c := Get()
	assert.Equal(t, 5, c.Engine.ShootCooldownTicks)
	assert.Equal(t, 3, c.Engine.BackwardPhaseLength)
	assert.Equal(t, 40, c.Engine.ZeroShellCountdown)
	assert.Equal(t, 4, c.Engine.Algorithm.InfoInterval)
	assert.Equal(t, 4, c.Tournament.NumThreads)
}

func TestEnvironmentVariables(t *testing.T) {
	cfg = nil
	v = nil

	os.Setenv("TANKS_ENGINE_ZERO_SHELL_COUNTDOWN", "30")
	os.Setenv("TANKS_TOURNAMENT_NUM_THREADS", "2")
	defer os.Unsetenv("TANKS_ENGINE_ZERO_SHELL_COUNTDOWN")
	defer os.Unsetenv("TANKS_TOURNAMENT_NUM_THREADS")

	err := Init("")
	require.NoError(t, err)

	c := Get()
	assert.Equal(t, 30, c.Engine.ZeroShellCountdown)
	assert.Equal(t, 2, c.Tournament.NumThreads)
}

func TestSet(t *testing.T) {
	cfg = nil
	v = nil

	err := Init("")
	require.NoError(t, err)

	Set("engine.zero_shell_countdown", 20)
	Set("tournament.num_threads", 16)

	c := Get()
	assert.Equal(t, 20, c.Engine.ZeroShellCountdown)
	assert.Equal(t, 16, c.Tournament.NumThreads)
}

func TestGetHelpers(t *testing.T) {
	cfg = nil
	v = nil

	err := Init("")
	require.NoError(t, err)

	Set("test.string", "hello")
	Set("test.int", 42)
	Set("test.bool", true)
	Set("test.float", 3.14)

	assert.Equal(t, "hello", GetString("test.string"))
	assert.Equal(t, 42, GetInt("test.int"))
	assert.Equal(t, true, GetBool("test.bool"))
	assert.Equal(t, 3.14, GetFloat64("test.float"))
}

func TestValidateRejectsNonPositive(t *testing.T) {
	c := &Config{
		Engine: EngineConfig{
			ShootCooldownTicks:  0,
			BackwardPhaseLength: 3,
			ZeroShellCountdown:  40,
			Algorithm:           ReferenceAlgorithmConfig{InfoInterval: 4, ThreatRadius: 3},
		},
		Tournament: TournamentConfig{NumThreads: 4},
	}
	err := Validate(c)
	assert.Error(t, err)
}
