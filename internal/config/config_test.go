package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "townsim.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[simulation]
world_size = 200.0
seed = 1337

[physics]
gravity_enabled = false

[logging]
level = "debug"
format = "json"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 200.0, cfg.Simulation.WorldSize)
	require.Equal(t, int64(1337), cfg.Simulation.Seed)
	require.False(t, cfg.Physics.GravityEnabled)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, "json", cfg.Logging.Format)

	// Untouched sections keep their defaults.
	require.Equal(t, 100*time.Millisecond, cfg.Simulation.TickRate)
	require.Equal(t, 10.0, cfg.Simulation.CellSize)
	require.Equal(t, 600.0, cfg.Clock.DayLength)
	require.False(t, cfg.Database.Enabled)
	require.Equal(t, 50, cfg.Database.SnapshotInterval)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}
