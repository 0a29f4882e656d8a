package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingPathReturnsNil(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Nil(t, cfg, "без конфига работают дефолты")
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := []byte(`
world:
  seed: 1337
  render_distance: 6
  storage: files
  day_length_seconds: 300
player:
  mode: creative
mobs:
  difficulty: hard
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, int64(1337), cfg.World.GetSeed())
	assert.Equal(t, 6, cfg.World.GetRenderDistance())
	assert.Equal(t, "files", cfg.World.GetStorage())
	assert.Equal(t, 300.0, cfg.World.GetDayLength())
	assert.Equal(t, "creative", cfg.Player.GetMode())
	assert.Equal(t, "hard", cfg.Mobs.GetDifficulty())
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("world: [broken"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	var cfg Config

	assert.Equal(t, int64(0), cfg.World.GetSeed(), "нулевой сид — выбрать случайный")
	assert.Equal(t, 4, cfg.World.GetRenderDistance())
	assert.Equal(t, 1, cfg.World.GetCreateBudget())
	assert.Equal(t, 1, cfg.World.GetMeshBudget())
	assert.Equal(t, "data", cfg.World.GetDataDir())
	assert.Equal(t, "badger", cfg.World.GetStorage())
	assert.Equal(t, 600.0, cfg.World.GetDayLength())
	assert.Equal(t, "survival", cfg.Player.GetMode())
	assert.Equal(t, "normal", cfg.Mobs.GetDifficulty())
}

func TestEnvFallback(t *testing.T) {
	t.Setenv("BLOCKFORGE_RENDER_DISTANCE", "8")
	t.Setenv("BLOCKFORGE_MODE", "creative")
	t.Setenv("BLOCKFORGE_SEED", "42")

	var cfg Config
	assert.Equal(t, 8, cfg.World.GetRenderDistance())
	assert.Equal(t, "creative", cfg.Player.GetMode())
	assert.Equal(t, int64(42), cfg.World.GetSeed())

	// Конфиг имеет приоритет над окружением
	cfg.World.RenderDistance = 2
	assert.Equal(t, 2, cfg.World.GetRenderDistance())
}
