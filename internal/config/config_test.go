package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "farming_config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	assert.Equal(t, 900, cfg.SessionPause)
	assert.Equal(t, 600, cfg.PlantSettings.GrowthTime)
	assert.Equal(t, "coffre1", cfg.HomesSpecial.Coffre1)
	assert.Empty(t, cfg.Stations)
}

func TestLoadMalformedFileFallsBackToDefaults(t *testing.T) {
	path := writeConfig(t, "{not json at all")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 900, cfg.SessionPause)
	assert.Equal(t, 0.25, cfg.Delays.HumanVariation)
}

func TestLoadDeepMergesMissingKeys(t *testing.T) {
	path := writeConfig(t, `{
		"log_path": "C:/game/logs/latest.log",
		"plant_settings": {"plant_type": "Tomates"},
		"delays": {"short": 0.1},
		"positions": {"server_connect": {"x": 100, "y": 200}},
		"stations": [{"name": "ferme1"}, {"name": "ferme2", "harvest_pos": {"x": 5, "y": 6}}]
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	// Provided keys win
	assert.Equal(t, "C:/game/logs/latest.log", cfg.LogPath)
	assert.Equal(t, "Tomates", cfg.PlantSettings.PlantType)
	assert.Equal(t, 0.1, cfg.Delays.Short)
	assert.Equal(t, 100, cfg.Positions[PosServerConnect].X)

	// Omitted siblings keep defaults
	assert.Equal(t, 600, cfg.PlantSettings.GrowthTime)
	assert.Equal(t, 0.8, cfg.Delays.Medium)
	_, present := cfg.Positions[PosBucketChest]
	assert.True(t, present, "unmentioned positions keep their default entries")

	require.Len(t, cfg.Stations, 2)
	assert.Equal(t, "ferme1", cfg.Stations[0].Name)
	assert.Nil(t, cfg.Stations[0].HarvestPos)
	require.NotNil(t, cfg.Stations[1].HarvestPos)
	assert.Equal(t, 5, cfg.Stations[1].HarvestPos.X)
}

func TestLoadRejectsEmptyStationName(t *testing.T) {
	path := writeConfig(t, `{"stations": [{"name": "  "}]}`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty name")
}

func TestEnvOverlay(t *testing.T) {
	t.Setenv("AGRIBOT_LOG_PATH", "/tmp/latest.log")
	t.Setenv("MISTRAL_API_KEY", "sk-test")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/latest.log", cfg.LogPath)
	assert.Equal(t, "sk-test", cfg.AutoReply.APIKey)
}

func TestStatePath(t *testing.T) {
	assert.Equal(t, "/etc/agri/farming_config.bucket_state.json", StatePath("/etc/agri/farming_config.json"))
	assert.Equal(t, "cfg.bucket_state.json", StatePath("cfg.json"))
}

func TestPositionConfigured(t *testing.T) {
	cfg := Defaults()

	_, ok := cfg.Position(PosServerConnect)
	assert.False(t, ok, "zero positions count as unconfigured")

	cfg.Positions[PosServerConnect] = positionAt(10, 20)
	pos, ok := cfg.Position(PosServerConnect)
	assert.True(t, ok)
	assert.Equal(t, 10, pos.X)
}
