package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/config"
)

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, closer, err := New(
		config.LoggingConfig{Level: "debug", Output: "file", FilePath: path},
		config.AppConfig{Name: "shareit", Environment: "test"},
	)
	require.NoError(t, err)
	require.NotNil(t, closer)

	Component(logger, "booking").Info().Int64("booking_id", 5).Msg("booking approved")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "shareit", entry["app"])
	assert.Equal(t, "test", entry["env"])
	assert.Equal(t, "booking", entry["component"])
	assert.Equal(t, "booking approved", entry["message"])
	assert.EqualValues(t, 5, entry["booking_id"])
}

func TestNew_FileOutputRequiresPath(t *testing.T) {
	_, _, err := New(config.LoggingConfig{Output: "file"}, config.AppConfig{})
	assert.Error(t, err)
}

func TestNew_LevelFallsBackToInfo(t *testing.T) {
	logger, closer, err := New(config.LoggingConfig{Level: "loud"}, config.AppConfig{})
	require.NoError(t, err)
	assert.Nil(t, closer)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestComponent_NilBase(t *testing.T) {
	l := Component(nil, "x")
	require.NotNil(t, l)
	l.Info().Msg("discarded")
}
