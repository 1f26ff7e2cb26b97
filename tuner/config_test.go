package tuner

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, DefaultConfig().validate())
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuner.yaml")
	text := "population_size: 10\nmutation_rate: 0.4\nmove_budget: 250ms\n"
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 10, cfg.PopulationSize)
	require.Equal(t, 0.4, cfg.MutationRate)
	require.Equal(t, 250*time.Millisecond, time.Duration(cfg.MoveBudget))
	require.Equal(t, DefaultConfig().MaxRounds, cfg.MaxRounds, "unset fields keep their defaults")
	require.Equal(t, OpeningBook(), cfg.Openings)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("population_size: 1\n"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
