package tuner

import (
	"path/filepath"
	"testing"

	"gat/game"

	"github.com/stretchr/testify/require"
)

func TestSeedPopulation(t *testing.T) {
	cfg := testConfig()
	cfg.PopulationSize = 5
	o, err := NewOptimizer(cfg)
	require.NoError(t, err)

	baseline := game.DefaultWeights()
	population := o.seedPopulation(baseline)
	require.Len(t, population, 5)
	require.Equal(t, baseline, population[0], "the baseline joins the first generation")

	for _, genome := range population[1:] {
		requireWithinRanges(t, genome)
	}
}

func TestCrossoverAndMutateStayWithinRanges(t *testing.T) {
	o, err := NewOptimizer(testConfig())
	require.NoError(t, err)

	a, b := o.randomGenome(), o.randomGenome()
	for i := 0; i < 100; i++ {
		child := o.mutate(o.crossover(a, b))
		requireWithinRanges(t, child)
	}
}

func TestCrossoverMixesParents(t *testing.T) {
	o, err := NewOptimizer(testConfig())
	require.NoError(t, err)

	var a, b game.Weights
	for i := range a {
		a[i] = weightRanges[i][0]
		b[i] = weightRanges[i][1]
	}
	child := o.crossover(a, b)
	for i := range child {
		require.True(t, child[i] == a[i] || child[i] == b[i],
			"gene %d must come from one of the parents", i)
	}
}

func TestOptimizeAcceptsOnlyAboveMargin(t *testing.T) {
	cfg := testConfig()
	cfg.PopulationSize = 2
	cfg.GamesPerEval = 2
	cfg.MaxPlies = 6
	cfg.MaxRounds = 2
	cfg.PlateauRounds = 1

	o, err := NewOptimizer(cfg)
	require.NoError(t, err)

	best, trail, err := o.Optimize(game.DefaultWeights())
	require.NoError(t, err)

	for _, acceptance := range trail {
		require.Greater(t, acceptance.Fitness, 0.5+cfg.Margin,
			"round %d acceptance must clear the margin", acceptance.Round)
		total := acceptance.Outcome.Wins + acceptance.Outcome.Losses + acceptance.Outcome.Draws
		require.Equal(t, cfg.GamesPerEval, total)
	}
	if len(trail) > 0 {
		require.Equal(t, trail[len(trail)-1].Weights, best,
			"the final incumbent is the last acceptance")
	} else {
		require.Equal(t, game.DefaultWeights(), best,
			"without acceptances the baseline stays in place")
	}
}

func TestOptimizeImprovesOnPoorBaseline(t *testing.T) {
	if testing.Short() {
		t.Skip("plays full tuning rounds")
	}

	// A baseline that only values advanced low towers: it shoves pieces
	// forward and ignores material and its guard.
	var poor game.Weights
	poor[game.FeatPositioning] = 1

	cfg := DefaultConfig()
	cfg.PopulationSize = 4
	cfg.GamesPerEval = 4
	cfg.SearchDepth = 2
	cfg.MaxPlies = 100
	cfg.MaxRounds = 4
	cfg.PlateauRounds = 4
	cfg.Concurrency = 4

	o, err := NewOptimizer(cfg)
	require.NoError(t, err)

	best, trail, err := o.Optimize(poor)
	require.NoError(t, err)
	require.NotEmpty(t, trail, "some candidate must beat a baseline this weak")
	require.NotEqual(t, poor, best)
	for _, acceptance := range trail {
		require.GreaterOrEqual(t, acceptance.Fitness, 0.5)
	}
}

func TestSaveLoadWeights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.json")
	w := game.DefaultWeights()
	w[game.FeatTempo] = 33.5

	require.NoError(t, SaveWeights(path, w))
	loaded, err := LoadWeights(path)
	require.NoError(t, err)
	require.Equal(t, w, loaded)

	_, err = LoadWeights(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func requireWithinRanges(t *testing.T, w game.Weights) {
	t.Helper()
	for i := range w {
		require.GreaterOrEqual(t, w[i], weightRanges[i][0], "feature %s", game.FeatureName(i))
		require.LessOrEqual(t, w[i], weightRanges[i][1], "feature %s", game.FeatureName(i))
	}
}
