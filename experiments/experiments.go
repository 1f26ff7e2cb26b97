package experiments

import (
	"fmt"
	"time"

	"gat/engine"
	"gat/experiments/metrics"
	"gat/game"
	"gat/searcher"
	"gat/tuner"

	"github.com/rs/zerolog/log"
)

const (
	NumGames   = 20 // Per match up
	TimeBudget = 500 * time.Millisecond
)

var depthConfigs = []metrics.AgentConfig{
	{ID: 1, Depth: 1, Weights: game.DefaultWeights()},
	{ID: 2, Depth: 2, Weights: game.DefaultWeights()},
	{ID: 3, Depth: 3, Weights: game.DefaultWeights()},
	{ID: 4, Depth: 4, Weights: game.DefaultWeights()},
}

// RunDepthExperiment pairs each search depth against the depth-2 baseline
// to measure how much playing strength extra depth buys.
func RunDepthExperiment() {
	baseline := metrics.AgentConfig{ID: 0, Depth: 2, Weights: game.DefaultWeights()}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range depthConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	runExperiment("depth", append(depthConfigs, baseline), matchUps)
}

// RunBudgetExperiment compares a fixed-depth agent against agents on a move
// time budget.
func RunBudgetExperiment() {
	baseline := metrics.AgentConfig{ID: 0, Depth: 3, Weights: game.DefaultWeights()}
	budgetConfigs := []metrics.AgentConfig{
		{ID: 1, Depth: 6, MoveBudget: TimeBudget / 10, Weights: game.DefaultWeights()},
		{ID: 2, Depth: 6, MoveBudget: TimeBudget / 2, Weights: game.DefaultWeights()},
		{ID: 3, Depth: 6, MoveBudget: TimeBudget, Weights: game.DefaultWeights()},
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range budgetConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	runExperiment("budget", append(budgetConfigs, baseline), matchUps)
}

// RunSelfPlay pits two weight vectors against each other over a full
// matchup and stores the records.
func RunSelfPlay(weightsA, weightsB game.Weights) {
	a := metrics.AgentConfig{ID: 1, Depth: searcher.DefaultMaxDepth, Weights: weightsA}
	b := metrics.AgentConfig{ID: 2, Depth: searcher.DefaultMaxDepth, Weights: weightsB}

	runExperiment("selfplay",
		[]metrics.AgentConfig{a, b},
		[][]metrics.AgentConfig{{a, b}})
}

// RunTunedWeightsExperiment loads a weight vector produced by the tuner and
// plays it against the hand-picked defaults. A tuned vector that cannot
// beat the defaults here is a regression.
func RunTunedWeightsExperiment(weightsPath string) {
	tuned, err := tuner.LoadWeights(weightsPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load tuned weights: %v", err))
	}

	baseline := metrics.AgentConfig{ID: 0, Depth: 2, Weights: game.DefaultWeights()}
	candidate := metrics.AgentConfig{ID: 1, Depth: 2, Weights: tuned}

	runExperiment("tuned_weights",
		[]metrics.AgentConfig{baseline, candidate},
		[][]metrics.AgentConfig{{baseline, candidate}, {candidate, baseline}})
}

func runExperiment(name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < NumGames; i++ {
			// Alternate colors so neither config owns the first move.
			red, blue := config1, config2
			if i%2 == 1 {
				red, blue = config2, config1
			}

			outcome := runGame(red, blue)
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     red.ID,
				Agent2:     blue.ID,
				GameMetric: outcome.GameMetric(),
			})
			for _, mm := range outcome.Moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %v", mi+1, len(matchUps), i+1, outcome.Winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(name)
	if err != nil {
		panic(fmt.Sprintf("failed to create experiment writer: %v", err))
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		panic(fmt.Sprintf("failed to store agent configs: %v", err))
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		panic(fmt.Sprintf("failed to write game records: %v", err))
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		panic(fmt.Sprintf("failed to write move records: %v", err))
	}
	log.Info().Msg("stored move records")
}

const maxPlies = 200

// runGame executes a single game between two agent configs.
func runGame(red, blue metrics.AgentConfig) engine.Outcome {
	e := engine.LocalEngine(createSearcher(red), createSearcher(blue), game.Opening(), maxPlies)
	return e.Run()
}

func createSearcher(config metrics.AgentConfig) *searcher.AlphaBeta {
	options := []searcher.Option{
		searcher.WithWeights(config.Weights),
		searcher.WithMetrics(),
	}
	if config.Depth > 0 {
		options = append(options, searcher.WithMaxDepth(config.Depth))
	}
	if config.MoveBudget > 0 {
		options = append(options, searcher.WithDuration(config.MoveBudget))
	}
	return searcher.NewAlphaBeta(options...)
}
