package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"gat/engine"
	"gat/experiments"
	"gat/experiments/metrics"
	"gat/game"
	"gat/gameserver"
	"gat/searcher"
	"gat/tuner"

	"github.com/rs/zerolog/log"
)

func main() {
	mode := "selfplay"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	switch mode {
	case "selfplay":
		runSelfPlay()
	case "tune":
		runTuning(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	case "depth":
		experiments.RunDepthExperiment()
	case "budget":
		experiments.RunBudgetExperiment()
	case "tuned":
		if len(os.Args) < 3 {
			fatalUsage()
		}
		experiments.RunTunedWeightsExperiment(os.Args[2])
	default:
		fatalUsage()
	}
}

func fatalUsage() {
	fmt.Fprintln(os.Stderr, "usage: gat [selfplay | tune [config.yaml] | serve <url> <r|b> | depth | budget | tuned <weights.json>]")
	os.Exit(2)
}

func runSelfPlay() {
	budget := 500 * time.Millisecond
	red := searcher.NewAlphaBeta(searcher.WithDuration(budget), searcher.WithMaxDepth(6))
	blue := searcher.NewAlphaBeta(searcher.WithDuration(budget), searcher.WithMaxDepth(6))

	outcome := engine.LocalEngine(red, blue, game.Opening(), 200).Run()
	fmt.Printf("Winner: %v (%s) after %d plies\n", outcome.Winner, outcome.Reason, outcome.Plies)
}

func runTuning(args []string) {
	cfg := tuner.DefaultConfig()
	if len(args) > 0 {
		loaded, err := tuner.LoadConfig(args[0])
		if err != nil {
			log.Fatal().Msgf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	optimizer, err := tuner.NewOptimizer(cfg)
	if err != nil {
		log.Fatal().Msgf("failed to build optimizer: %v", err)
	}

	best, trail, err := optimizer.Optimize(game.DefaultWeights())
	if err != nil {
		log.Fatal().Msgf("tuning failed: %v", err)
	}

	if err := tuner.SaveWeights("weights.json", best); err != nil {
		log.Fatal().Msgf("failed to save weights: %v", err)
	}
	fmt.Printf("Saved tuned weights after %d acceptances: %v\n", len(trail), best)

	writer, err := metrics.NewWriter("tuning")
	if err != nil {
		log.Fatal().Msgf("failed to create tuning writer: %v", err)
	}
	records := make([]metrics.AcceptanceRecord, len(trail))
	for i, acceptance := range trail {
		records[i] = metrics.AcceptanceRecord{
			Round:   acceptance.Round,
			Fitness: acceptance.Fitness,
			Wins:    acceptance.Outcome.Wins,
			Losses:  acceptance.Outcome.Losses,
			Draws:   acceptance.Outcome.Draws,
			Weights: acceptance.Weights,
		}
	}
	if err := writer.WriteAcceptanceRecords(records); err != nil {
		log.Fatal().Msgf("failed to write acceptance records: %v", err)
	}
}

func runServe(args []string) {
	if len(args) < 2 {
		fatalUsage()
	}
	player := game.Red
	if args[1] == "b" {
		player = game.Blue
	}

	client := gameserver.NewClient(args[0], player, game.DefaultWeights(), searcher.DefaultMaxDepth)
	if err := client.Play(context.Background()); err != nil {
		log.Fatal().Msgf("match aborted: %v", err)
	}
}
