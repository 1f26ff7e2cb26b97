package tuner

import (
	"gat/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// weightRanges bounds each feature weight during tuning. Random genomes,
// extremes, and mutations all stay within these intervals.
var weightRanges = [game.NumFeatures][2]float64{
	game.FeatMaterial:      {20, 200},
	game.FeatGuardAdvance:  {10, 200},
	game.FeatGuardSafety:   {50, 500},
	game.FeatCenterControl: {5, 100},
	game.FeatTowerHeight:   {5, 100},
	game.FeatAggression:    {10, 150},
	game.FeatMobility:      {1, 50},
	game.FeatPositioning:   {1, 50},
	game.FeatTempo:         {5, 100},
}

// Acceptance is one improvement of the incumbent during a tuning run.
type Acceptance struct {
	Round   int
	Weights game.Weights
	Fitness float64
	Outcome TournamentOutcome
}

// Optimizer tunes evaluation weights with a small genetic algorithm. Each
// round, every genome plays a tournament against the incumbent; the round
// champion replaces the incumbent only when it beats it by the configured
// margin over an even score.
type Optimizer struct {
	cfg        Config
	tournament *Tournament
	rng        *rand.Rand
}

func NewOptimizer(cfg Config) (*Optimizer, error) {
	tournament, err := NewTournament(cfg)
	if err != nil {
		return nil, err
	}
	return &Optimizer{
		cfg:        cfg,
		tournament: tournament,
		rng:        rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Optimize runs tuning rounds starting from baseline and returns the final
// incumbent together with the trail of accepted improvements. It stops
// after MaxRounds, or earlier when PlateauRounds rounds in a row produced
// no acceptance.
func (o *Optimizer) Optimize(baseline game.Weights) (game.Weights, []Acceptance, error) {
	incumbent := baseline
	population := o.seedPopulation(baseline)

	var trail []Acceptance
	plateau := 0
	for round := 1; round <= o.cfg.MaxRounds; round++ {
		fitness := make([]float64, len(population))
		outcomes := make([]TournamentOutcome, len(population))
		for i, genome := range population {
			outcome, err := o.tournament.Run(genome, incumbent)
			if err != nil {
				return incumbent, trail, err
			}
			fitness[i] = outcome.Score()
			outcomes[i] = outcome
		}

		champion := argmax(fitness)
		log.Info().
			Int("round", round).
			Float64("fitness", fitness[champion]).
			Msgf("round champion scored %d-%d-%d against the incumbent",
				outcomes[champion].Wins, outcomes[champion].Losses, outcomes[champion].Draws)

		if fitness[champion] > 0.5+o.cfg.Margin {
			incumbent = population[champion]
			trail = append(trail, Acceptance{
				Round:   round,
				Weights: incumbent,
				Fitness: fitness[champion],
				Outcome: outcomes[champion],
			})
			plateau = 0
			log.Info().Int("round", round).Msgf("accepted new incumbent: %v", incumbent)
		} else {
			plateau++
			if plateau >= o.cfg.PlateauRounds {
				log.Info().Msgf("stopping after %d rounds without improvement", plateau)
				break
			}
		}

		population = o.evolve(population, fitness, incumbent)
	}
	return incumbent, trail, nil
}

// seedPopulation mixes the baseline, both range extremes, and random
// genomes.
func (o *Optimizer) seedPopulation(baseline game.Weights) []game.Weights {
	var low, high game.Weights
	for i := range weightRanges {
		low[i] = weightRanges[i][0]
		high[i] = weightRanges[i][1]
	}

	population := []game.Weights{baseline, low, high}
	for len(population) < o.cfg.PopulationSize {
		population = append(population, o.randomGenome())
	}
	return population[:o.cfg.PopulationSize]
}

func (o *Optimizer) randomGenome() game.Weights {
	var w game.Weights
	for i := range weightRanges {
		w[i] = o.randomWeight(i)
	}
	return w
}

func (o *Optimizer) randomWeight(i int) float64 {
	lo, hi := weightRanges[i][0], weightRanges[i][1]
	return lo + o.rng.Float64()*(hi-lo)
}

// evolve breeds the next generation: the incumbent and the round's best
// genome survive unchanged, the rest come from tournament selection,
// uniform crossover, and per-gene mutation.
func (o *Optimizer) evolve(population []game.Weights, fitness []float64, incumbent game.Weights) []game.Weights {
	next := []game.Weights{incumbent, population[argmax(fitness)]}
	for len(next) < o.cfg.PopulationSize {
		a := o.selectParent(population, fitness)
		b := o.selectParent(population, fitness)
		next = append(next, o.mutate(o.crossover(a, b)))
	}
	return next
}

// selectParent picks the fitter of two random genomes.
func (o *Optimizer) selectParent(population []game.Weights, fitness []float64) game.Weights {
	i := o.rng.Intn(len(population))
	j := o.rng.Intn(len(population))
	if fitness[j] > fitness[i] {
		return population[j]
	}
	return population[i]
}

func (o *Optimizer) crossover(a, b game.Weights) game.Weights {
	child := a
	for i := range child {
		if o.rng.Float64() < 0.5 {
			child[i] = b[i]
		}
	}
	return child
}

func (o *Optimizer) mutate(w game.Weights) game.Weights {
	for i := range w {
		if o.rng.Float64() < o.cfg.MutationRate {
			w[i] = o.randomWeight(i)
		}
	}
	return w
}

func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
